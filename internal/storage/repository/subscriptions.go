package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/crypto-academy/internal/models"
)

// UpsertSubscription атомарно вставляет подписку по order_id либо, если запись
// уже существует, обновляет только status, payment_id и end_date.
//
// Конкурентные доставки одного и того же заказа сериализуются уникальным
// ограничением на order_id на стороне базы, без блокировок в приложении.
func (s *Storage) UpsertSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.UpsertSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (order_id, payment_id, discord_id, wallet_address,
			      product_id, status, start_date, end_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  ON CONFLICT (order_id) DO UPDATE
			  SET status = EXCLUDED.status,
			      payment_id = EXCLUDED.payment_id,
			      end_date = EXCLUDED.end_date
			  RETURNING id`
	var id int
	err := s.DB.QueryRowContext(ctx, query,
		sub.OrderID, sub.PaymentID, sub.DiscordID, sub.WalletAddress,
		sub.ProductID, sub.Status, sub.StartDate, sub.EndDate).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetSubscriptionByOrderID возвращает подписку по бизнес-ключу заказа.
func (s *Storage) GetSubscriptionByOrderID(ctx context.Context, orderID string) (*models.Subscription, error) {
	const op = "storage.GetSubscriptionByOrderID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, order_id, payment_id, discord_id, wallet_address, product_id,
			      status, start_date, end_date, created_at
			  FROM subscriptions
			  WHERE order_id = $1`
	var sub models.Subscription
	var paymentID, discordID, walletAddress sql.NullString
	var productID sql.NullInt64
	row := s.DB.QueryRowContext(ctx, query, orderID)
	if err := row.Scan(&sub.ID, &sub.OrderID, &paymentID, &discordID, &walletAddress,
		&productID, &sub.Status, &sub.StartDate, &sub.EndDate, &sub.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sub.PaymentID = paymentID.String
	sub.DiscordID = discordID.String
	sub.WalletAddress = walletAddress.String
	if productID.Valid {
		id := int(productID.Int64)
		sub.ProductID = &id
	}
	return &sub, nil
}

// CountSubscriptionsByOrderID подсчитывает записи по заказу. Используется
// интеграционными тестами идемпотентности.
func (s *Storage) CountSubscriptionsByOrderID(ctx context.Context, orderID string) (int, error) {
	const op = "storage.CountSubscriptionsByOrderID"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM subscriptions WHERE order_id = $1`
	if err := s.DB.QueryRowContext(ctx, query, orderID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
