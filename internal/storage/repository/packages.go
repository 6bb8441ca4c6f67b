package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/crypto-academy/internal/lib/sl"
	"github.com/magabrotheeeer/crypto-academy/internal/models"
)

// scanPackage разбирает строку пакета, включая jsonb-колонку features.
//
// Колонка могла быть заполнена до миграции на jsonb-массив (строка с
// сериализованным списком вместо массива). Такая строка — проблема данных,
// а не запроса: пакет отдаётся с пустым списком, в лог пишется предупреждение.
func (s *Storage) scanPackage(row interface{ Scan(dest ...any) error }) (*models.Package, error) {
	var p models.Package
	var features []byte
	var description, roleID, paymentLink sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &description, &features,
		&p.Popular, &roleID, &paymentLink); err != nil {
		return nil, err
	}
	p.Description = description.String
	p.DiscordRoleID = roleID.String
	p.PaymentLink = paymentLink.String
	if len(features) > 0 {
		if err := json.Unmarshal(features, &p.Features); err != nil {
			s.log.Warn("features column is not a json array, returning empty list",
				slog.Int("package_id", p.ID), sl.Err(err))
			p.Features = []string{}
		}
	}
	return &p, nil
}

// ListPackages возвращает все пакеты обучения.
func (s *Storage) ListPackages(ctx context.Context) ([]models.Package, error) {
	const op = "storage.ListPackages"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, description, features, popular, discord_role_id, payment_link
			  FROM packages
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Package
	for rows.Next() {
		p, err := s.scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetPackageByID возвращает пакет по его идентификатору.
func (s *Storage) GetPackageByID(ctx context.Context, id int) (*models.Package, error) {
	const op = "storage.GetPackageByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, description, features, popular, discord_role_id, payment_link
			  FROM packages
			  WHERE id = $1`
	p, err := s.scanPackage(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// CreatePackage вставляет новый пакет и возвращает его ID.
func (s *Storage) CreatePackage(ctx context.Context, p models.Package) (int, error) {
	const op = "storage.CreatePackage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := json.Marshal(p.Features)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	query := `INSERT INTO packages (name, price, description, features, popular, discord_role_id, payment_link)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err = s.DB.QueryRowContext(ctx, query,
		p.Name, p.Price, p.Description, features, p.Popular, p.DiscordRoleID, p.PaymentLink).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdatePackage обновляет пакет по ID и возвращает количество изменённых строк.
func (s *Storage) UpdatePackage(ctx context.Context, id int, p models.Package) (int, error) {
	const op = "storage.UpdatePackage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := json.Marshal(p.Features)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	query := `UPDATE packages
			  SET name = $1, price = $2, description = $3, features = $4,
			      popular = $5, discord_role_id = $6, payment_link = $7
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		p.Name, p.Price, p.Description, features, p.Popular, p.DiscordRoleID, p.PaymentLink, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeletePackage удаляет пакет по ID, подписки при этом сохраняют запись
// с product_id = NULL (ON DELETE SET NULL).
func (s *Storage) DeletePackage(ctx context.Context, id int) (int, error) {
	const op = "storage.DeletePackage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM packages WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
