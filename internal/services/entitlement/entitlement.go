// Package entitlement реализует обработку платёжных уведомлений: решение о
// выдаче доступа, вызов Discord API и идемпотентную запись в реестр подписок.
package entitlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/magabrotheeeer/crypto-academy/internal/lib/sl"
	"github.com/magabrotheeeer/crypto-academy/internal/metrics"
	"github.com/magabrotheeeer/crypto-academy/internal/models"
	"github.com/magabrotheeeer/crypto-academy/internal/storage/repository"
)

// EntitlementDays фиксированная длительность оплаченного доступа.
const EntitlementDays = 30

// PackageRepository читает пакеты обучения.
type PackageRepository interface {
	GetPackageByID(ctx context.Context, id int) (*models.Package, error)
}

// SubscriptionRepository пишет в реестр подписок.
type SubscriptionRepository interface {
	UpsertSubscription(ctx context.Context, sub models.Subscription) (int, error)
}

// RoleGranter выдаёт роль участнику во внешнем сервисе.
type RoleGranter interface {
	GrantRole(ctx context.Context, memberID, roleID string) error
}

// Service машина состояний платёжных событий.
//
// Запись в реестр выполняется только после успешной выдачи роли: строка со
// статусом active означает, что роль действительно была выдана в момент
// записи. При падении выдачи роли частичной записи не остаётся, повторная
// доставка уведомления отправителем безопасна благодаря upsert по order_id.
type Service struct {
	packages      PackageRepository
	subscriptions SubscriptionRepository
	granter       RoleGranter
	log           *slog.Logger
	now           func() time.Time
}

// New создаёт сервис обработки платёжных событий.
func New(log *slog.Logger, packages PackageRepository, subscriptions SubscriptionRepository, granter RoleGranter) *Service {
	return &Service{
		packages:      packages,
		subscriptions: subscriptions,
		granter:       granter,
		log:           log,
		now:           time.Now,
	}
}

// ProcessPaymentEvent обрабатывает одно уведомление провайдера.
//
// Возвращаемая ошибка — сигнал для логов и метрик, а не для HTTP-ответа:
// обработчик вебхука подтверждает приём в любом случае, чтобы провайдер
// не ретраил перманентно неуспешное событие.
func (s *Service) ProcessPaymentEvent(ctx context.Context, event *models.PaymentEvent) error {
	const op = "entitlement.ProcessPaymentEvent"
	log := s.log.With(
		slog.String("op", op),
		slog.String("order_id", event.OrderID),
		slog.String("payment_status", event.PaymentStatus),
	)

	metrics.WebhookEventsTotal.WithLabelValues(event.PaymentStatus).Inc()

	discordID := event.DiscordID()
	if event.PaymentStatus != models.PaymentStatusFinished || discordID == "" {
		log.Info("event is not entitlement-granting, acknowledged without effect")
		return nil
	}

	packageID, err := strconv.Atoi(event.PurchaseID)
	if err != nil {
		log.Warn("purchase_id is not a package reference, event dropped",
			slog.String("purchase_id", event.PurchaseID))
		return nil
	}

	pkg, err := s.packages.GetPackageByID(ctx, packageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("package not found, event dropped", slog.Int("package_id", packageID))
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if pkg.DiscordRoleID == "" {
		log.Warn("package has no discord role configured, event dropped",
			slog.Int("package_id", pkg.ID))
		return nil
	}

	if err := s.granter.GrantRole(ctx, discordID, pkg.DiscordRoleID); err != nil {
		metrics.RoleGrantFailuresTotal.Inc()
		log.Error("role grant failed, no ledger write performed", sl.Err(err),
			slog.String("discord_id", discordID),
			slog.String("role_id", pkg.DiscordRoleID))
		return fmt.Errorf("%s: grant role: %w", op, err)
	}
	metrics.RoleGrantsTotal.Inc()
	log.Info("role granted",
		slog.String("discord_id", discordID),
		slog.String("role_id", pkg.DiscordRoleID))

	startDate := s.now().UTC()
	sub := models.Subscription{
		OrderID:       event.OrderID,
		PaymentID:     event.PaymentID,
		DiscordID:     discordID,
		WalletAddress: event.PayAddress,
		ProductID:     &pkg.ID,
		Status:        models.SubscriptionStatusActive,
		StartDate:     startDate,
		EndDate:       startDate.AddDate(0, 0, EntitlementDays),
	}
	if _, err := s.subscriptions.UpsertSubscription(ctx, sub); err != nil {
		return fmt.Errorf("%s: upsert subscription: %w", op, err)
	}
	metrics.SubscriptionUpsertsTotal.Inc()
	log.Info("subscription recorded", slog.Time("end_date", sub.EndDate))
	return nil
}
