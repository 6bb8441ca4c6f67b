// Package metrics объявляет счётчики prometheus для обработки платёжных
// уведомлений. Реестр подписок не хранит незавершённые платежи, поэтому
// счётчик по статусам — единственный след от pending/failed событий.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WebhookEventsTotal количество принятых уведомлений по статусу платежа.
	WebhookEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_webhook_events_total",
		Help: "Inbound payment notifications by provider status.",
	}, []string{"status"})

	// RoleGrantsTotal количество успешных выдач роли в Discord.
	RoleGrantsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discord_role_grants_total",
		Help: "Successful Discord role grant calls.",
	})

	// RoleGrantFailuresTotal количество неудачных вызовов выдачи роли.
	RoleGrantFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discord_role_grant_failures_total",
		Help: "Failed Discord role grant calls.",
	})

	// SubscriptionUpsertsTotal количество записей в реестр подписок.
	SubscriptionUpsertsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "subscription_upserts_total",
		Help: "Idempotent subscription ledger upserts.",
	})
)
