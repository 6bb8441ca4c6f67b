// Package paymentwebhook реализует приём IPN-уведомлений NOWPayments.
//
// Контракт с провайдером: как только тело запроса разобрано, обработчик
// подтверждает приём статусом 200 независимо от внутреннего результата —
// иначе провайдер будет бесконечно ретраить перманентно неуспешное событие.
// Внутренние сбои остаются заботой логов и метрик.
package paymentwebhook

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/crypto-academy/internal/http/response"
	"github.com/magabrotheeeer/crypto-academy/internal/lib/sl"
	"github.com/magabrotheeeer/crypto-academy/internal/models"
)

// Service описывает интерфейс обработки платёжного события.
type Service interface {
	ProcessPaymentEvent(ctx context.Context, event *models.PaymentEvent) error
}

// Handler обрабатывает HTTP-запросы вебхука платёжного провайдера.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Вебхук платёжного провайдера
// @Description Принимает уведомление о статусе платежа. Всегда отвечает 200 после разбора тела.
// @Tags Payment
// @Accept  json
// @Produce  json
// @Param request body models.PaymentEvent true "IPN-уведомление"
// @Success 200 {object} response.Response "Уведомление принято"
// @Failure 400 {object} response.ErrorResponse "Нечитаемое тело запроса"
// @Router /nowpayments-webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var event models.PaymentEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Error("failed to decode webhook payload", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid payload"))
		return
	}
	log.Info("webhook received",
		slog.String("order_id", event.OrderID),
		slog.String("payment_status", event.PaymentStatus))

	if err := h.service.ProcessPaymentEvent(r.Context(), &event); err != nil {
		// Провайдеру об этом не сообщаем: ретраи с его стороны не лечат
		// ни падение Discord API, ни пробел в конфигурации пакета.
		log.Error("failed to process payment event", sl.Err(err))
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "webhook processed",
	}))
}
