// Package bundle реализует публичную выдачу агрегата контента лендинга.
package bundle

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/crypto-academy/internal/lib/sl"
	"github.com/magabrotheeeer/crypto-academy/internal/models"
)

// Service описывает интерфейс сборки публичного контента.
type Service interface {
	GetBundle(ctx context.Context) (*models.ContentBundle, error)
}

// Handler обрабатывает публичный запрос контента лендинга.
type Handler struct {
	log     *slog.Logger
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
// @Summary Публичный контент лендинга
// @Description Возвращает hero-блок, преимущества, пакеты, отзывы и FAQ одним ответом.
// @Tags Content
// @Produce json
// @Success 200 {object} models.ContentBundle
// @Failure 500 {object} map[string]string
// @Router /content [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.bundle"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	bundle, err := h.service.GetBundle(r.Context())
	if err != nil {
		log.Error("failed to load content bundle", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"message": "failed to load content"})
		return
	}
	// Лендинг потребляет бандл напрямую, без конверта {status, data}.
	render.JSON(w, r, bundle)
}
