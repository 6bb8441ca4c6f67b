// Package hero реализует административное обновление hero-блока лендинга.
package hero

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

// Service описывает интерфейс бизнес-логики hero-блока.
type Service interface {
	GetHero(ctx context.Context) (*models.HeroContent, error)
	UpdateHero(ctx context.Context, h models.HeroContent) error
}

// Handler обрабатывает административные запросы к hero-блоку.
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

// Get возвращает текущие тексты hero-блока.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.hero.get"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	hero, err := h.service.GetHero(r.Context())
	if err != nil {
		log.Error("failed to load hero content", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to load hero content"))
		return
	}
	render.JSON(w, r, response.OKWithData(hero))
}

// Update перезаписывает тексты hero-блока.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.hero.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.HeroContent
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.service.UpdateHero(r.Context(), req); err != nil {
		log.Error("failed to update hero content", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update hero content"))
		return
	}
	log.Info("hero content updated")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "hero content updated",
	}))
}
