// Package packages реализует административные CRUD-обработчики пакетов обучения.
package packages

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/crypto-academy/internal/http/response"
	"github.com/magabrotheeeer/crypto-academy/internal/lib/sl"
	"github.com/magabrotheeeer/crypto-academy/internal/models"
)

// Service описывает интерфейс бизнес-логики пакетов.
type Service interface {
	ListPackages(ctx context.Context) ([]models.Package, error)
	CreatePackage(ctx context.Context, p models.Package) (int, error)
	UpdatePackage(ctx context.Context, id int, p models.Package) (int, error)
	DeletePackage(ctx context.Context, id int) (int, error)
}

// Handler обрабатывает административные запросы к пакетам.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// List godoc
// @Summary Список пакетов
// @Tags Packages
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /packages [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.packages.list")

	items, err := h.service.ListPackages(r.Context())
	if err != nil {
		log.Error("failed to list packages", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list packages"))
		return
	}
	render.JSON(w, r, response.OKWithData(items))
}

// Create godoc
// @Summary Создать пакет
// @Tags Packages
// @Accept json
// @Produce json
// @Param request body models.DummyPackage true "Пакет"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /packages [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.packages.create")

	var req models.DummyPackage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.CreatePackage(r.Context(), models.Package{
		Name:          req.Name,
		Price:         req.Price,
		Description:   req.Description,
		Features:      req.Features,
		Popular:       req.Popular,
		DiscordRoleID: req.DiscordRoleID,
		PaymentLink:   req.PaymentLink,
	})
	if err != nil {
		log.Error("failed to create package", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create package"))
		return
	}
	log.Info("package created", slog.Int("id", id))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{"id": id}))
}

// Update godoc
// @Summary Обновить пакет
// @Tags Packages
// @Accept json
// @Produce json
// @Param id path int true "ID пакета"
// @Param request body models.DummyPackage true "Пакет"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /packages/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.packages.update")

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	var req models.DummyPackage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	n, err := h.service.UpdatePackage(r.Context(), id, models.Package{
		Name:          req.Name,
		Price:         req.Price,
		Description:   req.Description,
		Features:      req.Features,
		Popular:       req.Popular,
		DiscordRoleID: req.DiscordRoleID,
		PaymentLink:   req.PaymentLink,
	})
	if err != nil {
		log.Error("failed to update package", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update package"))
		return
	}
	if n == 0 {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("package not found"))
		return
	}
	render.JSON(w, r, response.OK())
}

// Delete godoc
// @Summary Удалить пакет
// @Tags Packages
// @Produce json
// @Param id path int true "ID пакета"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /packages/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.packages.delete")

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	n, err := h.service.DeletePackage(r.Context(), id)
	if err != nil {
		log.Error("failed to delete package", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete package"))
		return
	}
	if n == 0 {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("package not found"))
		return
	}
	render.JSON(w, r, response.OK())
}
