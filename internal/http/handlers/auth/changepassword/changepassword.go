// Package changepassword реализует HTTP-обработчик ротации пароля администратора.
//
// Требует валидной сессии: идентификатор субъекта берётся из контекста,
// установленного JWT middleware. Ранее выданные токены при смене пароля не
// отзываются, клиент обязан разлогиниться сам.
package changepassword

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/crypto-academy/internal/http/middlewarectx"
	"github.com/magabrotheeeer/crypto-academy/internal/http/response"
	"github.com/magabrotheeeer/crypto-academy/internal/lib/sl"
	authservice "github.com/magabrotheeeer/crypto-academy/internal/services/auth"
)

// Request — структура входных данных для смены пароля.
type Request struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// Service описывает интерфейс бизнес-логики ротации пароля.
type Service interface {
	ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error
}

// Handler обрабатывает HTTP-запросы для смены пароля.
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

// ServeHTTP godoc
// @Summary Смена пароля
// @Description Проверяет текущий пароль субъекта сессии и перезаписывает его новым.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Текущий и новый пароль"
// @Success 200 {object} response.Response "Пароль изменён"
// @Failure 400 {object} response.ErrorResponse "Не заполнены поля"
// @Failure 403 {object} response.ErrorResponse "Текущий пароль неверен"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /user/change-password [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.changepassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok {
		log.Error("no user id in request context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid session"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("current and new password are required"))
		return
	}

	err := h.service.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	switch {
	case errors.Is(err, authservice.ErrUserNotFound):
		log.Warn("subject no longer exists", slog.Int("user_id", userID))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	case errors.Is(err, authservice.ErrWrongPassword):
		log.Warn("current password verification failed", slog.Int("user_id", userID))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("current password is incorrect"))
		return
	case err != nil:
		log.Error("failed to change password", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("password changed", slog.Int("user_id", userID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "password changed successfully",
	}))
}
