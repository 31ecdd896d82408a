// Package update реализует HTTP-обработчик частичного обновления профиля.
//
// Тело запроса — набор необязательных полей. Поля, не относящиеся к роли
// пользователя, игнорируются сервисом.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// Service описывает обновление профиля.
type Service interface {
	UpdateProfile(ctx context.Context, username string, patch models.ProfilePatch) (*models.User, error)
}

type Handler struct {
	log *slog.Logger
	svc Service
}

func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Обновление профиля
// @Description Применяет только переданные поля, допустимые для роли пользователя.
// @Tags Profile
// @Accept  json
// @Produce  json
// @Param username path string true "Имя пользователя"
// @Param request body models.ProfilePatch true "Изменяемые поля"
// @Success 200 {object} response.Response "Обновленный профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 409 {object} response.ErrorResponse "Имя пользователя занято"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/{username} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")

	var patch models.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, response.Error("invalid request body"))
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), username, patch)
	if err != nil {
		log.Error("failed to update profile", slog.String("username", username), sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	log.Info("profile updated", slog.String("username", user.Username))
	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(user))
}
