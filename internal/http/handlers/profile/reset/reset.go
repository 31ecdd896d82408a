// Package reset реализует HTTP-обработчик сброса пароля к значению по умолчанию.
package reset

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
)

// Service описывает сброс пароля.
type Service interface {
	ResetPassword(ctx context.Context, username string) error
}

type Handler struct {
	log *slog.Logger
	svc Service
}

func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Сброс пароля
// @Description Устанавливает пароль по умолчанию из конфигурации.
// @Tags Profile
// @Produce  json
// @Param username path string true "Имя пользователя"
// @Success 200 {object} response.Response "Пароль сброшен"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/{username}/password/reset [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.reset"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")
	if err := h.svc.ResetPassword(r.Context(), username); err != nil {
		log.Error("failed to reset password", slog.String("username", username), sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(map[string]string{
		"username": username,
		"message":  "password reset to default",
	}))
}
