// Package attendanceread реализует HTTP-обработчик чтения числа посещений.
package attendanceread

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/gym-management/internal/http/handlers/membership/attendancerecord"
	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
)

// Service описывает чтение числа посещений.
type Service interface {
	Attendance(ctx context.Context, username string) (int, error)
}

type Handler struct {
	log *slog.Logger
	svc Service
}

func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Число посещений
// @Tags Members
// @Produce  json
// @Param username path string true "Имя участника"
// @Success 200 {object} response.Response "Число посещений"
// @Failure 400 {object} response.ErrorResponse "Пользователь не участник"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /members/{username}/attendance [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.attendance_read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")
	count, err := h.svc.Attendance(r.Context(), username)
	if err != nil {
		log.Error("failed to read attendance", slog.String("username", username), sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(attendancerecord.Attendance{Username: username, Attendance: count}))
}
