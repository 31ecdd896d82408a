// Package attendancerecord реализует HTTP-обработчик отметки посещения.
package attendancerecord

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
)

// Attendance — число посещений участника.
type Attendance struct {
	Username   string `json:"username"`
	Attendance int    `json:"attendance"`
}

// Service описывает отметку посещения.
type Service interface {
	RecordAttendance(ctx context.Context, username string) (int, error)
}

type Handler struct {
	log *slog.Logger
	svc Service
}

func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Отметка посещения
// @Description Увеличивает счетчик посещений участника на единицу.
// @Tags Members
// @Produce  json
// @Param username path string true "Имя участника"
// @Success 200 {object} response.Response "Новое число посещений"
// @Failure 400 {object} response.ErrorResponse "Пользователь не участник"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /members/{username}/attendance [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.attendance_record"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")
	count, err := h.svc.RecordAttendance(r.Context(), username)
	if err != nil {
		log.Error("failed to record attendance", slog.String("username", username), sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	log.Info("attendance recorded", slog.String("username", username), slog.Int("attendance", count))
	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(Attendance{Username: username, Attendance: count}))
}
