// Package paymentlist реализует HTTP-обработчик истории платежей участника.
package paymentlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// Service описывает чтение истории платежей.
type Service interface {
	PaymentHistory(ctx context.Context, username string) ([]*models.Payment, error)
}

type Handler struct {
	log *slog.Logger
	svc Service
}

func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary История платежей
// @Description Возвращает все платежи участника, новые первыми.
// @Tags Payments
// @Produce  json
// @Param username path string true "Имя участника"
// @Success 200 {object} response.Response "Список платежей"
// @Failure 400 {object} response.ErrorResponse "Пользователь не является участником"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /members/{username}/payments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")
	history, err := h.svc.PaymentHistory(r.Context(), username)
	if err != nil {
		log.Error("failed to list payments", slog.String("username", username), sl.Err(err))
		response.Fail(w, r, err)
		return
	}
	if history == nil {
		history = []*models.Payment{}
	}

	log.Info("payments listed", slog.Int("count", len(history)))
	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(history))
}
