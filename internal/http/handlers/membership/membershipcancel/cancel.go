// Package membershipcancel реализует HTTP-обработчик отмены абонемента.
package membershipcancel

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// Request — причина отмены, тело запроса необязательно.
type Request struct {
	Reason string `json:"reason,omitempty" validate:"max=255"`
}

// Service описывает отмену абонемента.
type Service interface {
	CancelMembership(ctx context.Context, username, reason string) (*models.User, error)
}

type Handler struct {
	log      *slog.Logger
	svc      Service
	validate *validator.Validate
}

func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{
		log:      log,
		svc:      svc,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отмена абонемента
// @Description Помечает абонемент участника как CANCELLED.
// @Tags Members
// @Accept  json
// @Produce  json
// @Param username path string true "Имя участника"
// @Param request body Request false "Причина отмены"
// @Success 200 {object} response.Response "Обновленный пользователь"
// @Failure 400 {object} response.ErrorResponse "Пользователь не участник"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /members/{username}/membership/cancel [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.cancel"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		response.JSON(w, r, http.StatusUnprocessableEntity, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, err := h.svc.CancelMembership(r.Context(), username, req.Reason)
	if err != nil {
		log.Error("failed to cancel membership", slog.String("username", username), sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(user))
}
