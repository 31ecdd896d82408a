// Package membershiprenew реализует HTTP-обработчик продления абонемента.
package membershiprenew

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-management/internal/http/response"
	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/services/member"
)

// Request — новый тип и срок абонемента. Даты в RFC 3339.
type Request struct {
	MembershipType  string    `json:"membership_type" validate:"required,max=32"`
	MembershipStart time.Time `json:"membership_start"`
	MembershipEnd   time.Time `json:"membership_end"`
}

// Service описывает продление абонемента.
type Service interface {
	RenewMembership(ctx context.Context, username string, r member.Renewal) (*models.User, error)
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
// @Summary Продление абонемента
// @Description Устанавливает тип, дату начала и дату окончания абонемента участника.
// @Tags Members
// @Accept  json
// @Produce  json
// @Param username path string true "Имя участника"
// @Param request body Request true "Тип и срок абонемента"
// @Success 200 {object} response.Response "Обновленный пользователь"
// @Failure 400 {object} response.ErrorResponse "Некорректный срок или пользователь не участник"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /members/{username}/membership [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.renew"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		response.JSON(w, r, http.StatusUnprocessableEntity, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, err := h.svc.RenewMembership(r.Context(), username, member.Renewal{
		Type:  req.MembershipType,
		Start: req.MembershipStart,
		End:   req.MembershipEnd,
	})
	if err != nil {
		log.Error("failed to renew membership", slog.String("username", username), sl.Err(err))
		response.Fail(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, response.StatusOKWithData(user))
}
