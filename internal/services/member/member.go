// Package member содержит операции участника клуба: платежи, абонемент
// и учет посещений.
package member

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

// Users — доступ к записям пользователей.
type Users interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, username string, user *models.User) (bool, error)
}

// Payments — операции сервиса платежей, нужные участнику.
type Payments interface {
	ProcessPayment(ctx context.Context, req *models.PaymentRequest) (*models.Payment, error)
	GetPaymentHistory(ctx context.Context, memberID string) ([]*models.Payment, error)
	GetPaymentCount(ctx context.Context, memberID string) (int64, error)
}

// Summary — сводка по платежам участника.
type Summary struct {
	Username  string  `json:"username"`
	Count     int64   `json:"count"`
	TotalPaid float64 `json:"total_paid"`
}

// Renewal — новый тип и срок абонемента.
type Renewal struct {
	Type  string
	Start time.Time
	End   time.Time
}

// Service обслуживает участника: платежи, абонемент, посещения.
type Service struct {
	users    Users
	payments Payments
	log      *slog.Logger

	now func() time.Time
}

func New(users Users, payments Payments, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		payments: payments,
		log:      log,
		now:      time.Now,
	}
}

// MakePayment проводит платеж участника. Идентификатор плательщика
// всегда берется из имени пользователя.
func (s *Service) MakePayment(ctx context.Context, username string, req models.PaymentRequest) (*models.Payment, error) {
	const op = "member.MakePayment"

	user, err := s.member(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.MemberID = user.Username
	return s.payments.ProcessPayment(ctx, &req)
}

// PaymentHistory возвращает историю платежей участника, новые первыми.
func (s *Service) PaymentHistory(ctx context.Context, username string) ([]*models.Payment, error) {
	const op = "member.PaymentHistory"

	user, err := s.member(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.payments.GetPaymentHistory(ctx, user.Username)
}

// TotalPaid возвращает сумму успешных платежей участника.
func (s *Service) TotalPaid(ctx context.Context, username string) (float64, error) {
	history, err := s.PaymentHistory(ctx, username)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, p := range history {
		if p.Status == models.StatusSuccess {
			total += p.Amount
		}
	}
	return total, nil
}

// PaymentCount возвращает количество платежей участника, включая неуспешные.
func (s *Service) PaymentCount(ctx context.Context, username string) (int64, error) {
	const op = "member.PaymentCount"

	user, err := s.member(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return s.payments.GetPaymentCount(ctx, user.Username)
}

// Summary собирает количество платежей и сумму успешных.
func (s *Service) Summary(ctx context.Context, username string) (*Summary, error) {
	count, err := s.PaymentCount(ctx, username)
	if err != nil {
		return nil, err
	}
	total, err := s.TotalPaid(ctx, username)
	if err != nil {
		return nil, err
	}
	return &Summary{Username: strings.TrimSpace(username), Count: count, TotalPaid: total}, nil
}

func (s *Service) member(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.Validationf("username is required")
	}
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleMember {
		s.log.Debug("member operation for non-member", slog.String("username", username), slog.String("role", string(user.Role)))
		return nil, models.ErrNotMember
	}
	if user.Member == nil {
		user.Member = &models.MemberProfile{IsActive: true}
	}
	return user, nil
}

// RenewMembership устанавливает тип и срок абонемента участника.
func (s *Service) RenewMembership(ctx context.Context, username string, r Renewal) (*models.User, error) {
	const op = "member.RenewMembership"

	kind := strings.TrimSpace(r.Type)
	if kind == "" {
		return nil, models.Validationf("membership type is required")
	}
	if r.Start.IsZero() || r.End.IsZero() {
		return nil, models.Validationf("membership start and end are required")
	}
	if !r.End.After(r.Start) {
		return nil, models.Validationf("membership end must be after start")
	}

	user, err := s.member(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	start, end := r.Start.UTC(), r.End.UTC()
	m := user.Member
	m.MembershipType = kind
	m.MembershipStart = &start
	m.MembershipEnd = &end

	if err := s.save(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("membership renewed",
		slog.String("op", op),
		slog.String("username", user.Username),
		slog.String("type", kind),
		slog.Time("end", end),
	)
	return user, nil
}

// CancelMembership помечает абонемент участника отмененным.
func (s *Service) CancelMembership(ctx context.Context, username, reason string) (*models.User, error) {
	const op = "member.CancelMembership"

	user, err := s.member(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.Member.MembershipType = models.MembershipCancelled

	if err := s.save(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("membership cancelled",
		slog.String("op", op),
		slog.String("username", user.Username),
		slog.String("reason", strings.TrimSpace(reason)),
	)
	return user, nil
}

// RecordAttendance отмечает посещение и возвращает новое число посещений.
func (s *Service) RecordAttendance(ctx context.Context, username string) (int, error) {
	const op = "member.RecordAttendance"

	user, err := s.member(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	user.Member.Attendance++

	if err := s.save(ctx, user); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return user.Member.Attendance, nil
}

// Attendance возвращает число посещений участника.
func (s *Service) Attendance(ctx context.Context, username string) (int, error) {
	const op = "member.Attendance"

	user, err := s.member(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return user.Member.Attendance, nil
}

func (s *Service) save(ctx context.Context, user *models.User) error {
	user.UpdatedAt = s.now().UTC()
	matched, err := s.users.UpdateUser(ctx, user.Username, user)
	if err != nil {
		return err
	}
	if !matched {
		return models.ErrUserNotFound
	}
	return nil
}
