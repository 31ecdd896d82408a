package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// RoutingKeyProcessed — ключ события о проведенном платеже.
const RoutingKeyProcessed = "payment.processed"

// Repository определяет методы хранилища платежей.
type Repository interface {
	// InsertPayment сохраняет платеж. Платежи только добавляются.
	InsertPayment(ctx context.Context, p *models.Payment) error
	// FindPaymentsByMember возвращает платежи участника, новые первыми.
	FindPaymentsByMember(ctx context.Context, memberID string) ([]*models.Payment, error)
	// FindPaymentByID возвращает платеж или models.ErrPaymentNotFound.
	FindPaymentByID(ctx context.Context, id string) (*models.Payment, error)
	// CountPaymentsByMember возвращает количество платежей участника.
	CountPaymentsByMember(ctx context.Context, memberID string) (int64, error)
}

// Cache описывает кеш чтения платежей по ID.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Publisher отправляет события о платежах в брокер.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Recorder учитывает проведенные платежи в метриках.
type Recorder interface {
	PaymentProcessed(method, status, currency string, amount float64)
}

// Settings — настройки приема платежей.
type Settings struct {
	DefaultCurrency string
	CacheTTL        time.Duration
}

// ProcessedEvent публикуется после сохранения каждого платежа.
type ProcessedEvent struct {
	PaymentID       string    `json:"payment_id"`
	MemberID        string    `json:"member_id"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	Method          string    `json:"method"`
	Status          string    `json:"status"`
	ReferenceNumber string    `json:"reference_number"`
	CreatedAt       time.Time `json:"created_at"`
}

// Service принимает платежи и отвечает на запросы по их истории.
// Cache, Publisher и Recorder необязательны.
type Service struct {
	repo     Repository
	cache    Cache
	events   Publisher
	recorder Recorder
	settings Settings
	log      *slog.Logger

	now   func() time.Time
	newID func() string
}

// New создает сервис платежей.
func New(repo Repository, cache Cache, events Publisher, recorder Recorder, settings Settings, log *slog.Logger) *Service {
	if settings.DefaultCurrency == "" {
		settings.DefaultCurrency = models.DefaultCurrency
	}
	return &Service{
		repo:     repo,
		cache:    cache,
		events:   events,
		recorder: recorder,
		settings: settings,
		log:      log,
		now:      time.Now,
		newID:    newPaymentID,
	}
}

// newPaymentID возвращает идентификатор вида PAY-XXXXXXXX.
func newPaymentID() string {
	return "PAY-" + strings.ToUpper(uuid.NewString())[:8]
}

func cacheKey(id string) string {
	return "payment:" + id
}

// ProcessPayment проверяет запрос, проводит платеж выбранной стратегией
// и сохраняет его независимо от результата.
func (s *Service) ProcessPayment(ctx context.Context, req *models.PaymentRequest) (*models.Payment, error) {
	const op = "payment.ProcessPayment"

	if req == nil {
		return nil, models.Validationf("payment request is required")
	}
	memberID := strings.TrimSpace(req.MemberID)
	if memberID == "" {
		return nil, models.Validationf("member id is required")
	}
	if !(req.Amount > 0) {
		return nil, models.Validationf("amount must be greater than zero")
	}
	if strings.TrimSpace(req.Method) == "" {
		return nil, models.Validationf("payment method is required")
	}
	strategy, err := SelectStrategy(req.Method)
	if err != nil {
		return nil, err
	}
	method, _ := models.ParseMethod(req.Method)

	currency := strings.TrimSpace(req.Currency)
	if currency == "" {
		currency = s.settings.DefaultCurrency
	}

	p := &models.Payment{
		ID:              s.newID(),
		MemberID:        memberID,
		InvoiceID:       req.InvoiceID,
		Amount:          req.Amount,
		Currency:        strings.ToUpper(currency),
		Method:          method,
		Status:          models.StatusPending,
		ReferenceNumber: strings.TrimSpace(req.ReferenceNumber),
		Provider:        strings.TrimSpace(req.Provider),
		CreatedAt:       s.now().UTC(),
	}

	p, err = Execute(strategy, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.InsertPayment(ctx, p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("payment_id", p.ID),
		slog.String("member_id", p.MemberID),
	)
	log.Info("payment processed",
		slog.String("method", string(p.Method)),
		slog.String("status", string(p.Status)),
	)

	if s.recorder != nil {
		s.recorder.PaymentProcessed(string(p.Method), string(p.Status), p.Currency, p.Amount)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey(p.ID), p, s.settings.CacheTTL); err != nil {
			log.Warn("failed to cache payment", sl.Err(err))
		}
	}
	if s.events != nil {
		if err := s.events.Publish(ctx, RoutingKeyProcessed, newProcessedEvent(p)); err != nil {
			log.Error("failed to publish payment event", sl.Err(err))
		}
	}

	return p, nil
}

func newProcessedEvent(p *models.Payment) ProcessedEvent {
	return ProcessedEvent{
		PaymentID:       p.ID,
		MemberID:        p.MemberID,
		Amount:          p.Amount,
		Currency:        p.Currency,
		Method:          string(p.Method),
		Status:          string(p.Status),
		ReferenceNumber: p.ReferenceNumber,
		CreatedAt:       p.CreatedAt,
	}
}

// GetPaymentHistory возвращает платежи участника, новые первыми.
func (s *Service) GetPaymentHistory(ctx context.Context, memberID string) ([]*models.Payment, error) {
	const op = "payment.GetPaymentHistory"
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return nil, models.Validationf("member id is required")
	}
	payments, err := s.repo.FindPaymentsByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}

// GetPaymentByID возвращает платеж по ID, сначала проверяя кеш.
func (s *Service) GetPaymentByID(ctx context.Context, id string) (*models.Payment, error) {
	const op = "payment.GetPaymentByID"
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, models.Validationf("payment id is required")
	}

	if s.cache != nil {
		var cached models.Payment
		found, err := s.cache.Get(ctx, cacheKey(id), &cached)
		if err != nil {
			s.log.Warn("failed to read payment from cache", slog.String("op", op), sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	p, err := s.repo.FindPaymentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey(id), p, s.settings.CacheTTL); err != nil {
			s.log.Warn("failed to cache payment", slog.String("op", op), sl.Err(err))
		}
	}
	return p, nil
}

// GetPaymentCount возвращает количество платежей участника, включая неуспешные.
func (s *Service) GetPaymentCount(ctx context.Context, memberID string) (int64, error) {
	const op = "payment.GetPaymentCount"
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return 0, models.Validationf("member id is required")
	}
	count, err := s.repo.CountPaymentsByMember(ctx, memberID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// MemberRenamed сбрасывает кеш платежей участника после смены имени:
// хранилище уже перенесло платежи на newID, а в кеше остался старый member_id.
func (s *Service) MemberRenamed(ctx context.Context, oldID, newID string) error {
	const op = "payment.MemberRenamed"
	if s.cache == nil {
		return nil
	}

	payments, err := s.repo.FindPaymentsByMember(ctx, newID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, p := range payments {
		if err := s.cache.Invalidate(ctx, cacheKey(p.ID)); err != nil {
			s.log.Warn("failed to invalidate cached payment",
				slog.String("op", op),
				slog.String("payment_id", p.ID),
				sl.Err(err),
			)
		}
	}
	s.log.Info("payment cache reset after rename",
		slog.String("op", op),
		slog.String("old_member_id", oldID),
		slog.String("member_id", newID),
		slog.Int("payments", len(payments)),
	)
	return nil
}
