package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

const paymentColumns = `payment_id, member_id, invoice_id, amount, currency, method, status,
	reference_number, provider, created_at`

func scanPayment(row rowScanner) (*models.Payment, error) {
	var p models.Payment
	if err := row.Scan(&p.ID, &p.MemberID, &p.InvoiceID, &p.Amount, &p.Currency, &p.Method,
		&p.Status, &p.ReferenceNumber, &p.Provider, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

// InsertPayment добавляет платеж в историю.
func (s *Storage) InsertPayment(ctx context.Context, p *models.Payment) error {
	const op = "storage.postgresql.InsertPayment"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `INSERT INTO payments (` + paymentColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := s.DB.ExecContext(ctx, query,
		p.ID, p.MemberID, p.InvoiceID, p.Amount, p.Currency, p.Method,
		p.Status, p.ReferenceNumber, p.Provider, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FindPaymentsByMember возвращает платежи участника, новые первыми.
func (s *Storage) FindPaymentsByMember(ctx context.Context, memberID string) ([]*models.Payment, error) {
	const op = "storage.postgresql.FindPaymentsByMember"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE member_id = $1 ORDER BY created_at DESC`, memberID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	payments := make([]*models.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}

// FindPaymentByID возвращает платеж по идентификатору.
func (s *Storage) FindPaymentByID(ctx context.Context, id string) (*models.Payment, error) {
	const op = "storage.postgresql.FindPaymentByID"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1`, id)
	p, err := scanPayment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// CountPaymentsByMember возвращает количество платежей участника.
func (s *Storage) CountPaymentsByMember(ctx context.Context, memberID string) (int64, error) {
	const op = "storage.postgresql.CountPaymentsByMember"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	var count int64
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments WHERE member_id = $1`, memberID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
