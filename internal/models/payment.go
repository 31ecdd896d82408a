package models

import (
	"fmt"
	"strings"
	"time"
)

// Method — способ оплаты, по которому выбирается стратегия расчета.
type Method string

const (
	MethodCard   Method = "card"
	MethodWallet Method = "wallet"
	MethodCash   Method = "cash"
	MethodOnline Method = "online"
)

// Methods возвращает поддерживаемые способы оплаты в порядке, в котором
// они перечисляются в сообщениях об ошибках.
func Methods() []Method {
	return []Method{MethodCard, MethodWallet, MethodCash, MethodOnline}
}

// ParseMethod приводит строку к способу оплаты без учета регистра.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Methods() {
		if m == known {
			return m, nil
		}
	}
	names := make([]string, 0, len(Methods()))
	for _, known := range Methods() {
		names = append(names, string(known))
	}
	return "", fmt.Errorf("%w %q, supported methods: %s",
		ErrUnsupportedMethod, s, strings.Join(names, ", "))
}

// Status — состояние платежа. PENDING переходит ровно один раз
// в SUCCESS или FAILED, оба конечные.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// DefaultCurrency используется, если валюта в запросе не указана.
const DefaultCurrency = "USD"

// Payment — запись истории платежей. После сохранения не изменяется.
type Payment struct {
	ID              string    `json:"payment_id" bson:"_id"`
	MemberID        string    `json:"member_id" bson:"member_id"`
	InvoiceID       string    `json:"invoice_id,omitempty" bson:"invoice_id,omitempty"`
	Amount          float64   `json:"amount" bson:"amount"`
	Currency        string    `json:"currency" bson:"currency"`
	Method          Method    `json:"method" bson:"method"`
	Status          Status    `json:"status" bson:"status"`
	ReferenceNumber string    `json:"reference_number,omitempty" bson:"reference_number,omitempty"`
	Provider        string    `json:"provider,omitempty" bson:"provider,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
}

// PaymentRequest — входные данные для проведения платежа.
// Provider нужен для online, ReferenceNumber — для wallet.
type PaymentRequest struct {
	MemberID        string
	InvoiceID       string
	Amount          float64
	Currency        string
	Method          string
	Provider        string
	ReferenceNumber string
}
