// Package payment содержит прием платежей: стратегии расчета по способу оплаты,
// их выполнение и сервис, который проверяет запросы, сохраняет платежи
// и отвечает на запросы по истории.
package payment

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

// Strategy проводит расчет по платежу. Меняет только поля результата
// (статус, номер ссылки и, для некоторых способов, провайдера) и возвращает
// тот же платеж. Ошибок не возвращает: неуспех выражается статусом FAILED.
type Strategy interface {
	Process(p *models.Payment) *models.Payment
}

// ShortRef возвращает короткую метку из 8 шестнадцатеричных символов
// в верхнем регистре по младшим 32 битам времени в наносекундах.
// Уникальность не гарантируется.
func ShortRef(t time.Time) string {
	return fmt.Sprintf("%08X", uint32(t.UnixNano()))
}

// Card — оплата картой, всегда успешна.
type Card struct{}

func (Card) Process(p *models.Payment) *models.Payment {
	p.Status = models.StatusSuccess
	p.ReferenceNumber = "CARD-" + ShortRef(time.Now())
	p.Provider = "Card"
	return p
}

// Cash — оплата наличными, всегда успешна.
type Cash struct{}

func (Cash) Process(p *models.Payment) *models.Payment {
	p.Status = models.StatusSuccess
	p.ReferenceNumber = "CASH-" + ShortRef(time.Now())
	p.Provider = "Cash"
	return p
}

// Wallet — оплата кошельком. Переданный номер ссылки подтверждает
// предварительную авторизацию, без него платеж не проходит.
type Wallet struct{}

func (Wallet) Process(p *models.Payment) *models.Payment {
	p.Provider = "Wallet"
	if p.ReferenceNumber == "" {
		p.Status = models.StatusFailed
		p.ReferenceNumber = "WALLET-FAIL"
		return p
	}
	p.Status = models.StatusSuccess
	p.ReferenceNumber = "WALLET-" + ShortRef(time.Now())
	return p
}

// Online — онлайн-оплата через внешнего провайдера. Провайдер обязателен
// и не перезаписывается.
type Online struct{}

func (Online) Process(p *models.Payment) *models.Payment {
	if p.Provider == "" {
		p.Status = models.StatusFailed
		p.ReferenceNumber = "ONLINE-FAIL"
		return p
	}
	p.Status = models.StatusSuccess
	p.ReferenceNumber = "ONLINE-" + ShortRef(time.Now())
	return p
}

// SelectStrategy возвращает стратегию для способа оплаты без учета регистра.
func SelectStrategy(method string) (Strategy, error) {
	m, err := models.ParseMethod(method)
	if err != nil {
		return nil, err
	}
	switch m {
	case models.MethodCard:
		return Card{}, nil
	case models.MethodCash:
		return Cash{}, nil
	case models.MethodWallet:
		return Wallet{}, nil
	default:
		return Online{}, nil
	}
}
