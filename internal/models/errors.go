package models

import (
	"errors"
	"fmt"
)

// Базовые ошибки доменного уровня. Сервисы и хранилища оборачивают их через %w,
// вызывающая сторона проверяет через errors.Is.
var (
	// ErrValidation — некорректные или отсутствующие входные данные.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound — запрошенная запись отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials — неверная пара логин/пароль или несовпадение роли.
	// Намеренно не отличается от отсутствия пользователя.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists — пользователь с таким username уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
	// ErrStrategyNotSet — стратегия оплаты не передана (ошибка программиста).
	ErrStrategyNotSet = errors.New("payment strategy not set")
)

var (
	// ErrInvalidRole — роль не входит в закрытый набор ролей.
	ErrInvalidRole = fmt.Errorf("%w: invalid user role", ErrValidation)
	// ErrUnsupportedMethod — способ оплаты не поддерживается.
	ErrUnsupportedMethod = fmt.Errorf("%w: unsupported payment method", ErrValidation)
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	// ErrPaymentNotFound — платеж не найден.
	ErrPaymentNotFound = fmt.Errorf("payment %w", ErrNotFound)
	// ErrNotMember — операция доступна только участникам (роль member).
	ErrNotMember = fmt.Errorf("%w: user is not a member", ErrValidation)
)

// Validationf формирует ошибку валидации с пояснением.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
