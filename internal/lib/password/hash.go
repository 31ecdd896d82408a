// Package password реализует хеширование и проверку паролей через bcrypt.
//
// Пароли никогда не хранятся в открытом виде: в хранилище попадает только хеш,
// сравнение идет через bcrypt.CompareHashAndPassword.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch возвращается, если пароль не соответствует хешу.
var ErrMismatch = errors.New("password does not match")

// Hasher хеширует и проверяет пароли с заданной стоимостью bcrypt.
type Hasher struct {
	cost int
}

// NewHasher создает Hasher. Некорректная стоимость заменяется на bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash возвращает bcrypt-хеш пароля.
func (h *Hasher) Hash(password string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Compare возвращает nil, если пароль соответствует хешу, иначе ErrMismatch.
func (h *Hasher) Compare(hash, password string) error {
	const op = "password.Compare"
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// GetHash хеширует пароль со стоимостью по умолчанию.
func GetHash(password string) (string, error) {
	return NewHasher(bcrypt.DefaultCost).Hash(password)
}

// CompareHash сравнивает bcrypt-хеш с введённым паролем.
func CompareHash(originalHash, externalPassword string) error {
	return NewHasher(bcrypt.DefaultCost).Compare(originalHash, externalPassword)
}
