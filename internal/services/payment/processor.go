package payment

import (
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// Execute выполняет стратегию над платежом.
func Execute(strategy Strategy, p *models.Payment) (*models.Payment, error) {
	if strategy == nil {
		return nil, models.ErrStrategyNotSet
	}
	return strategy.Process(p), nil
}
