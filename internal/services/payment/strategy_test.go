package payment

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

var shortRefRe = regexp.MustCompile(`^[0-9A-F]{8}$`)

func TestShortRef(t *testing.T) {
	ref := ShortRef(time.Unix(0, 0x1A2B3C4D))
	assert.Equal(t, "1A2B3C4D", ref)

	ref = ShortRef(time.Unix(0, 0xFF_0000000A))
	assert.Equal(t, "0000000A", ref)

	assert.Regexp(t, shortRefRe, ShortRef(time.Now()))
}

func TestStrategies(t *testing.T) {
	tests := []struct {
		name         string
		strategy     Strategy
		in           models.Payment
		wantStatus   models.Status
		wantRefExact string
		wantPrefix   string
		wantProvider string
	}{
		{
			name:         "card always succeeds",
			strategy:     Card{},
			wantStatus:   models.StatusSuccess,
			wantPrefix:   "CARD-",
			wantProvider: "Card",
		},
		{
			name:         "cash always succeeds",
			strategy:     Cash{},
			in:           models.Payment{Provider: "ignored"},
			wantStatus:   models.StatusSuccess,
			wantPrefix:   "CASH-",
			wantProvider: "Cash",
		},
		{
			name:         "wallet with reference succeeds",
			strategy:     Wallet{},
			in:           models.Payment{ReferenceNumber: "AUTH-77"},
			wantStatus:   models.StatusSuccess,
			wantPrefix:   "WALLET-",
			wantProvider: "Wallet",
		},
		{
			name:         "wallet without reference fails",
			strategy:     Wallet{},
			wantStatus:   models.StatusFailed,
			wantRefExact: "WALLET-FAIL",
			wantProvider: "Wallet",
		},
		{
			name:         "online with provider succeeds and keeps provider",
			strategy:     Online{},
			in:           models.Payment{Provider: "Stripe"},
			wantStatus:   models.StatusSuccess,
			wantPrefix:   "ONLINE-",
			wantProvider: "Stripe",
		},
		{
			name:         "online without provider fails",
			strategy:     Online{},
			wantStatus:   models.StatusFailed,
			wantRefExact: "ONLINE-FAIL",
			wantProvider: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Status = models.StatusPending

			got := tt.strategy.Process(&p)

			require.Same(t, &p, got)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantProvider, got.Provider)
			if tt.wantRefExact != "" {
				assert.Equal(t, tt.wantRefExact, got.ReferenceNumber)
				return
			}
			require.True(t, len(got.ReferenceNumber) > len(tt.wantPrefix))
			assert.Equal(t, tt.wantPrefix, got.ReferenceNumber[:len(tt.wantPrefix)])
			assert.Regexp(t, shortRefRe, got.ReferenceNumber[len(tt.wantPrefix):])
		})
	}
}

func TestSelectStrategy(t *testing.T) {
	tests := []struct {
		method string
		want   Strategy
	}{
		{method: "card", want: Card{}},
		{method: "CASH", want: Cash{}},
		{method: "Wallet", want: Wallet{}},
		{method: " online ", want: Online{}},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got, err := SelectStrategy(tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := SelectStrategy("bitcoin")
	assert.ErrorIs(t, err, models.ErrUnsupportedMethod)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestExecute(t *testing.T) {
	p := &models.Payment{Status: models.StatusPending}

	_, err := Execute(nil, p)
	assert.ErrorIs(t, err, models.ErrStrategyNotSet)
	assert.Equal(t, models.StatusPending, p.Status)

	got, err := Execute(Card{}, p)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuccess, got.Status)
}
