package services

import (
	"testing"

	"stayhub-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandingPrice(t *testing.T) {
	assert.Equal(t, 1000.0, StandingPrice(1000, 0))
	assert.Equal(t, 900.0, StandingPrice(1000, 10))
	assert.Equal(t, 0.0, StandingPrice(1000, 100))
	// rounds half up
	assert.Equal(t, 995.0, StandingPrice(1005, 1)) // 994.95
}

func adj(kind, direction string, magnitude float64) models.PriceAdjustment {
	return models.PriceAdjustment{Kind: kind, Direction: direction, Magnitude: magnitude}
}

func TestEventPrice(t *testing.T) {
	cases := []struct {
		name string
		base float64
		adj  models.PriceAdjustment
		want float64
	}{
		{"percentage increase", 1000000, adj(models.AdjustmentKindPercentage, models.AdjustmentDirectionIncrease, 50), 1500000},
		{"percentage decrease", 1000, adj(models.AdjustmentKindPercentage, models.AdjustmentDirectionDecrease, 25), 750},
		{"fixed increase", 1000, adj(models.AdjustmentKindFixedAmount, models.AdjustmentDirectionIncrease, 333), 1333},
		{"fixed decrease", 1000, adj(models.AdjustmentKindFixedAmount, models.AdjustmentDirectionDecrease, 400), 600},
		{"fixed decrease floors at zero", 1000, adj(models.AdjustmentKindFixedAmount, models.AdjustmentDirectionDecrease, 5000), 0},
		{"percentage rounds half up", 999, adj(models.AdjustmentKindPercentage, models.AdjustmentDirectionDecrease, 0.5), 994}, // 994.005
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EventPrice(tc.base, tc.adj)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEventPriceUnknownKind(t *testing.T) {
	_, err := EventPrice(1000, adj("HALF_OFF", models.AdjustmentDirectionDecrease, 50))
	require.Error(t, err)

	_, err = EventPrice(1000, adj(models.AdjustmentKindPercentage, "SIDEWAYS", 50))
	require.Error(t, err)
}

// The event formula always starts from the base price, so applying it twice
// yields the same result as applying it once.
func TestEventPriceDoesNotCompound(t *testing.T) {
	a := adj(models.AdjustmentKindPercentage, models.AdjustmentDirectionIncrease, 50)
	first, err := EventPrice(1000000, a)
	require.NoError(t, err)
	second, err := EventPrice(1000000, a)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1500000.0, second)
}
