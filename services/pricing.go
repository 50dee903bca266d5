package services

import (
	"fmt"
	"math"

	"stayhub-backend/models"
)

// Pure price formulas. The currency has no subunits, so every result rounds
// to the nearest whole unit (half up) and is floored at zero.
//
// Every event-price computation reads the room's base price, never its current
// display price. That is the invariant that makes re-applying adjustments safe:
// there is no way to compound.

func roundPrice(v float64) float64 {
	if v < 0 {
		return 0
	}
	return math.Round(v)
}

// StandingPrice derives the everyday display price from the base price and the
// standing discount percentage.
func StandingPrice(basePrice, standingDiscountPercent float64) float64 {
	return roundPrice(basePrice * (100 - standingDiscountPercent) / 100)
}

// EventPrice derives the display price under one adjustment, always from the
// base price.
func EventPrice(basePrice float64, adj models.PriceAdjustment) (float64, error) {
	switch adj.Kind {
	case models.AdjustmentKindPercentage:
		switch adj.Direction {
		case models.AdjustmentDirectionIncrease:
			return roundPrice(basePrice * (100 + adj.Magnitude) / 100), nil
		case models.AdjustmentDirectionDecrease:
			return roundPrice(basePrice * (100 - adj.Magnitude) / 100), nil
		}
	case models.AdjustmentKindFixedAmount:
		switch adj.Direction {
		case models.AdjustmentDirectionIncrease:
			return roundPrice(basePrice + adj.Magnitude), nil
		case models.AdjustmentDirectionDecrease:
			return roundPrice(basePrice - adj.Magnitude), nil
		}
	}
	return 0, fmt.Errorf("adjustment %d: unknown kind/direction %s/%s", adj.ID, adj.Kind, adj.Direction)
}
