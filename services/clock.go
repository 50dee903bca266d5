package services

import (
	"time"

	"stayhub-backend/utils"
)

// Clock supplies "today" for lifecycle decisions. Injected so tests can pin
// the date.
type Clock interface {
	Today() time.Time
}

type systemClock struct{}

func (systemClock) Today() time.Time {
	return utils.DateOnly(time.Now())
}

func NewSystemClock() Clock {
	return systemClock{}
}
