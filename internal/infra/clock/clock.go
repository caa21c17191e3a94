// Package clock provides the wall-clock implementation of the Clock service.
package clock

import (
	"time"

	"larder/internal/domain/service"
)

type systemClock struct{}

// NewSystemClock returns a Clock backed by the system time.
func NewSystemClock() service.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
