package service

import "time"

// Clock abstracts the current time so schedule-dependent use cases can be
// tested against a fixed instant.
type Clock interface {
	// Now returns the current local time.
	Now() time.Time
}
