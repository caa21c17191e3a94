package impl

import (
	"io"
	"log/slog"
	"time"

	mockSvc "larder/internal/mocks/service"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testNow is a Monday (weekday index 0) at 09:00, handy for schedule tests.
var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newFixedClock() *mockSvc.FixedClock {
	return &mockSvc.FixedClock{Instant: testNow}
}
