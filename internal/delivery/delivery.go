// Package delivery defines the contract every inbound transport implements.
package delivery

import "context"

// Delivery is a long-running transport (an HTTP server, a periodic worker)
// started by the application entrypoint. Serve blocks until the delivery
// stops or the context is cancelled.
type Delivery interface {
	Serve(ctx context.Context) error
}
