// Package delivery defines the contract every transport entrypoint
// implements.
package delivery

import "context"

// Delivery is a serving entrypoint, started by the application runner.
type Delivery interface {
	// Serve blocks until the entrypoint stops or fails.
	Serve(ctx context.Context) error
}
