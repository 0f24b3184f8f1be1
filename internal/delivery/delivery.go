// Package delivery defines the contract every transport entrypoint implements.
package delivery

import "context"

// Delivery is a servable transport (HTTP today). Serve blocks until the
// transport stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
