// Package delivery defines the contract every transport front end fulfils.
package delivery

import "context"

// Delivery is a serveable transport (HTTP today). Serve blocks until the
// server stops; shutdown is driven by the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
