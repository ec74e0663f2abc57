// Package store persists the bot's small operational state: the last GM
// tweet date, the last replied mention id. Backends are interchangeable;
// the in-memory one serves single-instance runs, Redis serves deployments
// that restart.
package store

import "context"

// Store is a flat string key-value store.
type Store interface {
	// Get returns the value for key, or domain.ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes the value for key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*Redis)(nil)
)
