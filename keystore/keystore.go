// Package keystore provides the durable key-value storage behind the session
// service. All backends store opaque string values under string keys; the
// session service is the only component that should touch the session keys,
// so the token/profile pairing invariant is never bypassed.
package keystore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("keystore: key not found")

// Store is a durable key-value store. Implementations must provide
// read-after-write consistency: a Get following a completed Set observes the
// written value.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
