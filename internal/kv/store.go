// Package kv defines the string-keyed persistence used for local catalog state
// and its memory, Redis and Postgres backends.
package kv

import "context"

// Store is a persistent string-keyed store. A missing key is not an error:
// Get reports it with ok == false.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
