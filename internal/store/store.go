// Package store defines the raw key/value contract the todo list repository
// persists through. Adapters live in sub-packages.
package store

import "context"

// Storage is a key/value backend. Get reports absence with ok == false and
// a nil error; only backend failures return an error.
type Storage interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
