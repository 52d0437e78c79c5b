// Package store is the widget's local storage: a small key-value port with
// in-memory and SQLite implementations, and the chat history and theme
// preference kept on top of it.
package store

import "errors"

// ErrNotFound is returned by Get for a key that was never set.
var ErrNotFound = errors.New("key not found")

// KV is a string key-value store. Writes are last-write-wins.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}
