// Package kvstore holds named JSON documents. Every write replaces the whole
// value stored under a key; there is no locking across writers.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("kvstore: key not found")

// ErrInvalidKey is returned for keys the drivers cannot store.
var ErrInvalidKey = errors.New("kvstore: invalid key")

// Store is implemented by every driver.
type Store interface {
	// Get returns the raw JSON stored under key or ErrNotFound.
	Get(ctx context.Context, key string) (json.RawMessage, error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value json.RawMessage) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Keys lists stored keys in ascending order.
	Keys(ctx context.Context) ([]string, error)
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,128}$`)

// ValidateKey checks that key is usable by every driver, including as a file name.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func cloneRaw(value json.RawMessage) json.RawMessage {
	if value == nil {
		return nil
	}
	out := make(json.RawMessage, len(value))
	copy(out, value)
	return out
}
