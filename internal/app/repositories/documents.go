package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/qmc/portal/internal/pkg/apperrors"
	"github.com/qmc/portal/internal/pkg/events"
	"github.com/qmc/portal/internal/pkg/kvstore"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned by Load when nothing is stored under the key
var ErrNotFound = fmt.Errorf("document: %w", apperrors.ErrResourceNotFound)

// Documents reads and writes whole JSON documents and announces every write
// on the event bus
type Documents struct {
	store  kvstore.Store
	bus    *events.Bus
	logger zerolog.Logger
}

// NewDocuments creates a Documents over store
func NewDocuments(store kvstore.Store, bus *events.Bus, logger zerolog.Logger) *Documents {
	return &Documents{store: store, bus: bus, logger: logger}
}

// Load decodes the document stored under key into v
func (d *Documents) Load(ctx context.Context, key string, v interface{}) error {
	raw, err := d.store.Get(ctx, key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		d.logger.Error().Err(err).Str("key", key).Msg("Stored document could not be decoded")
		return apperrors.NewCorruptDocumentError(key, err)
	}
	return nil
}

// Save encodes v, overwrites key and publishes one change event
func (d *Documents) Save(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := d.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	d.logger.Debug().Str("key", key).Int("bytes", len(raw)).Msg("Document saved")
	d.bus.Changed(key)
	return nil
}

// Delete removes key and publishes one change event
func (d *Documents) Delete(ctx context.Context, key string) error {
	if err := d.store.Remove(ctx, key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}

	d.logger.Debug().Str("key", key).Msg("Document removed")
	d.bus.Removed(key)
	return nil
}

// Keys lists stored document keys
func (d *Documents) Keys(ctx context.Context) ([]string, error) {
	return d.store.Keys(ctx)
}

// loadOrSeed returns the stored document, or writes and returns seed() when absent
func loadOrSeed[T any](ctx context.Context, d *Documents, key string, seed func() T) (T, error) {
	var v T
	err := d.Load(ctx, key, &v)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return v, err
	}

	v = seed()
	if err := d.Save(ctx, key, v); err != nil {
		return v, err
	}
	return v, nil
}

// loadOr returns the stored document, or fallback() without writing it when absent
func loadOr[T any](ctx context.Context, d *Documents, key string, fallback func() T) (T, error) {
	var v T
	err := d.Load(ctx, key, &v)
	if errors.Is(err, ErrNotFound) {
		return fallback(), nil
	}
	return v, err
}
