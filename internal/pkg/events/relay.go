package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// PostgresRelay connects the buses of several processes sharing one database.
// Local events are sent with pg_notify; notifications from other origins are
// republished on the local bus.
type PostgresRelay struct {
	pool    *pgxpool.Pool
	bus     *Bus
	channel string
	logger  zerolog.Logger
}

func NewPostgresRelay(pool *pgxpool.Pool, bus *Bus, channel string, logger zerolog.Logger) *PostgresRelay {
	return &PostgresRelay{pool: pool, bus: bus, channel: channel, logger: logger}
}

type notification struct {
	Key     string `json:"key"`
	Deleted bool   `json:"deleted,omitempty"`
	Origin  string `json:"origin"`
}

func encodeNotification(ev Event) (string, error) {
	data, err := json.Marshal(notification{Key: ev.Key, Deleted: ev.Deleted, Origin: ev.Origin})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeNotification returns ok=false for payloads that came from this
// process or that cannot be parsed.
func decodeNotification(payload, ownOrigin string) (Event, bool) {
	var n notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil || n.Key == "" {
		return Event{}, false
	}
	if n.Origin == ownOrigin {
		return Event{}, false
	}
	return Event{Key: n.Key, Deleted: n.Deleted, Origin: n.Origin}, true
}

// Forward sends one event to every other process listening on the channel.
func (r *PostgresRelay) Forward(ctx context.Context, ev Event) error {
	payload, err := encodeNotification(ev)
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}
	_, err = r.pool.Exec(ctx, "SELECT pg_notify($1, $2)", r.channel, payload)
	return err
}

// Run listens and forwards until ctx is cancelled.
func (r *PostgresRelay) Run(ctx context.Context) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire listen connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{r.channel}.Sanitize()); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", r.channel, err)
	}
	r.logger.Info().Str("channel", r.channel).Msg("Change relay listening")

	sub := r.bus.Subscribe()
	defer sub.Unsubscribe()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev, ok := <-sub.C:
				if !ok {
					return nil
				}
				if ev.Origin != r.bus.Origin() {
					continue
				}
				if err := r.Forward(gctx, ev); err != nil {
					if gctx.Err() != nil {
						return nil
					}
					r.logger.Error().Err(err).Str("key", ev.Key).Msg("Failed to forward change notification")
				}
			}
		}
	})

	g.Go(func() error {
		for {
			n, err := conn.Conn().WaitForNotification(gctx)
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("waiting for notification: %w", err)
			}
			ev, ok := decodeNotification(n.Payload, r.bus.Origin())
			if !ok {
				continue
			}
			r.logger.Debug().Str("key", ev.Key).Str("origin", ev.Origin).Msg("Remote change received")
			r.bus.Publish(ev)
		}
	})

	return g.Wait()
}
