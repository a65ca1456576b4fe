// Package redis persists the task snapshot in a single Redis key and
// propagates change notifications between instances over a pub/sub
// channel.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/daygrid/internal/domain"
	"github.com/gosuda/daygrid/internal/persist"
)

// Adapter stores the serialized snapshot under one key and publishes
// an envelope on <key>:changed after every save. Envelopes carry the
// origin instance ID so a subscriber can drop its own writes.
type Adapter struct {
	client *redis.Client
	key    string
	origin uuid.UUID
}

var _ persist.Adapter = (*Adapter)(nil)

// envelope is the pub/sub message format. Snapshot is the full new
// value, so subscribers do not need to re-read the key.
type envelope struct {
	Origin   uuid.UUID       `json:"origin"`
	Snapshot json.RawMessage `json:"snapshot"`
}

// New connects to Redis and binds the adapter to the given key.
func New(ctx context.Context, addr, password string, db int, key string) (*Adapter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &Adapter{client: client, key: key, origin: uuid.New()}, nil
}

func (a *Adapter) Close() error {
	if err := a.client.Close(); err != nil {
		return fmt.Errorf("redis.Adapter.Close: %w", err)
	}
	return nil
}

func (a *Adapter) channel() string {
	return a.key + ":changed"
}

// Save replaces the stored snapshot and notifies other instances.
func (a *Adapter) Save(ctx context.Context, snap domain.Snapshot) error {
	raw, err := persist.Encode(snap)
	if err != nil {
		return fmt.Errorf("redis.Adapter.Save: %w", err)
	}

	if err := a.client.Set(ctx, a.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis.Adapter.Save: set: %w", err)
	}

	msg, err := json.Marshal(envelope{Origin: a.origin, Snapshot: raw})
	if err != nil {
		return fmt.Errorf("redis.Adapter.Save: envelope: %w", err)
	}
	if err := a.client.Publish(ctx, a.channel(), msg).Err(); err != nil {
		return fmt.Errorf("redis.Adapter.Save: publish: %w", err)
	}

	return nil
}

// Load reads the stored snapshot. A missing key or an unparsable value
// loads as an empty snapshot.
func (a *Adapter) Load(ctx context.Context) (domain.Snapshot, error) {
	raw, err := a.client.Get(ctx, a.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis.Adapter.Load: get: %w", err)
	}
	return persist.Decode(raw), nil
}

// SubscribeExternal delivers snapshots written by other instances.
// The adapter's own saves are filtered out by origin ID. An
// unparsable message is delivered as an empty snapshot, matching the
// corrupt-data policy of Load.
func (a *Adapter) SubscribeExternal(ctx context.Context, fn func(domain.Snapshot)) (func(), error) {
	sub := a.client.Subscribe(ctx, a.channel())

	// Wait for subscription confirmation.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("redis.Adapter.SubscribeExternal: receive confirmation: %w", err)
	}

	msgs := sub.Channel()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var env envelope
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					log.Warn().Err(err).Str("channel", a.channel()).Msg("unparsable change notification")
					fn(domain.Snapshot{})
					continue
				}
				if env.Origin == a.origin {
					continue
				}
				fn(persist.Decode(env.Snapshot))
			}
		}
	}()

	cleanup := func() {
		_ = sub.Close()
	}

	return cleanup, nil
}
