// Package redishash implements attribute access over a Redis hash per
// object, for hosts whose attribute state lives outside process memory.
// Values round-trip as strings, so machines using this adapter should
// declare string-valued states.
package redishash

import (
	"context"
	"errors"
	"fmt"

	backend "github.com/redis/go-redis/v9"
)

// Keyer lets arbitrary host objects name their Redis hash.
type Keyer interface {
	Key() string
}

// Accessor implements ports.Accessor against a Redis hash. The object must
// be a string key or implement Keyer.
type Accessor struct {
	client *backend.Client
	prefix string
	ctx    context.Context
}

// Option configures the accessor.
type Option func(*Accessor)

// WithContext sets the context used for Redis commands.
func WithContext(ctx context.Context) Option {
	return func(a *Accessor) { a.ctx = ctx }
}

// New creates an accessor. Keys are stored under prefix + object key.
func New(client *backend.Client, prefix string, opts ...Option) *Accessor {
	a := &Accessor{client: client, prefix: prefix, ctx: context.Background()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Context returns the context used for Redis commands.
func (a *Accessor) Context() context.Context { return a.ctx }

func (a *Accessor) key(obj any) (string, error) {
	switch o := obj.(type) {
	case string:
		return a.prefix + o, nil
	case Keyer:
		return a.prefix + o.Key(), nil
	default:
		return "", fmt.Errorf("redishash: unsupported object type %T", obj)
	}
}

// Read returns the attribute's hash field as a string; a missing field
// reads as nil.
func (a *Accessor) Read(obj any, attribute string) (any, error) {
	key, err := a.key(obj)
	if err != nil {
		return nil, err
	}
	value, err := a.client.HGet(a.ctx, key, attribute).Result()
	if errors.Is(err, backend.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redishash: read %s/%s: %w", key, attribute, err)
	}
	return value, nil
}

// Write sets the attribute's hash field. A nil value deletes the field so a
// rollback of an initial write restores the unset reading.
func (a *Accessor) Write(obj any, attribute string, value any) error {
	key, err := a.key(obj)
	if err != nil {
		return err
	}
	if value == nil {
		if err := a.client.HDel(a.ctx, key, attribute).Err(); err != nil {
			return fmt.Errorf("redishash: delete %s/%s: %w", key, attribute, err)
		}
		return nil
	}
	if err := a.client.HSet(a.ctx, key, attribute, value).Err(); err != nil {
		return fmt.Errorf("redishash: write %s/%s: %w", key, attribute, err)
	}
	return nil
}
