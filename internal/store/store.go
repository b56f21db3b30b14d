// Package store keeps short-lived claims so a message is researched once
// even when several users react to it.
package store

import (
	"context"
	"time"
)

type Claimer interface {
	// Claim reports whether key was free and is now held for ttl.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
	Close() error
}
