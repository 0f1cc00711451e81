// Package storage keeps the ledger of recordings already delivered downstream.
package storage

import (
	"fmt"
	"strings"
	"time"
)

// Ledger tracks delivery keys (recording id plus revision).
type Ledger interface {
	Close() error
	Delivered(key string) (bool, error)
	MarkDelivered(key string) error
	Forget(key string) error
}

// Options controls retention characteristics for concrete ledger implementations.
type Options struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

const (
	defaultTTL             = 30 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewLedger creates the configured storage backend.
func NewLedger(typ, path string, opts Options) (Ledger, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopLedger{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		ledger, err := openBolt(path, opts)
		if err != nil {
			return nil, err
		}
		return ledger, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

// DeliveryKey identifies one revision of a recording.
func DeliveryKey(recordingID string, updatedAt time.Time) string {
	return recordingID + "@" + updatedAt.UTC().Format(time.RFC3339)
}

func normalizeOptions(opts Options) Options {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopLedger struct{}

func (noopLedger) Close() error                   { return nil }
func (noopLedger) Delivered(string) (bool, error) { return false, nil }
func (noopLedger) MarkDelivered(string) error     { return nil }
func (noopLedger) Forget(string) error            { return nil }
