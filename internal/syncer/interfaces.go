package syncer

import (
	"context"
	"iter"

	"github.com/Adda-Baaj/pocket-sync/pkg/pocket"
	"github.com/Adda-Baaj/pocket-sync/pkg/publishers"
)

// RecordingReader is the part of the recordings facade the syncer walks.
type RecordingReader interface {
	All(ctx context.Context, opts pocket.ListOptions) iter.Seq2[pocket.Recording, error]
	Get(ctx context.Context, id string, opts pocket.GetOptions) (pocket.Recording, error)
}

// AudioArchiver saves a recording's audio to disk.
type AudioArchiver interface {
	SaveToPath(ctx context.Context, recordingID, path string) error
}

// EventPublisher publishes recording events downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// DeliveryLedger remembers which recording revisions were already delivered.
type DeliveryLedger interface {
	Delivered(key string) (bool, error)
	MarkDelivered(key string) error
}
