package publishers

import "context"

// Publisher sends recording events to a downstream sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// closer is implemented by publishers that hold connections (Pub/Sub).
type closer interface {
	Close() error
}
