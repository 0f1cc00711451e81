package publishers

import (
	"time"

	"github.com/Adda-Baaj/pocket-sync/pkg/pocket"
)

// Event represents the payload published downstream.
type Event struct {
	SourceID   string           `json:"source_id"`
	SourceName string           `json:"source_name"`
	Recording  pocket.Recording `json:"recording"`
	AudioPath  string           `json:"audio_path,omitempty"`
	SyncedAt   time.Time        `json:"synced_at"`
}

// NewEvent constructs an Event for the given source + recording.
func NewEvent(sourceID, sourceName string, rec pocket.Recording) Event {
	return Event{
		SourceID:   sourceID,
		SourceName: sourceName,
		Recording:  rec,
		SyncedAt:   time.Now().UTC(),
	}
}

// attributes are attached to queue messages so consumers can filter without decoding.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"source_id":       e.SourceID,
		"recording_id":    e.Recording.ID,
		"recording_state": string(e.Recording.State),
	}
}
