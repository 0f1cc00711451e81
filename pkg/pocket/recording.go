package pocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// Recording is one captured conversation. Transcript, Summary and
// ActionItems are only present when the detail endpoint included them.
type Recording struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	FolderID    *string        `json:"folder_id"`
	Duration    int            `json:"duration"`
	State       RecordingState `json:"state"`
	Language    *string        `json:"language"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Tags        []Tag          `json:"tags"`
	Transcript  *Transcript    `json:"transcript,omitempty"`
	Summary     *Summary       `json:"summary,omitempty"`
	ActionItems []ActionItem   `json:"action_items,omitempty"`
}

type recordingWire struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	FolderID    *string      `json:"folder_id"`
	Duration    flexInt      `json:"duration"`
	State       string       `json:"state"`
	Language    *string      `json:"language"`
	CreatedAt   timestamp    `json:"created_at"`
	UpdatedAt   timestamp    `json:"updated_at"`
	Tags        []Tag        `json:"tags"`
	Transcript  *Transcript  `json:"transcript"`
	Summary     *Summary     `json:"summary"`
	ActionItems []ActionItem `json:"action_items"`
}

func (r *Recording) UnmarshalJSON(b []byte) error {
	var w recordingWire
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("recording: %w", err)
	}
	tags := w.Tags
	if tags == nil {
		tags = []Tag{}
	}
	*r = Recording{
		ID:          w.ID,
		Title:       w.Title,
		FolderID:    w.FolderID,
		Duration:    int(w.Duration),
		State:       ParseRecordingState(w.State),
		Language:    w.Language,
		CreatedAt:   w.CreatedAt.Time,
		UpdatedAt:   w.UpdatedAt.Time,
		Tags:        tags,
		Transcript:  w.Transcript,
		Summary:     w.Summary,
		ActionItems: w.ActionItems,
	}
	return nil
}

// FormattedDuration renders the duration as m:ss, or h:mm:ss past an hour.
func (r Recording) FormattedDuration() string {
	d := r.Duration
	if d < 0 {
		d = 0
	}
	h, m, s := d/3600, (d%3600)/60, d%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func (r Recording) IsProcessing() bool   { return r.State.IsProcessing() }
func (r Recording) IsCompleted() bool    { return r.State.IsCompleted() }
func (r Recording) IsFailed() bool       { return r.State.IsFailed() }
func (r Recording) HasTranscript() bool  { return r.Transcript != nil }
func (r Recording) HasSummary() bool     { return r.Summary != nil }
func (r Recording) HasActionItems() bool { return len(r.ActionItems) > 0 }

func (r Recording) PendingActionItems() []ActionItem {
	return filterActionItems(r.ActionItems, ActionItem.IsPending)
}

func (r Recording) CompletedActionItems() []ActionItem {
	return filterActionItems(r.ActionItems, ActionItem.IsCompleted)
}

func filterActionItems(items []ActionItem, keep func(ActionItem) bool) []ActionItem {
	out := make([]ActionItem, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Folder groups recordings.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *Folder) UnmarshalJSON(b []byte) error {
	var w struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		IsDefault flexBool  `json:"is_default"`
		CreatedAt timestamp `json:"created_at"`
		UpdatedAt timestamp `json:"updated_at"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("folder: %w", err)
	}
	*f = Folder{
		ID:        w.ID,
		Name:      w.Name,
		IsDefault: bool(w.IsDefault),
		CreatedAt: w.CreatedAt.Time,
		UpdatedAt: w.UpdatedAt.Time,
	}
	return nil
}

// Tag labels recordings. Color and UsageCount are optional.
type Tag struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Color      *string `json:"color,omitempty"`
	UsageCount *int    `json:"usage_count,omitempty"`
}
