package pocket

import (
	"encoding/json"
	"fmt"
	"time"
)

type Transcript struct {
	Text     string              `json:"text"`
	Segments []TranscriptSegment `json:"segments"`
}

// Speakers lists the named speakers in order of first appearance.
func (t Transcript) Speakers() []string {
	seen := make(map[string]struct{})
	var speakers []string
	for _, seg := range t.Segments {
		if seg.Speaker == nil {
			continue
		}
		if _, ok := seen[*seg.Speaker]; ok {
			continue
		}
		seen[*seg.Speaker] = struct{}{}
		speakers = append(speakers, *seg.Speaker)
	}
	return speakers
}

func (t Transcript) SegmentsForSpeaker(speaker string) []TranscriptSegment {
	var out []TranscriptSegment
	for _, seg := range t.Segments {
		if seg.Speaker != nil && *seg.Speaker == speaker {
			out = append(out, seg)
		}
	}
	return out
}

// TranscriptSegment is a timed slice of the transcript; Start and End are seconds.
type TranscriptSegment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker *string `json:"speaker,omitempty"`
}

func (s *TranscriptSegment) UnmarshalJSON(b []byte) error {
	var w struct {
		Start   flexFloat `json:"start"`
		End     flexFloat `json:"end"`
		Text    string    `json:"text"`
		Speaker *string   `json:"speaker"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("transcript segment: %w", err)
	}
	*s = TranscriptSegment{
		Start:   float64(w.Start),
		End:     float64(w.End),
		Text:    w.Text,
		Speaker: w.Speaker,
	}
	return nil
}

func (s TranscriptSegment) Duration() float64 { return s.End - s.Start }

type Summary struct {
	Title    string           `json:"title"`
	Sections []SummarySection `json:"sections"`
}

// FindSection returns the first section with an exactly matching heading.
func (s Summary) FindSection(heading string) (SummarySection, bool) {
	for _, sec := range s.Sections {
		if sec.Heading == heading {
			return sec, true
		}
	}
	return SummarySection{}, false
}

type SummarySection struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// ActionItem is a follow-up extracted from a recording.
type ActionItem struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description *string            `json:"description,omitempty"`
	Status      ActionItemStatus   `json:"status"`
	Priority    ActionItemPriority `json:"priority"`
	DueDate     *time.Time         `json:"due_date,omitempty"`
}

type actionItemWire struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	DueDate     timestamp `json:"due_date"`
}

func (a *ActionItem) UnmarshalJSON(b []byte) error {
	var w actionItemWire
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("action item: %w", err)
	}
	*a = ActionItem{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Status:      ParseActionItemStatus(w.Status),
		Priority:    ParseActionItemPriority(w.Priority),
		DueDate:     w.DueDate.ptr(),
	}
	return nil
}

// MarshalJSON writes the due date as YYYY-MM-DD.
func (a ActionItem) MarshalJSON() ([]byte, error) {
	out := struct {
		ID          string             `json:"id"`
		Title       string             `json:"title"`
		Description *string            `json:"description,omitempty"`
		Status      ActionItemStatus   `json:"status"`
		Priority    ActionItemPriority `json:"priority"`
		DueDate     string             `json:"due_date,omitempty"`
	}{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Status:      a.Status,
		Priority:    a.Priority,
	}
	if a.DueDate != nil {
		out.DueDate = a.DueDate.Format(dateLayout)
	}
	return json.Marshal(out)
}

func (a ActionItem) IsPending() bool   { return a.Status == StatusPending }
func (a ActionItem) IsCompleted() bool { return a.Status == StatusCompleted }

// IsOverdue reports whether the due date is before today.
func (a ActionItem) IsOverdue() bool { return a.OverdueAt(time.Now()) }

// OverdueAt compares calendar dates only; completed items are never overdue.
func (a ActionItem) OverdueAt(now time.Time) bool {
	if a.DueDate == nil || a.IsCompleted() {
		return false
	}
	dy, dm, dd := a.DueDate.Date()
	ny, nm, nd := now.Date()
	due := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}
