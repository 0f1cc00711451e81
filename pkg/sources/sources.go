// Package sources loads the recording sources (YAML/JSON) the syncer pulls from.
package sources

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/pocket-sync/internal/registryfile"
	"github.com/Adda-Baaj/pocket-sync/pkg/pocket"
)

// Source selects a slice of the account's recordings to sync.
type Source struct {
	ID                 string   `json:"id" yaml:"id"`
	Name               string   `json:"name" yaml:"name"`
	FolderID           string   `json:"folder_id" yaml:"folder_id"`
	TagIDs             []string `json:"tag_ids" yaml:"tag_ids"`
	LookbackDays       int      `json:"lookback_days" yaml:"lookback_days"`
	IncludeTranscript  *bool    `json:"include_transcript" yaml:"include_transcript"`
	IncludeSummary     *bool    `json:"include_summary" yaml:"include_summary"`
	IncludeActionItems *bool    `json:"include_action_items" yaml:"include_action_items"`
	ArchiveAudio       bool     `json:"archive_audio" yaml:"archive_audio"`
	RequestDelayMs     int      `json:"request_delay_ms" yaml:"request_delay_ms"`
}

type registry struct {
	Sources []Source `json:"sources" yaml:"sources"`
}

// Registry is an immutable, validated set of sources.
type Registry struct {
	sources []Source
	idx     map[string]Source
}

const defaultRequestDelayMs = 500

// All returns a copy of the loaded sources in file order.
func (r *Registry) All() []Source {
	if r == nil || len(r.sources) == 0 {
		return nil
	}
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// ByID returns the source entry for the given id, if loaded.
func (r *Registry) ByID(id string) (Source, bool) {
	id = strings.TrimSpace(id)
	if r == nil || id == "" {
		return Source{}, false
	}
	s, ok := r.idx[id]
	return s, ok
}

// Load reads and validates a sources file.
func Load(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sources file path is empty")
	}
	var reg registry
	if err := registryfile.Load(path, &reg); err != nil {
		return nil, fmt.Errorf("load sources file: %w", err)
	}
	return build(reg)
}

// Parse decodes a sources document; ext picks the format ("" tries YAML then JSON).
func Parse(data []byte, ext string) (*Registry, error) {
	var reg registry
	if err := registryfile.Unmarshal(data, ext, &reg); err != nil {
		return nil, fmt.Errorf("decode sources: %w", err)
	}
	return build(reg)
}

func build(reg registry) (*Registry, error) {
	if len(reg.Sources) == 0 {
		return nil, errors.New("sources file contains no sources entries")
	}

	idx := make(map[string]Source, len(reg.Sources))
	for i := range reg.Sources {
		s := sanitizeSource(reg.Sources[i])
		if err := validateSource(s); err != nil {
			return nil, fmt.Errorf("source[%d]: %w", i, err)
		}
		if _, exists := idx[s.ID]; exists {
			return nil, fmt.Errorf("duplicate source id %q", s.ID)
		}
		reg.Sources[i] = s
		idx[s.ID] = s
	}

	return &Registry{sources: reg.Sources, idx: idx}, nil
}

func sanitizeSource(s Source) Source {
	s.ID = strings.TrimSpace(s.ID)
	s.Name = strings.TrimSpace(s.Name)
	s.FolderID = strings.TrimSpace(s.FolderID)

	tags := s.TagIDs[:0:0]
	for _, t := range s.TagIDs {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	s.TagIDs = tags

	if s.Name == "" {
		s.Name = s.ID
	}
	if s.RequestDelayMs <= 0 {
		s.RequestDelayMs = defaultRequestDelayMs
	}
	return s
}

func validateSource(s Source) error {
	if s.ID == "" {
		return errors.New("id is required")
	}
	if s.LookbackDays < 0 {
		return fmt.Errorf("lookback_days must not be negative for source %q", s.ID)
	}
	return nil
}

// RequestDelay returns the pause between detail requests for this source.
func (s Source) RequestDelay() time.Duration {
	if s.RequestDelayMs <= 0 {
		return time.Duration(defaultRequestDelayMs) * time.Millisecond
	}
	return time.Duration(s.RequestDelayMs) * time.Millisecond
}

// ListOptions builds the listing filter as of now.
func (s Source) ListOptions(now time.Time) pocket.ListOptions {
	opts := pocket.ListOptions{
		FolderID: s.FolderID,
		TagIDs:   s.TagIDs,
	}
	if s.LookbackDays > 0 {
		opts.StartDate = now.AddDate(0, 0, -s.LookbackDays)
		opts.EndDate = now
	}
	return opts
}

// GetOptions maps the include flags (default true) to detail options.
func (s Source) GetOptions() pocket.GetOptions {
	return pocket.GetOptions{
		ExcludeTranscript:  !boolOr(s.IncludeTranscript, true),
		ExcludeSummary:     !boolOr(s.IncludeSummary, true),
		ExcludeActionItems: !boolOr(s.IncludeActionItems, true),
	}
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
