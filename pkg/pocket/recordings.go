package pocket

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"time"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListOptions filters a recordings listing. Zero values are omitted from
// the request.
type ListOptions struct {
	FolderID  string
	StartDate time.Time
	EndDate   time.Time
	TagIDs    []string
	Page      int // defaults to 1
	Limit     int // defaults to 20, capped at 100
}

func (o ListOptions) query() Query {
	page := o.Page
	if page < 1 {
		page = 1
	}
	limit := o.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return Query{
		"folder_id":  o.FolderID,
		"start_date": o.StartDate,
		"end_date":   o.EndDate,
		"tag_ids":    o.TagIDs,
		"page":       page,
		"limit":      limit,
	}
}

// GetOptions trims the detail response. The zero value includes everything.
type GetOptions struct {
	ExcludeTranscript  bool
	ExcludeSummary     bool
	ExcludeActionItems bool
}

func (o GetOptions) query() Query {
	return Query{
		"include_transcript":   !o.ExcludeTranscript,
		"include_summary":      !o.ExcludeSummary,
		"include_action_items": !o.ExcludeActionItems,
	}
}

// Recordings is the facade over the recordings endpoints.
type Recordings struct {
	client *Client
}

func NewRecordings(c *Client) *Recordings { return &Recordings{client: c} }

// List fetches one page of recordings.
func (r *Recordings) List(ctx context.Context, opts ListOptions) (PaginatedRecordings, error) {
	env, err := r.client.Get(ctx, "recordings", opts.query())
	if err != nil {
		return PaginatedRecordings{}, err
	}

	var page PaginatedRecordings
	if err := env.Decode("data", &page.Data); err != nil {
		return PaginatedRecordings{}, fmt.Errorf("list recordings: %w", err)
	}
	if err := env.Decode("pagination", &page.Pagination); err != nil {
		return PaginatedRecordings{}, fmt.Errorf("list recordings: %w", err)
	}
	return page, nil
}

// Get fetches a single recording with the requested detail.
func (r *Recordings) Get(ctx context.Context, id string, opts GetOptions) (Recording, error) {
	env, err := r.client.Get(ctx, "recordings/"+url.PathEscape(id), opts.query())
	if err != nil {
		return Recording{}, err
	}

	var rec Recording
	if err := env.Decode("data", &rec); err != nil {
		return Recording{}, fmt.Errorf("get recording %s: %w", id, err)
	}
	return rec, nil
}

// Find is Get with everything included.
func (r *Recordings) Find(ctx context.Context, id string) (Recording, error) {
	return r.Get(ctx, id, GetOptions{})
}

// All walks every page matching opts, 100 at a time. Page and Limit in opts
// are ignored. Iteration stops after the first error.
func (r *Recordings) All(ctx context.Context, opts ListOptions) iter.Seq2[Recording, error] {
	return func(yield func(Recording, error) bool) {
		opts.Limit = maxPageLimit
		for page := 1; ; page++ {
			opts.Page = page
			result, err := r.List(ctx, opts)
			if err != nil {
				yield(Recording{}, err)
				return
			}
			for _, rec := range result.Data {
				if !yield(rec, nil) {
					return
				}
			}
			if !result.HasMore() {
				return
			}
		}
	}
}

func (r *Recordings) InFolder(ctx context.Context, folderID string, page, limit int) (PaginatedRecordings, error) {
	return r.List(ctx, ListOptions{FolderID: folderID, Page: page, Limit: limit})
}

func (r *Recordings) WithTags(ctx context.Context, tagIDs []string, page, limit int) (PaginatedRecordings, error) {
	return r.List(ctx, ListOptions{TagIDs: tagIDs, Page: page, Limit: limit})
}

func (r *Recordings) BetweenDates(ctx context.Context, start, end time.Time, page, limit int) (PaginatedRecordings, error) {
	return r.List(ctx, ListOptions{StartDate: start, EndDate: end, Page: page, Limit: limit})
}
