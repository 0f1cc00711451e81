package pocket

import (
	"encoding/json"
	"fmt"
)

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

func (p *Pagination) UnmarshalJSON(b []byte) error {
	var w struct {
		Page       flexInt  `json:"page"`
		Limit      flexInt  `json:"limit"`
		Total      flexInt  `json:"total"`
		TotalPages flexInt  `json:"total_pages"`
		HasMore    flexBool `json:"has_more"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	*p = Pagination{
		Page:       int(w.Page),
		Limit:      int(w.Limit),
		Total:      int(w.Total),
		TotalPages: int(w.TotalPages),
		HasMore:    bool(w.HasMore),
	}
	return nil
}

func (p Pagination) IsFirstPage() bool { return p.Page == 1 }
func (p Pagination) IsLastPage() bool  { return !p.HasMore }

// NextPage returns the following page number, if there is one.
func (p Pagination) NextPage() (int, bool) {
	if !p.HasMore {
		return 0, false
	}
	return p.Page + 1, true
}

func (p Pagination) PreviousPage() (int, bool) {
	if p.Page <= 1 {
		return 0, false
	}
	return p.Page - 1, true
}

// PaginatedRecordings is one page of a recordings listing.
type PaginatedRecordings struct {
	Data       []Recording `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

func (p PaginatedRecordings) Len() int                  { return len(p.Data) }
func (p PaginatedRecordings) IsEmpty() bool             { return len(p.Data) == 0 }
func (p PaginatedRecordings) Total() int                { return p.Pagination.Total }
func (p PaginatedRecordings) HasMore() bool             { return p.Pagination.HasMore }
func (p PaginatedRecordings) CurrentPage() int          { return p.Pagination.Page }
func (p PaginatedRecordings) NextPage() (int, bool)     { return p.Pagination.NextPage() }
func (p PaginatedRecordings) PreviousPage() (int, bool) { return p.Pagination.PreviousPage() }

func (p PaginatedRecordings) First() (Recording, bool) {
	if len(p.Data) == 0 {
		return Recording{}, false
	}
	return p.Data[0], true
}

func (p PaginatedRecordings) Last() (Recording, bool) {
	if len(p.Data) == 0 {
		return Recording{}, false
	}
	return p.Data[len(p.Data)-1], true
}
