package pocket

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordingsPage = `{
	"success": true,
	"data": [
		{"id": "rec_1", "title": "Standup", "folder_id": "fld_1", "duration": 754, "state": "completed",
		 "language": "en", "created_at": "2026-01-15T10:00:00Z", "updated_at": "2026-01-15T10:30:00Z",
		 "tags": [{"id": "tag_1", "name": "work", "color": "#ff0000"}]},
		{"id": "rec_2", "title": "Call", "duration": "65", "state": "transcribing",
		 "created_at": "2026-01-16 09:00:00", "updated_at": "2026-01-16 09:05:00"}
	],
	"pagination": {"page": 1, "limit": 20, "total": 2, "total_pages": 1, "has_more": false}
}`

func TestRecordingsList(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/public/recordings", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "20", q.Get("limit"))
		assert.False(t, q.Has("folder_id"))
		assert.False(t, q.Has("tag_ids"))
		writeJSON(w, http.StatusOK, recordingsPage)
	})
	p, _ := newTestPocket(t, srv.URL, 0)

	page, err := p.Recordings().List(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Equal(t, 2, page.Len())
	assert.False(t, page.HasMore())
	assert.Equal(t, 2, page.Total())
	assert.Equal(t, 1, page.CurrentPage())

	first, ok := page.First()
	require.True(t, ok)
	assert.Equal(t, "rec_1", first.ID)
	assert.Equal(t, StateCompleted, first.State)
	require.NotNil(t, first.FolderID)
	assert.Equal(t, "fld_1", *first.FolderID)
	require.Len(t, first.Tags, 1)
	assert.Equal(t, "work", first.Tags[0].Name)
	assert.Nil(t, first.Tags[0].UsageCount)

	last, _ := page.Last()
	assert.Equal(t, 65, last.Duration)
	assert.True(t, last.IsProcessing())
	assert.Nil(t, last.FolderID)
	assert.NotNil(t, last.Tags)
	assert.True(t, last.CreatedAt.Equal(time.Date(2026, 1, 16, 9, 0, 0, 0, time.UTC)))
}

func TestRecordingsListFilters(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "fld_9", q.Get("folder_id"))
		assert.Equal(t, "2026-01-01", q.Get("start_date"))
		assert.Equal(t, "2026-01-31", q.Get("end_date"))
		assert.Equal(t, "t1,t2", q.Get("tag_ids"))
		assert.Equal(t, "3", q.Get("page"))
		assert.Equal(t, "100", q.Get("limit"))
		writeJSON(w, http.StatusOK, `{"data":[],"pagination":{"page":3,"limit":100,"total":0,"total_pages":0,"has_more":false}}`)
	})
	p, _ := newTestPocket(t, srv.URL, 0)

	page, err := p.Recordings().List(context.Background(), ListOptions{
		FolderID:  "fld_9",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		TagIDs:    []string{"t1", "t2"},
		Page:      3,
		Limit:     500,
	})
	require.NoError(t, err)
	assert.True(t, page.IsEmpty())
	prev, ok := page.PreviousPage()
	assert.True(t, ok)
	assert.Equal(t, 2, prev)
}

func TestRecordingsGet(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/public/recordings/rec_1", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "true", q.Get("include_transcript"))
		assert.Equal(t, "false", q.Get("include_summary"))
		assert.Equal(t, "true", q.Get("include_action_items"))
		writeJSON(w, http.StatusOK, `{"success":true,"data":{
			"id":"rec_1","title":"Standup","duration":3725,"state":"completed",
			"created_at":"2026-01-15T10:00:00Z","updated_at":"2026-01-15T10:30:00Z",
			"transcript":{"text":"hi there","segments":[
				{"start":0,"end":"1.5","text":"hi","speaker":"Ana"},
				{"start":1.5,"end":3,"text":"there","speaker":"Ben"},
				{"start":3,"end":4,"text":"again","speaker":"Ana"}]},
			"action_items":[
				{"id":"ai_1","title":"Send notes","status":"completed","priority":"high"},
				{"id":"ai_2","title":"Book room","due_date":"2026-01-20"}]}}`)
	})
	p, _ := newTestPocket(t, srv.URL, 0)

	rec, err := p.Recordings().Get(context.Background(), "rec_1", GetOptions{ExcludeSummary: true})
	require.NoError(t, err)
	assert.Equal(t, "1:02:05", rec.FormattedDuration())
	assert.True(t, rec.HasTranscript())
	assert.False(t, rec.HasSummary())
	assert.Equal(t, []string{"Ana", "Ben"}, rec.Transcript.Speakers())
	assert.Len(t, rec.Transcript.SegmentsForSpeaker("Ana"), 2)
	assert.InDelta(t, 1.5, rec.Transcript.Segments[0].Duration(), 1e-9)

	require.Len(t, rec.ActionItems, 2)
	assert.Len(t, rec.PendingActionItems(), 1)
	assert.Len(t, rec.CompletedActionItems(), 1)
	assert.Equal(t, PriorityMedium, rec.ActionItems[1].Priority)
	assert.Equal(t, StatusPending, rec.ActionItems[1].Status)
}

func TestRecordingsFindNotFound(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "true", q.Get("include_summary"))
		writeJSON(w, http.StatusNotFound, `{"success":false,"error":"Recording not found"}`)
	})
	p, _ := newTestPocket(t, srv.URL, 3)

	_, err := p.Recordings().Find(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
	assert.EqualError(t, err, "Recording not found")
}

func TestRecordingsAllWalksPages(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		more := page < 3
		writeJSON(w, http.StatusOK, fmt.Sprintf(`{"data":[{"id":"rec_%d","title":"t","duration":1,
			"created_at":"2026-01-01T00:00:00Z","updated_at":"2026-01-01T00:00:00Z"}],
			"pagination":{"page":%d,"limit":100,"total":3,"total_pages":3,"has_more":%t}}`, page, page, more))
	})
	p, _ := newTestPocket(t, srv.URL, 0)

	var ids []string
	for rec, err := range p.Recordings().All(context.Background(), ListOptions{Page: 7}) {
		require.NoError(t, err)
		ids = append(ids, rec.ID)
	}
	assert.Equal(t, []string{"rec_1", "rec_2", "rec_3"}, ids)
}

func TestRecordingsAllStopsOnError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"success":false}`)
	})
	p, _ := newTestPocket(t, srv.URL, 0)

	var errs []error
	for _, err := range p.Recordings().All(context.Background(), ListOptions{}) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.True(t, IsAuthentication(errs[0]))
}

func TestRecordingsShortcuts(t *testing.T) {
	var got []string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.RawQuery)
		writeJSON(w, http.StatusOK, `{"data":[],"pagination":{"page":1,"limit":5,"total":0,"total_pages":0,"has_more":false}}`)
	})
	p, _ := newTestPocket(t, srv.URL, 0)
	ctx := context.Background()

	_, err := p.Recordings().InFolder(ctx, "f1", 1, 5)
	require.NoError(t, err)
	_, err = p.Recordings().WithTags(ctx, []string{"a"}, 1, 5)
	require.NoError(t, err)
	_, err = p.Recordings().BetweenDates(ctx, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), 1, 5)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"folder_id=f1&limit=5&page=1",
		"limit=5&page=1&tag_ids=a",
		"end_date=2026-02-02&limit=5&page=1&start_date=2026-02-01",
	}, got)
}
