package syncer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Adda-Baaj/pocket-sync/internal/logger"
	"github.com/Adda-Baaj/pocket-sync/internal/storage"
	"github.com/Adda-Baaj/pocket-sync/pkg/pocket"
	"github.com/Adda-Baaj/pocket-sync/pkg/publishers"
	"github.com/Adda-Baaj/pocket-sync/pkg/sources"
)

// Stats summarises one pass over a source.
type Stats struct {
	Seen      int `json:"seen"`
	Skipped   int `json:"skipped"`
	Published int `json:"published"`
	Failed    int `json:"failed"`
}

func (s *Stats) add(o Stats) {
	s.Seen += o.Seen
	s.Skipped += o.Skipped
	s.Published += o.Published
	s.Failed += o.Failed
}

// Service syncs completed recordings from each source to the publishers.
type Service struct {
	recordings RecordingReader
	audio      AudioArchiver
	audioDir   string
	publisher  EventPublisher
	ledger     DeliveryLedger
	sleep      pocket.Sleeper
	now        func() time.Time
	log        logger.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithAudioArchive enables audio archiving for sources that ask for it.
func WithAudioArchive(a AudioArchiver, dir string) Option {
	return func(s *Service) {
		s.audio = a
		s.audioDir = dir
	}
}

// WithSleeper replaces the pause used between detail requests.
func WithSleeper(sleep pocket.Sleeper) Option {
	return func(s *Service) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService wires a syncer. A nil ledger delivers every completed recording.
func NewService(recs RecordingReader, pub EventPublisher, ledger DeliveryLedger, opts ...Option) *Service {
	s := &Service{
		recordings: recs,
		publisher:  pub,
		ledger:     ledger,
		sleep:      pocket.SleepContext,
		now:        time.Now,
		log:        logger.NopLogger{},
	}
	if s.ledger == nil {
		s.ledger = nopLedger{}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes a sync pass for every source. Errors are collected per source;
// authentication and rate limit errors stop the pass.
func (s *Service) Run(ctx context.Context, srcs []sources.Source) (Stats, error) {
	var total Stats
	if s == nil || s.recordings == nil || s.publisher == nil {
		return total, fmt.Errorf("syncer service is not initialized")
	}
	if len(srcs) == 0 {
		return total, fmt.Errorf("no sources configured for sync")
	}

	var errs []error
	for _, src := range srcs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		stats, err := s.runSource(ctx, src)
		total.add(stats)
		s.log.InfoObj("source sync completed", "source_result", map[string]any{
			"source_id": src.ID,
			"seen":      stats.Seen,
			"skipped":   stats.Skipped,
			"published": stats.Published,
			"failed":    stats.Failed,
		})
		if err == nil {
			continue
		}

		errs = append(errs, fmt.Errorf("source %s: %w", src.ID, err))
		s.log.ErrorObj("source sync failed", "source_error", map[string]any{
			"source_id": src.ID,
			"error":     err.Error(),
		})
		if fatal(err) {
			break
		}
	}

	return total, errors.Join(errs...)
}

func (s *Service) runSource(ctx context.Context, src sources.Source) (Stats, error) {
	var (
		stats     Stats
		errs      []error
		requested bool
	)

	for rec, err := range s.recordings.All(ctx, src.ListOptions(s.now())) {
		if err != nil {
			errs = append(errs, fmt.Errorf("list recordings: %w", err))
			break
		}
		stats.Seen++

		if !rec.IsCompleted() {
			stats.Skipped++
			continue
		}

		key := storage.DeliveryKey(rec.ID, rec.UpdatedAt)
		delivered, err := s.ledger.Delivered(key)
		if err != nil {
			stats.Failed++
			errs = append(errs, fmt.Errorf("ledger lookup %s: %w", rec.ID, err))
			continue
		}
		if delivered {
			stats.Skipped++
			continue
		}

		if requested {
			if err := s.sleep(ctx, src.RequestDelay()); err != nil {
				errs = append(errs, err)
				break
			}
		}
		requested = true

		if err := s.deliver(ctx, src, rec.ID, key); err != nil {
			stats.Failed++
			errs = append(errs, fmt.Errorf("recording %s: %w", rec.ID, err))
			if fatal(err) {
				break
			}
			continue
		}
		stats.Published++
	}

	return stats, errors.Join(errs...)
}

func (s *Service) deliver(ctx context.Context, src sources.Source, id, key string) error {
	rec, err := s.recordings.Get(ctx, id, src.GetOptions())
	if err != nil {
		return fmt.Errorf("get recording: %w", err)
	}

	evt := publishers.NewEvent(src.ID, src.Name, rec)
	evt.SyncedAt = s.now().UTC()

	if src.ArchiveAudio && s.audio != nil {
		path := filepath.Join(s.audioDir, fileName(src.ID), fileName(rec.ID)+".mp3")
		if err := s.audio.SaveToPath(ctx, rec.ID, path); err != nil {
			return fmt.Errorf("archive audio: %w", err)
		}
		evt.AudioPath = path
	}

	n, err := s.publisher.Publish(ctx, evt)
	if n == 0 {
		if err == nil {
			err = errors.New("no publishers accepted the event")
		}
		return fmt.Errorf("publish: %w", err)
	}
	if err != nil {
		s.log.WarnObj("recording partially delivered", "delivery_warning", map[string]any{
			"recording_id": rec.ID,
			"delivered":    n,
			"error":        err.Error(),
		})
	}

	if err := s.ledger.MarkDelivered(key); err != nil {
		return fmt.Errorf("mark delivered: %w", err)
	}
	s.log.DebugObj("recording delivered", "delivery", map[string]any{
		"source_id":    src.ID,
		"recording_id": rec.ID,
		"publishers":   n,
	})
	return nil
}

// fatal reports errors that would fail every remaining request too.
func fatal(err error) bool {
	return pocket.IsAuthentication(err) || pocket.IsRateLimit(err) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// fileName keeps ids from escaping the archive directory.
func fileName(id string) string {
	id = strings.TrimSpace(id)
	id = strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(id)
	if id == "" {
		return "_"
	}
	return id
}

type nopLedger struct{}

func (nopLedger) Delivered(string) (bool, error) { return false, nil }
func (nopLedger) MarkDelivered(string) error     { return nil }
