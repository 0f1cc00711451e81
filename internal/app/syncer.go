package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Adda-Baaj/pocket-sync/internal/config"
	"github.com/Adda-Baaj/pocket-sync/internal/logger"
	"github.com/Adda-Baaj/pocket-sync/internal/storage"
	"github.com/Adda-Baaj/pocket-sync/internal/syncer"
	"github.com/Adda-Baaj/pocket-sync/pkg/pocket"
	"github.com/Adda-Baaj/pocket-sync/pkg/publishers"
	"github.com/Adda-Baaj/pocket-sync/pkg/sources"
)

// Syncer is the pocket-sync runtime. It owns the sync loop and the resources
// the loop depends on: the delivery ledger and the publisher fanout.
type Syncer struct {
	cfg          *config.Config
	sources      *sources.Registry
	fanout       *publishers.Fanout
	service      *syncer.Service
	syncInterval time.Duration
	log          logger.Logger
	ledger       storage.Ledger
}

// NewPocket builds the SDK handle from config.
func NewPocket(cfg *config.Config) (*pocket.Pocket, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	return pocket.New(cfg.Pocket(), pocket.WithLogger(logger.Zap()))
}

// NewSyncer builds a runtime from config files.
func NewSyncer(ctx context.Context, cfg *config.Config, log logger.Logger) (*Syncer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	srcReg, err := sources.Load(cfg.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("load sources registry: %w", err)
	}
	srcList := srcReg.All()
	srcIDs := make([]string, 0, len(srcList))
	for _, s := range srcList {
		srcIDs = append(srcIDs, s.ID)
	}
	log.InfoObj("sources registry loaded", "sources_meta", map[string]any{
		"count": len(srcIDs),
		"ids":   srcIDs,
	})

	client, err := NewPocket(cfg)
	if err != nil {
		return nil, fmt.Errorf("init pocket client: %w", err)
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients, log)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	ledger, err := storage.NewLedger(cfg.StorageType, cfg.BBoltPath, storage.Options{
		TTL:             cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("init storage: %w", err), fanout.Close())
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"ttl_seconds":              int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	service := syncer.NewService(client.Recordings(), fanout, ledger,
		syncer.WithAudioArchive(client.Audio(), cfg.AudioDir),
		syncer.WithLogger(log),
	)

	return &Syncer{
		cfg:          cfg,
		sources:      srcReg,
		fanout:       fanout,
		service:      service,
		syncInterval: cfg.SyncInterval,
		log:          log,
		ledger:       ledger,
	}, nil
}

// Run starts the sync loop until the context is cancelled.
func (s *Syncer) Run(ctx context.Context) error {
	if s == nil || s.service == nil {
		return fmt.Errorf("syncer is not initialized")
	}
	defer s.close()

	srcs := s.sources.All()
	s.log.InfoObj("sync loop starting", "syncer_state", map[string]any{
		"sources_count":    len(srcs),
		"publishers_count": s.fanout.Size(),
		"sync_interval":    s.syncInterval.String(),
	})

	if err := s.runOnce(ctx, srcs); err != nil {
		s.log.ErrorObj("initial sync failed", "error", err.Error())
	}

	ticker := time.NewTicker(s.syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.InfoObj("sync loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if err := s.runOnce(ctx, srcs); err != nil {
				s.log.ErrorObj("scheduled sync failed", "error", err.Error())
			}
		}
	}
}

// RunOnce performs a single pass and releases resources.
func (s *Syncer) RunOnce(ctx context.Context) error {
	if s == nil || s.service == nil {
		return fmt.Errorf("syncer is not initialized")
	}
	defer s.close()
	return s.runOnce(ctx, s.sources.All())
}

func (s *Syncer) runOnce(ctx context.Context, srcs []sources.Source) error {
	start := time.Now()
	s.log.InfoObj("sync started", "sync_meta", map[string]any{
		"sources_count": len(srcs),
		"started_at":    start.UTC(),
	})
	stats, err := s.service.Run(ctx, srcs)
	s.log.InfoObj("sync completed", "sync_meta", map[string]any{
		"sources_count": len(srcs),
		"stats":         stats,
		"elapsed_ms":    time.Since(start).Milliseconds(),
	})
	return err
}

func (s *Syncer) close() {
	if s.fanout != nil {
		if err := s.fanout.Close(); err != nil {
			s.log.ErrorObj("publisher close failed", "error", err.Error())
		}
	}
	if s.ledger != nil {
		if err := s.ledger.Close(); err != nil {
			s.log.ErrorObj("storage close failed", "error", err.Error())
		}
	}
}
