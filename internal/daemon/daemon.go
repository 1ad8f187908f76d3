package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"feedscope/internal/api"
	"feedscope/internal/catalog"
	"feedscope/internal/config"
	"feedscope/internal/logging"
	"feedscope/internal/queryflow"
	"feedscope/internal/ranking"
)

// Daemon serves the feed query API and enforces single-instance execution.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *catalog.Store
	service *api.FeedService
	engine  *queryflow.Engine

	lockPath string
	lock     *flock.Flock

	server *apiServer

	running atomic.Bool
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	Feeds        int
	DataDir      string
	LockFilePath string
	APIAddress   string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *catalog.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || logger == nil {
		return nil, errors.New("daemon requires config, store, and logger")
	}

	weights := ranking.Weights{
		Resolution: cfg.Ranking.Resolution,
		FPS:        cfg.Ranking.FPS,
		Codec:      cfg.Ranking.Codec,
	}
	service := api.NewFeedService(store, weights, logger)
	engine := queryflow.New(service, cfg, logger)

	lockPath := filepath.Join(cfg.Paths.LogDir, "feedscoped.lock")
	d := &Daemon{
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "daemon"),
		store:    store,
		service:  service,
		engine:   engine,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	d.server = newAPIServer(cfg, d, logger)
	return d, nil
}

// Start acquires the daemon lock and brings up the API server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another feedscope daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	if err := d.server.start(runCtx); err != nil {
		_ = d.lock.Unlock()
		cancel()
		d.cancel = nil
		return err
	}

	d.running.Store(true)
	d.logger.Info("feedscope daemon started",
		logging.String("lock", d.lockPath),
		logging.Int("feeds", d.store.Len()))
	return nil
}

// Stop shuts down the API server and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.server.stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("feedscope daemon stopped")
}

// Status reports runtime information for health output.
func (d *Daemon) Status() Status {
	return Status{
		Running:      d.running.Load(),
		Feeds:        d.store.Len(),
		DataDir:      d.cfg.Paths.DataDir,
		LockFilePath: d.lockPath,
		APIAddress:   d.server.Addr(),
	}
}

// Addr returns the bound API address, empty until Start succeeds.
func (d *Daemon) Addr() string {
	return d.server.Addr()
}
