package main

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"feedscope/internal/api"
	"feedscope/internal/catalog"
	"feedscope/internal/config"
	"feedscope/internal/logging"
	"feedscope/internal/queryflow"
	"feedscope/internal/ranking"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	storeOnce sync.Once
	store     *catalog.Store
	service   *api.FeedService
	engine    *queryflow.Engine
	storeErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureEngine opens the catalog once and wires the service and query
// engine over it. CLI commands log to stderr at warn level so table output
// stays clean.
func (c *commandContext) ensureEngine() (*queryflow.Engine, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.storeOnce.Do(func() {
		logger, err := logging.New(logging.Options{
			Level:  "warn",
			Format: "console",
			Writer: os.Stderr,
		})
		if err != nil {
			c.storeErr = err
			return
		}
		store, err := catalog.Open(cfg, logger)
		if err != nil {
			c.storeErr = err
			return
		}
		weights := ranking.Weights{
			Resolution: cfg.Ranking.Resolution,
			FPS:        cfg.Ranking.FPS,
			Codec:      cfg.Ranking.Codec,
		}
		c.store = store
		c.service = api.NewFeedService(store, weights, logger)
		c.engine = queryflow.New(c.service, cfg, logger)
	})
	return c.engine, c.storeErr
}

func (c *commandContext) ensureService() (*api.FeedService, error) {
	if _, err := c.ensureEngine(); err != nil {
		return nil, err
	}
	return c.service, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
