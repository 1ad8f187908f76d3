package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateRanking(); err != nil {
		return err
	}
	if err := c.validateQuery(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCatalog() error {
	switch c.Catalog.Source {
	case "csv", "sqlite":
	default:
		return fmt.Errorf("catalog.source must be \"csv\" or \"sqlite\", got %q", c.Catalog.Source)
	}
	if len(c.Catalog.Theaters) == 0 {
		return errors.New("catalog.theaters must list at least one theater code")
	}
	return nil
}

func (c *Config) validateRanking() error {
	weights := map[string]float64{
		"ranking.resolution": c.Ranking.Resolution,
		"ranking.fps":        c.Ranking.FPS,
		"ranking.codec":      c.Ranking.Codec,
	}
	for name, value := range weights {
		if value < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	if c.Ranking.Resolution == 0 && c.Ranking.FPS == 0 && c.Ranking.Codec == 0 {
		return errors.New("ranking weights must not all be zero")
	}
	return nil
}

func (c *Config) validateQuery() error {
	if c.Query.ListLimit <= 0 {
		return errors.New("query.list_limit must be positive")
	}
	if c.Query.RankTopK <= 0 {
		return errors.New("query.rank_top_k must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
