package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DataDir  string `toml:"data_dir"`
	LogDir   string `toml:"log_dir"`
	APIBind  string `toml:"api_bind"`
	APIToken string `toml:"api_token"`
}

// Catalog contains configuration for the feed catalog source.
type Catalog struct {
	// Source selects the feed table backend: "csv" or "sqlite".
	Source string `toml:"source"`
	// Theaters is the closed vocabulary of theater codes recognized by the
	// free-text filter extractor.
	Theaters []string `toml:"theaters"`
}

// Ranking contains the default clarity-score weight vector.
type Ranking struct {
	Resolution float64 `toml:"resolution"`
	FPS        float64 `toml:"fps"`
	Codec      float64 `toml:"codec"`
}

// Query contains result sizing for the natural-language query pipeline.
type Query struct {
	ListLimit int `toml:"list_limit"`
	RankTopK  int `toml:"rank_top_k"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Feedscope.
//
// Configuration sections by subsystem:
//   - Paths: data directory, log directory, and API bind address
//   - Catalog: feed table backend and theater vocabulary
//   - Ranking: default clarity weight vector
//   - Query: result sizing for the query pipeline
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Catalog Catalog `toml:"catalog"`
	Ranking Ranking `toml:"ranking"`
	Query   Query   `toml:"query"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/feedscope/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("feedscope.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FeedsCSVPath returns the path to the CSV feed table inside the data directory.
func (c *Config) FeedsCSVPath() string {
	return filepath.Join(c.Paths.DataDir, "feeds.csv")
}

// FeedsDBPath returns the path to the SQLite feed table inside the data directory.
func (c *Config) FeedsDBPath() string {
	return filepath.Join(c.Paths.DataDir, "feeds.db")
}

// TableDefsPath returns the path to the declared feed-table schema CSV.
func (c *Config) TableDefsPath() string {
	return filepath.Join(c.Paths.DataDir, "table_defs.csv")
}

// EncoderParamsPath returns the path to the encoder parameter record.
func (c *Config) EncoderParamsPath() string {
	return filepath.Join(c.Paths.DataDir, "encoder_params.json")
}

// DecoderParamsPath returns the path to the decoder parameter record.
func (c *Config) DecoderParamsPath() string {
	return filepath.Join(c.Paths.DataDir, "decoder_params.json")
}

// EncoderSchemaPath returns the path to the declared encoder parameter schema.
func (c *Config) EncoderSchemaPath() string {
	return filepath.Join(c.Paths.DataDir, "encoder_schema.json")
}

// DecoderSchemaPath returns the path to the declared decoder parameter schema.
func (c *Config) DecoderSchemaPath() string {
	return filepath.Join(c.Paths.DataDir, "decoder_schema.json")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
