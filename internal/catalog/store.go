package catalog

import (
	"fmt"
	"log/slog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"feedscope/internal/config"
	"feedscope/internal/logging"
)

var upper = cases.Upper(language.Und)

// Store holds the loaded feed catalog and parameter records. It is immutable
// after Open returns; all accessors are safe for concurrent use.
type Store struct {
	feeds   []Feed
	byID    map[string]int
	columns []TableColumn

	encoderRaw map[string]any
	decoderRaw map[string]any
	decoder    DecoderParams
}

// Open loads the catalog from the configured data directory. Schema-validation
// mismatches are logged as warnings and do not fail the load; duplicate or
// empty feed IDs do.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("catalog: nil config")
	}
	log := logging.WithComponent(logger, "catalog")

	encoderRaw, err := loadParams(cfg.EncoderParamsPath(), cfg.EncoderSchemaPath(), "encoder", log)
	if err != nil {
		return nil, err
	}
	decoderRaw, err := loadParams(cfg.DecoderParamsPath(), cfg.DecoderSchemaPath(), "decoder", log)
	if err != nil {
		return nil, err
	}
	decoder := decodeDecoderParams(decoderRaw)

	columns, err := loadTableDefs(cfg.TableDefsPath())
	if err != nil {
		return nil, err
	}

	var feeds []Feed
	switch cfg.Catalog.Source {
	case "sqlite":
		feeds, err = loadFeedsSQLite(cfg.FeedsDBPath())
	default:
		feeds, err = loadFeedsCSV(cfg.FeedsCSVPath())
	}
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(feeds))
	for i := range feeds {
		feeds[i].Codec = upper.String(feeds[i].Codec)
		id := feeds[i].ID
		if id == "" {
			return nil, fmt.Errorf("catalog: feed at row %d has empty FEED_ID", i+1)
		}
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("catalog: duplicate FEED_ID %q", id)
		}
		byID[id] = i
	}

	log.Info("catalog loaded",
		logging.Int("feeds", len(feeds)),
		logging.Int("columns", len(columns)),
		logging.String("source", cfg.Catalog.Source),
	)

	return &Store{
		feeds:      feeds,
		byID:       byID,
		columns:    columns,
		encoderRaw: encoderRaw,
		decoderRaw: decoderRaw,
		decoder:    decoder,
	}, nil
}

// Len returns the number of feeds in the catalog.
func (s *Store) Len() int {
	return len(s.feeds)
}

// Feeds returns all feeds in catalog order. Callers must not mutate the slice.
func (s *Store) Feeds() []Feed {
	return s.feeds
}

// Filter returns the feeds satisfying every present predicate, preserving
// catalog order. Pure read; no side effects.
func (s *Store) Filter(f Filter) []Feed {
	var out []Feed
	for _, feed := range s.feeds {
		if f.Matches(feed) {
			out = append(out, feed)
		}
	}
	return out
}

// Get returns the feed with the given ID, if present.
func (s *Store) Get(id string) (Feed, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return Feed{}, false
	}
	return s.feeds[idx], true
}

// ByIDs returns the feeds matching the given IDs in catalog order. Unknown IDs
// are silently omitted; this leniency is deliberate so selection-based
// operations never fail on stale IDs.
func (s *Store) ByIDs(ids []string) []Feed {
	if len(ids) == 0 {
		return nil
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var out []Feed
	for _, feed := range s.feeds {
		if _, ok := wanted[feed.ID]; ok {
			out = append(out, feed)
		}
	}
	return out
}

// Columns returns the declared feed-table schema.
func (s *Store) Columns() []TableColumn {
	return s.columns
}

// EncoderParams returns the encoder parameter record as loaded.
func (s *Store) EncoderParams() map[string]any {
	return copyMap(s.encoderRaw)
}

// DecoderParamsRaw returns the decoder parameter record as loaded.
func (s *Store) DecoderParamsRaw() map[string]any {
	return copyMap(s.decoderRaw)
}

// Decoder returns the typed decoder capability record.
func (s *Store) Decoder() DecoderParams {
	return s.decoder
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
