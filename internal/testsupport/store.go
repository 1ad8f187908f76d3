package testsupport

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"feedscope/internal/catalog"
	"feedscope/internal/config"
	"feedscope/internal/logging"
)

// MustOpenStore opens the catalog for a test config, failing the test on error.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()
	store, err := catalog.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	return store
}

// SeedSQLiteFeeds writes the default fixture feeds into feeds.db so a config
// with catalog.source = "sqlite" loads the same dataset as the CSV fixture.
func SeedSQLiteFeeds(t testing.TB, cfg *config.Config) {
	t.Helper()

	db, err := sql.Open("sqlite", cfg.FeedsDBPath())
	if err != nil {
		t.Fatalf("open fixture database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE feeds (
        feed_id TEXT NOT NULL,
        theater TEXT,
        res_w INTEGER,
        res_h INTEGER,
        frrate REAL,
        codec TEXT
    )`); err != nil {
		t.Fatalf("create fixture table: %v", err)
	}

	rows := []struct {
		id      string
		theater any
		w, h    any
		fps     any
		codec   any
	}{
		{"101", "PAC", 1920, 1080, 30.0, "H264"},
		{"102", "EUR", 3840, 2160, 60.0, "H265"},
		{"103", "EUR", 1280, 720, 25.0, "h264"},
		{"104", "CONUS", 1920, 1080, 59.94, "AV1"},
		{"105", "ME", nil, nil, nil, nil},
		{"106", "AFR", 1920, 1080, 120.0, "VP9"},
		{"107", "EUR", 720, 480, 15.0, "MPEG2"},
	}
	for _, row := range rows {
		if _, err := db.Exec(
			`INSERT INTO feeds (feed_id, theater, res_w, res_h, frrate, codec) VALUES (?, ?, ?, ?, ?, ?)`,
			row.id, row.theater, row.w, row.h, row.fps, row.codec,
		); err != nil {
			t.Fatalf("insert fixture feed %s: %v", row.id, err)
		}
	}
}
