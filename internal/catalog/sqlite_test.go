package catalog_test

import (
	"testing"

	"feedscope/internal/catalog"
	"feedscope/internal/logging"
	"feedscope/internal/testsupport"
)

func TestOpenSQLiteSourceMatchesCSVFixture(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCatalogSource("sqlite"))
	testsupport.SeedSQLiteFeeds(t, cfg)

	store := testsupport.MustOpenStore(t, cfg)
	if store.Len() != 7 {
		t.Fatalf("expected 7 feeds, got %d", store.Len())
	}

	feed, ok := store.Get("104")
	if !ok {
		t.Fatal("expected feed 104")
	}
	if feed.FrameRate == nil || *feed.FrameRate != 59.94 {
		t.Fatalf("expected frame rate 59.94, got %v", feed.FrameRate)
	}

	missing, ok := store.Get("105")
	if !ok {
		t.Fatal("expected feed 105")
	}
	if missing.Width != nil || missing.FrameRate != nil || missing.Codec != "" {
		t.Fatalf("expected NULL columns mapped to missing fields, got %+v", missing)
	}

	// Same codec normalization as the CSV path.
	lower, _ := store.Get("103")
	if lower.Codec != "H264" {
		t.Fatalf("expected codec uppercased, got %q", lower.Codec)
	}
}

func TestOpenSQLiteMissingDatabase(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCatalogSource("sqlite"))
	if _, err := catalog.Open(cfg, logging.NewNop()); err == nil {
		t.Fatal("expected error when feeds.db is absent")
	}
}
