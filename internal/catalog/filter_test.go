package catalog_test

import (
	"testing"

	"feedscope/internal/catalog"
	"feedscope/internal/testsupport"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func feedIDs(f []catalog.Feed) []string {
	ids := make([]string, len(f))
	for i, feed := range f {
		ids[i] = feed.ID
	}
	return ids
}

func TestFilterTheaterSubstringCaseInsensitive(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	got := feedIDs(store.Filter(catalog.Filter{Theater: "eur"}))
	want := []string{"102", "103", "107"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestFilterTheaterNeverMatchesMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithFeedsCSV(
		"FEED_ID,THEATER,RES_W,RES_H,FRRATE,CODEC\n301,,1920,1080,30,H264\n",
	))
	store := testsupport.MustOpenStore(t, cfg)
	if got := store.Filter(catalog.Filter{Theater: "EUR"}); len(got) != 0 {
		t.Fatalf("expected no match for missing theater, got %v", feedIDs(got))
	}
}

func TestFilterMinFPSExcludesMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	got := feedIDs(store.Filter(catalog.Filter{MinFPS: floatp(60)}))
	// Feed 105 has no frame rate and must be excluded, not errored.
	want := []string{"102", "106"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFilterMinResolutionExcludesMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	got := store.Filter(catalog.Filter{MinWidth: intp(1920), MinHeight: intp(1080)})
	for _, feed := range got {
		if feed.ID == "105" {
			t.Fatal("feed with missing resolution matched a min resolution predicate")
		}
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 feeds at 1080p or better, got %v", feedIDs(got))
	}
}

func TestFilterCodecMembershipUppercasesBothSides(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	got := feedIDs(store.Filter(catalog.Filter{Codecs: []string{"h264", "avc"}}))
	want := []string{"101", "103"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFilterConjunction(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	got := feedIDs(store.Filter(catalog.Filter{
		Theater: "EUR",
		MinFPS:  floatp(30),
		Codecs:  []string{"H265", "HEVC"},
	}))
	if len(got) != 1 || got[0] != "102" {
		t.Fatalf("expected only feed 102, got %v", got)
	}
}

func TestFilterZeroMatchesEverything(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	var empty catalog.Filter
	if !empty.IsZero() {
		t.Fatal("expected zero filter")
	}
	if got := store.Filter(empty); len(got) != store.Len() {
		t.Fatalf("expected all %d feeds, got %d", store.Len(), len(got))
	}
}

func TestFilterDescribe(t *testing.T) {
	f := catalog.Filter{Theater: "EUR", MinHeight: intp(1080), MinWidth: intp(1920), Codecs: []string{"H265", "HEVC"}}
	got := f.Describe()
	want := "codec_in=H265,HEVC min_res_h=1080 min_res_w=1920 theater=EUR"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if (catalog.Filter{}).Describe() != "" {
		t.Fatal("expected empty description for zero filter")
	}
}
