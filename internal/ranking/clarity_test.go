package ranking_test

import (
	"math"
	"testing"

	"feedscope/internal/catalog"
	"feedscope/internal/ranking"
	"feedscope/internal/testsupport"
)

func fixtureFeeds(t *testing.T) []catalog.Feed {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	return testsupport.MustOpenStore(t, cfg).Feeds()
}

func TestComputeMaxima(t *testing.T) {
	feeds := fixtureFeeds(t)
	m := ranking.ComputeMaxima(feeds)
	if m.Area != 3840*2160 {
		t.Fatalf("expected max area %d, got %v", 3840*2160, m.Area)
	}
	if m.FPS != 120 {
		t.Fatalf("expected max fps 120, got %v", m.FPS)
	}
}

func TestClarityScoreBounds(t *testing.T) {
	feeds := fixtureFeeds(t)
	m := ranking.ComputeMaxima(feeds)
	w := ranking.DefaultWeights()

	for _, feed := range feeds {
		score := ranking.ClarityScore(feed, m, w)
		if score < 0 || score > 1 {
			t.Fatalf("feed %s: score %v outside [0, 1]", feed.ID, score)
		}
	}
}

func TestClarityScoreValue(t *testing.T) {
	feeds := fixtureFeeds(t)
	m := ranking.ComputeMaxima(feeds)
	w := ranking.DefaultWeights()

	// Feed 106: quarter of max area, full fps, VP9 bonus.
	var feed catalog.Feed
	for _, f := range feeds {
		if f.ID == "106" {
			feed = f
		}
	}
	want := 0.5*0.25 + 0.3*1.0 + 0.2*0.9
	if got := ranking.ClarityScore(feed, m, w); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected score %v, got %v", want, got)
	}
}

func TestCodecBonusTiers(t *testing.T) {
	cases := []struct {
		codec string
		want  float64
	}{
		{"H265", 1.0},
		{"hevc", 1.0},
		{"AV1", 1.0},
		{"H264", 0.9},
		{"avc", 0.9},
		{"VP9", 0.9},
		{"MPEG2", 0.7},
		{"", 0.7},
	}
	for _, tc := range cases {
		if got := ranking.CodecBonus(tc.codec); got != tc.want {
			t.Errorf("codec %q: expected %v, got %v", tc.codec, tc.want, got)
		}
	}
}

func TestRankDefaultWeightsOrder(t *testing.T) {
	feeds := fixtureFeeds(t)
	m := ranking.ComputeMaxima(feeds)

	ranked := ranking.Rank(feeds, m, ranking.DefaultWeights(), -1)
	want := []string{"102", "106", "104", "101", "103", "107", "105"}
	if len(ranked) != len(want) {
		t.Fatalf("expected %d feeds, got %d", len(want), len(ranked))
	}
	for i, id := range want {
		if ranked[i].Feed.ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, ranked[i].Feed.ID)
		}
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Fatalf("scores not descending at position %d", i)
		}
	}
}

func TestRankStableOnEqualScores(t *testing.T) {
	feeds := fixtureFeeds(t)
	m := ranking.ComputeMaxima(feeds)

	// Resolution-only weights collapse 101, 104, and 106 to the same score;
	// they must keep catalog order.
	ranked := ranking.Rank(feeds, m, ranking.Weights{Resolution: 1}, -1)
	want := []string{"102", "101", "104", "106", "103", "107", "105"}
	for i, id := range want {
		if ranked[i].Feed.ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, ranked[i].Feed.ID)
		}
	}
}

func TestRankTopK(t *testing.T) {
	feeds := fixtureFeeds(t)
	m := ranking.ComputeMaxima(feeds)
	w := ranking.DefaultWeights()

	if got := ranking.Rank(feeds, m, w, 2); len(got) != 2 || got[0].Feed.ID != "102" {
		t.Fatalf("expected top 2 led by 102, got %v", got)
	}
	if got := ranking.Rank(feeds, m, w, 0); len(got) != 0 {
		t.Fatalf("expected empty ranking for topK=0, got %d feeds", len(got))
	}
	if got := ranking.Rank(feeds, m, w, 50); len(got) != len(feeds) {
		t.Fatalf("expected full ranking for oversized topK, got %d feeds", len(got))
	}
}

func TestRankEmptyCatalogGuardsDenominators(t *testing.T) {
	var m ranking.Maxima
	w := ranking.DefaultWeights()
	feed := catalog.Feed{ID: "1", Codec: "H265"}
	if got := ranking.ClarityScore(feed, m, w); got != 0.2 {
		t.Fatalf("expected codec-only score 0.2, got %v", got)
	}
	if got := ranking.Rank(nil, m, w, 5); len(got) != 0 {
		t.Fatalf("expected empty ranking, got %d", len(got))
	}
}

func TestWeightsMerge(t *testing.T) {
	w := ranking.DefaultWeights().Merge(map[string]float64{"fps": 0.6, "bogus": 1})
	if w.FPS != 0.6 || w.Resolution != 0.5 || w.Codec != 0.2 {
		t.Fatalf("unexpected merged weights %+v", w)
	}

	m := ranking.DefaultWeights().Map()
	if m["resolution"] != 0.5 || m["fps"] != 0.3 || m["codec"] != 0.2 {
		t.Fatalf("unexpected weight map %v", m)
	}
}
