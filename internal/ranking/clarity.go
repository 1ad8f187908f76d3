package ranking

import (
	"sort"
	"strings"

	"feedscope/internal/catalog"
)

// Maxima holds the per-component normalization ceilings. They are computed
// once over the full catalog so scores stay comparable across queries no
// matter which filters were applied.
type Maxima struct {
	Area float64
	FPS  float64
}

// ComputeMaxima scans the feeds for the largest pixel area and frame rate.
func ComputeMaxima(feeds []catalog.Feed) Maxima {
	var m Maxima
	for _, feed := range feeds {
		if area := feed.Area(); area > m.Area {
			m.Area = area
		}
		if fps := feed.FPS(); fps > m.FPS {
			m.FPS = fps
		}
	}
	return m
}

// ResolutionScore normalizes the feed's pixel area into [0, 1]. A catalog
// with no resolutions at all scores everything zero.
func (m Maxima) ResolutionScore(feed catalog.Feed) float64 {
	denom := m.Area
	if denom <= 0 {
		denom = 1
	}
	return feed.Area() / denom
}

// FPSScore normalizes the feed's frame rate into [0, 1].
func (m Maxima) FPSScore(feed catalog.Feed) float64 {
	denom := m.FPS
	if denom <= 0 {
		denom = 1
	}
	return feed.FPS() / denom
}

// CodecBonus rates codec efficiency: modern codecs score full marks, common
// mainstream codecs slightly below, anything else gets a flat floor.
func CodecBonus(codec string) float64 {
	switch strings.ToUpper(codec) {
	case "H265", "HEVC", "AV1":
		return 1.0
	case "H264", "AVC", "VP9":
		return 0.9
	default:
		return 0.7
	}
}

// ClarityScore blends the three components by the given weights.
func ClarityScore(feed catalog.Feed, m Maxima, w Weights) float64 {
	return w.Resolution*m.ResolutionScore(feed) + w.FPS*m.FPSScore(feed) + w.Codec*CodecBonus(feed.Codec)
}

// ScoredFeed pairs a feed with its clarity score.
type ScoredFeed struct {
	Feed  catalog.Feed
	Score float64
}

// Rank scores the feeds and returns them in descending score order, keeping
// input order between equal scores. topK limits the result; zero yields an
// empty slice and a negative value returns the full ranking.
func Rank(feeds []catalog.Feed, m Maxima, w Weights, topK int) []ScoredFeed {
	if topK == 0 {
		return []ScoredFeed{}
	}

	scored := make([]ScoredFeed, len(feeds))
	for i, feed := range feeds {
		scored[i] = ScoredFeed{Feed: feed, Score: ClarityScore(feed, m, w)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK > 0 && topK < len(scored) {
		scored = scored[:topK]
	}
	return scored
}
