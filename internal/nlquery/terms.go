package nlquery

import (
	"strings"

	"feedscope/internal/ranking"
)

// TermExplanation describes how a perceptual phrase influences ranking.
type TermExplanation struct {
	Intent  Intent
	Weights ranking.Weights
	Notes   []string
}

// termRules map perceptual vocabulary to weight presets. The first matching
// rule wins.
var termRules = []struct {
	keywords []string
	weights  ranking.Weights
	note     string
}{
	{
		keywords: []string{"clarity", "sharp", "detail"},
		weights:  ranking.Weights{Resolution: 0.6, FPS: 0.2, Codec: 0.2},
		note:     "clarity -> resolution heavy, then codec, some fps",
	},
	{
		keywords: []string{"smooth", "fluid"},
		weights:  ranking.Weights{Resolution: 0.3, FPS: 0.6, Codec: 0.1},
		note:     "smooth -> fps heavy",
	},
	{
		keywords: []string{"low latency", "latency"},
		weights:  ranking.Weights{Resolution: 0.2, FPS: 0.6, Codec: 0.2},
		note:     "latency -> fps heavy placeholder",
	},
}

// weightTerms are the vocabulary that makes a ranking question carry a
// weight preset at all.
var weightTerms = []string{"clarity", "smooth", "latency"}

// ExplainTerm maps a phrase to the ranking weights it implies. Phrases with
// no recognized vocabulary get the default blend and no notes.
func ExplainTerm(phrase string) TermExplanation {
	p := strings.ToLower(phrase)
	for _, rule := range termRules {
		for _, kw := range rule.keywords {
			if strings.Contains(p, kw) {
				return TermExplanation{
					Intent:  IntentRankFeeds,
					Weights: rule.weights,
					Notes:   []string{rule.note},
				}
			}
		}
	}
	return TermExplanation{Intent: IntentRankFeeds, Weights: ranking.DefaultWeights()}
}

// HasWeightTerm reports whether the question carries perceptual vocabulary
// that should override the default ranking weights.
func HasWeightTerm(question string) bool {
	q := strings.ToLower(question)
	for _, term := range weightTerms {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}
