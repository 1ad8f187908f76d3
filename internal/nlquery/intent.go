package nlquery

import "strings"

// Intent is the operation a question resolves to.
type Intent string

const (
	IntentGetEncoder  Intent = "get_encoder"
	IntentGetDecoder  Intent = "get_decoder"
	IntentSanityCheck Intent = "sanity_check"
	IntentListFeeds   Intent = "list_feeds"
	IntentRankFeeds   Intent = "rank_feeds"
)

// intentRules is evaluated top to bottom; the first rule with a matching
// keyword wins, so "check encoder compatibility" resolves to the encoder
// lookup rather than the constraint check.
var intentRules = []struct {
	intent   Intent
	keywords []string
}{
	{IntentGetEncoder, []string{"encoder"}},
	{IntentGetDecoder, []string{"decoder"}},
	{IntentSanityCheck, []string{"check", "validate", "compatibility", "constraints"}},
	{IntentListFeeds, []string{"list feeds", "show feeds", "which cameras", "which feeds"}},
	{IntentRankFeeds, []string{"best clarity", "rank", "top", "best", "smooth", "latency"}},
}

// Classify maps a question to an intent. Questions matching no rule default
// to ranking.
func Classify(question string) Intent {
	q := strings.ToLower(question)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.intent
			}
		}
	}
	return IntentRankFeeds
}
