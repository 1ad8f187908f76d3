package queryflow

import (
	"fmt"
	"sort"
	"strings"

	"feedscope/internal/api"
	"feedscope/internal/catalog"
	"feedscope/internal/constraint"
)

const paramsKeyLimit = 10

func formatParams(title string, params map[string]any) Result {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := []string{title + " parameters:"}
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("- %s: %v", k, params[k]))
	}

	evidenceKeys := keys
	if len(evidenceKeys) > paramsKeyLimit {
		evidenceKeys = evidenceKeys[:paramsKeyLimit]
	}
	return Result{
		Answer:   strings.Join(lines, "\n"),
		Evidence: Evidence{ParamsKeys: evidenceKeys},
	}
}

func formatFeedList(filter catalog.Filter, feeds []api.FeedItem) Result {
	header := "Feeds:"
	if !filter.IsZero() {
		header = fmt.Sprintf("Feeds matching %s:", filter.Describe())
	}

	lines := []string{header}
	ids := make([]string, 0, len(feeds))
	for _, item := range feeds {
		ids = append(ids, item.FeedID)
		lines = append(lines, fmt.Sprintf("- %s | %s | %s | %s fps | %s",
			item.FeedID, orDash(item.Theater), resolution(item), fpsLabel(item), orDash(item.Codec)))
	}

	return Result{
		Answer: strings.Join(lines, "\n"),
		Evidence: Evidence{
			Filters: filter.Map(),
			FeedIDs: ids,
		},
	}
}

func formatRanked(filter catalog.Filter, weights map[string]float64, ranked []api.RankedFeedItem, issues []constraint.Issue, withCheck bool) Result {
	header := "Top feeds by clarity:"
	if !filter.IsZero() {
		header = fmt.Sprintf("Top feeds by clarity matching %s:", filter.Describe())
	}

	lines := []string{header}
	ids := make([]string, 0, len(ranked))
	scores := make([]ScoreEntry, 0, len(ranked))
	for _, item := range ranked {
		ids = append(ids, item.FeedID)
		scores = append(scores, ScoreEntry{FeedID: item.FeedID, Score: item.ClarityScore})
		lines = append(lines, fmt.Sprintf("- %s | %s | %s | %s fps | %s | score %.3f",
			item.FeedID, orDash(item.Theater), resolution(item.FeedItem), fpsLabel(item.FeedItem), orDash(item.Codec), item.ClarityScore))
	}

	if withCheck {
		if len(issues) > 0 {
			lines = append(lines, "Constraints findings:")
			for _, iss := range issues {
				lines = append(lines, fmt.Sprintf("- [%s] %s - %s: %s", iss.Severity, iss.FeedID, iss.Kind, iss.Detail))
			}
		} else {
			lines = append(lines, "No constraint issues found against current decoder caps.")
		}
	}

	return Result{
		Answer: strings.Join(lines, "\n"),
		Evidence: Evidence{
			Filters: filter.Map(),
			Weights: weights,
			FeedIDs: ids,
			Scores:  scores,
			Issues:  issues,
		},
	}
}

func resolution(item api.FeedItem) string {
	if item.ResW == nil || item.ResH == nil {
		return "-"
	}
	return fmt.Sprintf("%dx%d", *item.ResW, *item.ResH)
}

func fpsLabel(item api.FeedItem) string {
	if item.FrameRate == nil {
		return "-"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", *item.FrameRate), "0"), ".")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
