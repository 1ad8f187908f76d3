package api

import (
	"feedscope/internal/catalog"
	"feedscope/internal/constraint"
)

// FeedItem is the wire form of one feed record. Optional columns serialize
// as absent rather than zero.
type FeedItem struct {
	FeedID    string   `json:"feed_id"`
	Theater   string   `json:"theater,omitempty"`
	ResW      *int     `json:"res_w,omitempty"`
	ResH      *int     `json:"res_h,omitempty"`
	FrameRate *float64 `json:"frame_rate,omitempty"`
	Codec     string   `json:"codec,omitempty"`
}

// RankedFeedItem is a feed with its clarity score attached.
type RankedFeedItem struct {
	FeedItem
	ClarityScore float64 `json:"clarity_score"`
}

// SchemaResponse carries the declared feed-table columns.
type SchemaResponse struct {
	Columns []catalog.TableColumn `json:"columns"`
}

// ListFeedsRequest selects feeds without ranking them. A nil Limit applies
// the default of 50; a negative limit returns everything.
type ListFeedsRequest struct {
	Theater string   `json:"theater,omitempty"`
	MinResW *int     `json:"min_res_w,omitempty"`
	MinResH *int     `json:"min_res_h,omitempty"`
	MinFPS  *float64 `json:"min_fps,omitempty"`
	CodecIn []string `json:"codec_in,omitempty"`
	Limit   *int     `json:"limit,omitempty"`
}

// ListFeedsResponse is the matching feeds in catalog order.
type ListFeedsResponse struct {
	Feeds []FeedItem `json:"feeds"`
}

// FilterAndRankRequest selects feeds and ranks them by clarity. A nil TopK
// applies the default of 10. Weights override individual components of the
// configured blend for this request only.
type FilterAndRankRequest struct {
	Theater string             `json:"theater,omitempty"`
	MinResW *int               `json:"min_res_w,omitempty"`
	MinResH *int               `json:"min_res_h,omitempty"`
	MinFPS  *float64           `json:"min_fps,omitempty"`
	CodecIn []string           `json:"codec_in,omitempty"`
	TopK    *int               `json:"top_k,omitempty"`
	Weights map[string]float64 `json:"weights,omitempty"`
}

// FilterAndRankResponse is the ranked feeds, best first.
type FilterAndRankResponse struct {
	Feeds []RankedFeedItem `json:"feeds"`
}

// ParamsResponse carries an encoder or decoder record as loaded from disk.
type ParamsResponse struct {
	Params map[string]any `json:"params"`
}

// SummarizeSelectionRequest names the feeds to summarize.
type SummarizeSelectionRequest struct {
	FeedIDs []string           `json:"feed_ids"`
	Weights map[string]float64 `json:"weights,omitempty"`
}

// SummaryRow is one summarized feed with its clarity score.
type SummaryRow struct {
	FeedItem
	ClarityScore float64 `json:"clarity_score"`
}

// SummarizeSelectionResponse holds summary rows in catalog order.
type SummarizeSelectionResponse struct {
	Rows []SummaryRow `json:"rows"`
}

// ExplainTermRequest asks how a perceptual phrase maps to ranking weights.
type ExplainTermRequest struct {
	Phrase string `json:"phrase"`
}

// ExplainTermResponse is the derived intent, weights, and reasoning notes.
type ExplainTermResponse struct {
	Intent  string             `json:"intent"`
	Weights map[string]float64 `json:"weights"`
	Notes   []string           `json:"notes"`
}

// SanityCheckRequest names the feeds to validate against decoder caps.
type SanityCheckRequest struct {
	FeedIDs []string `json:"feed_ids"`
}

// SanityCheckResponse is the findings, in feed order.
type SanityCheckResponse struct {
	Issues []constraint.Issue `json:"issues"`
}

func feedItem(f catalog.Feed) FeedItem {
	return FeedItem{
		FeedID:    f.ID,
		Theater:   f.Theater,
		ResW:      f.Width,
		ResH:      f.Height,
		FrameRate: f.FrameRate,
		Codec:     f.Codec,
	}
}
