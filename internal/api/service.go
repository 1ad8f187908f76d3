package api

import (
	"log/slog"

	"feedscope/internal/catalog"
	"feedscope/internal/constraint"
	"feedscope/internal/logging"
	"feedscope/internal/nlquery"
	"feedscope/internal/ranking"
)

const (
	defaultListLimit = 50
	defaultRankTopK  = 10
)

// FeedService answers structured queries over the loaded catalog. Maxima are
// computed once over the full catalog at construction so clarity scores stay
// comparable across requests.
type FeedService struct {
	store   *catalog.Store
	maxima  ranking.Maxima
	weights ranking.Weights
	logger  *slog.Logger
}

// NewFeedService wires a service over an open store. baseWeights is the
// configured blend used when a request carries no override.
func NewFeedService(store *catalog.Store, baseWeights ranking.Weights, logger *slog.Logger) *FeedService {
	return &FeedService{
		store:   store,
		maxima:  ranking.ComputeMaxima(store.Feeds()),
		weights: baseWeights,
		logger:  logging.WithComponent(logger, "api"),
	}
}

// BaseWeights returns the configured blend before any per-request override.
func (s *FeedService) BaseWeights() ranking.Weights {
	return s.weights
}

// GetTableSchema returns the declared feed-table columns.
func (s *FeedService) GetTableSchema() SchemaResponse {
	return SchemaResponse{Columns: s.store.Columns()}
}

// ListFeeds returns matching feeds in catalog order, truncated to the
// request limit.
func (s *FeedService) ListFeeds(req ListFeedsRequest) ListFeedsResponse {
	feeds := s.store.Filter(catalog.Filter{
		Theater:   req.Theater,
		MinWidth:  req.MinResW,
		MinHeight: req.MinResH,
		MinFPS:    req.MinFPS,
		Codecs:    req.CodecIn,
	})

	limit := defaultListLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	if limit >= 0 && limit < len(feeds) {
		feeds = feeds[:limit]
	}

	items := make([]FeedItem, len(feeds))
	for i, f := range feeds {
		items[i] = feedItem(f)
	}
	s.logger.Debug("listed feeds", logging.Int("matched", len(items)))
	return ListFeedsResponse{Feeds: items}
}

// FilterAndRank selects feeds and ranks them by clarity score, best first.
// Request weights override individual components for this call only.
func (s *FeedService) FilterAndRank(req FilterAndRankRequest) FilterAndRankResponse {
	feeds := s.store.Filter(catalog.Filter{
		Theater:   req.Theater,
		MinWidth:  req.MinResW,
		MinHeight: req.MinResH,
		MinFPS:    req.MinFPS,
		Codecs:    req.CodecIn,
	})

	topK := defaultRankTopK
	if req.TopK != nil {
		topK = *req.TopK
	}
	w := s.weights.Merge(req.Weights)
	ranked := ranking.Rank(feeds, s.maxima, w, topK)

	items := make([]RankedFeedItem, len(ranked))
	for i, r := range ranked {
		items[i] = RankedFeedItem{FeedItem: feedItem(r.Feed), ClarityScore: r.Score}
	}
	s.logger.Debug("ranked feeds",
		logging.Int("matched", len(feeds)),
		logging.Int("returned", len(items)))
	return FilterAndRankResponse{Feeds: items}
}

// GetEncoderParams returns the encoder record as loaded from disk.
func (s *FeedService) GetEncoderParams() ParamsResponse {
	return ParamsResponse{Params: s.store.EncoderParams()}
}

// GetDecoderParams returns the decoder record as loaded from disk.
func (s *FeedService) GetDecoderParams() ParamsResponse {
	return ParamsResponse{Params: s.store.DecoderParamsRaw()}
}

// SummarizeSelection scores the named feeds and returns them in catalog
// order. Unknown IDs are dropped silently.
func (s *FeedService) SummarizeSelection(req SummarizeSelectionRequest) SummarizeSelectionResponse {
	feeds := s.store.ByIDs(req.FeedIDs)
	w := s.weights.Merge(req.Weights)

	rows := make([]SummaryRow, len(feeds))
	for i, f := range feeds {
		rows[i] = SummaryRow{
			FeedItem:     feedItem(f),
			ClarityScore: ranking.ClarityScore(f, s.maxima, w),
		}
	}
	return SummarizeSelectionResponse{Rows: rows}
}

// ExplainTerm maps a perceptual phrase to ranking weights.
func (s *FeedService) ExplainTerm(req ExplainTermRequest) ExplainTermResponse {
	exp := nlquery.ExplainTerm(req.Phrase)
	notes := exp.Notes
	if notes == nil {
		notes = []string{}
	}
	return ExplainTermResponse{
		Intent:  string(exp.Intent),
		Weights: exp.Weights.Map(),
		Notes:   notes,
	}
}

// SanityCheck validates the named feeds against the decoder record. Unknown
// IDs are ignored.
func (s *FeedService) SanityCheck(req SanityCheckRequest) SanityCheckResponse {
	feeds := s.store.ByIDs(req.FeedIDs)
	issues := constraint.Check(feeds, s.store.Decoder())
	if issues == nil {
		issues = []constraint.Issue{}
	}
	s.logger.Debug("sanity check",
		logging.Int("feeds", len(feeds)),
		logging.Int("issues", len(issues)))
	return SanityCheckResponse{Issues: issues}
}
