package queryflow

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"feedscope/internal/api"
	"feedscope/internal/catalog"
	"feedscope/internal/config"
	"feedscope/internal/constraint"
	"feedscope/internal/logging"
	"feedscope/internal/nlquery"
)

// ErrEmptyQuestion is returned for blank input.
var ErrEmptyQuestion = errors.New("question is empty")

// ScoreEntry records one ranked feed's score in the evidence payload.
type ScoreEntry struct {
	FeedID string  `json:"feed_id"`
	Score  float64 `json:"score"`
}

// Evidence is the structured trail behind an answer: what was parsed from
// the question and what the dispatch produced.
type Evidence struct {
	QueryID    string             `json:"query_id"`
	Intent     string             `json:"intent"`
	Filters    map[string]any     `json:"filters,omitempty"`
	Weights    map[string]float64 `json:"weights,omitempty"`
	FeedIDs    []string           `json:"feed_ids,omitempty"`
	Scores     []ScoreEntry       `json:"scores,omitempty"`
	Issues     []constraint.Issue `json:"issues,omitempty"`
	ParamsKeys []string           `json:"params_keys,omitempty"`
}

// Result is a formatted answer with its evidence.
type Result struct {
	Answer   string   `json:"answer"`
	Evidence Evidence `json:"evidence"`
}

// Engine runs questions through classification, dispatch, and formatting.
type Engine struct {
	service   *api.FeedService
	extractor *nlquery.Extractor
	listLimit int
	rankTopK  int
	logger    *slog.Logger
}

// New builds an engine over the service, sized by the query config section.
func New(service *api.FeedService, cfg *config.Config, logger *slog.Logger) *Engine {
	return &Engine{
		service:   service,
		extractor: nlquery.NewExtractor(cfg.Catalog.Theaters),
		listLimit: cfg.Query.ListLimit,
		rankTopK:  cfg.Query.RankTopK,
		logger:    logging.WithComponent(logger, "queryflow"),
	}
}

// Answer resolves one question end to end.
func (e *Engine) Answer(ctx context.Context, question string) (Result, error) {
	if strings.TrimSpace(question) == "" {
		return Result{}, ErrEmptyQuestion
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	intent := nlquery.Classify(question)
	filter := e.extractor.Extract(question)
	queryID := uuid.NewString()

	e.logger.Info("question classified",
		logging.String("query_id", queryID),
		logging.String("intent", string(intent)),
		logging.String("filters", filter.Describe()))

	var result Result
	switch intent {
	case nlquery.IntentGetEncoder:
		result = formatParams("Encoder", e.service.GetEncoderParams().Params)
	case nlquery.IntentGetDecoder:
		result = formatParams("Decoder", e.service.GetDecoderParams().Params)
	case nlquery.IntentListFeeds:
		result = e.listFeeds(filter)
	case nlquery.IntentSanityCheck:
		result = e.rankFeeds(question, filter, true)
	default:
		result = e.rankFeeds(question, filter, false)
	}

	result.Evidence.QueryID = queryID
	result.Evidence.Intent = string(intent)
	return result, nil
}

func (e *Engine) listFeeds(filter catalog.Filter) Result {
	limit := e.listLimit
	resp := e.service.ListFeeds(api.ListFeedsRequest{
		Theater: filter.Theater,
		MinResW: filter.MinWidth,
		MinResH: filter.MinHeight,
		MinFPS:  filter.MinFPS,
		CodecIn: filter.Codecs,
		Limit:   &limit,
	})
	return formatFeedList(filter, resp.Feeds)
}

// rankFeeds handles both plain ranking and the constraint check, which runs
// the checker over the ranked selection.
func (e *Engine) rankFeeds(question string, filter catalog.Filter, withCheck bool) Result {
	var weights map[string]float64
	if nlquery.HasWeightTerm(question) {
		weights = nlquery.ExplainTerm(question).Weights.Map()
	}

	topK := e.rankTopK
	ranked := e.service.FilterAndRank(api.FilterAndRankRequest{
		Theater: filter.Theater,
		MinResW: filter.MinWidth,
		MinResH: filter.MinHeight,
		MinFPS:  filter.MinFPS,
		CodecIn: filter.Codecs,
		TopK:    &topK,
		Weights: weights,
	}).Feeds

	var issues []constraint.Issue
	if withCheck {
		ids := make([]string, len(ranked))
		for i, item := range ranked {
			ids[i] = item.FeedID
		}
		issues = e.service.SanityCheck(api.SanityCheckRequest{FeedIDs: ids}).Issues
	}

	return formatRanked(filter, weights, ranked, issues, withCheck)
}
