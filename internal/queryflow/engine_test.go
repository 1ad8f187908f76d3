package queryflow_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"

	"feedscope/internal/api"
	"feedscope/internal/config"
	"feedscope/internal/logging"
	"feedscope/internal/queryflow"
	"feedscope/internal/ranking"
	"feedscope/internal/testsupport"
)

func newEngine(t *testing.T) *queryflow.Engine {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	svc := api.NewFeedService(store, ranking.DefaultWeights(), logging.NewNop())
	return queryflow.New(svc, cfg, logging.NewNop())
}

func newEngineWithConfig(t *testing.T, mutate func(*config.Config)) *queryflow.Engine {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	mutate(cfg)
	store := testsupport.MustOpenStore(t, cfg)
	svc := api.NewFeedService(store, ranking.DefaultWeights(), logging.NewNop())
	return queryflow.New(svc, cfg, logging.NewNop())
}

func TestAnswerRankWithFiltersAndWeights(t *testing.T) {
	eng := newEngine(t)

	res, err := eng.Answer(context.Background(), "best clarity EUR 1080p h265")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}

	if res.Evidence.Intent != "rank_feeds" {
		t.Fatalf("unexpected intent %s", res.Evidence.Intent)
	}
	if _, err := uuid.Parse(res.Evidence.QueryID); err != nil {
		t.Fatalf("query id %q not a uuid: %v", res.Evidence.QueryID, err)
	}
	if res.Evidence.Weights["resolution"] != 0.6 {
		t.Fatalf("expected clarity weights, got %v", res.Evidence.Weights)
	}
	if len(res.Evidence.FeedIDs) != 1 || res.Evidence.FeedIDs[0] != "102" {
		t.Fatalf("expected only feed 102, got %v", res.Evidence.FeedIDs)
	}

	want := 0.6*1.0 + 0.2*0.5 + 0.2*1.0
	if math.Abs(res.Evidence.Scores[0].Score-want) > 1e-9 {
		t.Fatalf("expected score %v, got %v", want, res.Evidence.Scores[0].Score)
	}

	lines := strings.Split(res.Answer, "\n")
	if lines[0] != "Top feeds by clarity matching codec_in=H265,HEVC min_res_h=1080 min_res_w=1920 theater=EUR:" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "- 102 | EUR | 3840x2160 | 60 fps | H265 | score 0.900" {
		t.Fatalf("unexpected feed line %q", lines[1])
	}
}

func TestAnswerRankWithoutWeightTerm(t *testing.T) {
	eng := newEngine(t)

	res, err := eng.Answer(context.Background(), "rank feeds in PAC")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if res.Evidence.Weights != nil {
		t.Fatalf("expected no weight override, got %v", res.Evidence.Weights)
	}
	if len(res.Evidence.FeedIDs) != 1 || res.Evidence.FeedIDs[0] != "101" {
		t.Fatalf("expected only feed 101, got %v", res.Evidence.FeedIDs)
	}
}

func TestAnswerSanityCheck(t *testing.T) {
	eng := newEngine(t)

	res, err := eng.Answer(context.Background(), "check EUR feeds")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if res.Evidence.Intent != "sanity_check" {
		t.Fatalf("unexpected intent %s", res.Evidence.Intent)
	}
	// EUR feeds ranked: 102, 103, 107. Two of them draw findings.
	if len(res.Evidence.FeedIDs) != 3 {
		t.Fatalf("expected 3 ranked feeds, got %v", res.Evidence.FeedIDs)
	}
	if len(res.Evidence.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", res.Evidence.Issues)
	}
	if res.Evidence.Issues[0].FeedID != "102" || res.Evidence.Issues[1].FeedID != "107" {
		t.Fatalf("unexpected issue order %v", res.Evidence.Issues)
	}
	if !strings.Contains(res.Answer, "Constraints findings:") {
		t.Fatalf("expected findings section in answer:\n%s", res.Answer)
	}
	if !strings.Contains(res.Answer, "- [error] 102 - resolution_cap:") {
		t.Fatalf("expected resolution finding in answer:\n%s", res.Answer)
	}
}

func TestAnswerSanityCheckClean(t *testing.T) {
	eng := newEngine(t)

	res, err := eng.Answer(context.Background(), "check PAC feeds")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !strings.Contains(res.Answer, "No constraint issues found against current decoder caps.") {
		t.Fatalf("expected clean verdict in answer:\n%s", res.Answer)
	}
}

func TestAnswerListFeeds(t *testing.T) {
	eng := newEngine(t)

	res, err := eng.Answer(context.Background(), "list feeds in EUR")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if res.Evidence.Intent != "list_feeds" {
		t.Fatalf("unexpected intent %s", res.Evidence.Intent)
	}
	want := []string{"102", "103", "107"}
	if len(res.Evidence.FeedIDs) != 3 {
		t.Fatalf("expected %v, got %v", want, res.Evidence.FeedIDs)
	}
	for i, id := range want {
		if res.Evidence.FeedIDs[i] != id {
			t.Fatalf("expected %v, got %v", want, res.Evidence.FeedIDs)
		}
	}
	if len(res.Evidence.Scores) != 0 {
		t.Fatalf("list answers carry no scores, got %v", res.Evidence.Scores)
	}
	lines := strings.Split(res.Answer, "\n")
	if lines[0] != "Feeds matching theater=EUR:" {
		t.Fatalf("unexpected header %q", lines[0])
	}
}

func TestAnswerListHonorsConfiguredLimit(t *testing.T) {
	eng := newEngineWithConfig(t, func(cfg *config.Config) {
		cfg.Query.ListLimit = 2
	})

	res, err := eng.Answer(context.Background(), "list feeds")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if len(res.Evidence.FeedIDs) != 2 {
		t.Fatalf("expected configured limit 2, got %v", res.Evidence.FeedIDs)
	}
}

func TestAnswerRankHonorsConfiguredTopK(t *testing.T) {
	eng := newEngineWithConfig(t, func(cfg *config.Config) {
		cfg.Query.RankTopK = 3
	})

	res, err := eng.Answer(context.Background(), "rank all feeds")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if len(res.Evidence.FeedIDs) != 3 {
		t.Fatalf("expected top 3, got %v", res.Evidence.FeedIDs)
	}
	if res.Evidence.FeedIDs[0] != "102" {
		t.Fatalf("expected 102 first, got %v", res.Evidence.FeedIDs)
	}
}

func TestAnswerParams(t *testing.T) {
	eng := newEngine(t)

	res, err := eng.Answer(context.Background(), "show encoder settings")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if res.Evidence.Intent != "get_encoder" {
		t.Fatalf("unexpected intent %s", res.Evidence.Intent)
	}
	if len(res.Evidence.ParamsKeys) != 10 {
		t.Fatalf("expected params_keys capped at 10, got %v", res.Evidence.ParamsKeys)
	}
	lines := strings.Split(res.Answer, "\n")
	if lines[0] != "Encoder parameters:" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(res.Answer, "- codec: H265") {
		t.Fatalf("expected codec line in answer:\n%s", res.Answer)
	}

	dec, err := eng.Answer(context.Background(), "what are the decoder caps")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !strings.Contains(dec.Answer, "- cap_max_res_w: 1920") {
		t.Fatalf("expected decoder cap line in answer:\n%s", dec.Answer)
	}
}

func TestAnswerEmptyQuestion(t *testing.T) {
	eng := newEngine(t)
	if _, err := eng.Answer(context.Background(), "   "); !errors.Is(err, queryflow.ErrEmptyQuestion) {
		t.Fatalf("expected ErrEmptyQuestion, got %v", err)
	}
}

func TestAnswerCancelledContext(t *testing.T) {
	eng := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := eng.Answer(ctx, "list feeds"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}
