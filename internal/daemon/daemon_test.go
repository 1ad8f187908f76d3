package daemon_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"feedscope/internal/api"
	"feedscope/internal/config"
	"feedscope/internal/daemon"
	"feedscope/internal/logging"
	"feedscope/internal/queryflow"
	"feedscope/internal/testsupport"
)

func startDaemon(t *testing.T, opts ...testsupport.ConfigOption) (*daemon.Daemon, *config.Config) {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	store := testsupport.MustOpenStore(t, cfg)
	d, err := daemon.New(cfg, store, logging.NewNop())
	if err != nil {
		t.Fatalf("new daemon: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("start daemon: %v", err)
	}
	t.Cleanup(d.Stop)
	return d, cfg
}

func getJSON(t *testing.T, url, token string, out any) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url, token string, body, out any) int {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestDaemonHealthEndpoint(t *testing.T) {
	d, _ := startDaemon(t)

	var health struct {
		Status string `json:"status"`
		Feeds  int    `json:"feeds"`
	}
	status := getJSON(t, "http://"+d.Addr()+"/api/health", "", &health)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if health.Status != "ok" || health.Feeds != 7 {
		t.Fatalf("unexpected health payload %+v", health)
	}
}

func TestDaemonQueryEndpoint(t *testing.T) {
	d, _ := startDaemon(t)

	var result queryflow.Result
	status := postJSON(t, "http://"+d.Addr()+"/api/query", "", map[string]string{
		"question": "best clarity EUR 1080p h265",
	}, &result)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if result.Evidence.Intent != "rank_feeds" {
		t.Fatalf("unexpected intent %s", result.Evidence.Intent)
	}
	if len(result.Evidence.FeedIDs) != 1 || result.Evidence.FeedIDs[0] != "102" {
		t.Fatalf("unexpected feeds %v", result.Evidence.FeedIDs)
	}

	if status := postJSON(t, "http://"+d.Addr()+"/api/query", "", map[string]string{"question": ""}, nil); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty question, got %d", status)
	}
}

func TestDaemonFeedsEndpoint(t *testing.T) {
	d, _ := startDaemon(t)

	var listed api.ListFeedsResponse
	status := getJSON(t, "http://"+d.Addr()+"/api/feeds?theater=EUR", "", &listed)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(listed.Feeds) != 3 {
		t.Fatalf("expected 3 EUR feeds, got %d", len(listed.Feeds))
	}

	var ranked api.FilterAndRankResponse
	status = getJSON(t, "http://"+d.Addr()+"/api/feeds?rank=1&theater=EUR&top_k=2", "", &ranked)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(ranked.Feeds) != 2 || ranked.Feeds[0].FeedID != "102" {
		t.Fatalf("unexpected ranking %+v", ranked.Feeds)
	}
	if ranked.Feeds[0].ClarityScore <= ranked.Feeds[1].ClarityScore {
		t.Fatal("expected descending scores")
	}
}

func TestDaemonParamsAndSchemaEndpoints(t *testing.T) {
	d, _ := startDaemon(t)

	var schema api.SchemaResponse
	if status := getJSON(t, "http://"+d.Addr()+"/api/schema", "", &schema); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(schema.Columns) != 6 {
		t.Fatalf("expected 6 columns, got %d", len(schema.Columns))
	}

	var enc api.ParamsResponse
	if status := getJSON(t, "http://"+d.Addr()+"/api/encoder", "", &enc); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if enc.Params["codec"] != "H265" {
		t.Fatalf("unexpected encoder params %v", enc.Params)
	}

	var dec api.ParamsResponse
	if status := getJSON(t, "http://"+d.Addr()+"/api/decoder", "", &dec); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if dec.Params["cap_max_res_h"] != float64(1080) {
		t.Fatalf("unexpected decoder params %v", dec.Params)
	}
}

func TestDaemonCheckAndSummarizeEndpoints(t *testing.T) {
	d, _ := startDaemon(t)

	var check api.SanityCheckResponse
	status := postJSON(t, "http://"+d.Addr()+"/api/check", "", api.SanityCheckRequest{
		FeedIDs: []string{"102", "101"},
	}, &check)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(check.Issues) != 1 || check.Issues[0].Kind != "resolution_cap" {
		t.Fatalf("unexpected issues %+v", check.Issues)
	}

	var summary api.SummarizeSelectionResponse
	status = postJSON(t, "http://"+d.Addr()+"/api/summarize", "", api.SummarizeSelectionRequest{
		FeedIDs: []string{"101", "102"},
	}, &summary)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(summary.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(summary.Rows))
	}
}

func TestDaemonBearerAuth(t *testing.T) {
	d, _ := startDaemon(t, testsupport.WithAPIToken("sekrit"))
	base := "http://" + d.Addr()

	// Health stays open.
	if status := getJSON(t, base+"/api/health", "", nil); status != http.StatusOK {
		t.Fatalf("expected open health endpoint, got %d", status)
	}

	if status := getJSON(t, base+"/api/feeds", "", nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
	if status := getJSON(t, base+"/api/feeds", "wrong", nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", status)
	}
	if status := getJSON(t, base+"/api/feeds", "sekrit", nil); status != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", status)
	}
}

func TestDaemonMethodNotAllowed(t *testing.T) {
	d, _ := startDaemon(t)
	if status := postJSON(t, "http://"+d.Addr()+"/api/schema", "", struct{}{}, nil); status != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", status)
	}
	if status := getJSON(t, "http://"+d.Addr()+"/api/check", "", nil); status != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", status)
	}
}

func TestDaemonSingleInstanceLock(t *testing.T) {
	_, cfg := startDaemon(t)

	store := testsupport.MustOpenStore(t, cfg)
	second, err := daemon.New(cfg, store, logging.NewNop())
	if err != nil {
		t.Fatalf("new daemon: %v", err)
	}
	if err := second.Start(context.Background()); err == nil {
		second.Stop()
		t.Fatal("expected second instance to fail the lock")
	}
}

func TestDaemonStopReleasesLock(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	d, err := daemon.New(cfg, store, logging.NewNop())
	if err != nil {
		t.Fatalf("new daemon: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	d.Stop()

	again, err := daemon.New(cfg, store, logging.NewNop())
	if err != nil {
		t.Fatalf("new daemon: %v", err)
	}
	if err := again.Start(context.Background()); err != nil {
		t.Fatalf("expected restart after stop, got %v", err)
	}
	again.Stop()
}
