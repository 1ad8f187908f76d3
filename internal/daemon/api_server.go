package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"log/slog"

	"feedscope/internal/api"
	"feedscope/internal/config"
	"feedscope/internal/logging"
)

type apiServer struct {
	bind   string
	token  string
	logger *slog.Logger
	daemon *Daemon

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) *apiServer {
	srv := &apiServer{
		bind:   strings.TrimSpace(cfg.Paths.APIBind),
		token:  cfg.Paths.APIToken,
		logger: logging.WithComponent(logger, "api-server"),
		daemon: d,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", srv.handleHealth)
	mux.HandleFunc("/api/query", authMiddleware(srv.token, srv.handleQuery))
	mux.HandleFunc("/api/feeds", authMiddleware(srv.token, srv.handleFeeds))
	mux.HandleFunc("/api/schema", authMiddleware(srv.token, srv.handleSchema))
	mux.HandleFunc("/api/encoder", authMiddleware(srv.token, srv.handleEncoder))
	mux.HandleFunc("/api/decoder", authMiddleware(srv.token, srv.handleDecoder))
	mux.HandleFunc("/api/check", authMiddleware(srv.token, srv.handleCheck))
	mux.HandleFunc("/api/summarize", authMiddleware(srv.token, srv.handleSummarize))

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr returns the bound address, empty before start.
func (s *apiServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

type healthResponse struct {
	Status  string `json:"status"`
	Feeds   int    `json:"feeds"`
	DataDir string `json:"data_dir"`
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status := s.daemon.Status()
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Feeds:   status.Feeds,
		DataDir: status.DataDir,
	})
}

type queryRequest struct {
	Question string `json:"question"`
}

func (s *apiServer) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := s.daemon.engine.Answer(r.Context(), req.Question)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *apiServer) handleFeeds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	theater := strings.TrimSpace(query.Get("theater"))
	minResW := intParam(query.Get("min_res_w"))
	minResH := intParam(query.Get("min_res_h"))
	minFPS := floatParam(query.Get("min_fps"))
	var codecs []string
	if value := strings.TrimSpace(query.Get("codec")); value != "" {
		for _, codec := range strings.Split(value, ",") {
			if codec = strings.TrimSpace(codec); codec != "" {
				codecs = append(codecs, codec)
			}
		}
	}

	if query.Get("rank") == "1" || strings.EqualFold(query.Get("rank"), "true") {
		resp := s.daemon.service.FilterAndRank(api.FilterAndRankRequest{
			Theater: theater,
			MinResW: minResW,
			MinResH: minResH,
			MinFPS:  minFPS,
			CodecIn: codecs,
			TopK:    intParam(query.Get("top_k")),
		})
		s.writeJSON(w, http.StatusOK, resp)
		return
	}

	resp := s.daemon.service.ListFeeds(api.ListFeedsRequest{
		Theater: theater,
		MinResW: minResW,
		MinResH: minResH,
		MinFPS:  minFPS,
		CodecIn: codecs,
		Limit:   intParam(query.Get("limit")),
	})
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleSchema(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, s.daemon.service.GetTableSchema())
}

func (s *apiServer) handleEncoder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, s.daemon.service.GetEncoderParams())
}

func (s *apiServer) handleDecoder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, s.daemon.service.GetDecoderParams())
}

func (s *apiServer) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req api.SanityCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.writeJSON(w, http.StatusOK, s.daemon.service.SanityCheck(req))
}

func (s *apiServer) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req api.SummarizeSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.writeJSON(w, http.StatusOK, s.daemon.service.SummarizeSelection(req))
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func intParam(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &parsed
}

func floatParam(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
