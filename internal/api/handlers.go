package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"SignalScanner/internal/model"
	"SignalScanner/internal/strategy"
)

// MaxSymbols bounds one /analyze request.
const MaxSymbols = 50

// Analyzer scores a batch of symbols, one report per symbol.
type Analyzer interface {
	AnalyzeAll(ctx context.Context, symbols []string) []model.ScoreReport
}

// Handler serves the analyze endpoint.
type Handler struct {
	analyzer       Analyzer
	defaultSymbols []string
	timeout        time.Duration
	log            zerolog.Logger
}

// NewHandler creates a Handler. defaultSymbols is used when a request names
// no symbols. timeout bounds one /analyze request; symbols still waiting on
// the data source when it expires are reported as fetch_failed. Zero means
// no limit.
func NewHandler(analyzer Analyzer, defaultSymbols []string, timeout time.Duration, log zerolog.Logger) *Handler {
	return &Handler{analyzer: analyzer, defaultSymbols: defaultSymbols, timeout: timeout, log: log}
}

// AnalyzeResponse is the /analyze payload, ranked by strategy.Rank.
type AnalyzeResponse struct {
	Results []model.ScoreReport `json:"results"`
}

// Analyze handles GET /analyze?symbols=AAPL,BTC/USD
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	symbols := ParseSymbols(r.URL.Query().Get("symbols"))
	if len(symbols) == 0 {
		symbols = h.defaultSymbols
	}
	if len(symbols) > MaxSymbols {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("at most %d symbols per request", MaxSymbols),
		})
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	start := time.Now()
	reports := h.analyzer.AnalyzeAll(ctx, symbols)
	strategy.Rank(reports)

	failed := 0
	for i := range reports {
		if !reports[i].OK() {
			failed++
		}
	}
	h.log.Info().Int("symbols", len(symbols)).Int("failed", failed).
		Dur("took", time.Since(start)).Msg("analyze request served")
	writeJSON(w, http.StatusOK, AnalyzeResponse{Results: reports})
}

// ParseSymbols splits a comma separated list, trimming blanks.
func ParseSymbols(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, strings.ToUpper(s))
		}
	}
	return out
}
