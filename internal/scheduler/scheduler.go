package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"SignalScanner/internal/model"
	"SignalScanner/internal/notifier"
	"SignalScanner/internal/strategy"
)

// Analyzer scores symbols. Implemented by collector.Collector.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) model.ScoreReport
	AnalyzeAll(ctx context.Context, symbols []string) []model.ScoreReport
}

// Sender delivers formatted messages. Implemented by notifier.TelegramNotifier.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs periodic scans of the configured symbols.
type Scheduler struct {
	Cron     *cron.Cron
	Analyzer Analyzer
	Sender   Sender
	Symbols  []string
	TopN     int
	Ctx      context.Context
	Log      zerolog.Logger

	now func() time.Time
}

// NewScheduler creates a new Scheduler. sender may be nil, in which case scan
// results are only logged.
func NewScheduler(ctx context.Context, analyzer Analyzer, sender Sender, symbols []string, topN int, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Analyzer: analyzer,
		Sender:   sender,
		Symbols:  symbols,
		TopN:     topN,
		Ctx:      ctx,
		Log:      log,
		now:      time.Now,
	}
}

// Register adds the scan task under a six-field cron expression.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, func() { s.RunNow() }); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info().Int("entries", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info().Msg("scheduler stopped")
}

// RunNow scans every configured symbol, sends the ranked summary and
// returns the ranked reports.
func (s *Scheduler) RunNow() []model.ScoreReport {
	runID := uuid.NewString()
	log := s.Log.With().Str("run_id", runID).Logger()
	start := s.now()
	log.Info().Int("symbols", len(s.Symbols)).Msg("scan started")

	reports := s.Analyzer.AnalyzeAll(s.Ctx, s.Symbols)
	strategy.Rank(reports)

	failed := 0
	for i := range reports {
		if !reports[i].OK() {
			failed++
		}
	}
	log.Info().Int("scored", len(reports)-failed).Int("failed", failed).
		Dur("took", s.now().Sub(start)).Msg("scan finished")

	s.trySend(log, notifier.FormatRanking(reports, s.TopN, start))
	return reports
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	switch strings.ToLower(fields[0]) {
	case "/scan":
		reports := s.Analyzer.AnalyzeAll(ctx, s.Symbols)
		strategy.Rank(reports)
		return notifier.FormatRanking(reports, s.TopN, s.now())
	case "/score":
		if len(fields) < 2 {
			return "usage: /score SYMBOL"
		}
		report := s.Analyzer.Analyze(ctx, strings.ToUpper(fields[1]))
		return notifier.FormatReport(&report)
	default:
		return "commands:\n• /scan ranks the watchlist\n• /score SYMBOL scores one symbol"
	}
}

func (s *Scheduler) trySend(log zerolog.Logger, text string) {
	if s.Sender == nil {
		return
	}
	if err := s.Sender.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send scan summary failed")
	}
}
