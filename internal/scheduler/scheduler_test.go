package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalScanner/internal/model"
)

type fakeAnalyzer struct {
	reports map[string]model.ScoreReport
	calls   []string
}

func (f *fakeAnalyzer) Analyze(_ context.Context, symbol string) model.ScoreReport {
	f.calls = append(f.calls, symbol)
	if r, ok := f.reports[symbol]; ok {
		return r
	}
	return model.ScoreReport{Symbol: symbol, Error: model.ErrCodeFetchFailed}
}

func (f *fakeAnalyzer) AnalyzeAll(ctx context.Context, symbols []string) []model.ScoreReport {
	out := make([]model.ScoreReport, len(symbols))
	for i, s := range symbols {
		out[i] = f.Analyze(ctx, s)
	}
	return out
}

type fakeSender struct {
	messages []string
	err      error
}

func (f *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	f.messages = append(f.messages, text)
	return f.err
}

func newTestScheduler(a Analyzer, s Sender) *Scheduler {
	sch := NewScheduler(context.Background(), a, s, []string{"AAPL", "MSFT", "XYZ"}, 2, zerolog.Nop())
	sch.now = func() time.Time { return time.Date(2024, 3, 1, 22, 30, 0, 0, time.UTC) }
	return sch
}

func sampleAnalyzer() *fakeAnalyzer {
	return &fakeAnalyzer{reports: map[string]model.ScoreReport{
		"AAPL": {Symbol: "AAPL", Price: 190, Score: 2, Conditions: model.ConditionSet{model.CondTrendUp: true, model.CondStrongTrend: true}},
		"MSFT": {Symbol: "MSFT", Price: 420, Score: 4, Conditions: model.ConditionSet{model.CondTrendUp: true}},
	}}
}

func TestRunNowRanksAndSends(t *testing.T) {
	sender := &fakeSender{}
	sch := newTestScheduler(sampleAnalyzer(), sender)

	reports := sch.RunNow()
	require.Len(t, reports, 3)
	assert.Equal(t, "MSFT", reports[0].Symbol)
	assert.Equal(t, "AAPL", reports[1].Symbol)
	assert.Equal(t, "XYZ", reports[2].Symbol)

	require.Len(t, sender.messages, 1)
	msg := sender.messages[0]
	assert.Contains(t, msg, "2024-03-01 22:30")
	assert.Contains(t, msg, "1. <b>MSFT</b> 4/7")
	assert.Contains(t, msg, "2. <b>AAPL</b> 2/7")
	assert.Contains(t, msg, "XYZ (fetch_failed)")
}

func TestRunNowWithoutSender(t *testing.T) {
	sch := newTestScheduler(sampleAnalyzer(), nil)
	assert.Len(t, sch.RunNow(), 3)
}

func TestRunNowSendFailureIsLogged(t *testing.T) {
	sender := &fakeSender{err: errors.New("telegram down")}
	sch := newTestScheduler(sampleAnalyzer(), sender)
	assert.Len(t, sch.RunNow(), 3)
	assert.Len(t, sender.messages, 1)
}

func TestRegister(t *testing.T) {
	sch := newTestScheduler(sampleAnalyzer(), nil)
	require.NoError(t, sch.Register("0 30 22 * * 1-5"))
	assert.Len(t, sch.Cron.Entries(), 1)

	assert.Error(t, sch.Register("not a cron"))
	assert.Error(t, sch.Register("30 22 * * 1-5"), "five-field expression lacks seconds")
}

func TestHandleCommand(t *testing.T) {
	a := sampleAnalyzer()
	sch := newTestScheduler(a, nil)
	ctx := context.Background()

	reply := sch.HandleCommand(ctx, "/scan")
	assert.Contains(t, reply, "1. <b>MSFT</b>")

	a.calls = nil
	reply = sch.HandleCommand(ctx, "/score aapl")
	assert.Equal(t, []string{"AAPL"}, a.calls)
	assert.Contains(t, reply, "<b>AAPL</b> score 2/7")

	assert.Equal(t, "usage: /score SYMBOL", sch.HandleCommand(ctx, "/score"))
	assert.Contains(t, sch.HandleCommand(ctx, "hello"), "/scan")
	assert.Empty(t, sch.HandleCommand(ctx, "   "))
}
