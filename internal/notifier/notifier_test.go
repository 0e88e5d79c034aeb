package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalScanner/internal/model"
)

func newTestNotifier(t *testing.T, handler http.HandlerFunc) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	n := NewTelegramNotifier("TOKEN", "42", "", zerolog.Nop())
	n.APIBase = srv.URL
	n.backoff = time.Millisecond
	return n
}

func TestSend(t *testing.T) {
	var got map[string]string
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, n.Send(context.Background(), "<b>hi</b>"))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "<b>hi</b>", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestSendWithRetry(t *testing.T) {
	var calls int32
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "busy", http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, n.SendWithRetry(context.Background(), "x", 3))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSendWithRetryGivesUp(t *testing.T) {
	var calls int32
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "nope", http.StatusBadRequest)
	})

	err := n.SendWithRetry(context.Background(), "x", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 3 attempts failed")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestPollDispatchesCommands(t *testing.T) {
	var sent []string
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botTOKEN/getUpdates":
			assert.Equal(t, "7", r.URL.Query().Get("offset"))
			_, _ = w.Write([]byte(`{"ok":true,"result":[
				{"update_id":7,"message":{"text":" /score aapl "}},
				{"update_id":8},
				{"update_id":9,"message":{"text":"ignored"}}]}`))
		case "/botTOKEN/sendMessage":
			var p map[string]string
			_ = json.NewDecoder(r.Body).Decode(&p)
			sent = append(sent, p["text"])
		}
	})

	var commands []string
	handler := func(_ context.Context, cmd string) string {
		commands = append(commands, cmd)
		if cmd == "ignored" {
			return ""
		}
		return "reply:" + cmd
	}
	next, err := n.poll(context.Background(), n.Client, 7, handler)
	require.NoError(t, err)
	assert.Equal(t, 10, next)
	assert.Equal(t, []string{"/score aapl", "ignored"}, commands)
	assert.Equal(t, []string{"reply:/score aapl"}, sent)
}

func TestFormatRanking(t *testing.T) {
	reports := []model.ScoreReport{
		{Symbol: "NVDA", Price: 900, Score: 5, Conditions: model.ConditionSet{
			model.CondTrendUp: true, model.CondMACDCrossUp: true, model.CondOversold: false,
		}},
		{Symbol: "AAPL", Price: 190, Score: 3},
		{Symbol: "MSFT", Price: 420, Score: 1},
		{Symbol: "BAD", Error: model.ErrCodeNotEnoughData},
	}
	at := time.Date(2024, 3, 1, 22, 30, 0, 0, time.UTC)

	out := FormatRanking(reports, 2, at)
	assert.Contains(t, out, "2024-03-01 22:30")
	assert.Contains(t, out, "1. <b>NVDA</b> 5/7 @ 900.00")
	assert.Contains(t, out, "EMA50>EMA200, MACD cross")
	assert.Contains(t, out, "2. <b>AAPL</b> 3/7")
	assert.NotContains(t, out, "MSFT")
	assert.Contains(t, out, "skipped: BAD (not_enough_data)")

	empty := FormatRanking([]model.ScoreReport{{Symbol: "X", Error: model.ErrCodeFetchFailed}}, 5, at)
	assert.Contains(t, empty, "No symbol could be scored.")
}

func TestFormatReport(t *testing.T) {
	r := model.ScoreReport{
		Symbol: "AAPL", Price: 190.5, Score: 1,
		AsOf:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Conditions: model.ConditionSet{model.CondStrongTrend: true},
	}
	out := FormatReport(&r)
	assert.Contains(t, out, "<b>AAPL</b> score 1/7")
	assert.Contains(t, out, "close 190.50 as of 2024-03-01")
	assert.Contains(t, out, "✅ ADX>25")
	assert.Contains(t, out, "▫️ RSI<30")

	failed := model.ScoreReport{Symbol: "X<Y", Error: model.ErrCodeInvalidData}
	assert.Equal(t, "❌ X&lt;Y: invalid_data", FormatReport(&failed))
}
