package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"SignalScanner/internal/model"
)

// TwelveDataFetcher implements Fetcher using the TwelveData time_series API.
// Requests are throttled to the plan's per-minute quota.
type TwelveDataFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	limiter *rate.Limiter
}

// NewTwelveDataFetcher creates a fetcher allowing requestsPerMinute calls.
// A non-positive requestsPerMinute disables throttling.
func NewTwelveDataFetcher(baseURL, apiKey string, requestsPerMinute int, timeout time.Duration, proxyURL string) *TwelveDataFetcher {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(requestsPerMinute))
	}
	return &TwelveDataFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL, timeout),
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (f *TwelveDataFetcher) Name() string { return "twelvedata" }

// tdResponse is the time_series payload. Numbers arrive as strings.
type tdResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Values  []struct {
		Datetime string `json:"datetime"`
		Open     string `json:"open"`
		High     string `json:"high"`
		Low      string `json:"low"`
		Close    string `json:"close"`
		Volume   string `json:"volume"`
	} `json:"values"`
}

func (f *TwelveDataFetcher) FetchDailyBars(ctx context.Context, symbol string, count int) ([]model.OHLCV, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("twelvedata rate limit: %w", err)
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", "1day")
	q.Set("outputsize", strconv.Itoa(count))
	q.Set("apikey", f.APIKey)
	q.Set("timezone", "UTC")
	q.Set("order", "ASC")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+"/time_series?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twelvedata fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("twelvedata read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("twelvedata: status %d, body: %s", resp.StatusCode, string(body))
	}

	var td tdResponse
	if err := json.Unmarshal(body, &td); err != nil {
		return nil, fmt.Errorf("twelvedata decode: %w", err)
	}
	if td.Status == "error" {
		return nil, fmt.Errorf("twelvedata api error %d: %s", td.Code, td.Message)
	}

	bars := make([]model.OHLCV, 0, len(td.Values))
	for _, v := range td.Values {
		ts, err := parseTDTime(v.Datetime)
		if err != nil {
			continue
		}
		o, errO := strconv.ParseFloat(v.Open, 64)
		h, errH := strconv.ParseFloat(v.High, 64)
		l, errL := strconv.ParseFloat(v.Low, 64)
		c, errC := strconv.ParseFloat(v.Close, 64)
		if errO != nil || errH != nil || errL != nil || errC != nil {
			continue // drop bars with missing prices
		}
		// forex and index series carry no volume
		vol, _ := strconv.ParseFloat(v.Volume, 64)
		bars = append(bars, model.OHLCV{Time: ts, Open: o, High: h, Low: l, Close: c, Volume: vol})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > count {
		bars = bars[len(bars)-count:]
	}
	return bars, nil
}

func parseTDTime(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", s)
}
