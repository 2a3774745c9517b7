package collector

import (
	"context"
	"fmt"
	"time"

	"TradeScout/internal/calculator"
	"TradeScout/internal/model"

	"github.com/go-resty/resty/v2"
)

// Scanner column names requested per timeframe, in response order.
var scanColumns = []string{"open", "high", "low", "close", "RSI", "ATR", "Recommend.All"}

// Interval suffixes appended to column names for sub-daily timeframes.
// Daily columns carry no suffix.
var intervalSuffix = map[model.Timeframe]string{
	model.TimeframeDaily: "",
	model.Timeframe4H:    "|240",
	model.Timeframe1H:    "|60",
	model.Timeframe15M:   "|15",
}

// TradingViewFetcher implements Fetcher against the TradingView scanner API.
type TradingViewFetcher struct {
	BaseURL string
	Client  *resty.Client
}

// NewTradingViewFetcher creates a fetcher with the given request timeout and
// optional proxy support.
func NewTradingViewFetcher(baseURL string, timeout time.Duration, proxyURL string) *TradingViewFetcher {
	client := resty.New()
	client.SetTimeout(timeout)
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &TradingViewFetcher{
		BaseURL: baseURL,
		Client:  client,
	}
}

func (f *TradingViewFetcher) Name() string { return "tradingview" }

// scanRequest is the POST body the scanner endpoint expects.
type scanRequest struct {
	Symbols struct {
		Tickers []string `json:"tickers"`
		Query   struct {
			Types []string `json:"types"`
		} `json:"query"`
	} `json:"symbols"`
	Columns []string `json:"columns"`
}

// scanResponse is the scanner's reply; d holds one value per requested
// column, null when the provider has no value.
type scanResponse struct {
	TotalCount int `json:"totalCount"`
	Data       []struct {
		Symbol string     `json:"s"`
		Values []*float64 `json:"d"`
	} `json:"data"`
}

// FetchSnapshot requests one instrument's indicator values at one timeframe
// and normalizes them into a TimeframeSnapshot. The ATR field is always
// populated: when the provider omits it, a single-period true-range fallback
// is used.
func (f *TradingViewFetcher) FetchSnapshot(ctx context.Context, inst model.InstrumentConfig, tf model.Timeframe) (*model.TimeframeSnapshot, error) {
	suffix, ok := intervalSuffix[tf]
	if !ok {
		return nil, fmt.Errorf("unsupported timeframe %q", tf)
	}
	columns := make([]string, len(scanColumns))
	for i, col := range scanColumns {
		columns[i] = col + suffix
	}

	var req scanRequest
	req.Symbols.Tickers = []string{inst.Ticker()}
	req.Symbols.Query.Types = []string{}
	req.Columns = columns

	var result scanResponse
	resp, err := f.Client.R().
		SetContext(ctx).
		SetBody(&req).
		SetResult(&result).
		Post(fmt.Sprintf("%s/%s/scan", f.BaseURL, inst.Screener))
	if err != nil {
		return nil, fmt.Errorf("scan %s %s: %w", inst.Ticker(), tf, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("scan %s %s: status %d", inst.Ticker(), tf, resp.StatusCode())
	}
	if len(result.Data) == 0 || len(result.Data[0].Values) != len(columns) {
		return nil, fmt.Errorf("scan %s %s: empty analysis", inst.Ticker(), tf)
	}

	values := result.Data[0].Values
	open, high, low, close := values[0], values[1], values[2], values[3]
	rsi, atr, recommend := values[4], values[5], values[6]

	if open == nil || high == nil || low == nil || close == nil {
		return nil, fmt.Errorf("scan %s %s: %w", inst.Ticker(), tf, ErrInsufficientData)
	}

	snap := &model.TimeframeSnapshot{
		Open:      *open,
		High:      *high,
		Low:       *low,
		Close:     *close,
		RSI:       rsi,
		FetchedAt: time.Now(),
	}
	if atr != nil {
		snap.ATR = *atr
	} else {
		snap.ATR = calculator.FallbackATR(*high, *low, close)
	}
	if recommend != nil {
		snap.Summary = summaryFromRecommend(*recommend)
	}
	return snap, nil
}

// summaryFromRecommend maps the scanner's Recommend.All score in [-1, 1]
// onto the provider's classification labels.
func summaryFromRecommend(score float64) string {
	switch {
	case score >= 0.5:
		return "STRONG_BUY"
	case score >= 0.1:
		return "BUY"
	case score > -0.1:
		return "NEUTRAL"
	case score > -0.5:
		return "SELL"
	default:
		return "STRONG_SELL"
	}
}
