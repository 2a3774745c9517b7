package scheduler

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"TradeScout/internal/analyzer"
	"TradeScout/internal/collector"
	"TradeScout/internal/config"
	"TradeScout/internal/model"
	"TradeScout/internal/risk"
)

// captureNotifier records sent messages for assertions.
type captureNotifier struct {
	messages []string
}

func (c *captureNotifier) Name() string { return "console" }
func (c *captureNotifier) Send(text string) error {
	c.messages = append(c.messages, text)
	return nil
}

// retryNotifier additionally exposes the backoff-retry capability.
type retryNotifier struct {
	captureNotifier
	retryCalls int
}

func (r *retryNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	r.retryCalls++
	r.messages = append(r.messages, text)
	return nil
}

func bullishSnapshot() *model.TimeframeSnapshot {
	rsi := 62.0
	return &model.TimeframeSnapshot{
		Open: 1990, High: 2005, Low: 1985, Close: 2000,
		RSI: &rsi, ATR: 3.0, Summary: "BUY",
	}
}

func newTestScheduler(t *testing.T, fetcher collector.Fetcher, pairs []string) (*Scheduler, *captureNotifier) {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	col := collector.NewCollector(fetcher, cfg.Timeframes, cfg.PrimaryTimeframe)
	pa := analyzer.NewPairAnalyzer(col, cfg)
	rm, err := risk.NewManager(filepath.Join(t.TempDir(), "risk.json"), pairs, 1.0, 10000, 5.0)
	if err != nil {
		t.Fatal(err)
	}
	n := &captureNotifier{}
	return NewScheduler(context.Background(), pa, rm, n, 0), n
}

func TestRunCycle_ProducesReport(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Snapshots: map[model.Timeframe]*model.TimeframeSnapshot{
			model.TimeframeDaily: bullishSnapshot(),
			model.Timeframe4H:    bullishSnapshot(),
			model.Timeframe1H:    bullishSnapshot(),
			model.Timeframe15M:   bullishSnapshot(),
		},
	}
	sched, n := newTestScheduler(t, fetcher, []string{"XAUUSD", "USDJPY"})

	sched.RunCycleNow()

	if len(n.messages) != 1 {
		t.Fatalf("expected one cycle report, got %d", len(n.messages))
	}
	report := n.messages[0]
	if !strings.Contains(report, "XAUUSD") || !strings.Contains(report, "USDJPY") {
		t.Errorf("report missing pairs:\n%s", report)
	}
	if !strings.Contains(report, "BULLISH") {
		t.Errorf("report missing bias:\n%s", report)
	}
}

func TestRunCycle_NeutralPairSkipped(t *testing.T) {
	rsi := 50.0
	flat := &model.TimeframeSnapshot{Open: 2000, High: 2001, Low: 1999, Close: 2000, RSI: &rsi, ATR: 1}
	fetcher := &collector.MockFetcher{
		Snapshots: map[model.Timeframe]*model.TimeframeSnapshot{
			model.TimeframeDaily: flat,
			model.Timeframe4H:    flat,
			model.Timeframe1H:    flat,
			model.Timeframe15M:   flat,
		},
	}
	sched, n := newTestScheduler(t, fetcher, []string{"XAUUSD"})

	sched.RunCycleNow()

	// A cycle with zero setups is still a reportable outcome, not a crash.
	if len(n.messages) != 1 {
		t.Fatalf("expected one report, got %d", len(n.messages))
	}
	if !strings.Contains(n.messages[0], "No valid trade setups") {
		t.Errorf("expected empty-cycle report, got:\n%s", n.messages[0])
	}
}

func TestTrySend_UsesRetryWhenAvailable(t *testing.T) {
	n := &retryNotifier{}
	sched := &Scheduler{Notifier: n, Ctx: context.Background()}

	sched.trySend("report")

	if n.retryCalls != 1 {
		t.Fatalf("expected retry path, got %d retry calls", n.retryCalls)
	}
	if len(n.messages) != 1 || n.messages[0] != "report" {
		t.Errorf("message not delivered: %v", n.messages)
	}

	// Plain notifiers fall back to a single send.
	plain := &captureNotifier{}
	sched = &Scheduler{Notifier: plain, Ctx: context.Background()}
	sched.trySend("report")
	if len(plain.messages) != 1 {
		t.Errorf("expected direct send, got %v", plain.messages)
	}
}

func TestHandleCommand(t *testing.T) {
	sched, _ := newTestScheduler(t, &collector.MockFetcher{}, []string{"XAUUSD"})

	if reply := sched.HandleCommand("/risk 2.5"); !strings.Contains(reply, "2.5") {
		t.Errorf("unexpected /risk reply: %q", reply)
	}
	if reply := sched.HandleCommand("/risk 99"); !strings.Contains(reply, "5.0") {
		t.Errorf("expected capped risk reply, got %q", reply)
	}
	if reply := sched.HandleCommand("/pairs GBPJPY,USDJPY"); !strings.Contains(reply, "GBPJPY") {
		t.Errorf("unexpected /pairs reply: %q", reply)
	}
	if got := sched.Risk.Selected(); len(got) != 2 || got[0] != "GBPJPY" {
		t.Errorf("selection not applied: %v", got)
	}
	if reply := sched.HandleCommand("/status"); !strings.Contains(reply, "GBPJPY") {
		t.Errorf("unexpected /status reply: %q", reply)
	}
	if reply := sched.HandleCommand("/bogus"); !strings.Contains(reply, "Available commands") {
		t.Errorf("expected help text, got %q", reply)
	}
	if reply := sched.HandleCommand("/risk abc"); !strings.Contains(reply, "Usage") {
		t.Errorf("expected usage text, got %q", reply)
	}
}
