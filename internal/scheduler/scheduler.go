package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"TradeScout/internal/analyzer"
	"TradeScout/internal/collector"
	"TradeScout/internal/model"
	"TradeScout/internal/notifier"
	"TradeScout/internal/risk"
	"TradeScout/internal/strategy"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the recurring analysis cycle. The pipeline itself knows
// nothing about timing; cancellation flows in through the context.
type Scheduler struct {
	Cron      *cron.Cron
	Analyzer  *analyzer.PairAnalyzer
	Risk      *risk.Manager
	Notifier  notifier.Notifier
	Ctx       context.Context
	PairDelay time.Duration

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, pa *analyzer.PairAnalyzer, rm *risk.Manager, n notifier.Notifier, pairDelay time.Duration) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Analyzer:  pa,
		Risk:      rm,
		Notifier:  n,
		Ctx:       ctx,
		PairDelay: pairDelay,
	}
}

// Register adds the recurring analysis cycle.
func (s *Scheduler) Register(cycleCron string) error {
	if _, err := s.Cron.AddFunc(cycleCron, s.runCycle); err != nil {
		return fmt.Errorf("register analysis cycle: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunCycleNow executes an analysis cycle immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunCycleNow() {
	s.runCycle()
}

// runCycle analyzes every selected pair in sequence. One pair's failure
// never aborts the cycle for the others; a cycle with zero setups is a
// valid, reportable outcome. Overlapping cycles are skipped.
func (s *Scheduler) runCycle() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Println("[WARN] previous analysis cycle still running, skipping")
		return
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	pairs := s.Risk.Selected()
	log.Printf("[INFO] running analysis cycle for %d pairs", len(pairs))

	var setups []*model.TradeSetup
	for i, pair := range pairs {
		if s.Ctx.Err() != nil {
			log.Println("[INFO] analysis cycle cancelled")
			return
		}
		// Provider rate limits: space out per-pair analyses.
		if i > 0 && s.PairDelay > 0 {
			select {
			case <-s.Ctx.Done():
				return
			case <-time.After(s.PairDelay):
			}
		}

		setup, err := s.Analyzer.Analyze(s.Ctx, pair)
		if err != nil {
			if errors.Is(err, strategy.ErrNoSignal) {
				log.Printf("[INFO] %s: market neutral, no setup", pair)
			} else if errors.Is(err, collector.ErrPrimaryUnavailable) {
				log.Printf("[WARN] %s: %v", pair, err)
			} else {
				log.Printf("[WARN] analyze %s: %v", pair, err)
			}
			continue
		}
		setups = append(setups, setup)
	}

	s.report(setups, len(pairs))
}

func (s *Scheduler) report(setups []*model.TradeSetup, analyzed int) {
	log.Printf("[INFO] cycle complete: %d setups from %d pairs", len(setups), analyzed)

	if s.Notifier.Name() == "console" {
		s.trySend(notifier.FormatCycleTable(setups))
		return
	}

	if len(setups) == 0 {
		s.trySend(fmt.Sprintf("📭 No valid trade setups found (%d pairs analyzed).", analyzed))
		return
	}
	for _, setup := range setups {
		s.trySend(notifier.FormatSetupReport(setup, s.Risk.PositionSize(setup)))
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "/analyze":
		go s.RunCycleNow()
		return "Analysis cycle started."
	case "/status":
		state := s.Risk.GetState()
		return notifier.FormatRiskStatus(&state)
	case "/risk":
		if len(fields) != 2 {
			return "Usage: /risk <percent>, e.g. /risk 1.5"
		}
		pct, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return "Usage: /risk <percent>, e.g. /risk 1.5"
		}
		if err := s.Risk.Configure(s.Risk.Selected(), pct); err != nil {
			return fmt.Sprintf("Cannot set risk level: %v", err)
		}
		state := s.Risk.GetState()
		return fmt.Sprintf("Risk level set to %.1f%%.", state.RiskPercent)
	case "/pairs":
		if len(fields) != 2 {
			return "Usage: /pairs <A,B,C>, e.g. /pairs XAUUSD,USDJPY"
		}
		pairs := strings.Split(fields[1], ",")
		state := s.Risk.GetState()
		if err := s.Risk.Configure(pairs, state.RiskPercent); err != nil {
			return fmt.Sprintf("Cannot set pairs: %v", err)
		}
		return fmt.Sprintf("Now analyzing: %s", strings.Join(pairs, ", "))
	default:
		return "Available commands:\n• /analyze — run a cycle now\n• /status — show risk configuration\n• /risk <percent>\n• /pairs <A,B,C>"
	}
}

// retrySender is implemented by notifiers that support backoff retries.
type retrySender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

func (s *Scheduler) trySend(text string) {
	var err error
	if rs, ok := s.Notifier.(retrySender); ok {
		err = rs.SendWithRetry(s.Ctx, text, 3)
	} else {
		err = s.Notifier.Send(text)
	}
	if err != nil {
		log.Printf("[ERROR] send report: %v", err)
	}
}
