package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TradeScout/internal/analyzer"
	"TradeScout/internal/collector"
	"TradeScout/internal/config"
	"TradeScout/internal/notifier"
	"TradeScout/internal/risk"
	"TradeScout/internal/scheduler"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TradeScout starting...")

	// Optional .env for local development
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher and aggregator
	fetcher := collector.NewTradingViewFetcher(
		cfg.DataSource.ScanURL,
		time.Duration(cfg.DataSource.TimeoutSeconds)*time.Second,
		cfg.Proxy,
	)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, cfg.Timeframes, cfg.PrimaryTimeframe)

	// Init pair analyzer
	pa := analyzer.NewPairAnalyzer(col, cfg)

	// Init risk manager
	rm, err := risk.NewManager(
		cfg.Risk.StateFile,
		cfg.PairNames(),
		cfg.Risk.DefaultPercent,
		cfg.Risk.AccountBalance,
		cfg.Trade.MaxRiskPercent,
	)
	if err != nil {
		log.Fatalf("[FATAL] init risk manager: %v", err)
	}

	// Init notifier: Telegram when configured, console otherwise
	var n notifier.Notifier
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = tn
	} else {
		n = notifier.NewConsoleNotifier()
	}
	log.Printf("[INFO] notifier: %s", n.Name())

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, pa, rm, n,
		time.Duration(cfg.Schedule.PairDelaySeconds)*time.Second)
	if err := sched.Register(cfg.Schedule.CycleCron); err != nil {
		log.Fatalf("[FATAL] register analysis cycle: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling when available
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing analysis cycle now")
		go sched.RunCycleNow()
	}

	log.Println("[INFO] TradeScout is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] TradeScout stopped")
}
