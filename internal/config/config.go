package config

import (
	"fmt"
	"os"

	"TradeScout/internal/model"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. It is loaded once at startup
// and treated as immutable afterwards.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		ScanURL        string `yaml:"scan_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"data_source"`
	Schedule struct {
		CycleCron        string `yaml:"cycle_cron"`
		PairDelaySeconds int    `yaml:"pair_delay_seconds"`
	} `yaml:"schedule"`
	Trade struct {
		RiskRewards      []float64 `yaml:"risk_rewards"`
		FibRatios        []float64 `yaml:"fib_ratios"`
		ATRMultiplier    float64   `yaml:"atr_multiplier"`
		MaxRiskPercent   float64   `yaml:"max_risk_percent"`
		NeutralThreshold float64   `yaml:"neutral_threshold"`
		ZoneToleranceATR float64   `yaml:"zone_tolerance_atr"`
	} `yaml:"trade"`
	Risk struct {
		StateFile      string  `yaml:"state_file"`
		AccountBalance float64 `yaml:"account_balance"`
		DefaultPercent float64 `yaml:"default_percent"`
	} `yaml:"risk"`
	Timeframes       []model.Timeframe        `yaml:"timeframes"`
	PrimaryTimeframe model.Timeframe          `yaml:"primary_timeframe"`
	Instruments      []model.InstrumentConfig `yaml:"instruments"`
	Proxy            string                   `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SCAN_URL"); v != "" {
		cfg.DataSource.ScanURL = v
	}
	if v := os.Getenv("CYCLE_CRON"); v != "" {
		cfg.Schedule.CycleCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("ACCOUNT_BALANCE"); v != "" {
		var balance float64
		if _, err := fmt.Sscanf(v, "%f", &balance); err == nil {
			cfg.Risk.AccountBalance = balance
		}
	}

	// Defaults
	if cfg.DataSource.ScanURL == "" {
		cfg.DataSource.ScanURL = "https://scanner.tradingview.com"
	}
	if cfg.DataSource.TimeoutSeconds == 0 {
		cfg.DataSource.TimeoutSeconds = 10
	}
	if cfg.Schedule.CycleCron == "" {
		cfg.Schedule.CycleCron = "@every 5m"
	}
	if cfg.Schedule.PairDelaySeconds == 0 {
		cfg.Schedule.PairDelaySeconds = 1
	}
	if len(cfg.Trade.RiskRewards) == 0 {
		cfg.Trade.RiskRewards = []float64{1.5, 2.0, 3.0}
	}
	if len(cfg.Trade.FibRatios) == 0 {
		cfg.Trade.FibRatios = []float64{0.236, 0.382, 0.5, 0.618, 0.786, 0.886}
	}
	if cfg.Trade.ATRMultiplier == 0 {
		cfg.Trade.ATRMultiplier = 1.5
	}
	if cfg.Trade.MaxRiskPercent == 0 {
		cfg.Trade.MaxRiskPercent = 1.0
	}
	if cfg.Trade.NeutralThreshold == 0 {
		cfg.Trade.NeutralThreshold = 0.15
	}
	if cfg.Trade.ZoneToleranceATR == 0 {
		cfg.Trade.ZoneToleranceATR = 0.5
	}
	if cfg.Risk.StateFile == "" {
		cfg.Risk.StateFile = "data/risk_state.json"
	}
	if cfg.Risk.AccountBalance == 0 {
		cfg.Risk.AccountBalance = 10000
	}
	if cfg.Risk.DefaultPercent == 0 {
		cfg.Risk.DefaultPercent = 1.0
		if cfg.Trade.MaxRiskPercent < 1.0 {
			cfg.Risk.DefaultPercent = cfg.Trade.MaxRiskPercent
		}
	}
	if len(cfg.Timeframes) == 0 {
		cfg.Timeframes = []model.Timeframe{
			model.TimeframeDaily,
			model.Timeframe4H,
			model.Timeframe1H,
			model.Timeframe15M,
		}
	}
	if cfg.PrimaryTimeframe == "" {
		cfg.PrimaryTimeframe = model.Timeframe1H
	}
	if len(cfg.Instruments) == 0 {
		cfg.Instruments = DefaultInstruments()
	}

	return cfg, nil
}

// DefaultInstruments returns the built-in instrument table.
func DefaultInstruments() []model.InstrumentConfig {
	return []model.InstrumentConfig{
		{Name: "XAUUSD", Symbol: "XAUUSD", Exchange: "FX", Screener: "cfd", PipValue: 0.01, MinPips: 50},
		{Name: "AUDJPY", Symbol: "AUDJPY", Exchange: "FX", Screener: "forex", PipValue: 0.01, MinPips: 30},
		{Name: "GBPJPY", Symbol: "GBPJPY", Exchange: "FX", Screener: "forex", PipValue: 0.01, MinPips: 40},
		{Name: "SPX500", Symbol: "SPX", Exchange: "SP", Screener: "cfd", PipValue: 0.1, MinPips: 10},
		{Name: "USDJPY", Symbol: "USDJPY", Exchange: "FX", Screener: "forex", PipValue: 0.01, MinPips: 20},
	}
}

// Instrument looks up an instrument by name.
func (c *Config) Instrument(name string) (model.InstrumentConfig, bool) {
	for _, inst := range c.Instruments {
		if inst.Name == name {
			return inst, true
		}
	}
	return model.InstrumentConfig{}, false
}

// ContextTimeframe returns the next-higher timeframe above the primary one,
// or "" when the primary is already the highest. The timeframe list is
// configured highest-first.
func (c *Config) ContextTimeframe() model.Timeframe {
	for i, tf := range c.Timeframes {
		if tf == c.PrimaryTimeframe && i > 0 {
			return c.Timeframes[i-1]
		}
	}
	return ""
}

// PairNames returns the configured instrument names in table order.
func (c *Config) PairNames() []string {
	names := make([]string, len(c.Instruments))
	for i, inst := range c.Instruments {
		names[i] = inst.Name
	}
	return names
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if len(c.Timeframes) == 0 {
		return fmt.Errorf("timeframes must not be empty")
	}
	primaryFound := false
	for _, tf := range c.Timeframes {
		if tf == c.PrimaryTimeframe {
			primaryFound = true
		}
	}
	if !primaryFound {
		return fmt.Errorf("primary_timeframe %q is not in the timeframe list", c.PrimaryTimeframe)
	}
	if len(c.Instruments) == 0 {
		return fmt.Errorf("instruments must not be empty")
	}
	for _, inst := range c.Instruments {
		if inst.Name == "" || inst.Symbol == "" || inst.Exchange == "" || inst.Screener == "" {
			return fmt.Errorf("instrument %q: name, symbol, exchange and screener are required", inst.Name)
		}
		if inst.PipValue <= 0 {
			return fmt.Errorf("instrument %q: pip_value must be positive", inst.Name)
		}
		if inst.MinPips <= 0 {
			return fmt.Errorf("instrument %q: min_pips must be positive", inst.Name)
		}
	}
	if len(c.Trade.RiskRewards) != 3 {
		return fmt.Errorf("trade.risk_rewards must list exactly 3 ratios")
	}
	prev := 0.0
	for _, r := range c.Trade.RiskRewards {
		if r <= prev {
			return fmt.Errorf("trade.risk_rewards must be positive and strictly ascending")
		}
		prev = r
	}
	for _, r := range c.Trade.FibRatios {
		if r <= 0 || r >= 1 {
			return fmt.Errorf("trade.fib_ratios must lie strictly between 0 and 1")
		}
	}
	if c.Trade.ATRMultiplier <= 0 {
		return fmt.Errorf("trade.atr_multiplier must be positive")
	}
	if c.Trade.NeutralThreshold < 0 || c.Trade.NeutralThreshold >= 1 {
		return fmt.Errorf("trade.neutral_threshold must lie in [0, 1)")
	}
	if c.Risk.DefaultPercent <= 0 || c.Risk.DefaultPercent > c.Trade.MaxRiskPercent {
		return fmt.Errorf("risk.default_percent must lie in (0, max_risk_percent]")
	}
	return nil
}
