package model

// InstrumentConfig describes one tradable instrument. Loaded once at startup
// and never mutated afterwards.
type InstrumentConfig struct {
	Name     string  `yaml:"name"`
	Symbol   string  `yaml:"symbol"`
	Exchange string  `yaml:"exchange"`
	Screener string  `yaml:"screener"`
	PipValue float64 `yaml:"pip_value"`
	MinPips  float64 `yaml:"min_pips"`
}

// Ticker returns the provider's EXCHANGE:SYMBOL identifier.
func (i InstrumentConfig) Ticker() string {
	return i.Exchange + ":" + i.Symbol
}
