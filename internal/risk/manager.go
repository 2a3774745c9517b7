package risk

import (
	"fmt"
	"log"
	"sync"

	"TradeScout/internal/model"
)

// Manager holds the operator-adjustable analysis selection and risk level
// with concurrency safety. It is the `configure` surface the presentation
// layer calls into.
type Manager struct {
	mu       sync.Mutex
	state    *model.RiskState
	filePath string
	maxRisk  float64
}

// NewManager creates a Manager, loading or initializing state from disk.
func NewManager(filePath string, defaultPairs []string, riskPercent, accountBalance, maxRiskPercent float64) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}

	if len(state.SelectedPairs) == 0 {
		state.SelectedPairs = append([]string(nil), defaultPairs...)
	}
	if state.RiskPercent == 0 {
		state.RiskPercent = riskPercent
	}
	if state.AccountBalance == 0 {
		state.AccountBalance = accountBalance
	}

	m := &Manager{state: state, filePath: filePath, maxRisk: maxRiskPercent}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// GetState returns a copy of the current risk state.
func (m *Manager) GetState() model.RiskState {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := *m.state
	state.SelectedPairs = append([]string(nil), m.state.SelectedPairs...)
	return state
}

// Selected returns the pairs currently selected for analysis.
func (m *Manager) Selected() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.state.SelectedPairs...)
}

// Configure replaces the selection and risk level. The risk level is capped
// at the configured maximum.
func (m *Manager) Configure(pairs []string, riskPercent float64) error {
	if len(pairs) == 0 {
		return fmt.Errorf("at least one pair must be selected")
	}
	if riskPercent <= 0 {
		return fmt.Errorf("risk percent must be positive")
	}
	if riskPercent > m.maxRisk {
		riskPercent = m.maxRisk
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.SelectedPairs = append([]string(nil), pairs...)
	m.state.RiskPercent = riskPercent

	if err := m.save(); err != nil {
		log.Printf("[ERROR] failed to save risk state: %v", err)
	}
	return nil
}

// PositionSize suggests a unit size for the setup: the monetary risk budget
// (balance x risk%) spread over the stop distance. Returns 0 when the setup
// cannot be sized.
func (m *Manager) PositionSize(setup *model.TradeSetup) float64 {
	if setup == nil || setup.StopDistance <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	riskAmount := m.state.AccountBalance * m.state.RiskPercent / 100
	if riskAmount <= 0 {
		return 0
	}
	return riskAmount / setup.StopDistance
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}
