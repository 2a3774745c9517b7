package model

import "time"

// RiskState tracks the operator-configurable analysis selection and risk
// level. This is working configuration, not analysis history.
type RiskState struct {
	SelectedPairs  []string  `json:"selected_pairs"`
	RiskPercent    float64   `json:"risk_percent"`
	AccountBalance float64   `json:"account_balance"`
	UpdatedAt      time.Time `json:"updated_at"`
}
