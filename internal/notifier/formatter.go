package notifier

import (
	"fmt"
	"strings"
	"time"

	"TradeScout/internal/model"

	"github.com/olekukonko/tablewriter"
)

// FormatCycleTable renders one analysis cycle's setups as a console table.
func FormatCycleTable(setups []*model.TradeSetup) string {
	if len(setups) == 0 {
		return "No valid trade setups found this cycle."
	}

	display := &strings.Builder{}
	display.WriteString(fmt.Sprintf("Market analysis | %s\n", time.Now().Format("2006-01-02 15:04:05")))

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Pair", "Price", "Bias", "Entry", "Stop", "Risk (pips)", "TP1", "TP2", "TP3", "RSI", "ATR"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, s := range setups {
		rsi := "n/a"
		if s.RSI != nil {
			rsi = fmt.Sprintf("%.1f", *s.RSI)
		}
		table.Append([]string{
			s.Pair,
			fmt.Sprintf("%.2f", s.Price),
			string(s.Bias),
			fmt.Sprintf("%.2f", s.Entry),
			fmt.Sprintf("%.2f", s.StopLoss),
			fmt.Sprintf("%.1f", s.RiskPips()),
			fmt.Sprintf("%.2f", s.TakeProfit[0]),
			fmt.Sprintf("%.2f", s.TakeProfit[1]),
			fmt.Sprintf("%.2f", s.TakeProfit[2]),
			rsi,
			fmt.Sprintf("%.2f", s.ATR),
		})
	}

	table.Render()
	return display.String()
}

// FormatSetupReport formats one trade setup into a Telegram message.
func FormatSetupReport(s *model.TradeSetup, positionSize float64) string {
	var b strings.Builder

	icon := "🟢"
	if s.Bias == model.BiasBearish {
		icon = "🔴"
	}
	b.WriteString(fmt.Sprintf("%s <b>%s %s</b> | %s\n\n", icon, s.Pair, s.Bias, s.GeneratedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Price: %.2f\n", s.Price))
	b.WriteString(fmt.Sprintf("Entry: %.2f\n", s.Entry))
	b.WriteString(fmt.Sprintf("Stop loss: %.2f (%.1f pips)\n", s.StopLoss, s.RiskPips()))
	b.WriteString(fmt.Sprintf("Targets: %.2f | %.2f | %.2f\n", s.TakeProfit[0], s.TakeProfit[1], s.TakeProfit[2]))
	if s.RSI != nil {
		b.WriteString(fmt.Sprintf("RSI: %.1f | ATR: %.2f\n", *s.RSI, s.ATR))
	} else {
		b.WriteString(fmt.Sprintf("RSI: n/a | ATR: %.2f\n", s.ATR))
	}
	if positionSize > 0 {
		b.WriteString(fmt.Sprintf("Suggested size: %.2f units\n", positionSize))
	}

	if s.Verdict != nil {
		b.WriteString("\n📈 <b>Structure votes:</b>\n")
		for _, v := range s.Verdict.Votes {
			b.WriteString(fmt.Sprintf("  %s: %+.1f (×%.0f) = %+.1f — %s\n",
				v.Timeframe, v.RawVote, v.Weight, v.Weighted, v.Commentary))
		}
		b.WriteString("  ─────────────────\n")
		b.WriteString(fmt.Sprintf("  Score: %+.3f\n", s.Verdict.Score))
	}

	return b.String()
}

// FormatRiskStatus formats the current risk configuration for display.
func FormatRiskStatus(state *model.RiskState) string {
	var b strings.Builder
	b.WriteString("⚙️ <b>Risk configuration</b>\n\n")
	b.WriteString(fmt.Sprintf("Selected pairs: %s\n", strings.Join(state.SelectedPairs, ", ")))
	b.WriteString(fmt.Sprintf("Risk level: %.1f%%\n", state.RiskPercent))
	b.WriteString(fmt.Sprintf("Account balance: %.0f\n", state.AccountBalance))
	b.WriteString(fmt.Sprintf("Updated: %s\n", state.UpdatedAt.Format("2006-01-02 15:04")))
	return b.String()
}
