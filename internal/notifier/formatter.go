package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"SignalScanner/internal/model"
)

var conditionLabels = map[string]string{
	model.CondTrendUp:           "EMA50>EMA200",
	model.CondOversold:          "RSI<30",
	model.CondMACDCrossUp:       "MACD cross",
	model.CondBreakoutUpperBand: "BB breakout",
	model.CondStrongTrend:       "ADX>25",
	model.CondVolumeConfirmsUp:  "OBV up",
	model.CondStochCrossUpLow:   "Stoch cross",
}

// FormatRanking formats the top n ranked reports. Failed symbols are listed
// in a short footer.
func FormatRanking(reports []model.ScoreReport, n int, at time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Signal scan</b> | %s\n\n", at.Format("2006-01-02 15:04")))

	shown := 0
	var failed []string
	for _, r := range reports {
		if !r.OK() {
			failed = append(failed, fmt.Sprintf("%s (%s)", html.EscapeString(r.Symbol), r.Error))
			continue
		}
		if shown >= n {
			continue
		}
		shown++
		b.WriteString(fmt.Sprintf("%d. <b>%s</b> %d/7 @ %.2f\n", shown, html.EscapeString(r.Symbol), r.Score, r.Price))
		if hits := FormatConditions(r.Conditions); hits != "" {
			b.WriteString("   " + hits + "\n")
		}
	}
	if shown == 0 {
		b.WriteString("No symbol could be scored.\n")
	}
	if len(failed) > 0 {
		b.WriteString(fmt.Sprintf("\n⚠️ skipped: %s\n", strings.Join(failed, ", ")))
	}
	return b.String()
}

// FormatReport formats a single symbol's report.
func FormatReport(r *model.ScoreReport) string {
	if !r.OK() {
		return fmt.Sprintf("❌ %s: %s", html.EscapeString(r.Symbol), r.Error)
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<b>%s</b> score %d/7\n", html.EscapeString(r.Symbol), r.Score))
	b.WriteString(fmt.Sprintf("close %.2f as of %s\n\n", r.Price, r.AsOf.Format("2006-01-02")))
	for _, name := range model.ConditionNames {
		mark := "▫️"
		if r.Conditions[name] {
			mark = "✅"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", mark, conditionLabels[name]))
	}
	return b.String()
}

// FormatConditions lists the labels of true conditions in report order.
func FormatConditions(c model.ConditionSet) string {
	var hits []string
	for _, name := range model.ConditionNames {
		if c[name] {
			hits = append(hits, conditionLabels[name])
		}
	}
	return strings.Join(hits, ", ")
}
