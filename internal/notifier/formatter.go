package notifier

import (
	"fmt"
	"html"
	"strings"

	"TrendSentinel/internal/model"
	"TrendSentinel/internal/recorder"
)

var signalIcons = map[model.SignalLabel]string{
	model.SignalBullish:       "🟢",
	model.SignalBearish:       "🔴",
	model.SignalNeutral:       "⚪",
	model.SignalMildlyBullish: "🟡",
	model.SignalMildlyBearish: "🟠",
}

func icon(s model.SignalLabel) string {
	if i, ok := signalIcons[s]; ok {
		return i
	}
	return "•"
}

// FormatTrendReport formats a DMI/ADX report into a Telegram message.
func FormatTrendReport(r *model.TrendReport) string {
	if r.Result == nil || !r.Result.Computed() {
		return FormatInsufficient(r)
	}
	last, _ := r.Result.Last()

	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>%s</b> %s DMI(%d) | %s\n\n",
		html.EscapeString(r.Symbol), r.Timeframe, r.Result.Period, r.AsOf.Format("2006-01-02"))
	fmt.Fprintf(&b, "Close: %.2f\n", r.LastClose)
	if r.Week52High > 0 {
		fmt.Fprintf(&b, "52W: %.2f - %.2f (at %.0f%%)\n", r.Week52Low, r.Week52High, r.Week52Position*100)
	}
	fmt.Fprintf(&b, "+DI: %.2f | -DI: %.2f\n", last.DIPlus, last.DIMinus)
	fmt.Fprintf(&b, "DX: %.2f | ADX: %.2f\n\n", last.DX, last.ADX)

	if sig := r.Result.Signal; sig != nil {
		fmt.Fprintf(&b, "%s <b>%s</b> (%s)\n", icon(sig.Signal), sig.Signal, sig.Trend)
		b.WriteString(html.EscapeString(sig.Description))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatInsufficient reports that a symbol does not have enough history yet.
func FormatInsufficient(r *model.TrendReport) string {
	period := model.DefaultDMIPeriod
	if r.Result != nil {
		period = r.Result.Period
	}
	return fmt.Sprintf("⏳ <b>%s</b> %s: %d closes are not enough for DMI(%d), need at least %d.\n",
		html.EscapeString(r.Symbol), r.Timeframe, r.Points, period, 2*period)
}

// FormatSignalChange formats a signal transition alert.
func FormatSignalChange(ev *recorder.SignalChangeEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔔 <b>Signal change: %s</b> | %s\n\n", html.EscapeString(ev.Symbol), ev.AsOf.Format("2006-01-02"))
	fmt.Fprintf(&b, "%s %s → %s %s\n", icon(ev.FromSignal), ev.FromSignal, icon(ev.ToSignal), ev.ToSignal)
	fmt.Fprintf(&b, "Trend: %s → %s\n", ev.FromTrend, ev.ToTrend)
	fmt.Fprintf(&b, "ADX: %.2f | Close: %.2f\n", ev.ADX, ev.Price)
	return b.String()
}

// FormatWatchlist formats the current watch list state for display.
func FormatWatchlist(state *model.WatchState) string {
	var b strings.Builder
	b.WriteString("👀 <b>Watch list</b>\n\n")
	if len(state.Entries) == 0 {
		b.WriteString("No symbols are watched.\n")
		return b.String()
	}
	for _, e := range state.Entries {
		if e.Signal == "" {
			fmt.Fprintf(&b, "• %s: not evaluated\n", html.EscapeString(e.Symbol))
			continue
		}
		fmt.Fprintf(&b, "%s %s: %s, ADX %.1f, close %.2f\n",
			icon(e.Signal), html.EscapeString(e.Symbol), e.Signal, e.ADX, e.LastClose)
	}
	if !state.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, "\nUpdated: %s\n", state.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return b.String()
}
