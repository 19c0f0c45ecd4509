package notifier

import (
	"fmt"
	"html"
	"strings"

	"IDXScreener/internal/model"
	"IDXScreener/internal/report"
)

// Subject and body of the report e-mail.
const (
	ReportSubject = "Daily Stock Analysis Results"
	ReportBody    = "Attached are your daily stock analysis results."
)

// ReportMessage builds the delivery for a finished run.
func ReportMessage(to string, rep *model.Report, atts []model.Attachment) model.Message {
	return model.Message{
		To:          to,
		Subject:     ReportSubject,
		Body:        ReportBody + "\n\n" + FormatSummary(rep, false),
		Attachments: atts,
	}
}

// FormatSummary lists the report rows, one per line. With markup set the
// output is Telegram HTML.
func FormatSummary(rep *model.Report, markup bool) string {
	var b strings.Builder

	title := fmt.Sprintf("%s | %s", report.Title(rep), formatCapital(rep.Capital))
	if markup {
		b.WriteString(fmt.Sprintf("📊 <b>%s</b>\n\n", html.EscapeString(title)))
	} else {
		b.WriteString(title + "\n\n")
	}

	if rep.Empty() {
		b.WriteString(report.NoCandidatesText + "\n")
		return b.String()
	}

	for i, r := range rep.Results {
		symbol := r.Symbol
		if markup {
			symbol = "<b>" + html.EscapeString(symbol) + "</b>"
		}
		b.WriteString(fmt.Sprintf("%d. %s %s x%d lot\n", i+1, symbol, report.FormatPrice(r.Price), r.Lot))
		b.WriteString(fmt.Sprintf("   TP %s | SL %s | +%d / -%d",
			report.FormatPrice(r.TakeProfit), report.FormatPrice(r.StopLoss), r.EstProfit, r.EstLoss))
		if r.RSI.IsSome() {
			b.WriteString(" | RSI " + report.FormatRSI(r.RSI))
		}
		b.WriteString(" | " + report.SignalText(r.Signal) + "\n")
	}
	return b.String()
}

// HelpText lists the chat commands.
func HelpText() string {
	var b strings.Builder
	b.WriteString("<b>Commands</b>\n\n")
	b.WriteString("/screen - run the screening scan now\n")
	b.WriteString("/single - check the fixed watch list\n")
	b.WriteString("/help - show this message\n")
	return b.String()
}

func formatCapital(capital float64) string {
	return fmt.Sprintf("Capital Rp%.0f", capital)
}
