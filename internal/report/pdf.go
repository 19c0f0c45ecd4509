package report

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/go-pdf/fpdf"

	"IDXScreener/internal/calculator"
	"IDXScreener/internal/model"
	"IDXScreener/internal/strategy"
)

// DocumentTitle is the page header of the PDF report.
const DocumentTitle = "Daily Stock Analysis Report"

// Document is the content of a PDF report, independent of how it is drawn.
type Document struct {
	Title    string
	Subtitle string
	Lines    []string
	Charts   []Chart
}

// Chart is a close price line with its short moving average.
// MA holds NaN until the window fills.
type Chart struct {
	Symbol string
	Close  []float64
	MA     []float64
}

// NewChart builds the price and MA5 chart for one series.
func NewChart(series *model.InstrumentSeries) Chart {
	closes := series.Closes()
	return Chart{
		Symbol: series.Symbol,
		Close:  closes,
		MA:     calculator.RollingSMA(closes, strategy.ShortMAPeriod),
	}
}

// BuildDocument describes the PDF for a report.
func BuildDocument(rep *model.Report) Document {
	doc := Document{
		Title: DocumentTitle,
		Subtitle: fmt.Sprintf("%s | Mode: %s | Capital: %s",
			rep.GeneratedAt.Format("2006-01-02 15:04"), rep.Mode, strconv.FormatFloat(rep.Capital, 'f', 0, 64)),
	}
	if rep.Empty() {
		doc.Lines = []string{NoCandidatesText}
		return doc
	}
	for _, r := range rep.Results {
		doc.Lines = append(doc.Lines, fmt.Sprintf(
			"%s | Price: %s | Lot: %d | TP: %s | SL: %s | Est. Profit: %d | Est. Loss: %d | Signal: %s",
			r.Symbol, FormatPrice(r.Price), r.Lot, FormatPrice(r.TakeProfit), FormatPrice(r.StopLoss),
			r.EstProfit, r.EstLoss, SignalText(r.Signal)))
		if series, ok := rep.Series[r.Symbol]; ok && !series.Empty() {
			doc.Charts = append(doc.Charts, NewChart(series))
		}
	}
	return doc
}

// RenderPDF draws the summary on the first A4 page and one chart per page after it.
func RenderPDF(doc Document) ([]byte, error) {
	pdf := newPDF(doc)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func newPDF(doc Document) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, false)
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, doc.Title, "", 1, "C", false, 0, "")
		if doc.Subtitle != "" {
			pdf.SetFont("Arial", "", 9)
			pdf.CellFormat(0, 6, doc.Subtitle, "", 1, "C", false, 0, "")
		}
		pdf.Ln(6)
	})
	pdf.AddPage()
	pdf.SetFont("Arial", "", 10)
	for _, line := range doc.Lines {
		pdf.MultiCell(0, 8, line, "", "L", false)
	}
	for _, c := range doc.Charts {
		pdf.AddPage()
		drawChart(pdf, c)
	}
	return pdf
}

// Plot area in mm.
const (
	chartLeft   = 20.0
	chartWidth  = 170.0
	chartHeight = 100.0
)

func drawChart(pdf *fpdf.Fpdf, c Chart) {
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 8, "Chart "+c.Symbol, "", 1, "L", false, 0, "")
	top := pdf.GetY() + 4

	lo, hi, ok := bounds(c.Close, c.MA)
	if len(c.Close) < 2 || !ok {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 8, "Not enough data", "", 1, "L", false, 0, "")
		return
	}
	if hi == lo {
		hi, lo = hi+1, lo-1
	}

	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(0.2)
	pdf.Rect(chartLeft, top, chartWidth, chartHeight, "D")

	x := func(i int) float64 {
		return chartLeft + chartWidth*float64(i)/float64(len(c.Close)-1)
	}
	y := func(v float64) float64 {
		return top + chartHeight*(hi-v)/(hi-lo)
	}
	plot := func(values []float64) {
		for i := 1; i < len(values); i++ {
			a, b := values[i-1], values[i]
			if !finite(a) || !finite(b) {
				continue
			}
			pdf.Line(x(i-1), y(a), x(i), y(b))
		}
	}

	pdf.SetLineWidth(0.4)
	pdf.SetDrawColor(31, 119, 180)
	plot(c.Close)
	pdf.SetDrawColor(255, 127, 14)
	plot(c.MA)

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(chartLeft-18, top+3, FormatPrice(hi))
	pdf.Text(chartLeft-18, top+chartHeight, FormatPrice(lo))

	legend := top + chartHeight + 8
	pdf.SetTextColor(31, 119, 180)
	pdf.Text(chartLeft, legend, "Price")
	pdf.SetTextColor(255, 127, 14)
	pdf.Text(chartLeft+20, legend, fmt.Sprintf("MA%d", strategy.ShortMAPeriod))
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
}

// bounds returns the finite min and max across all value sets.
func bounds(sets ...[]float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, values := range sets {
		for _, v := range values {
			if !finite(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	return lo, hi, ok
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
