package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"IDXScreener/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	signalStyle = cellStyle.Foreground(lipgloss.Color("42"))
	noticeStyle = lipgloss.NewStyle().Faint(true)
)

// RenderTable renders the report for a terminal.
func RenderTable(rep *model.Report) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(Title(rep)))
	b.WriteString("\n")

	if rep.Empty() {
		b.WriteString(noticeStyle.Render(NoCandidatesText))
		b.WriteString("\n")
		return b.String()
	}

	cols := Columns(rep.Mode)
	signalCol := len(cols) - 1
	rows := Rows(rep)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(cols...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == signalCol && row >= 0 && row < len(rows) && rows[row][col] != "-":
				return signalStyle
			}
			return cellStyle
		})

	b.WriteString(t.String())
	b.WriteString("\n")
	return b.String()
}
