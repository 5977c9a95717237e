package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/coregx/kmp/runner"
)

// Table renders the summary columns for the terminal.
func Table(w io.Writer, recs []runner.Record, color bool) error {
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, SummaryRow(rec))
	}
	return Grid(w, SummaryHeader, rows, color)
}

// Grid renders rows under headers. With color set the header is highlighted
// and the table uses rounded borders; otherwise plain ASCII is produced so
// the output can be piped. The first column is left-aligned, the rest are
// right-aligned.
func Grid(w io.Writer, headers []string, rows [][]string, color bool) error {
	r := lipgloss.NewRenderer(w)
	cell := r.NewStyle().Padding(0, 1)
	header := cell
	borderStyle := r.NewStyle()
	border := lipgloss.ASCIIBorder()
	if color {
		r.SetColorProfile(termenv.ANSI256)
		header = cell.Bold(true).Foreground(lipgloss.Color("170"))
		borderStyle = borderStyle.Foreground(lipgloss.Color("241"))
		border = lipgloss.RoundedBorder()
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	number := cell.Align(lipgloss.Right)

	t := table.New().
		Border(border).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 0:
				return cell
			default:
				return number
			}
		})

	_, err := fmt.Fprintln(w, t.String())
	return err
}
