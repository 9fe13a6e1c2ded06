package progress

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/go-scripts/blogpdf/internal/types"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	errorCellStyle = cellStyle.
			Foreground(lipgloss.Color("196"))
)

const statusColumn = 6

// RenderSummary formats the per-category counters of a run as a table
func RenderSummary(s types.Summary) string {
	rows := make([][]string, 0, len(s.Categories)+1)
	for _, c := range s.Categories {
		rows = append(rows, summaryRow(c))
	}
	total := s.Totals()
	rows = append(rows, summaryRow(total))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("63"))).
		Headers("category", "pages", "found", "fetched", "skipped", "failed", "status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == statusColumn && row >= 0 && row < len(rows) && rows[row][col] != "ok":
				return errorCellStyle
			default:
				return cellStyle
			}
		})

	return t.String()
}

func summaryRow(c types.CategoryStats) []string {
	status := "ok"
	if c.Err != nil {
		status = "aborted: " + c.Err.Error()
	} else if c.Failed > 0 {
		status = "partial"
	}

	return []string{
		c.Category.Label,
		strconv.Itoa(c.Pages),
		strconv.Itoa(c.Found),
		strconv.Itoa(c.Fetched),
		strconv.Itoa(c.Skipped),
		strconv.Itoa(c.Failed),
		status,
	}
}
