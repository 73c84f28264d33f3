package ui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vvka-141/foodetl/pkg/foodetl"
)

var reportHeaders = []string{"Dataset", "Source", "Raw", "Clean", "Dropped", "Appended"}

// Column indexes in reportHeaders.
const (
	firstNumberColumn = 2
	droppedColumn     = 4
)

// RenderReport formats report as a summary table. dryRun leaves out the
// Appended column. Plain output uses ASCII borders and no colors.
//
// A non-nil runErr marks the run as failed: the title says so and the table
// lists only the datasets staged before the failure. With nothing staged the
// title is the whole output.
func RenderReport(report *foodetl.LoadReport, mode Mode, dryRun bool, runErr error) string {
	if runErr != nil && len(report.Datasets) == 0 {
		return title(report, mode, dryRun, runErr) + "\n"
	}

	headers := reportHeaders
	if dryRun {
		headers = headers[:len(headers)-1]
	}

	rows := make([][]string, 0, len(report.Datasets))
	for _, d := range report.Datasets {
		row := []string{
			d.Name,
			filepath.Base(d.Source),
			strconv.Itoa(d.RawRows),
			strconv.Itoa(d.CleanRows),
			strconv.Itoa(d.Dropped()),
		}
		if !dryRun {
			row = append(row, strconv.FormatInt(d.AppendedRows, 10))
		}
		rows = append(rows, row)
	}

	t := table.New().Headers(headers...).Rows(rows...)
	if mode == ModeStyled {
		t = t.Border(lipgloss.RoundedBorder()).
			BorderStyle(mutedStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case col == droppedColumn && report.Datasets[row].Dropped() > 0:
					return droppedStyle
				case col >= firstNumberColumn:
					return numberStyle
				}
				return cellStyle
			})
	} else {
		t = t.Border(lipgloss.ASCIIBorder()).
			StyleFunc(func(int, int) lipgloss.Style { return cellStyle })
	}

	var b strings.Builder
	b.WriteString(title(report, mode, dryRun, runErr))
	b.WriteString("\n")
	b.WriteString(t.String())
	b.WriteString("\n")
	return b.String()
}

func title(report *foodetl.LoadReport, mode Mode, dryRun bool, runErr error) string {
	elapsed := report.Elapsed.Round(time.Millisecond)

	if runErr != nil {
		verb := "Load"
		if dryRun {
			verb = "Inspect"
		}
		s := fmt.Sprintf("%s failed after %v (run %s)", verb, elapsed, report.RunID)
		if mode == ModeStyled {
			return failureStyle.Render(symbolCross) + " " + titleStyle.Render(s)
		}
		return s
	}

	verb := "Loaded"
	if dryRun {
		verb = "Inspected"
	}
	s := fmt.Sprintf("%s %d datasets in %v (run %s)", verb, len(report.Datasets), elapsed, report.RunID)
	if mode == ModeStyled {
		return successStyle.Render(symbolCheck) + " " + titleStyle.Render(s)
	}
	return s
}
