// internal/presenter/presenter.go
package presenter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"trial-balance/internal/models"
)

// Columns is the header of both the CSV and the table view
var Columns = []string{"ACCOUNT", "DESCRIPTION", "DEBIT", "CREDIT", "BALANCE"}

const unbounded = "*"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	amountStyle = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
)

// JSONReport is the machine readable rendering of a report
type JSONReport struct {
	*models.Report
	Summary string `json:"summary"`
}

// Render writes report to w in format
func Render(w io.Writer, format models.OutputFormat, report *models.Report) error {
	switch format {
	case models.FormatCSV:
		return FormatTabular(w, report.Rows)
	case models.FormatTable:
		_, err := fmt.Fprintln(w, RenderTable(report.Rows))
		return err
	case models.FormatJSON:
		return json.NewEncoder(w).Encode(JSONReport{Report: report, Summary: Summary(report)})
	default:
		return models.ErrInvalidFormat
	}
}

// ContentType is the HTTP content type of a rendered format
func ContentType(format models.OutputFormat) string {
	switch format {
	case models.FormatCSV:
		return "text/csv; charset=utf-8"
	case models.FormatJSON:
		return "application/json; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// FormatTabular writes rows as CSV with a header line.
func FormatTabular(w io.Writer, rows []models.BalanceRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(cells(row)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// RenderTable draws rows as a bordered table with right aligned amounts.
func RenderTable(rows []models.BalanceRow) string {
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		data = append(data, cells(row))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(Columns...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= 2:
				return amountStyle
			default:
				return cellStyle
			}
		})

	return t.String()
}

// Summary is the two line report header, e.g.
//
//	Total Debit: 500 Total Credit: 200
//	Balance from account 100 to * from period 2023-01-01 to 2023-12-31
func Summary(report *models.Report) string {
	c := report.Criteria
	return fmt.Sprintf("Total Debit: %s Total Credit: %s\nBalance from account %s to %s from period %s to %s",
		report.Totals.TotalDebit.String(),
		report.Totals.TotalCredit.String(),
		account(c.StartAccount),
		account(c.EndAccount),
		period(c.StartPeriod),
		period(c.EndPeriod))
}

func cells(row models.BalanceRow) []string {
	return []string{
		row.Account,
		row.Description,
		row.Debit.String(),
		row.Credit.String(),
		row.Balance.String(),
	}
}

func account(v *string) string {
	if v == nil || *v == "" {
		return unbounded
	}
	return *v
}

func period(v *time.Time) string {
	if v == nil {
		return unbounded
	}
	return v.Format(models.PeriodLayout)
}
