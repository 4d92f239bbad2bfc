// internal/models/report.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OutputFormat string

const (
	FormatCSV   OutputFormat = "csv"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"

	// PeriodLayout is the layout of period bounds in report requests.
	PeriodLayout = "2006-01-02"
)

// FilterCriteria holds the optional report bounds. A nil bound is unbounded.
type FilterCriteria struct {
	StartAccount *string    `json:"start_account,omitempty"`
	EndAccount   *string    `json:"end_account,omitempty"`
	StartPeriod  *time.Time `json:"start_period,omitempty"`
	EndPeriod    *time.Time `json:"end_period,omitempty"`
}

// BalanceRow is one account's aggregated debit, credit and net balance
type BalanceRow struct {
	Account     string          `json:"account"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// ReportTotals sums the rows of a report
type ReportTotals struct {
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
}

// Report is a generated trial balance
type Report struct {
	ID          string         `json:"id"`
	Criteria    FilterCriteria `json:"criteria"`
	Rows        []BalanceRow   `json:"rows"`
	Totals      ReportTotals   `json:"totals"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// ReportRequest carries the raw report parameters from the HTTP query, the
// JSON body or the command line.
type ReportRequest struct {
	Format       string `json:"format" form:"format" validate:"omitempty,oneof=csv table json"`
	StartAccount string `json:"start_account" form:"start_account" validate:"omitempty,max=100"`
	EndAccount   string `json:"end_account" form:"end_account" validate:"omitempty,max=100"`
	StartPeriod  string `json:"start_period" form:"start_period" validate:"omitempty,datetime=2006-01-02"`
	EndPeriod    string `json:"end_period" form:"end_period" validate:"omitempty,datetime=2006-01-02"`
}

// Ready reports whether enough parameters are present to produce a report.
// A request that is not ready is not an error, there is just nothing to show yet.
func (r ReportRequest) Ready() bool {
	return r.Format != "" && r.StartPeriod != "" && r.EndPeriod != ""
}

// Validate checks the request fields.
func (r ReportRequest) Validate() error {
	return ValidateStruct(r)
}

// OutputFormat returns the requested format.
func (r ReportRequest) OutputFormat() (OutputFormat, error) {
	switch f := OutputFormat(r.Format); f {
	case FormatCSV, FormatTable, FormatJSON:
		return f, nil
	default:
		return "", ErrInvalidFormat
	}
}

// Criteria converts the request into filter criteria. Empty fields stay unbounded.
func (r ReportRequest) Criteria() (FilterCriteria, error) {
	var c FilterCriteria
	if r.StartAccount != "" {
		v := r.StartAccount
		c.StartAccount = &v
	}
	if r.EndAccount != "" {
		v := r.EndAccount
		c.EndAccount = &v
	}
	if r.StartPeriod != "" {
		t, err := time.Parse(PeriodLayout, r.StartPeriod)
		if err != nil {
			return FilterCriteria{}, ErrInvalidPeriod
		}
		c.StartPeriod = &t
	}
	if r.EndPeriod != "" {
		t, err := time.Parse(PeriodLayout, r.EndPeriod)
		if err != nil {
			return FilterCriteria{}, ErrInvalidPeriod
		}
		c.EndPeriod = &t
	}
	return c, nil
}
