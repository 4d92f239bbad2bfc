// internal/service/trial_balance.go
package service

import (
	"github.com/shopspring/decimal"

	"trial-balance/internal/models"
)

// JournalIndex groups journal lines by account. Accounts iterate in the order
// they were first seen and each account keeps its lines in input order.
type JournalIndex struct {
	order []string
	lines map[string][]models.JournalLine
}

// IndexJournal builds the account -> lines index
func IndexJournal(lines []models.JournalLine) *JournalIndex {
	idx := &JournalIndex{
		lines: make(map[string][]models.JournalLine),
	}
	for _, line := range lines {
		if _, seen := idx.lines[line.Account]; !seen {
			idx.order = append(idx.order, line.Account)
		}
		idx.lines[line.Account] = append(idx.lines[line.Account], line)
	}
	return idx
}

// Accounts returns the indexed accounts in first-seen order.
func (idx *JournalIndex) Accounts() []string {
	out := make([]string, len(idx.order))
	copy(out, idx.order)
	return out
}

// Lines returns the lines posted to account.
func (idx *JournalIndex) Lines(account string) []models.JournalLine {
	return idx.lines[account]
}

func (idx *JournalIndex) Len() int {
	return len(idx.order)
}

// IndexAccounts maps account identifiers to their records. Later duplicates
// overwrite earlier ones.
func IndexAccounts(records []models.AccountRecord) map[string]models.AccountRecord {
	out := make(map[string]models.AccountRecord, len(records))
	for _, rec := range records {
		out[rec.Account] = rec
	}
	return out
}

// Qualifies reports whether line satisfies every bound set in criteria.
func Qualifies(line models.JournalLine, criteria models.FilterCriteria) bool {
	if criteria.StartAccount != nil && line.Account < *criteria.StartAccount {
		return false
	}
	if criteria.EndAccount != nil && line.Account > *criteria.EndAccount {
		return false
	}
	if criteria.StartPeriod != nil && line.Period.Before(*criteria.StartPeriod) {
		return false
	}
	if criteria.EndPeriod != nil && line.Period.After(*criteria.EndPeriod) {
		return false
	}
	return true
}

// Aggregate sums the qualifying lines of one account. The second result is
// false when no line qualifies and the account has no row.
func Aggregate(account string, lines []models.JournalLine, criteria models.FilterCriteria, record models.AccountRecord) (models.BalanceRow, bool) {
	debit, credit := decimal.Zero, decimal.Zero
	matched := 0
	for _, line := range lines {
		if !Qualifies(line, criteria) {
			continue
		}
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
		matched++
	}
	if matched == 0 {
		return models.BalanceRow{}, false
	}

	return models.BalanceRow{
		Account:     account,
		Description: record.Label,
		Debit:       debit,
		Credit:      credit,
		Balance:     debit.Sub(credit),
	}, true
}

// Totals folds the rows into grand totals
func Totals(rows []models.BalanceRow) models.ReportTotals {
	totals := models.ReportTotals{
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, row := range rows {
		totals.TotalDebit = totals.TotalDebit.Add(row.Debit)
		totals.TotalCredit = totals.TotalCredit.Add(row.Credit)
	}
	return totals
}

// BalanceRows runs the index, filter and aggregate steps over a dataset.
// Journal accounts missing from the chart of accounts are skipped.
func BalanceRows(journal []models.JournalLine, accounts []models.AccountRecord, criteria models.FilterCriteria) []models.BalanceRow {
	journalIdx := IndexJournal(journal)
	accountIdx := IndexAccounts(accounts)

	rows := make([]models.BalanceRow, 0, journalIdx.Len())
	for _, account := range journalIdx.Accounts() {
		record, known := accountIdx[account]
		if !known {
			continue
		}
		if row, ok := Aggregate(account, journalIdx.Lines(account), criteria, record); ok {
			rows = append(rows, row)
		}
	}
	return rows
}
