// internal/models/ledger.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine represents a single posting in the journal
type JournalLine struct {
	Account string          `json:"account" db:"account" validate:"required"`
	Period  time.Time       `json:"period" db:"period" validate:"required"`
	Debit   decimal.Decimal `json:"debit" db:"debit"`
	Credit  decimal.Decimal `json:"credit" db:"credit"`
}

// AccountRecord is one entry of the chart of accounts
type AccountRecord struct {
	Account string `json:"account" db:"account" validate:"required"`
	Label   string `json:"label" db:"label"`
}

// Dataset is the in-memory journal and chart of accounts. It is never
// mutated after loading and may be shared between requests.
type Dataset struct {
	Source   string          `json:"source"`
	Journal  []JournalLine   `json:"journal"`
	Accounts []AccountRecord `json:"accounts"`
	LoadedAt time.Time       `json:"loaded_at"`
}

// Validate checks the structural and sign constraints of a journal line.
func (l JournalLine) Validate() error {
	if err := ValidateStruct(l); err != nil {
		return err
	}
	if l.Debit.IsNegative() {
		return ErrNegativeAmount
	}
	if l.Credit.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// Validate checks the account record has an identifier.
func (a AccountRecord) Validate() error {
	return ValidateStruct(a)
}

// Database schema
const LedgerSchema = `
CREATE TABLE IF NOT EXISTS journal_lines (
    line_no BIGSERIAL PRIMARY KEY,
    account VARCHAR(100) NOT NULL,
    period DATE NOT NULL,
    debit DECIMAL(19, 4) NOT NULL DEFAULT 0 CHECK (debit >= 0),
    credit DECIMAL(19, 4) NOT NULL DEFAULT 0 CHECK (credit >= 0)
);

CREATE INDEX IF NOT EXISTS idx_journal_lines_account ON journal_lines (account);
CREATE INDEX IF NOT EXISTS idx_journal_lines_period ON journal_lines (period);

CREATE TABLE IF NOT EXISTS accounts (
    id BIGSERIAL PRIMARY KEY,
    account VARCHAR(100) NOT NULL,
    label TEXT NOT NULL DEFAULT ''
);
`
