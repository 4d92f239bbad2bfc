// internal/repository/ledger_repository.go
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"

	"trial-balance/internal/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	selectJournalQuery = mustSQL(psql.
		Select("line_no", "account", "period", "debit", "credit").
		From("journal_lines").
		OrderBy("line_no"))

	selectAccountsQuery = mustSQL(psql.
		Select("id", "account", "label").
		From("accounts").
		OrderBy("id"))
)

func mustSQL(b sq.SelectBuilder) string {
	query, _, err := b.ToSql()
	if err != nil {
		panic(err)
	}
	return query
}

// LedgerRepository reads the journal and chart of accounts from Postgres.
// Rows come back in insertion order so account ordering matches the source.
type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Name() string {
	return "postgres"
}

// EnsureSchema creates the source tables when missing
func (r *LedgerRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, models.LedgerSchema)
	return err
}

func (r *LedgerRepository) LoadJournal(ctx context.Context) ([]models.JournalLine, error) {
	rows, err := r.db.QueryContext(ctx, selectJournalQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.JournalLine
	for pos := 1; rows.Next(); pos++ {
		var lineNo int64
		line := models.JournalLine{}
		err := rows.Scan(
			&lineNo,
			&line.Account,
			&line.Period,
			&line.Debit,
			&line.Credit,
		)
		if err != nil {
			return nil, malformedRow("journal_lines", pos, "", err)
		}
		if err := line.Validate(); err != nil {
			return nil, malformedRow("journal_lines", pos, strconv.FormatInt(lineNo, 10), err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *LedgerRepository) LoadAccounts(ctx context.Context) ([]models.AccountRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectAccountsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.AccountRecord
	for pos := 1; rows.Next(); pos++ {
		var id int64
		account := models.AccountRecord{}
		if err := rows.Scan(&id, &account.Account, &account.Label); err != nil {
			return nil, malformedRow("accounts", pos, "", err)
		}
		if err := account.Validate(); err != nil {
			return nil, malformedRow("accounts", pos, strconv.FormatInt(id, 10), err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}

// malformedRow reports a bad row by its position in the result set. id is
// empty when the row could not be scanned.
func malformedRow(table string, pos int, id string, err error) error {
	e := &models.MalformedRecordError{
		Source: table,
		Line:   pos,
		Err:    fmt.Errorf("scan: %w", err),
	}
	if id != "" {
		e.Field, e.Value = "id", id
	}
	return e
}
