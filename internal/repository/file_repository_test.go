// internal/repository/file_repository_test.go
package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trial-balance/internal/models"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileRepository(t *testing.T) {
	dir := t.TempDir()
	journal := writeFile(t, dir, "journal.csv", "ACCOUNT,PERIOD,DEBIT,CREDIT\n100,2023-01-15,500,0\n200,2023-02-10,0,200\n")
	accounts := writeFile(t, dir, "accounts.csv", "ACCOUNT,LABEL\n100,Cash\n")

	repo := NewFileRepository(journal, accounts)
	assert.Equal(t, "file", repo.Name())

	lines, err := repo.LoadJournal(context.Background())
	require.NoError(t, err)
	assert.Len(t, lines, 2)

	recs, err := repo.LoadAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.AccountRecord{{Account: "100", Label: "Cash"}}, recs)
}

func TestFileRepository_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "journal.csv", "ACCOUNT,PERIOD,DEBIT,CREDIT\n100,2023-01-15,five,0\n")

	repo := NewFileRepository(bad, filepath.Join(dir, "missing.csv"))

	_, err := repo.LoadJournal(context.Background())
	assert.ErrorIs(t, err, models.ErrMalformedRecord)

	_, err = repo.LoadAccounts(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
