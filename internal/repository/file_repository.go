// internal/repository/file_repository.go
package repository

import (
	"context"
	"fmt"
	"os"

	"trial-balance/internal/models"
	"trial-balance/internal/parser"
)

// FileRepository reads the journal and chart of accounts from CSV files
type FileRepository struct {
	journalPath  string
	accountsPath string
}

func NewFileRepository(journalPath, accountsPath string) *FileRepository {
	return &FileRepository{
		journalPath:  journalPath,
		accountsPath: accountsPath,
	}
}

func (r *FileRepository) Name() string {
	return "file"
}

func (r *FileRepository) LoadJournal(ctx context.Context) ([]models.JournalLine, error) {
	f, err := os.Open(r.journalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	return parser.ParseJournal(f, r.journalPath)
}

func (r *FileRepository) LoadAccounts(ctx context.Context) ([]models.AccountRecord, error) {
	f, err := os.Open(r.accountsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open accounts: %w", err)
	}
	defer f.Close()

	return parser.ParseAccounts(f, r.accountsPath)
}
