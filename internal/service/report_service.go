// internal/service/report_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trial-balance/internal/metrics"
	"trial-balance/internal/models"
)

// DatasetSource loads the journal and the chart of accounts
type DatasetSource interface {
	Name() string
	LoadJournal(ctx context.Context) ([]models.JournalLine, error)
	LoadAccounts(ctx context.Context) ([]models.AccountRecord, error)
}

// LoadDataset reads both datasets from src once
func LoadDataset(ctx context.Context, src DatasetSource, logger *zap.Logger) (*models.Dataset, error) {
	journal, err := src.LoadJournal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}

	accounts, err := src.LoadAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	logger.Info("dataset loaded",
		zap.String("source", src.Name()),
		zap.Int("journal_lines", len(journal)),
		zap.Int("accounts", len(accounts)))

	return &models.Dataset{
		Source:   src.Name(),
		Journal:  journal,
		Accounts: accounts,
		LoadedAt: time.Now(),
	}, nil
}

type ReportService struct {
	dataset *models.Dataset
	store   *ReportStore
	metrics *metrics.ReportMetrics
	logger  *zap.Logger
}

// NewReportService creates a report service over a loaded dataset. store and
// m may be nil.
func NewReportService(dataset *models.Dataset, store *ReportStore, m *metrics.ReportMetrics, logger *zap.Logger) *ReportService {
	m.SetDataset(len(dataset.Journal), len(dataset.Accounts))

	return &ReportService{
		dataset: dataset,
		store:   store,
		metrics: m,
		logger:  logger,
	}
}

// Generate computes a trial balance for criteria from the full dataset
func (s *ReportService) Generate(criteria models.FilterCriteria) *models.Report {
	start := time.Now()

	rows := BalanceRows(s.dataset.Journal, s.dataset.Accounts, criteria)
	report := &models.Report{
		ID:          uuid.New().String(),
		Criteria:    criteria,
		Rows:        rows,
		Totals:      Totals(rows),
		GeneratedAt: time.Now(),
	}

	elapsed := time.Since(start)
	s.metrics.ObserveReport(len(rows), elapsed)
	s.logger.Debug("trial balance generated",
		zap.String("report_id", report.ID),
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", elapsed))

	return report
}

// GenerateAndStore generates a report and keeps it for later retrieval by id
func (s *ReportService) GenerateAndStore(ctx context.Context, criteria models.FilterCriteria) (*models.Report, error) {
	report := s.Generate(criteria)
	if s.store == nil {
		return report, nil
	}

	if err := s.store.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	s.logger.Info("trial balance stored",
		zap.String("report_id", report.ID),
		zap.Int("rows", len(report.Rows)),
		zap.String("total_debit", report.Totals.TotalDebit.String()),
		zap.String("total_credit", report.Totals.TotalCredit.String()))

	return report, nil
}

// GetReport returns a previously stored report
func (s *ReportService) GetReport(ctx context.Context, id string) (*models.Report, error) {
	if s.store == nil {
		return nil, models.ErrReportNotFound
	}
	return s.store.Get(ctx, id)
}

// DeleteReport drops a stored report
func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	if s.store == nil {
		return models.ErrReportNotFound
	}
	ok, err := s.store.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up report: %w", err)
	}
	if !ok {
		return models.ErrReportNotFound
	}
	return s.store.Delete(ctx, id)
}

// StoreStats describes the report store, nil when reports are not stored
func (s *ReportService) StoreStats() map[string]interface{} {
	if s.store == nil {
		return nil
	}
	return s.store.GetStats()
}

// Accounts returns the chart of accounts in load order with duplicates
// collapsed onto the last definition.
func (s *ReportService) Accounts() []models.AccountRecord {
	idx := IndexAccounts(s.dataset.Accounts)

	out := make([]models.AccountRecord, 0, len(idx))
	seen := make(map[string]bool, len(idx))
	for _, rec := range s.dataset.Accounts {
		if seen[rec.Account] {
			continue
		}
		seen[rec.Account] = true
		out = append(out, idx[rec.Account])
	}
	return out
}

// Dataset exposes the loaded dataset for readiness checks
func (s *ReportService) Dataset() *models.Dataset {
	return s.dataset
}

// RecordRendered counts a report rendered in format
func (s *ReportService) RecordRendered(format models.OutputFormat) {
	s.metrics.IncRendered(string(format))
}
