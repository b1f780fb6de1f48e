package service

import (
	"context"

	"github.com/ainnovators/viewer/internal/domain"
)

// ListTestResults returns summaries of all agent test result files.
func (s *Service) ListTestResults(ctx context.Context) ([]domain.TestResultSummary, error) {
	return s.store.ListTestResults()
}

// GetTestResult returns one test result record verbatim.
func (s *Service) GetTestResult(ctx context.Context, id string) (domain.TestResult, error) {
	return s.store.ReadTestResult(id)
}
