package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ainnovators/viewer/internal/domain"
)

// testResultHeader is the subset of a test result file read for listings.
type testResultHeader struct {
	TestName        string `json:"test_name"`
	AgentName       string `json:"agent_name"`
	TestFunction    string `json:"test_function"`
	Success         bool   `json:"success"`
	Timestamp       string `json:"timestamp"`
	ExecutionTimeMS int64  `json:"execution_time_ms"`
}

// ListTestResults enumerates the JSON files under the test-results root,
// newest id first. The agent tester also writes .txt summaries into the same
// directory; those are skipped.
func (s *Store) ListTestResults() ([]domain.TestResultSummary, error) {
	entries, err := os.ReadDir(s.testResultsDir)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("test results root missing", zap.String("dir", s.testResultsDir))
			return []domain.TestResultSummary{}, nil
		}
		return nil, fmt.Errorf("failed to list test results: %w", err)
	}

	summaries := make([]domain.TestResultSummary, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		var header testResultHeader
		if err := readJSON(filepath.Join(s.testResultsDir, name), &header); err != nil {
			return nil, err
		}
		summary := domain.TestResultSummary{
			ID:              strings.TrimSuffix(name, ".json"),
			TestName:        header.TestName,
			AgentName:       header.AgentName,
			TestFunction:    header.TestFunction,
			Success:         header.Success,
			Timestamp:       header.Timestamp,
			ExecutionTimeMS: header.ExecutionTimeMS,
		}
		if info, err := entry.Info(); err == nil {
			summary.ModifiedAt = info.ModTime()
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ID > summaries[j].ID
	})
	return summaries, nil
}

// ReadTestResult loads one test result record verbatim. The id is the file
// name without the .json extension.
func (s *Store) ReadTestResult(id string) (domain.TestResult, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var result domain.TestResult
	if err := readJSON(filepath.Join(s.testResultsDir, id+".json"), &result); err != nil {
		return nil, err
	}
	return result, nil
}
