// Package store reads experiment artifacts from the filesystem. It is the
// only package that performs I/O: one directory listing plus at most one
// whole-file read per operation, no caching, no write path.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ainnovators/viewer/internal/domain"
)

// Store resolves experiment artifacts under an experiments root and agent
// test results under a separate results root. Both roots are injected so the
// store can be pointed at fixture directories.
type Store struct {
	experimentsDir string
	testResultsDir string
	logger         *zap.Logger
}

// New creates a store over the given roots.
func New(experimentsDir, testResultsDir string, logger *zap.Logger) *Store {
	return &Store{
		experimentsDir: experimentsDir,
		testResultsDir: testResultsDir,
		logger:         logger,
	}
}

// ListExperiments enumerates the immediate subdirectories of the experiments
// root, newest id first. Both naming conventions end in a zero-padded
// timestamp, so descending lexical order is descending chronological order.
// Any per-entry read failure aborts the whole scan.
func (s *Store) ListExperiments() ([]domain.Experiment, error) {
	entries, err := os.ReadDir(s.experimentsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("experiments root %s: %w", s.experimentsDir, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}

	experiments := make([]domain.Experiment, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		exp, _, err := s.readExperimentDir(entry.Name())
		if err != nil {
			return nil, err
		}
		experiments = append(experiments, *exp)
	}

	sort.Slice(experiments, func(i, j int) bool {
		return experiments[i].ID > experiments[j].ID
	})
	return experiments, nil
}

// GetExperiment returns the summary for one experiment plus the names of its
// subfolders.
func (s *Store) GetExperiment(id string) (*domain.Experiment, []string, error) {
	if err := checkID(id); err != nil {
		return nil, nil, err
	}
	return s.readExperimentDir(id)
}

// readExperimentDir lists one experiment directory and derives the summary
// from file presence.
func (s *Store) readExperimentDir(id string) (*domain.Experiment, []string, error) {
	dir := filepath.Join(s.experimentsDir, id)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("experiment %s: %w", id, domain.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("failed to read experiment %s: %w", id, err)
	}

	exp := &domain.Experiment{
		ID:            id,
		Kind:          domain.KindFull,
		ArtifactFiles: []string{},
	}
	if strings.HasPrefix(id, domain.StageRunPrefix) {
		exp.Kind = domain.KindStageRun
	}
	if info, err := os.Stat(dir); err == nil {
		exp.ModifiedAt = info.ModTime()
	}

	var subfolders []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			subfolders = append(subfolders, name)
			continue
		}
		switch name {
		case domain.StatisticsFile:
			exp.HasStatistics = true
		case domain.ResultsFile:
			exp.HasResultsBundle = true
		case domain.FinalContextFile:
			exp.HasCompleteContext = true
		}
		if isContextFile(name) {
			exp.ArtifactFiles = append(exp.ArtifactFiles, name)
		}
	}
	sort.Strings(exp.ArtifactFiles)
	sort.Strings(subfolders)
	return exp, subfolders, nil
}

func isContextFile(name string) bool {
	return strings.HasPrefix(name, domain.ContextFilePrefix) && strings.HasSuffix(name, ".json")
}

// checkID rejects identifiers that could escape the root. Evaluated before
// any filesystem access.
func checkID(name string) error {
	if name == "" {
		return fmt.Errorf("empty identifier: %w", domain.ErrBadRequest)
	}
	for _, seg := range strings.Split(filepath.ToSlash(name), "/") {
		if seg == ".." {
			return fmt.Errorf("identifier %q contains a parent segment: %w", name, domain.ErrBadRequest)
		}
	}
	return nil
}

// readJSON reads one artifact wholly into memory and decodes it into v.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", filepath.Base(path), domain.ErrNotFound)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
