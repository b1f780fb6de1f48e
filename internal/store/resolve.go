package store

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"

	"github.com/ainnovators/viewer/internal/domain"
)

// Resolution is the outcome of picking the authoritative context artifact for
// one experiment. Exactly one of Context and Results is set unless Source is
// SourceNone.
type Resolution struct {
	Source  domain.SourceKind
	Context *domain.ContextDocument
	Results *domain.ResultsBundle
}

// ResolveContext selects the authoritative source document for an experiment.
// Precedence: context_final.json, then a results.json carrying an embedded
// full context, then the lexically first remaining context_<stage>.json. A
// directory with no context artifacts resolves to SourceNone, not an error.
func (s *Store) ResolveContext(id string) (*Resolution, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	dir := filepath.Join(s.experimentsDir, id)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("experiment %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read experiment %s: %w", id, err)
	}

	var hasFinal, hasResults bool
	var partials []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch name := entry.Name(); {
		case name == domain.FinalContextFile:
			hasFinal = true
		case name == domain.ResultsFile:
			hasResults = true
		case isContextFile(name):
			partials = append(partials, name)
		}
	}

	if hasFinal {
		var doc domain.ContextDocument
		if err := readJSON(filepath.Join(dir, domain.FinalContextFile), &doc); err != nil {
			return nil, err
		}
		return &Resolution{Source: domain.SourceFinalContext, Context: &doc}, nil
	}

	if hasResults {
		var bundle domain.ResultsBundle
		if err := readJSON(filepath.Join(dir, domain.ResultsFile), &bundle); err != nil {
			return nil, err
		}
		if bundle.FullContext != nil {
			return &Resolution{Source: domain.SourceResultsBundle, Results: &bundle}, nil
		}
		// A bundle without an embedded context cannot stand in for one;
		// fall through to the partial snapshots.
	}

	if len(partials) > 0 {
		sort.Strings(partials)
		var doc domain.ContextDocument
		if err := readJSON(filepath.Join(dir, partials[0]), &doc); err != nil {
			return nil, err
		}
		return &Resolution{Source: domain.SourcePartialContext, Context: &doc}, nil
	}

	return &Resolution{Source: domain.SourceNone}, nil
}

// ReadStatistics loads the statistics document for an experiment, verbatim.
func (s *Store) ReadStatistics(id string) (*domain.Statistics, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var stats domain.Statistics
	if err := readJSON(filepath.Join(s.experimentsDir, id, domain.StatisticsFile), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ReadAsset loads a design image from an experiment's designs folder and
// derives its content type from the file extension. Identifiers containing a
// parent segment are rejected before any filesystem access.
func (s *Store) ReadAsset(id, fileName string) ([]byte, string, error) {
	if err := checkID(id); err != nil {
		return nil, "", err
	}
	if err := checkID(fileName); err != nil {
		return nil, "", err
	}

	path := filepath.Join(s.experimentsDir, id, domain.DesignsDir, fileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("asset %s/%s: %w", id, fileName, domain.ErrNotFound)
		}
		return nil, "", fmt.Errorf("failed to read asset %s: %w", path, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(fileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}
