package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ainnovators/viewer/internal/domain"
	"github.com/ainnovators/viewer/internal/normalize"
)

// ListExperiments returns all experiment summaries, newest first.
func (s *Service) ListExperiments(ctx context.Context) ([]domain.Experiment, error) {
	return s.store.ListExperiments()
}

// GetExperiment returns the detail view for one experiment. The resolved
// context -- standalone or embedded in a results bundle -- is normalized here,
// so every caller sees the canonical stage_outputs shape.
func (s *Service) GetExperiment(ctx context.Context, id string) (*domain.ExperimentDetail, error) {
	exp, subfolders, err := s.store.GetExperiment(id)
	if err != nil {
		return nil, err
	}
	resolution, err := s.store.ResolveContext(id)
	if err != nil {
		return nil, err
	}

	detail := &domain.ExperimentDetail{
		Experiment: *exp,
		Source:     resolution.Source,
		Subfolders: subfolders,
	}
	if subfolders == nil {
		detail.Subfolders = []string{}
	}

	switch resolution.Source {
	case domain.SourceFinalContext, domain.SourcePartialContext:
		detail.Context = normalize.Document(resolution.Context)
	case domain.SourceResultsBundle:
		// The bundle is freshly parsed per request; normalizing its
		// embedded context in place mutates nothing shared.
		resolution.Results.FullContext = normalize.Document(resolution.Results.FullContext)
		detail.Results = resolution.Results
	case domain.SourceNone:
		s.logger.Debug("experiment has no context artifacts", zap.String("id", id))
	}
	return detail, nil
}

// GetStatistics returns an experiment's statistics document verbatim.
func (s *Service) GetStatistics(ctx context.Context, id string) (*domain.Statistics, error) {
	return s.store.ReadStatistics(id)
}

// GetDesignAsset returns the bytes and content type of a design image.
func (s *Service) GetDesignAsset(ctx context.Context, id, fileName string) ([]byte, string, error) {
	return s.store.ReadAsset(id, fileName)
}
