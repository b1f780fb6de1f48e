// Package service composes the store and the normalizer behind the boundary
// operations exposed to transports.
package service

import (
	"go.uber.org/zap"

	"github.com/ainnovators/viewer/internal/store"
)

type Service struct {
	store  *store.Store
	logger *zap.Logger
}

func New(store *store.Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}
