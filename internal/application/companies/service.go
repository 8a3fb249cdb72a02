package companies

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/backoffice/backend/internal/domain/company"
	"github.com/backoffice/backend/internal/domain/shared"
)

// Service provides company lifecycle operations. A user owns at most one
// company; everything else in the system is scoped to it.
type Service struct {
	companies company.Repository
	logger    *zap.Logger
}

// NewService creates a company service.
func NewService(companies company.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{companies: companies, logger: logger}
}

// Create creates a company for the given owner. A second create for the
// same owner is rejected.
func (s *Service) Create(ctx context.Context, ownerUserID uuid.UUID, name string) (*company.Company, error) {
	if _, err := s.companies.FindByOwner(ctx, ownerUserID); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	comp, err := company.NewCompany(name, ownerUserID)
	if err != nil {
		return nil, err
	}
	if err := s.companies.Save(ctx, comp); err != nil {
		return nil, err
	}
	s.logger.Info("company created",
		zap.String("company_id", comp.ID.String()),
		zap.String("owner_user_id", ownerUserID.String()))
	return comp, nil
}

// GetByOwner returns the company owned by the given user.
func (s *Service) GetByOwner(ctx context.Context, ownerUserID uuid.UUID) (*company.Company, error) {
	return s.companies.FindByOwner(ctx, ownerUserID)
}

// Get returns a company by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	return s.companies.FindByID(ctx, id)
}
