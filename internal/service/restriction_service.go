package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/acadhub/horarios-api/internal/dto"
	"github.com/acadhub/horarios-api/internal/models"
	appErrors "github.com/acadhub/horarios-api/pkg/errors"
)

type restrictionStore interface {
	List(ctx context.Context, filter models.RestrictionFilter) ([]models.Restriction, int, error)
	FindByID(ctx context.Context, id string) (*models.Restriction, error)
	Create(ctx context.Context, restriction *models.Restriction) error
	Update(ctx context.Context, restriction *models.Restriction) error
	Delete(ctx context.Context, id string) error
}

// RestrictionService manages the restriction catalog.
type RestrictionService struct {
	restrictions restrictionStore
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewRestrictionService wires the restriction catalog dependencies.
func NewRestrictionService(restrictions restrictionStore, validate *validator.Validate, logger *zap.Logger) *RestrictionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RestrictionService{restrictions: restrictions, validator: validate, logger: logger}
}

// List returns catalog entries matching the filter.
func (s *RestrictionService) List(ctx context.Context, filter models.RestrictionFilter) ([]models.Restriction, int, error) {
	list, total, err := s.restrictions.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list restrictions")
	}
	return list, total, nil
}

// Get loads one restriction.
func (s *RestrictionService) Get(ctx context.Context, id string) (*models.Restriction, error) {
	restriction, err := s.restrictions.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "restriction not found")
	}
	return restriction, nil
}

// Create adds a catalog entry. The kind must be one of the ten known
// restriction kinds; unknown tags would silently never evaluate.
func (s *RestrictionService) Create(ctx context.Context, req dto.CreateRestrictionRequest) (*models.Restriction, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid restriction payload")
	}
	if _, known := restrictionSeverity[req.Kind]; !known {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown restriction kind %q", req.Kind))
	}

	restriction := &models.Restriction{
		Code:         req.Code,
		Description:  req.Description,
		Kind:         req.Kind,
		EntityID1:    req.EntityID1,
		EntityID2:    req.EntityID2,
		NumericParam: req.NumericParam,
		PeriodID:     req.PeriodID,
		Active:       req.Active,
	}
	if err := s.restrictions.Create(ctx, restriction); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create restriction")
	}
	s.logger.Info("restriction created", zap.String("restrictionId", restriction.ID), zap.String("kind", restriction.Kind))
	return restriction, nil
}

// Update patches one restriction.
func (s *RestrictionService) Update(ctx context.Context, id string, req dto.UpdateRestrictionRequest) (*models.Restriction, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid restriction payload")
	}
	restriction, err := s.restrictions.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "restriction not found")
	}
	if req.Description != nil {
		restriction.Description = *req.Description
	}
	if req.EntityID1 != nil {
		restriction.EntityID1 = req.EntityID1
	}
	if req.EntityID2 != nil {
		restriction.EntityID2 = req.EntityID2
	}
	if req.NumericParam != nil {
		restriction.NumericParam = req.NumericParam
	}
	if req.PeriodID != nil {
		restriction.PeriodID = req.PeriodID
	}
	if req.Active != nil {
		restriction.Active = *req.Active
	}
	if err := s.restrictions.Update(ctx, restriction); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update restriction")
	}
	return restriction, nil
}

// Delete removes one restriction.
func (s *RestrictionService) Delete(ctx context.Context, id string) error {
	if _, err := s.restrictions.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "restriction not found")
	}
	if err := s.restrictions.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete restriction")
	}
	return nil
}
