package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acadhub/horarios-api/internal/dto"
	"github.com/acadhub/horarios-api/internal/models"
)

type restrictionStoreStub struct {
	items   map[string]*models.Restriction
	created *models.Restriction
}

func (s *restrictionStoreStub) List(context.Context, models.RestrictionFilter) ([]models.Restriction, int, error) {
	return nil, 0, nil
}

func (s *restrictionStoreStub) FindByID(_ context.Context, id string) (*models.Restriction, error) {
	if r, ok := s.items[id]; ok {
		return r, nil
	}
	return nil, sql.ErrNoRows
}

func (s *restrictionStoreStub) Create(_ context.Context, restriction *models.Restriction) error {
	restriction.ID = "r-new"
	s.created = restriction
	return nil
}

func (s *restrictionStoreStub) Update(context.Context, *models.Restriction) error { return nil }
func (s *restrictionStoreStub) Delete(context.Context, string) error              { return nil }

func TestRestrictionCreateRejectsUnknownKind(t *testing.T) {
	store := &restrictionStoreStub{}
	service := NewRestrictionService(store, nil, zap.NewNop())

	_, err := service.Create(context.Background(), dto.CreateRestrictionRequest{
		Code:        "R1",
		Description: "made up rule",
		Kind:        "REGLA_INEXISTENTE",
	})
	assertErrorCode(t, err, "VALIDATION_ERROR")
	assert.Nil(t, store.created)
}

func TestRestrictionCreateKnownKind(t *testing.T) {
	store := &restrictionStoreStub{}
	service := NewRestrictionService(store, nil, zap.NewNop())

	created, err := service.Create(context.Background(), dto.CreateRestrictionRequest{
		Code:         "R1",
		Description:  "max five hours per day",
		Kind:         models.RestrictionMaxHoursPerDay,
		NumericParam: intPtr(5),
		Active:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, "r-new", created.ID)
}

func TestRestrictionUpdatePatchesFields(t *testing.T) {
	store := &restrictionStoreStub{items: map[string]*models.Restriction{
		"r1": {ID: "r1", Code: "R1", Kind: models.RestrictionMaxHoursPerDay, NumericParam: intPtr(5), Active: true},
	}}
	service := NewRestrictionService(store, nil, zap.NewNop())

	active := false
	updated, err := service.Update(context.Background(), "r1", dto.UpdateRestrictionRequest{
		NumericParam: intPtr(4),
		Active:       &active,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, *updated.NumericParam)
	assert.False(t, updated.Active)
	assert.Equal(t, "R1", updated.Code, "untouched fields survive the patch")
}
