package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acadhub/horarios-api/internal/dto"
	"github.com/acadhub/horarios-api/internal/models"
)

type periodReaderStub struct {
	periods map[string]*models.Period
}

func (s periodReaderStub) FindByID(_ context.Context, id string) (*models.Period, error) {
	if p, ok := s.periods[id]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

type genGroupsStub struct{ items []models.Group }

func (s genGroupsStub) ListByPeriod(_ context.Context, periodID string) ([]models.Group, error) {
	var out []models.Group
	for _, g := range s.items {
		if g.PeriodID == periodID {
			out = append(out, g)
		}
	}
	return out, nil
}

type genSubjectsStub struct{ items []models.Subject }

func (s genSubjectsStub) ListByIDs(_ context.Context, ids []string) ([]models.Subject, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []models.Subject
	for _, subject := range s.items {
		if wanted[subject.ID] {
			out = append(out, subject)
		}
	}
	return out, nil
}

type genTeachersStub struct{ items []models.Teacher }

func (s genTeachersStub) ListActive(context.Context) ([]models.Teacher, error) {
	return s.items, nil
}

type genRoomsStub struct{ items []models.Classroom }

func (s genRoomsStub) FindByID(_ context.Context, id string) (*models.Classroom, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s genRoomsStub) ListAll(context.Context) ([]models.Classroom, error) {
	return s.items, nil
}

type genBlocksStub struct{ items []models.TimeBlock }

func (s genBlocksStub) FindByID(_ context.Context, id string) (*models.TimeBlock, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s genBlocksStub) ListAll(context.Context) ([]models.TimeBlock, error) {
	return s.items, nil
}

type genAvailabilityStub struct{ items []models.TeacherAvailability }

func (s genAvailabilityStub) ListByPeriod(context.Context, string) ([]models.TeacherAvailability, error) {
	return s.items, nil
}

type genRestrictionsStub struct{ items []models.Restriction }

func (s genRestrictionsStub) ListActiveForPeriod(context.Context, string) ([]models.Restriction, error) {
	return s.items, nil
}

type genAssignmentsStub struct {
	existing []models.ScheduleAssignment
	created  []models.ScheduleAssignment
	cleared  int64
}

func (s *genAssignmentsStub) ListByPeriod(context.Context, string) ([]models.ScheduleAssignment, error) {
	return s.existing, nil
}

func (s *genAssignmentsStub) DeleteAutoByPeriod(context.Context, string) (int64, error) {
	kept := s.existing[:0]
	for _, a := range s.existing {
		if a.Origin == models.AssignmentOriginAuto {
			s.cleared++
			continue
		}
		kept = append(kept, a)
	}
	s.existing = kept
	return s.cleared, nil
}

func (s *genAssignmentsStub) CreateBatch(_ context.Context, assignments []models.ScheduleAssignment) error {
	s.created = append(s.created, assignments...)
	return nil
}

type generatorFixtureConfig struct {
	groups       []models.Group
	subjects     []models.Subject
	teachers     []models.Teacher
	rooms        []models.Classroom
	blocks       []models.TimeBlock
	availability []models.TeacherAvailability
	restrictions []models.Restriction
	existing     []models.ScheduleAssignment
}

func defaultGeneratorFixture() generatorFixtureConfig {
	return generatorFixtureConfig{
		groups: []models.Group{
			{ID: "g1", Code: "G1", PeriodID: "p1", StudentCount: 20, PreferredShift: models.ShiftMorning, SubjectIDs: []string{"s-math"}},
		},
		subjects: []models.Subject{
			{ID: "s-math", Code: "MAT101", TheoryHours: 2, Active: true, Specialties: []string{"math"}},
		},
		teachers: []models.Teacher{
			{ID: "t1", Code: "DOC-1", FullName: "Ana Quispe", MaxWeeklyHours: 20, Specialties: []string{"math"}, Active: true},
		},
		rooms: []models.Classroom{
			{ID: "r1", Name: "A-101", RoomType: models.RoomTypeClassroom, Capacity: 40, Location: "north"},
		},
		blocks: []models.TimeBlock{
			{ID: "b1", StartTime: "07:00", EndTime: "08:00", Shift: models.ShiftMorning, OrderIndex: 1},
			{ID: "b2", StartTime: "08:00", EndTime: "09:00", Shift: models.ShiftMorning, OrderIndex: 2},
		},
		availability: []models.TeacherAvailability{
			{TeacherID: "t1", PeriodID: "p1", Day: 1, BlockID: "b1", Available: true},
			{TeacherID: "t1", PeriodID: "p1", Day: 1, BlockID: "b2", Available: true},
		},
	}
}

func newGeneratorFixture(cfg generatorFixtureConfig) (*GeneratorService, *genAssignmentsStub) {
	store := &genAssignmentsStub{existing: cfg.existing}
	service := NewGeneratorService(
		periodReaderStub{periods: map[string]*models.Period{"p1": {ID: "p1", Name: "2026-I"}}},
		genGroupsStub{items: cfg.groups},
		genSubjectsStub{items: cfg.subjects},
		genTeachersStub{items: cfg.teachers},
		genRoomsStub{items: cfg.rooms},
		genBlocksStub{items: cfg.blocks},
		genAvailabilityStub{items: cfg.availability},
		genRestrictionsStub{items: cfg.restrictions},
		store,
		nil,
		nil,
		validator.New(),
		zap.NewNop(),
		GeneratorConfig{},
	)
	return service, store
}

func TestGeneratorPlacesAllDemand(t *testing.T) {
	service, store := newGeneratorFixture(defaultGeneratorFixture())

	resp, err := service.Generate(context.Background(), dto.GenerateRequest{PeriodID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.AssignedCount)
	assert.Equal(t, 0, resp.ConflictCount)
	assert.Equal(t, 100.0, resp.SuccessPercentage)
	assert.Empty(t, resp.UnresolvedConflicts)
	require.Len(t, store.created, 2)
	for _, a := range store.created {
		assert.Equal(t, models.AssignmentOriginAuto, a.Origin)
		assert.Equal(t, "t1", a.TeacherID)
	}
}

func TestGeneratorUnknownPeriod(t *testing.T) {
	service, _ := newGeneratorFixture(defaultGeneratorFixture())

	_, err := service.Generate(context.Background(), dto.GenerateRequest{PeriodID: "p-missing"})
	require.Error(t, err)
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestGeneratorHonoursAvailability(t *testing.T) {
	cfg := defaultGeneratorFixture()
	cfg.availability = []models.TeacherAvailability{
		{TeacherID: "t1", PeriodID: "p1", Day: 1, BlockID: "b1", Available: true},
	}
	service, store := newGeneratorFixture(cfg)

	resp, err := service.Generate(context.Background(), dto.GenerateRequest{PeriodID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.AssignedCount)
	assert.Equal(t, 1, resp.ConflictCount)
	require.Len(t, store.created, 1)
	assert.Equal(t, 1, store.created[0].Day)
	assert.Equal(t, "b1", store.created[0].BlockID)
	require.Len(t, resp.UnresolvedConflicts, 1)
	assert.Equal(t, "MAT101", resp.UnresolvedConflicts[0].SubjectCode)
}

func TestGeneratorDayBlackoutBlocksPlacement(t *testing.T) {
	cfg := defaultGeneratorFixture()
	cfg.restrictions = []models.Restriction{
		{
			Code:         "R1",
			Kind:         models.RestrictionTeacherDayBlackout,
			EntityID1:    strPtr("t1"),
			NumericParam: intPtr(1),
			Active:       true,
		},
	}
	service, store := newGeneratorFixture(cfg)

	resp, err := service.Generate(context.Background(), dto.GenerateRequest{PeriodID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.AssignedCount)
	assert.Equal(t, 2, resp.ConflictCount)
	assert.Empty(t, store.created)
	for _, c := range resp.UnresolvedConflicts {
		assert.Contains(t, c.Reason, "hard restriction")
	}
}

func TestGeneratorSuccessPercentageRounding(t *testing.T) {
	cfg := defaultGeneratorFixture()
	cfg.subjects = []models.Subject{
		{ID: "s-math", Code: "MAT101", TheoryHours: 10, Active: true, Specialties: []string{"math"}},
	}
	cfg.blocks = []models.TimeBlock{
		{ID: "b1", StartTime: "07:00", EndTime: "08:00", Shift: models.ShiftMorning, OrderIndex: 1},
		{ID: "b2", StartTime: "08:00", EndTime: "09:00", Shift: models.ShiftMorning, OrderIndex: 2},
		{ID: "b3", StartTime: "09:00", EndTime: "10:00", Shift: models.ShiftMorning, OrderIndex: 3},
		{ID: "b4", StartTime: "10:00", EndTime: "11:00", Shift: models.ShiftMorning, OrderIndex: 4},
	}
	cfg.availability = nil
	for day := 1; day <= 2; day++ {
		for _, blockID := range []string{"b1", "b2", "b3", "b4"} {
			cfg.availability = append(cfg.availability, models.TeacherAvailability{
				TeacherID: "t1", PeriodID: "p1", Day: day, BlockID: blockID, Available: true,
			})
		}
	}
	service, _ := newGeneratorFixture(cfg)

	resp, err := service.Generate(context.Background(), dto.GenerateRequest{PeriodID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, 8, resp.AssignedCount)
	assert.Equal(t, 2, resp.ConflictCount)
	assert.Equal(t, 80.0, resp.SuccessPercentage)
}

func TestGeneratorDeterministic(t *testing.T) {
	cfg := defaultGeneratorFixture()
	cfg.teachers = append(cfg.teachers, models.Teacher{
		ID: "t2", Code: "DOC-2", FullName: "Luis Rojas", MaxWeeklyHours: 20, Specialties: []string{"math"}, Active: true,
	})
	cfg.rooms = append(cfg.rooms, models.Classroom{
		ID: "r2", Name: "A-102", RoomType: models.RoomTypeClassroom, Capacity: 40, Location: "north",
	})
	cfg.subjects = []models.Subject{
		{ID: "s-math", Code: "MAT101", TheoryHours: 4, Active: true, Specialties: []string{"math"}},
	}
	cfg.availability = nil
	for _, teacherID := range []string{"t1", "t2"} {
		for day := 1; day <= 3; day++ {
			for _, blockID := range []string{"b1", "b2"} {
				cfg.availability = append(cfg.availability, models.TeacherAvailability{
					TeacherID: teacherID, PeriodID: "p1", Day: day, BlockID: blockID, Available: true,
				})
			}
		}
	}

	first, firstStore := newGeneratorFixture(cfg)
	second, secondStore := newGeneratorFixture(cfg)

	respA, err := first.Generate(context.Background(), dto.GenerateRequest{PeriodID: "p1"})
	require.NoError(t, err)
	respB, err := second.Generate(context.Background(), dto.GenerateRequest{PeriodID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, respA.AssignedCount, respB.AssignedCount)
	assert.Equal(t, firstStore.created, secondStore.created, "identical inputs must produce identical schedules")
}

func TestGeneratorRerunKeepsManualRows(t *testing.T) {
	cfg := defaultGeneratorFixture()
	cfg.subjects = []models.Subject{
		{ID: "s-math", Code: "MAT101", TheoryHours: 1, Active: true, Specialties: []string{"math"}},
	}
	cfg.existing = []models.ScheduleAssignment{
		{ID: "a-manual", PeriodID: "p1", GroupID: "g1", SubjectID: "s-other", TeacherID: "t1", ClassroomID: "r1", Day: 1, BlockID: "b1", Origin: models.AssignmentOriginManual},
		{ID: "a-auto", PeriodID: "p1", GroupID: "g1", SubjectID: "s-math", TeacherID: "t1", ClassroomID: "r1", Day: 1, BlockID: "b2", Origin: models.AssignmentOriginAuto},
	}
	service, store := newGeneratorFixture(cfg)

	resp, err := service.Generate(context.Background(), dto.GenerateRequest{PeriodID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), store.cleared, "prior auto rows are cleared before the rerun")
	assert.Equal(t, 1, resp.AssignedCount)
	require.Len(t, store.created, 1)
	assert.Equal(t, "b2", store.created[0].BlockID, "the manual row still occupies b1")
}

func TestGeneratorOverrideTeacherSkipsAvailability(t *testing.T) {
	cfg := defaultGeneratorFixture()
	cfg.groups = []models.Group{
		{ID: "g1", Code: "G1", PeriodID: "p1", StudentCount: 20, PreferredShift: models.ShiftMorning, OverrideTeacherID: strPtr("t-pinned"), SubjectIDs: []string{"s-math"}},
	}
	cfg.availability = nil
	service, store := newGeneratorFixture(cfg)

	resp, err := service.Generate(context.Background(), dto.GenerateRequest{PeriodID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.AssignedCount)
	require.Len(t, store.created, 2)
	for _, a := range store.created {
		assert.Equal(t, "t-pinned", a.TeacherID)
		assert.Equal(t, models.AssignmentOriginOverride, a.Origin)
	}
}

func TestGeneratorRerunKeepsOverrideRows(t *testing.T) {
	cfg := defaultGeneratorFixture()
	cfg.groups = []models.Group{
		{ID: "g1", Code: "G1", PeriodID: "p1", StudentCount: 20, PreferredShift: models.ShiftMorning, OverrideTeacherID: strPtr("t-pinned"), SubjectIDs: []string{"s-math"}},
	}
	cfg.existing = []models.ScheduleAssignment{
		{ID: "a-ov1", PeriodID: "p1", GroupID: "g1", SubjectID: "s-math", TeacherID: "t-pinned", ClassroomID: "r1", Day: 1, BlockID: "b1", Origin: models.AssignmentOriginOverride},
		{ID: "a-ov2", PeriodID: "p1", GroupID: "g1", SubjectID: "s-math", TeacherID: "t-pinned", ClassroomID: "r1", Day: 1, BlockID: "b2", Origin: models.AssignmentOriginOverride},
	}
	service, store := newGeneratorFixture(cfg)

	resp, err := service.Generate(context.Background(), dto.GenerateRequest{PeriodID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, int64(0), store.cleared, "override rows survive the rerun clearing pass")
	require.Len(t, store.existing, 2)
	assert.Empty(t, store.created, "covered demand is not re-placed")
	assert.Equal(t, 0, resp.ConflictCount)
}

func TestGeneratorExistingRowsReduceDemand(t *testing.T) {
	cfg := defaultGeneratorFixture()
	cfg.existing = []models.ScheduleAssignment{
		{ID: "a-manual", PeriodID: "p1", GroupID: "g1", SubjectID: "s-math", TeacherID: "t1", ClassroomID: "r1", Day: 1, BlockID: "b1", Origin: models.AssignmentOriginManual},
	}
	service, store := newGeneratorFixture(cfg)

	resp, err := service.Generate(context.Background(), dto.GenerateRequest{PeriodID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.AssignedCount, "one committed hour leaves one hour of demand")
	assert.Equal(t, 0, resp.ConflictCount)
	require.Len(t, store.created, 1)
	assert.Equal(t, "b2", store.created[0].BlockID, "the committed row still occupies b1")
}
