package dto

// CreateUnitRequest creates an academic unit.
type CreateUnitRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateCareerRequest creates a career under a unit.
type CreateCareerRequest struct {
	UnitID     string `json:"unit_id" validate:"required"`
	Code       string `json:"code" validate:"required"`
	Name       string `json:"name" validate:"required"`
	TotalHours int    `json:"total_hours" validate:"required,min=1"`
}

// CreateCycleRequest creates a curriculum cycle for a career.
type CreateCycleRequest struct {
	CareerID string `json:"career_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Order    int    `json:"order" validate:"required,min=1"`
}

// CreatePeriodRequest creates an academic period.
type CreatePeriodRequest struct {
	Name      string `json:"name" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Active    bool   `json:"active"`
}

// CreateTimeBlockRequest creates a time block template or day-bound instance.
type CreateTimeBlockRequest struct {
	StartTime  string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime    string `json:"end_time" validate:"required,datetime=15:04"`
	Shift      string `json:"shift" validate:"required,oneof=MANANA TARDE NOCHE"`
	DayOfWeek  *int   `json:"day_of_week" validate:"omitempty,min=1,max=6"`
	OrderIndex int    `json:"order_index" validate:"required,min=1"`
}

// CreateSubjectRequest creates a subject.
type CreateSubjectRequest struct {
	Code             string   `json:"code" validate:"required"`
	Name             string   `json:"name" validate:"required"`
	TheoryHours      int      `json:"theory_hours" validate:"min=0"`
	PracticeHours    int      `json:"practice_hours" validate:"min=0"`
	LabHours         int      `json:"lab_hours" validate:"min=0"`
	RequiredRoomType *string  `json:"requiere_tipo_espacio_especifico"`
	Specialties      []string `json:"specialties"`
	CareerIDs        []string `json:"career_ids" validate:"required,min=1"`
	CycleID          *string  `json:"cycle_id"`
	Active           bool     `json:"active"`
}

// CreateClassroomRequest creates a classroom.
type CreateClassroomRequest struct {
	UnitID   string `json:"unit_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	RoomType string `json:"room_type" validate:"required"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
	Location string `json:"location"`
}

// CreateTeacherRequest creates a teacher.
type CreateTeacherRequest struct {
	Code           string   `json:"code" validate:"required"`
	FullName       string   `json:"full_name" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	Phone          *string  `json:"phone"`
	ContractType   string   `json:"contract_type" validate:"required"`
	MaxWeeklyHours int      `json:"max_weekly_hours" validate:"required,min=1"`
	UnitID         string   `json:"unit_id" validate:"required"`
	Specialties    []string `json:"specialties"`
}

// CreateGroupRequest creates a group for a period.
type CreateGroupRequest struct {
	Code              string   `json:"code" validate:"required"`
	CareerID          string   `json:"career_id" validate:"required"`
	PeriodID          string   `json:"period_id" validate:"required"`
	SubjectIDs        []string `json:"subject_ids" validate:"required,min=1"`
	StudentCount      int      `json:"student_count" validate:"required,min=1"`
	PreferredShift    string   `json:"preferred_shift" validate:"omitempty,oneof=MANANA TARDE NOCHE"`
	OverrideTeacherID *string  `json:"override_teacher_id"`
}
