package models

import "time"

// Assignment origins. Auto rows are cleared before a generation rerun;
// override rows come from groups with a pinned teacher and survive reruns.
const (
	AssignmentOriginManual   = "manual"
	AssignmentOriginAuto     = "auto"
	AssignmentOriginOverride = "override"
)

// ScheduleAssignment occupies one (period, day, block) slot on the three
// resource axes at once: teacher, classroom and group.
type ScheduleAssignment struct {
	ID          string    `db:"id" json:"id"`
	PeriodID    string    `db:"period_id" json:"period_id"`
	GroupID     string    `db:"group_id" json:"group_id"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	TeacherID   string    `db:"teacher_id" json:"teacher_id"`
	ClassroomID string    `db:"classroom_id" json:"classroom_id"`
	Day         int       `db:"day" json:"day"`
	BlockID     string    `db:"block_id" json:"block_id"`
	Origin      string    `db:"origin" json:"origin"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// AssignmentFilter captures query params for listing assignments.
type AssignmentFilter struct {
	PeriodID    string
	GroupID     string
	TeacherID   string
	ClassroomID string
	SubjectID   string
	Day         int
	Page        int
	PageSize    int
}
