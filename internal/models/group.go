package models

import "time"

// Group is a scheduled section of one or more subjects for a student cohort.
// OverrideTeacherID pins every subject of the group to one teacher, bypassing
// teacher search during automatic generation.
type Group struct {
	ID                string    `db:"id" json:"id"`
	Code              string    `db:"code" json:"code"`
	CareerID          string    `db:"career_id" json:"career_id"`
	PeriodID          string    `db:"period_id" json:"period_id"`
	StudentCount      int       `db:"student_count" json:"student_count"`
	PreferredShift    string    `db:"preferred_shift" json:"preferred_shift"`
	OverrideTeacherID *string   `db:"override_teacher_id" json:"override_teacher_id,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`

	// SubjectIDs is loaded from the group_subjects join table, not a column.
	SubjectIDs []string `db:"-" json:"subject_ids"`
}

// GroupFilter captures filtering options for listing groups.
type GroupFilter struct {
	PeriodID string
	CareerID string
	Search   string
	Page     int
	PageSize int
}
