package models

import (
	"time"

	"github.com/lib/pq"
)

// Teacher represents an instructor record.
type Teacher struct {
	ID             string         `db:"id" json:"id"`
	Code           string         `db:"code" json:"code"`
	FullName       string         `db:"full_name" json:"full_name"`
	Email          string         `db:"email" json:"email"`
	Phone          *string        `db:"phone" json:"phone,omitempty"`
	ContractType   string         `db:"contract_type" json:"contract_type"`
	MaxWeeklyHours int            `db:"max_weekly_hours" json:"max_weekly_hours"`
	UnitID         string         `db:"unit_id" json:"unit_id"`
	Specialties    pq.StringArray `db:"specialties" json:"specialties"`
	Active         bool           `db:"active" json:"active"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	Search    string
	UnitID    string
	Specialty string
	Active    *bool
	Page      int
	PageSize  int
}
