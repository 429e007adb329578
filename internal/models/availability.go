package models

import "time"

// Availability record origins.
const (
	AvailabilityOriginManual = "manual"
	AvailabilityOriginImport = "import"
)

// TeacherAvailability marks one (teacher, period, day, block) slot as
// teachable or not. Absence of a record means unavailable: teachers opt in.
type TeacherAvailability struct {
	ID        string    `db:"id" json:"id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	PeriodID  string    `db:"period_id" json:"period_id"`
	Day       int       `db:"day" json:"day"`
	BlockID   string    `db:"block_id" json:"block_id"`
	Available bool      `db:"available" json:"available"`
	Weight    int       `db:"weight" json:"weight"`
	Origin    string    `db:"origin" json:"origin"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AvailabilityFilter scopes availability listings.
type AvailabilityFilter struct {
	TeacherID string
	PeriodID  string
	Day       int
	Page      int
	PageSize  int
}
