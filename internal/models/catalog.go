package models

import "time"

// AcademicUnit is a faculty or school owning careers and classrooms.
type AcademicUnit struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Career is a degree program within an academic unit.
type Career struct {
	ID         string    `db:"id" json:"id"`
	UnitID     string    `db:"unit_id" json:"unit_id"`
	Code       string    `db:"code" json:"code"`
	Name       string    `db:"name" json:"name"`
	TotalHours int       `db:"total_hours" json:"total_hours"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Cycle is an ordinal position within a career's curriculum. Order buckets
// subjects into time-of-day policy bands.
type Cycle struct {
	ID        string    `db:"id" json:"id"`
	CareerID  string    `db:"career_id" json:"career_id"`
	Name      string    `db:"name" json:"name"`
	Order     int       `db:"ord" json:"order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Period is an academic term scoping all scheduling activity.
type Period struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Shift values for time blocks and group preferences.
const (
	ShiftMorning   = "MANANA"
	ShiftAfternoon = "TARDE"
	ShiftEvening   = "NOCHE"
)

// Weekday ids used across availability and assignments (Mon-Sat).
const (
	DayMin = 1
	DayMax = 6
)

// TimeBlock is the atomic scheduling unit: a fixed clock-time interval.
// DayOfWeek is nil for day-agnostic templates matched against all weekdays,
// or set when the block only exists on one day.
type TimeBlock struct {
	ID         string    `db:"id" json:"id"`
	StartTime  string    `db:"start_time" json:"start_time"`
	EndTime    string    `db:"end_time" json:"end_time"`
	Shift      string    `db:"shift" json:"shift"`
	DayOfWeek  *int      `db:"day_of_week" json:"day_of_week,omitempty"`
	OrderIndex int       `db:"order_index" json:"order_index"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// CatalogFilter covers the shared list options of catalog entities.
type CatalogFilter struct {
	Search   string
	UnitID   string
	CareerID string
	Active   *bool
	Page     int
	PageSize int
}
