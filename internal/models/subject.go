package models

import (
	"time"

	"github.com/lib/pq"
)

// Subject hour components. Each component's hours consume their own blocks
// during generation and may demand a specific room type.
const (
	ComponentTheory   = "TEORIA"
	ComponentPractice = "PRACTICA"
	ComponentLab      = "LABORATORIO"
)

// Subject is an academic subject attached to one or more careers.
type Subject struct {
	ID               string         `db:"id" json:"id"`
	Code             string         `db:"code" json:"code"`
	Name             string         `db:"name" json:"name"`
	TheoryHours      int            `db:"theory_hours" json:"theory_hours"`
	PracticeHours    int            `db:"practice_hours" json:"practice_hours"`
	LabHours         int            `db:"lab_hours" json:"lab_hours"`
	RequiredRoomType *string        `db:"required_room_type" json:"requiere_tipo_espacio_especifico,omitempty"`
	Specialties      pq.StringArray `db:"specialties" json:"specialties"`
	CycleID          *string        `db:"cycle_id" json:"cycle_id,omitempty"`
	Active           bool           `db:"active" json:"active"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// TotalHours sums the subject's weekly hour components.
func (s Subject) TotalHours() int {
	return s.TheoryHours + s.PracticeHours + s.LabHours
}

// SubjectFilter captures supported filters for listing subjects.
type SubjectFilter struct {
	Search   string
	CareerID string
	Active   *bool
	Page     int
	PageSize int
}
