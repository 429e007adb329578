package models

import "time"

// Room types referenced by subjects and restrictions.
const (
	RoomTypeClassroom  = "AULA"
	RoomTypeLab        = "LABORATORIO"
	RoomTypeWorkshop   = "TALLER"
	RoomTypeAuditorium = "AUDITORIO"
)

// Classroom is a physical space owned by an academic unit.
type Classroom struct {
	ID        string    `db:"id" json:"id"`
	UnitID    string    `db:"unit_id" json:"unit_id"`
	Name      string    `db:"name" json:"name"`
	RoomType  string    `db:"room_type" json:"room_type"`
	Capacity  int       `db:"capacity" json:"capacity"`
	Location  string    `db:"location" json:"location"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ClassroomFilter captures filtering options for listing classrooms.
type ClassroomFilter struct {
	UnitID      string
	RoomType    string
	MinCapacity int
	Page        int
	PageSize    int
}
