package models

import "time"

// Restriction kinds. Codes follow the administrative catalog verbatim.
const (
	RestrictionMaxHoursPerDay      = "MAX_HORAS_DIA_DOCENTE"
	RestrictionMaxConsecutiveHours = "MAX_HORAS_CONSECUTIVAS"
	RestrictionRestBetweenBlocks   = "DESCANSO_ENTRE_BLOQUES"
	RestrictionGroupShiftPref      = "PREFERENCIA_TURNO_GRUPO"
	RestrictionRoomTravelTime      = "TIEMPO_TRASLADO_AULAS"
	RestrictionTeacherDayBlackout  = "RESTRICCION_DIA_DOCENTE"
	RestrictionTeacherHourBlackout = "RESTRICCION_HORA_DOCENTE"
	RestrictionSubjectSpecificRoom = "AULA_ESPECIFICA_MATERIA"
	RestrictionConsecutiveSubjects = "MATERIAS_CONSECUTIVAS"
	RestrictionMaxDaysPerWeek      = "MAX_DIAS_DOCENTE"
)

// Restriction severity. Hard kinds reject a candidate outright; soft kinds
// only penalize the generation score.
const (
	SeverityHard = "hard"
	SeveritySoft = "soft"
)

// Restriction is a configurable rule constraining valid assignments.
// JSON field names follow the administrative client contract.
type Restriction struct {
	ID           string    `db:"id" json:"id"`
	Code         string    `db:"code" json:"codigo"`
	Description  string    `db:"description" json:"descripcion"`
	Kind         string    `db:"kind" json:"tipo_aplicacion"`
	EntityID1    *string   `db:"entity_id_1" json:"entidad_id_1,omitempty"`
	EntityID2    *string   `db:"entity_id_2" json:"entidad_id_2,omitempty"`
	NumericParam *int      `db:"numeric_param" json:"valor_parametro,omitempty"`
	PeriodID     *string   `db:"period_id" json:"periodo_aplicable,omitempty"`
	Active       bool      `db:"active" json:"esta_activa"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// RestrictionFilter scopes restriction listings.
type RestrictionFilter struct {
	PeriodID string
	Kind     string
	Active   *bool
	Page     int
	PageSize int
}
