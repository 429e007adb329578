package dto

// GenerateRequest triggers automatic timetable generation for one period.
type GenerateRequest struct {
	PeriodID string `json:"period_id" validate:"required"`
}

// UnresolvedConflict is a required group-subject block the engine could not
// place given current availability and constraints.
type UnresolvedConflict struct {
	GroupID     string `json:"group"`
	GroupCode   string `json:"group_code,omitempty"`
	SubjectID   string `json:"subject"`
	SubjectCode string `json:"subject_code,omitempty"`
	Reason      string `json:"reason"`
}

// GenerationResponse is the report returned by a generation run.
type GenerationResponse struct {
	AssignedCount       int                  `json:"assigned_count"`
	ConflictCount       int                  `json:"conflict_count"`
	TotalGroups         int                  `json:"total_groups"`
	SuccessPercentage   float64              `json:"success_percentage"`
	UnresolvedConflicts []UnresolvedConflict `json:"unresolved_conflicts"`
}
