package dto

// UpsertAvailabilityRequest creates or replaces one availability slot.
type UpsertAvailabilityRequest struct {
	TeacherID string `json:"teacher_id" validate:"required"`
	PeriodID  string `json:"period_id" validate:"required"`
	Day       int    `json:"day" validate:"required,min=1,max=6"`
	BlockID   string `json:"block_id" validate:"required"`
	Available bool   `json:"available"`
	Weight    int    `json:"weight" validate:"omitempty,min=0,max=10"`
}

// PatchAvailabilityRequest updates one availability row in place.
type PatchAvailabilityRequest struct {
	Available *bool `json:"available"`
	Weight    *int  `json:"weight" validate:"omitempty,min=0,max=10"`
}

// ImportRowFailure reports one rejected spreadsheet row.
type ImportRowFailure struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportOutcome is the batch result of a spreadsheet availability import.
// Row failures never abort the batch.
type ImportOutcome struct {
	Imported int                `json:"imported"`
	Failed   int                `json:"failed"`
	Failures []ImportRowFailure `json:"failures"`
}

// AddFailure records one rejected row.
func (o *ImportOutcome) AddFailure(row int, reason string) {
	o.Failed++
	o.Failures = append(o.Failures, ImportRowFailure{Row: row, Reason: reason})
}
