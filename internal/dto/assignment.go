package dto

// CreateAssignmentRequest carries the seven manual-assignment fields.
// Presence is validated explicitly so a missing field reports MISSING_FIELD
// before any other rule runs.
type CreateAssignmentRequest struct {
	GroupID     string `json:"group_id"`
	SubjectID   string `json:"subject_id"`
	TeacherID   string `json:"teacher_id"`
	ClassroomID string `json:"classroom_id"`
	PeriodID    string `json:"period_id"`
	Day         int    `json:"day"`
	BlockID     string `json:"block_id"`
}

// MissingFields lists empty required fields in declaration order.
func (r CreateAssignmentRequest) MissingFields() []string {
	var missing []string
	if r.GroupID == "" {
		missing = append(missing, "group_id")
	}
	if r.SubjectID == "" {
		missing = append(missing, "subject_id")
	}
	if r.TeacherID == "" {
		missing = append(missing, "teacher_id")
	}
	if r.ClassroomID == "" {
		missing = append(missing, "classroom_id")
	}
	if r.PeriodID == "" {
		missing = append(missing, "period_id")
	}
	if r.Day < 1 || r.Day > 6 {
		missing = append(missing, "day")
	}
	if r.BlockID == "" {
		missing = append(missing, "block_id")
	}
	return missing
}
