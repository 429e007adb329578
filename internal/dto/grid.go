package dto

// GridQuery selects the timetable view: the period plus at most one entity
// filter per axis. With no entity filter the whole period is the view.
type GridQuery struct {
	PeriodID    string `form:"period_id" binding:"required" validate:"required"`
	GroupID     string `form:"group_id"`
	TeacherID   string `form:"teacher_id"`
	ClassroomID string `form:"classroom_id"`
}

// GridCell is one occupied (day, block) intersection of a schedule view.
type GridCell struct {
	AssignmentID  string `json:"assignment_id"`
	SubjectCode   string `json:"subject_code"`
	SubjectName   string `json:"subject_name"`
	TeacherName   string `json:"teacher_name"`
	ClassroomName string `json:"classroom_name"`
	GroupCode     string `json:"group_code"`
}

// GridRow is one time block across the six weekdays. Cells is keyed by day
// id (1-6); absent keys mean the slot is free.
type GridRow struct {
	BlockID   string           `json:"block_id"`
	StartTime string           `json:"start_time"`
	EndTime   string           `json:"end_time"`
	Cells     map[int]GridCell `json:"cells"`
}

// ScheduleGrid is the day-by-block matrix of one timetable view. An empty
// Rows slice is a valid grid: no assignments matched the filter.
type ScheduleGrid struct {
	View     string    `json:"view"`
	Title    string    `json:"title"`
	PeriodID string    `json:"period_id"`
	Rows     []GridRow `json:"rows"`
}
