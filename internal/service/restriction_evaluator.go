package service

import (
	"sort"

	"github.com/acadhub/horarios-api/internal/models"
)

// restrictionSeverity centralizes the hard/soft split per kind. Hard kinds
// reject a candidate outright; soft kinds feed a penalty into the generation
// score. Kept in one map so the policy can change without touching the
// evaluator branches.
var restrictionSeverity = map[string]string{
	models.RestrictionMaxHoursPerDay:      models.SeverityHard,
	models.RestrictionMaxConsecutiveHours: models.SeverityHard,
	models.RestrictionRestBetweenBlocks:   models.SeverityHard,
	models.RestrictionGroupShiftPref:      models.SeveritySoft,
	models.RestrictionRoomTravelTime:      models.SeverityHard,
	models.RestrictionTeacherDayBlackout:  models.SeverityHard,
	models.RestrictionTeacherHourBlackout: models.SeverityHard,
	models.RestrictionSubjectSpecificRoom: models.SeverityHard,
	models.RestrictionConsecutiveSubjects: models.SeveritySoft,
	models.RestrictionMaxDaysPerWeek:      models.SeverityHard,
}

// candidateSlot is one proposed assignment under evaluation.
type candidateSlot struct {
	PeriodID    string
	GroupID     string
	SubjectID   string
	TeacherID   string
	ClassroomID string
	Day         int
	Block       models.TimeBlock
}

// evalContext carries the occupancy snapshot and entity lookups the
// evaluator reads. Both the manual validator and the generator build one
// from the same period-scoped queries so a rule means the same thing on
// both paths.
type evalContext struct {
	blockOrder  map[string]int
	blockShift  map[string]string
	rooms       map[string]models.Classroom
	groupShift  map[string]string
	assignments []models.ScheduleAssignment
}

func newEvalContext(blocks []models.TimeBlock, rooms []models.Classroom, groups []models.Group, assignments []models.ScheduleAssignment) *evalContext {
	ctx := &evalContext{
		blockOrder:  make(map[string]int, len(blocks)),
		blockShift:  make(map[string]string, len(blocks)),
		rooms:       make(map[string]models.Classroom, len(rooms)),
		groupShift:  make(map[string]string, len(groups)),
		assignments: assignments,
	}
	for _, block := range blocks {
		ctx.blockOrder[block.ID] = block.OrderIndex
		ctx.blockShift[block.ID] = block.Shift
	}
	for _, room := range rooms {
		ctx.rooms[room.ID] = room
	}
	for _, group := range groups {
		ctx.groupShift[group.ID] = group.PreferredShift
	}
	return ctx
}

func (c *evalContext) add(a models.ScheduleAssignment) {
	c.assignments = append(c.assignments, a)
}

// teacherOrdersOnDay returns the sorted block order indexes the teacher
// already occupies on the given day.
func (c *evalContext) teacherOrdersOnDay(teacherID string, day int) []int {
	var orders []int
	for _, a := range c.assignments {
		if a.TeacherID == teacherID && a.Day == day {
			orders = append(orders, c.blockOrder[a.BlockID])
		}
	}
	sort.Ints(orders)
	return orders
}

func (c *evalContext) teacherDays(teacherID string) map[int]bool {
	days := make(map[int]bool)
	for _, a := range c.assignments {
		if a.TeacherID == teacherID {
			days[a.Day] = true
		}
	}
	return days
}

func (c *evalContext) groupOrdersOnDay(groupID string, day int) []int {
	var orders []int
	for _, a := range c.assignments {
		if a.GroupID == groupID && a.Day == day {
			orders = append(orders, c.blockOrder[a.BlockID])
		}
	}
	sort.Ints(orders)
	return orders
}

// teacherRoomBefore returns the classroom of the teacher's closest earlier
// block on the day, or nil when the candidate opens the day.
func (c *evalContext) teacherRoomBefore(teacherID string, day, order int) (*models.Classroom, int) {
	bestOrder := -1
	var roomID string
	for _, a := range c.assignments {
		if a.TeacherID != teacherID || a.Day != day {
			continue
		}
		o := c.blockOrder[a.BlockID]
		if o < order && o > bestOrder {
			bestOrder = o
			roomID = a.ClassroomID
		}
	}
	if bestOrder < 0 {
		return nil, 0
	}
	room, ok := c.rooms[roomID]
	if !ok {
		return nil, 0
	}
	return &room, bestOrder
}

func matchesEntity(param *string, id string) bool {
	return param == nil || *param == "" || *param == id
}

// evaluateRestriction checks one restriction against a candidate. Hard kinds
// return ok=false on violation; soft kinds always return ok=true and report
// the violation as a penalty.
func evaluateRestriction(r models.Restriction, cand candidateSlot, ctx *evalContext) (bool, float64) {
	switch r.Kind {
	case models.RestrictionMaxHoursPerDay:
		if !matchesEntity(r.EntityID1, cand.TeacherID) || r.NumericParam == nil {
			return true, 0
		}
		if len(ctx.teacherOrdersOnDay(cand.TeacherID, cand.Day))+1 > *r.NumericParam {
			return false, 0
		}
		return true, 0

	case models.RestrictionMaxConsecutiveHours:
		if !matchesEntity(r.EntityID1, cand.TeacherID) || r.NumericParam == nil {
			return true, 0
		}
		orders := append(ctx.teacherOrdersOnDay(cand.TeacherID, cand.Day), cand.Block.OrderIndex)
		sort.Ints(orders)
		if longestRun(orders) > *r.NumericParam {
			return false, 0
		}
		return true, 0

	case models.RestrictionRestBetweenBlocks:
		if !matchesEntity(r.EntityID1, cand.TeacherID) || r.NumericParam == nil || *r.NumericParam <= 0 {
			return true, 0
		}
		// Contiguous teaching runs are fine; once a gap exists it must be
		// at least the required rest.
		for _, o := range ctx.teacherOrdersOnDay(cand.TeacherID, cand.Day) {
			gap := absInt(cand.Block.OrderIndex-o) - 1
			if gap >= 1 && gap < *r.NumericParam {
				return false, 0
			}
		}
		return true, 0

	case models.RestrictionGroupShiftPref:
		if !matchesEntity(r.EntityID1, cand.GroupID) {
			return true, 0
		}
		preferred := ctx.groupShift[cand.GroupID]
		if preferred != "" && cand.Block.Shift != preferred {
			return true, 1
		}
		return true, 0

	case models.RestrictionRoomTravelTime:
		if !matchesEntity(r.EntityID1, cand.TeacherID) || r.NumericParam == nil {
			return true, 0
		}
		prevRoom, prevOrder := ctx.teacherRoomBefore(cand.TeacherID, cand.Day, cand.Block.OrderIndex)
		if prevRoom == nil {
			return true, 0
		}
		room, ok := ctx.rooms[cand.ClassroomID]
		if !ok || prevRoom.Location == room.Location {
			return true, 0
		}
		if cand.Block.OrderIndex-prevOrder-1 < *r.NumericParam {
			return false, 0
		}
		return true, 0

	case models.RestrictionTeacherDayBlackout:
		if !matchesEntity(r.EntityID1, cand.TeacherID) {
			return true, 0
		}
		if r.NumericParam == nil || *r.NumericParam == cand.Day {
			return false, 0
		}
		return true, 0

	case models.RestrictionTeacherHourBlackout:
		if !matchesEntity(r.EntityID1, cand.TeacherID) {
			return true, 0
		}
		if !matchesEntity(r.EntityID2, cand.Block.ID) {
			return true, 0
		}
		if r.NumericParam != nil && *r.NumericParam != cand.Day {
			return true, 0
		}
		return false, 0

	case models.RestrictionSubjectSpecificRoom:
		if !matchesEntity(r.EntityID1, cand.SubjectID) {
			return true, 0
		}
		if r.EntityID2 != nil && *r.EntityID2 != "" && cand.ClassroomID != *r.EntityID2 {
			return false, 0
		}
		return true, 0

	case models.RestrictionConsecutiveSubjects:
		if !matchesEntity(r.EntityID1, cand.SubjectID) && !matchesEntity(r.EntityID2, cand.SubjectID) {
			return true, 0
		}
		for _, o := range ctx.groupOrdersOnDay(cand.GroupID, cand.Day) {
			if absInt(cand.Block.OrderIndex-o) == 1 {
				return true, 0
			}
		}
		if len(ctx.groupOrdersOnDay(cand.GroupID, cand.Day)) == 0 {
			return true, 0
		}
		return true, 1

	case models.RestrictionMaxDaysPerWeek:
		if !matchesEntity(r.EntityID1, cand.TeacherID) || r.NumericParam == nil {
			return true, 0
		}
		days := ctx.teacherDays(cand.TeacherID)
		days[cand.Day] = true
		if len(days) > *r.NumericParam {
			return false, 0
		}
		return true, 0
	}
	return true, 0
}

// evaluateAll walks the active restrictions in catalog order. It returns the
// first violated hard restriction (nil when none) and the accumulated soft
// penalty.
func evaluateAll(restrictions []models.Restriction, cand candidateSlot, ctx *evalContext) (*models.Restriction, float64) {
	var penalty float64
	for i := range restrictions {
		ok, p := evaluateRestriction(restrictions[i], cand, ctx)
		if !ok && restrictionSeverity[restrictions[i].Kind] == models.SeverityHard {
			return &restrictions[i], penalty
		}
		penalty += p
	}
	return nil, penalty
}

func longestRun(sorted []int) int {
	best, run := 0, 0
	for i := range sorted {
		if i > 0 && sorted[i] == sorted[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
