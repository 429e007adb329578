package service

import (
	"sort"
	"strconv"

	"github.com/acadhub/horarios-api/internal/models"
)

// slotRef identifies one (day, block) slot within a period.
type slotRef struct {
	Day     int
	BlockID string
}

// demandUnit is one block of teaching demand expanded from a subject hour
// component for one group. The solver places units one at a time.
type demandUnit struct {
	Group      models.Group
	Subject    models.Subject
	Component  string
	RoomType   string // required classroom type, empty means any
	candidates int    // scarcity estimate set before ordering
}

// generatorState is the single-writer occupancy structure of one solve run.
// It is seeded from committed assignments (manual and override rows survive
// reruns) and mutated only by commit.
type generatorState struct {
	teacherBusy map[string]bool
	roomBusy    map[string]bool
	groupBusy   map[string]bool
	teacherLoad map[string]int
	roomLoad    map[string]int

	available map[string]map[slotRef]bool
	weight    map[string]map[slotRef]int

	eval *evalContext
}

func newGeneratorState(blocks []models.TimeBlock, rooms []models.Classroom, groups []models.Group, availability []models.TeacherAvailability, existing []models.ScheduleAssignment) *generatorState {
	st := &generatorState{
		teacherBusy: make(map[string]bool),
		roomBusy:    make(map[string]bool),
		groupBusy:   make(map[string]bool),
		teacherLoad: make(map[string]int),
		roomLoad:    make(map[string]int),
		available:   make(map[string]map[slotRef]bool),
		weight:      make(map[string]map[slotRef]int),
		eval:        newEvalContext(blocks, rooms, groups, nil),
	}
	for _, slot := range availability {
		if !slot.Available {
			continue
		}
		ref := slotRef{Day: slot.Day, BlockID: slot.BlockID}
		if st.available[slot.TeacherID] == nil {
			st.available[slot.TeacherID] = make(map[slotRef]bool)
			st.weight[slot.TeacherID] = make(map[slotRef]int)
		}
		st.available[slot.TeacherID][ref] = true
		st.weight[slot.TeacherID][ref] = slot.Weight
	}
	for _, a := range existing {
		st.occupy(a)
	}
	return st
}

func (st *generatorState) occupy(a models.ScheduleAssignment) {
	ref := slotRef{Day: a.Day, BlockID: a.BlockID}
	st.teacherBusy[slotKey(a.TeacherID, ref)] = true
	st.roomBusy[slotKey(a.ClassroomID, ref)] = true
	st.groupBusy[slotKey(a.GroupID, ref)] = true
	st.teacherLoad[a.TeacherID]++
	st.roomLoad[a.ClassroomID]++
	st.eval.add(a)
}

func (st *generatorState) isTeacherAvailable(teacherID string, ref slotRef) bool {
	return st.available[teacherID][ref]
}

func (st *generatorState) availabilityWeight(teacherID string, ref slotRef) int {
	return st.weight[teacherID][ref]
}

func (st *generatorState) slotFree(teacherID, roomID, groupID string, ref slotRef) bool {
	if st.teacherBusy[slotKey(teacherID, ref)] {
		return false
	}
	if st.roomBusy[slotKey(roomID, ref)] {
		return false
	}
	if st.groupBusy[slotKey(groupID, ref)] {
		return false
	}
	return true
}

// availableSlotCount counts the teacher's opted-in slots not yet occupied.
func (st *generatorState) availableSlotCount(teacherID string) int {
	count := 0
	for ref := range st.available[teacherID] {
		if !st.teacherBusy[slotKey(teacherID, ref)] {
			count++
		}
	}
	return count
}

func slotKey(id string, ref slotRef) string {
	return id + "|" + strconv.Itoa(ref.Day) + "|" + ref.BlockID
}

// orderUnits sorts demand units scarcest-first with a full deterministic
// tie-break chain so identical inputs solve identically.
func orderUnits(units []demandUnit) {
	sort.SliceStable(units, func(i, j int) bool {
		if units[i].candidates != units[j].candidates {
			return units[i].candidates < units[j].candidates
		}
		if units[i].Group.Code != units[j].Group.Code {
			return units[i].Group.Code < units[j].Group.Code
		}
		if units[i].Subject.Code != units[j].Subject.Code {
			return units[i].Subject.Code < units[j].Subject.Code
		}
		return units[i].Component < units[j].Component
	})
}

// expandDemand turns each group-subject pair into per-component block units.
// One block covers one weekly hour. Lab hours demand a laboratory unless the
// subject pins a specific room type, which then applies to every component.
// Committed rows for the same group and subject count against the hour total,
// so a rerun never schedules past it: manual and surviving override rows
// consume demand in component order.
func expandDemand(groups []models.Group, subjects map[string]models.Subject, existing []models.ScheduleAssignment) []demandUnit {
	committed := make(map[string]int, len(existing))
	for _, a := range existing {
		committed[a.GroupID+"|"+a.SubjectID]++
	}
	var units []demandUnit
	for _, group := range groups {
		for _, subjectID := range group.SubjectIDs {
			subject, ok := subjects[subjectID]
			if !ok || !subject.Active {
				continue
			}
			required := ""
			if subject.RequiredRoomType != nil {
				required = *subject.RequiredRoomType
			}
			labRoom := required
			if labRoom == "" {
				labRoom = models.RoomTypeLab
			}
			key := group.ID + "|" + subject.ID
			for i := 0; i < subject.TheoryHours; i++ {
				if committed[key] > 0 {
					committed[key]--
					continue
				}
				units = append(units, demandUnit{Group: group, Subject: subject, Component: models.ComponentTheory, RoomType: required})
			}
			for i := 0; i < subject.PracticeHours; i++ {
				if committed[key] > 0 {
					committed[key]--
					continue
				}
				units = append(units, demandUnit{Group: group, Subject: subject, Component: models.ComponentPractice, RoomType: required})
			}
			for i := 0; i < subject.LabHours; i++ {
				if committed[key] > 0 {
					committed[key]--
					continue
				}
				units = append(units, demandUnit{Group: group, Subject: subject, Component: models.ComponentLab, RoomType: labRoom})
			}
		}
	}
	return units
}

// qualifiedTeachers filters active teachers by subject specialties, keeping
// the incoming deterministic order. An empty specialty set on the subject
// qualifies everyone.
func qualifiedTeachers(teachers []models.Teacher, subject models.Subject) []models.Teacher {
	if len(subject.Specialties) == 0 {
		return teachers
	}
	wanted := make(map[string]bool, len(subject.Specialties))
	for _, s := range subject.Specialties {
		wanted[s] = true
	}
	var out []models.Teacher
	for _, t := range teachers {
		for _, s := range t.Specialties {
			if wanted[s] {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// compatibleRooms filters rooms by required type and group size, keeping the
// incoming deterministic order.
func compatibleRooms(rooms []models.Classroom, roomType string, studentCount int) []models.Classroom {
	var out []models.Classroom
	for _, room := range rooms {
		if roomType != "" && room.RoomType != roomType {
			continue
		}
		if studentCount > 0 && room.Capacity < studentCount {
			continue
		}
		out = append(out, room)
	}
	return out
}

// blocksForDay returns the blocks schedulable on the given weekday: the
// day-agnostic templates plus blocks bound to that day, in position order.
func blocksForDay(blocks []models.TimeBlock, day int) []models.TimeBlock {
	var out []models.TimeBlock
	for _, block := range blocks {
		if block.DayOfWeek == nil || *block.DayOfWeek == day {
			out = append(out, block)
		}
	}
	return out
}
