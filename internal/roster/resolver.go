package roster

import (
	"strings"
	"time"

	"github.com/username/shift-planner/pkg/dateutil"
)

// Resolve computes the authoritative status for one employee on one date by
// merging the snapshot's sources in priority order:
//
//  1. active holiday — masks the cell entirely, nothing else is consulted
//  2. attendance record for that day
//  3. approved leave covering that day
//  4. shift assignment covering that day, minus its week-off override days
//  5. empty
//
// Resolution never fails; unrecognized attendance statuses fall through to
// the next source. The call is a pure function of its inputs and is safe to
// run concurrently.
func Resolve(employeeID string, date time.Time, snap *Snapshot, idx *HolidayIndex) DayStatus {
	if idx.IsHoliday(date) {
		return DayStatus{Status: StatusHoliday}
	}

	if att := findAttendance(employeeID, date, snap.Attendance); att != nil {
		if status, ok := normalizeAttendance(att.Status); ok {
			ds := DayStatus{Status: status}
			// Attach the shift code so a cell can show both "Present"
			// and which shift was worked.
			if status == StatusPresent || status == StatusLate {
				if a := findAssignment(employeeID, date, snap.Assignments); a != nil {
					ds.ShiftLabel = a.ShiftLabel
				}
			}
			return ds
		}
	}

	for i := range snap.Leaves {
		l := &snap.Leaves[i]
		if l.EmployeeID == employeeID && l.Status == LeaveApproved && l.Covers(date) {
			return DayStatus{Status: StatusLeave}
		}
	}

	if a := findAssignment(employeeID, date, snap.Assignments); a != nil {
		return DayStatus{
			Status:       StatusShift,
			ShiftLabel:   a.ShiftLabel,
			AssignmentID: a.ID,
			ShiftTypeID:  a.ShiftTypeID,
			WeekOff:      a.WeekOff,
		}
	}

	return DayStatus{Status: StatusEmpty}
}

// findAttendance returns the employee's attendance record for the date, or
// nil when none was recorded.
func findAttendance(employeeID string, date time.Time, records []AttendanceRecord) *AttendanceRecord {
	for i := range records {
		r := &records[i]
		if r.EmployeeID == employeeID && dateutil.IsSameDay(r.Date, date) {
			return r
		}
	}
	return nil
}

// findAssignment returns the employee's assignment covering the date, or nil.
// A ranged assignment covers every day from Date through EndDate inclusive;
// days listed in the assignment's week-off override are excluded.
func findAssignment(employeeID string, date time.Time, assignments []ShiftAssignment) *ShiftAssignment {
	for i := range assignments {
		a := &assignments[i]
		if a.EmployeeID != employeeID {
			continue
		}
		if !assignmentCovers(a, date) {
			continue
		}
		if a.HasWeekOff(dateutil.WeekdayKey(date)) {
			continue
		}
		return a
	}
	return nil
}

func assignmentCovers(a *ShiftAssignment, date time.Time) bool {
	d := dateutil.UTCDay(date)
	start := dateutil.UTCDay(a.Date)
	if a.EndDate == nil {
		return d.Equal(start)
	}
	return !d.Before(start) && !d.After(dateutil.UTCDay(*a.EndDate))
}

// normalizeAttendance maps the attendance system's loosely spelled statuses
// onto the closed Status set. The second return is false for spellings the
// engine does not recognize; those records do not resolve.
func normalizeAttendance(raw string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "present":
		return StatusPresent, true
	case "late":
		return StatusLate, true
	case "absent", "no_show", "no-show":
		return StatusAbsent, true
	case "halfday", "half_day", "half-day", "half day":
		return StatusHalfday, true
	default:
		return StatusEmpty, false
	}
}
