package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/username/shift-planner/internal/roster"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	return s
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validated(start time.Time, end *time.Time) *roster.ValidatedAssignment {
	return &roster.ValidatedAssignment{
		EmployeeID:  "E1",
		StoreID:     "S1",
		ShiftTypeID: "st1",
		Start:       start,
		End:         end,
		DayOfWeek:   "tuesday",
		ShiftLabel:  "M 09:00-17:00",
		WeekOff:     []string{"sunday"},
		Status:      roster.AssignmentScheduled,
	}
}

func TestCreateRangeSingleDay(t *testing.T) {
	s := testStore(t)

	rows, err := s.CreateRange(validated(day(2025, 4, 1), nil))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.NotEmpty(t, rows[0].ID)
	assert.Equal(t, "E1", rows[0].EmployeeID)
	assert.Equal(t, roster.AssignmentScheduled, rows[0].Status)
}

func TestCreateRangeOneRowPerDay(t *testing.T) {
	s := testStore(t)

	end := day(2025, 4, 5)
	rows, err := s.CreateRange(validated(day(2025, 4, 1), &end))
	require.NoError(t, err)
	require.Len(t, rows, 5)

	listed, err := s.ListAssignments("S1", day(2025, 4, 1), day(2025, 4, 5))
	require.NoError(t, err)
	require.Len(t, listed, 5)

	for i, a := range listed {
		assert.Equal(t, day(2025, 4, 1+i).Format("2006-01-02"), a.Date.Format("2006-01-02"))
		assert.Equal(t, "M 09:00-17:00", a.ShiftLabel)
		assert.Equal(t, []string{"sunday"}, a.WeekOff)
	}
}

func TestListAssignmentsWindow(t *testing.T) {
	s := testStore(t)

	end := day(2025, 4, 10)
	_, err := s.CreateRange(validated(day(2025, 4, 1), &end))
	require.NoError(t, err)

	listed, err := s.ListAssignments("S1", day(2025, 4, 3), day(2025, 4, 5))
	require.NoError(t, err)
	assert.Len(t, listed, 3)

	listed, err = s.ListAssignments("S2", day(2025, 4, 3), day(2025, 4, 5))
	require.NoError(t, err)
	assert.Empty(t, listed, "other store's window must be empty")
}

func TestUpdateAssignment(t *testing.T) {
	s := testStore(t)

	rows, err := s.CreateRange(validated(day(2025, 4, 1), nil))
	require.NoError(t, err)

	edit := validated(day(2025, 4, 2), nil)
	edit.ShiftLabel = "E 13:00-21:00"
	edit.WeekOff = []string{"monday"}
	require.NoError(t, s.UpdateAssignment(rows[0].ID, edit))

	listed, err := s.ListAssignments("S1", day(2025, 4, 2), day(2025, 4, 2))
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "E 13:00-21:00", listed[0].ShiftLabel)
	assert.Equal(t, []string{"monday"}, listed[0].WeekOff)
}

func TestUpdateAssignmentNotFound(t *testing.T) {
	s := testStore(t)

	err := s.UpdateAssignment("nope", validated(day(2025, 4, 1), nil))
	assert.Error(t, err)
}

func TestDeleteAssignment(t *testing.T) {
	s := testStore(t)

	rows, err := s.CreateRange(validated(day(2025, 4, 1), nil))
	require.NoError(t, err)

	require.NoError(t, s.DeleteAssignment(rows[0].ID))

	listed, err := s.ListAssignments("S1", day(2025, 4, 1), day(2025, 4, 1))
	require.NoError(t, err)
	assert.Empty(t, listed)

	assert.Error(t, s.DeleteAssignment(rows[0].ID), "second delete must fail")
}

func TestAddHoliday(t *testing.T) {
	s := testStore(t)

	h, err := s.AddHoliday(roster.Holiday{Title: "Republic Day", Date: day(2025, 1, 26), Active: true})
	require.NoError(t, err)
	assert.NotEmpty(t, h.ID)

	all, err := s.Holidays()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Republic Day", all[0].Title)
}

func TestAddHolidayInvertedRange(t *testing.T) {
	s := testStore(t)

	end := day(2025, 1, 1)
	_, err := s.AddHoliday(roster.Holiday{Date: day(2025, 1, 26), EndDate: &end, Active: true})
	assert.Error(t, err)
}

func TestLoadSnapshot(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.SaveEmployee(roster.Employee{ID: "E1", Name: "Asha Rao", StoreID: "S1"}))
	require.NoError(t, s.SaveEmployee(roster.Employee{ID: "E9", Name: "Elsewhere", StoreID: "S2"}))
	require.NoError(t, s.SaveShiftType(roster.ShiftType{ID: "st1", Title: "Morning", Active: true}))
	require.NoError(t, s.SaveShiftType(roster.ShiftType{ID: "st2", Title: "Retired", Active: false}))
	require.NoError(t, s.SaveAttendance(roster.AttendanceRecord{EmployeeID: "E1", Date: day(2025, 4, 2), Status: "present"}))
	require.NoError(t, s.SaveLeave(roster.LeaveRequest{
		EmployeeID: "E1",
		StartDate:  day(2025, 3, 30),
		EndDate:    day(2025, 4, 1),
		Status:     "approved",
	}))
	_, err := s.AddHoliday(roster.Holiday{Date: day(2025, 4, 3), Active: true})
	require.NoError(t, err)
	_, err = s.CreateRange(validated(day(2025, 4, 4), nil))
	require.NoError(t, err)

	snap, err := s.LoadSnapshot("S1", day(2025, 3, 30), day(2025, 4, 5))
	require.NoError(t, err)

	require.Len(t, snap.Employees, 1, "only the requested store's employees")
	assert.Equal(t, "E1", snap.Employees[0].ID)
	require.Len(t, snap.ShiftTypes, 1, "inactive shift types excluded")
	assert.Len(t, snap.Attendance, 1)
	assert.Len(t, snap.Leaves, 1, "leave overlapping the window start is included")
	assert.Len(t, snap.Holidays, 1)
	assert.Len(t, snap.Assignments, 1)
}

func TestDayBoundsNormalizedAcrossTimezones(t *testing.T) {
	// Rows are written at UTC midnight; window bounds arriving as local
	// midnights west of UTC are later instants and would otherwise miss
	// the window's first day.
	s := testStore(t)
	loc := time.FixedZone("UTC-5", -5*60*60)

	_, err := s.CreateRange(validated(day(2025, 4, 1), nil))
	require.NoError(t, err)
	require.NoError(t, s.SaveAttendance(roster.AttendanceRecord{
		EmployeeID: "E1",
		Date:       time.Date(2025, 4, 1, 0, 0, 0, 0, loc),
		Status:     "present",
	}))

	from := time.Date(2025, 4, 1, 0, 0, 0, 0, loc)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, loc)

	listed, err := s.ListAssignments("S1", from, to)
	require.NoError(t, err)
	assert.Len(t, listed, 1, "local-midnight bounds must match UTC-day rows")

	snap, err := s.LoadSnapshot("S1", from, to)
	require.NoError(t, err)
	assert.Len(t, snap.Assignments, 1)
	assert.Len(t, snap.Attendance, 1, "attendance written with a local date must stay inside the window")
}

func TestCreateRangeNormalizesLocalDates(t *testing.T) {
	s := testStore(t)
	loc := time.FixedZone("UTC+9", 9*60*60)

	end := time.Date(2025, 4, 3, 0, 0, 0, 0, loc)
	rows, err := s.CreateRange(validated(time.Date(2025, 4, 1, 0, 0, 0, 0, loc), &end))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for i, a := range rows {
		assert.Equal(t, day(2025, 4, 1+i), a.Date.UTC())
	}
}

func TestSnapshotDatesSurviveRoundTrip(t *testing.T) {
	s := testStore(t)

	_, err := s.CreateRange(validated(day(2025, 4, 1), nil))
	require.NoError(t, err)

	listed, err := s.ListAssignments("S1", day(2025, 4, 1), day(2025, 4, 1))
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "2025-04-01", listed[0].Date.Format("2006-01-02"))
}
