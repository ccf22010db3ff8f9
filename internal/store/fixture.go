package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/username/shift-planner/internal/roster"
	"github.com/username/shift-planner/pkg/dateutil"
)

// Fixture is the JSON shape of a seed file: directory data plus externally
// produced attendance and leave outcomes, with day-granularity dates as
// YYYY-MM-DD strings.
type Fixture struct {
	Employees  []roster.Employee   `json:"employees"`
	ShiftTypes []roster.ShiftType  `json:"shift_types"`
	Attendance []fixtureAttendance `json:"attendance"`
	Leaves     []fixtureLeave      `json:"leaves"`
}

type fixtureAttendance struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

type fixtureLeave struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Status     string `json:"status"`
}

// ImportCounts summarizes what an import wrote.
type ImportCounts struct {
	Employees  int
	ShiftTypes int
	Attendance int
	Leaves     int
}

// ImportFixture reads a seed file and upserts its contents.
func ImportFixture(s *Store, filePath string) (*ImportCounts, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var fx Fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fixture: %w", err)
	}

	counts := &ImportCounts{}

	for _, e := range fx.Employees {
		if e.ID == "" {
			return nil, fmt.Errorf("employee %q has no id", e.Name)
		}
		if err := s.SaveEmployee(e); err != nil {
			return nil, fmt.Errorf("failed to save employee %s: %w", e.ID, err)
		}
		counts.Employees++
	}

	for _, st := range fx.ShiftTypes {
		if st.ID == "" {
			return nil, fmt.Errorf("shift type %q has no id", st.Title)
		}
		if err := s.SaveShiftType(st); err != nil {
			return nil, fmt.Errorf("failed to save shift type %s: %w", st.ID, err)
		}
		counts.ShiftTypes++
	}

	for _, a := range fx.Attendance {
		date, err := dateutil.ParseDate(a.Date)
		if err != nil {
			return nil, fmt.Errorf("attendance for %s: %w", a.EmployeeID, err)
		}
		rec := roster.AttendanceRecord{
			EmployeeID: a.EmployeeID,
			Date:       date,
			Status:     a.Status,
		}
		if err := s.SaveAttendance(rec); err != nil {
			return nil, fmt.Errorf("failed to save attendance for %s: %w", a.EmployeeID, err)
		}
		counts.Attendance++
	}

	for _, l := range fx.Leaves {
		start, err := dateutil.ParseDate(l.StartDate)
		if err != nil {
			return nil, fmt.Errorf("leave for %s: %w", l.EmployeeID, err)
		}
		end, err := dateutil.ParseDate(l.EndDate)
		if err != nil {
			return nil, fmt.Errorf("leave for %s: %w", l.EmployeeID, err)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("leave for %s: %w", l.EmployeeID, dateutil.ErrInvalidRange)
		}
		req := roster.LeaveRequest{
			EmployeeID: l.EmployeeID,
			StartDate:  start,
			EndDate:    end,
			Status:     l.Status,
		}
		if err := s.SaveLeave(req); err != nil {
			return nil, fmt.Errorf("failed to save leave for %s: %w", l.EmployeeID, err)
		}
		counts.Leaves++
	}

	return counts, nil
}
