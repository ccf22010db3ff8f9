package roster

import (
	"time"

	"github.com/username/shift-planner/pkg/dateutil"
)

// Grid is a fully materialized week view: one DayStatus per
// (employee, date) cell.
type Grid struct {
	Employees []Employee
	Dates     [7]time.Time
	cells     map[string]DayStatus // key: employeeID + "|" + YYYY-MM-DD
}

// At returns the resolved status for the given employee and date. Unknown
// cells resolve to empty.
func (g *Grid) At(employeeID string, date time.Time) DayStatus {
	if ds, ok := g.cells[cellKey(employeeID, date)]; ok {
		return ds
	}
	return DayStatus{Status: StatusEmpty}
}

// Project materializes the week grid for a roster of employees by resolving
// every (employee, date) cell against the snapshot. One holiday index is
// built and shared across all cells; no business rules live here beyond
// what Resolve applies.
func Project(employees []Employee, weekDates [7]time.Time, snap *Snapshot) *Grid {
	idx := NewHolidayIndex(snap.Holidays)

	grid := &Grid{
		Employees: employees,
		Dates:     weekDates,
		cells:     make(map[string]DayStatus, len(employees)*7),
	}

	for _, emp := range employees {
		for _, date := range weekDates {
			grid.cells[cellKey(emp.ID, date)] = Resolve(emp.ID, date, snap, idx)
		}
	}

	return grid
}

func cellKey(employeeID string, date time.Time) string {
	return employeeID + "|" + dateutil.FormatDate(date)
}
