package roster

import (
	"strings"
	"time"

	"github.com/username/shift-planner/pkg/dateutil"
)

// Status is the resolved outcome kind for one employee on one date.
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusHalfday Status = "halfday"
	StatusLeave   Status = "leave"
	StatusShift   Status = "shift"
	StatusHoliday Status = "holiday"
	StatusEmpty   Status = "empty"
)

// Assignment status values. The engine only ever writes "scheduled".
const (
	AssignmentScheduled = "scheduled"
)

// LeaveApproved is the only leave status that participates in resolution.
const LeaveApproved = "approved"

// Employee is read-only directory data owned by the surrounding application.
type Employee struct {
	ID          string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	StoreID     string `gorm:"index" json:"store_id"`
	Designation string `json:"designation"`
}

func (Employee) TableName() string {
	return "employees"
}

// ShiftType is a catalog entry describing a working shift.
type ShiftType struct {
	ID        string   `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title     string   `gorm:"not null" json:"title"`
	StartTime string   `json:"start_time"` // e.g. "09:00"
	EndTime   string   `json:"end_time"`   // e.g. "17:00"
	WeekOff   []string `gorm:"serializer:json" json:"week_off"`
	Active    bool     `gorm:"default:true" json:"active"`
}

func (ShiftType) TableName() string {
	return "shift_types"
}

// ShiftAssignment binds an employee to a shift type for one date, or for a
// date range when EndDate is set. Invariant: EndDate, when set, is never
// before Date.
type ShiftAssignment struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	EmployeeID  string     `gorm:"not null;index" json:"employee_id"`
	StoreID     string     `gorm:"not null;index" json:"store_id"`
	ShiftTypeID string     `gorm:"not null" json:"shift_type_id"`
	Date        time.Time  `gorm:"type:date;not null;index" json:"date"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	DayOfWeek   string     `json:"day_of_week"`
	Status      string     `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`
	ShiftLabel  string     `json:"shift_label"`
	WeekOff     []string   `gorm:"serializer:json" json:"week_off,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (ShiftAssignment) TableName() string {
	return "shift_assignments"
}

// HasWeekOff reports whether the given weekday key is excluded by this
// assignment's override list.
func (a *ShiftAssignment) HasWeekOff(weekdayKey string) bool {
	for _, d := range a.WeekOff {
		if strings.EqualFold(d, weekdayKey) {
			return true
		}
	}
	return false
}

// AttendanceRecord is read-only data produced by an external attendance
// system. Status is a raw string and is normalized during resolution.
type AttendanceRecord struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	EmployeeID string    `gorm:"not null;index" json:"employee_id"`
	Date       time.Time `gorm:"type:date;not null;index" json:"date"`
	Status     string    `gorm:"type:varchar(20);not null" json:"status"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// LeaveRequest is read-only data from the leave-approval workflow. The end
// date is inclusive through end of day.
type LeaveRequest struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	EmployeeID string    `gorm:"not null;index" json:"employee_id"`
	StartDate  time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate    time.Time `gorm:"type:date;not null" json:"end_date"`
	Status     string    `gorm:"type:varchar(20);not null" json:"status"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// Covers reports whether the leave spans the given date at day granularity.
// The end date is inclusive.
func (l *LeaveRequest) Covers(date time.Time) bool {
	d := dateutil.UTCDay(date)
	return !d.Before(dateutil.UTCDay(l.StartDate)) && !d.After(dateutil.UTCDay(l.EndDate))
}

// Holiday is either a single date (EndDate nil) or an inclusive
// [Date, EndDate] range.
type Holiday struct {
	ID      string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title   string     `json:"title"`
	Date    time.Time  `gorm:"type:date;not null;index" json:"date"`
	EndDate *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	Active  bool       `gorm:"default:true" json:"active"`
}

func (Holiday) TableName() string {
	return "holidays"
}

// DayStatus is the single resolved outcome for one employee on one date.
// Computed on demand, never persisted.
type DayStatus struct {
	Status       Status   `json:"status"`
	ShiftLabel   string   `json:"shift_label,omitempty"`
	AssignmentID string   `json:"assignment_id,omitempty"`
	ShiftTypeID  string   `json:"shift_type_id,omitempty"`
	WeekOff      []string `json:"week_off,omitempty"`
}

// Snapshot is the in-memory bundle of already-fetched collections a
// resolution or validation call operates on. The caller merges any pending
// local assignments into Assignments before handing the snapshot over; the
// engine never distinguishes local from server state.
type Snapshot struct {
	Employees   []Employee
	ShiftTypes  []ShiftType
	Attendance  []AttendanceRecord
	Leaves      []LeaveRequest
	Holidays    []Holiday
	Assignments []ShiftAssignment
}

// ShiftTypeByID returns the shift type with the given id, or nil.
func (s *Snapshot) ShiftTypeByID(id string) *ShiftType {
	for i := range s.ShiftTypes {
		if s.ShiftTypes[i].ID == id {
			return &s.ShiftTypes[i]
		}
	}
	return nil
}

// EmployeeByID returns the employee with the given id, or nil.
func (s *Snapshot) EmployeeByID(id string) *Employee {
	for i := range s.Employees {
		if s.Employees[i].ID == id {
			return &s.Employees[i]
		}
	}
	return nil
}
