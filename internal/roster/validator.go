package roster

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/shift-planner/pkg/dateutil"
)

// Validation failure kinds. Callers match with errors.Is and surface a
// user-facing message; nothing here is logged or thrown.
var (
	ErrNoShiftTypes    = errors.New("no shift types configured")
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidDate     = errors.New("invalid date")
	ErrPastDate        = errors.New("date is in the past")
	ErrHolidayConflict = errors.New("cannot assign shifts on holidays")
	ErrHolidayInRange  = errors.New("date range contains a holiday")
	ErrMissingStore    = errors.New("employee has no store assignment")
)

// AssignmentRequest is a proposed create or edit of a shift assignment.
// Dates arrive as YYYY-MM-DD strings from the outer layer.
type AssignmentRequest struct {
	EmployeeID  string
	StoreID     string // optional; falls back to the employee's own store
	ShiftTypeID string
	StartDate   string
	EndDate     string   // optional; inclusive range end
	WeekOff     []string // optional override of the shift type's default
}

// ValidatedAssignment is the result of a successful validation, carrying the
// derived fields the store adapter persists.
type ValidatedAssignment struct {
	EmployeeID  string
	StoreID     string
	ShiftTypeID string
	Start       time.Time
	End         *time.Time // nil for single-date assignments
	DayOfWeek   string
	ShiftLabel  string
	WeekOff     []string
	Status      string
}

// ValidateOptions carries caller-level policy.
type ValidateOptions struct {
	// AllowPastDate skips the past-date rule. The edit entry point sets it:
	// an existing record may legitimately correct a past, not-yet-attended
	// date. New assignments never set it.
	AllowPastDate bool

	// Today overrides the reference day for the past-date rule. Zero means
	// the current day.
	Today time.Time
}

// Validate checks a proposed assignment against the snapshot's shift-type
// catalog and holiday set. Rules run in a fixed order and the first failure
// wins. All checks are local; the result is only as fresh as the snapshot.
func Validate(req AssignmentRequest, snap *Snapshot, opts ValidateOptions) (*ValidatedAssignment, error) {
	if len(snap.ShiftTypes) == 0 {
		return nil, ErrNoShiftTypes
	}

	if req.EmployeeID == "" {
		return nil, fmt.Errorf("%w: employee", ErrMissingField)
	}
	if req.ShiftTypeID == "" {
		return nil, fmt.Errorf("%w: shift type", ErrMissingField)
	}
	if req.StartDate == "" {
		return nil, fmt.Errorf("%w: start date", ErrMissingField)
	}

	start, err := dateutil.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start %q", ErrInvalidDate, req.StartDate)
	}

	today := opts.Today
	if today.IsZero() {
		today = dateutil.Today()
	}
	// Calendar-date comparison: start is a UTC day while today may carry a
	// local offset, so instants must not be compared directly.
	if !opts.AllowPastDate && dateutil.FormatDate(start) < dateutil.FormatDate(today) {
		return nil, fmt.Errorf("%w: %s", ErrPastDate, dateutil.FormatDate(start))
	}

	idx := NewHolidayIndex(snap.Holidays)
	if idx.IsHoliday(start) {
		return nil, fmt.Errorf("%w: %s", ErrHolidayConflict, dateutil.FormatDate(start))
	}

	var end *time.Time
	if req.EndDate != "" {
		e, err := dateutil.ParseDate(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end %q", ErrInvalidDate, req.EndDate)
		}

		dates, err := dateutil.EachDate(start, e)
		if err != nil {
			return nil, fmt.Errorf("%w: end %s before start %s",
				ErrInvalidDate, dateutil.FormatDate(e), dateutil.FormatDate(start))
		}
		// All-or-nothing: a single holiday anywhere in the range rejects
		// the whole request.
		for _, d := range dates {
			if idx.IsHoliday(d) {
				return nil, fmt.Errorf("%w: %s", ErrHolidayInRange, dateutil.FormatDate(d))
			}
		}
		end = &e
	}

	storeID := req.StoreID
	if storeID == "" {
		if emp := snap.EmployeeByID(req.EmployeeID); emp != nil {
			storeID = emp.StoreID
		}
	}
	if storeID == "" {
		return nil, fmt.Errorf("%w: employee %s", ErrMissingStore, req.EmployeeID)
	}

	shiftType := snap.ShiftTypeByID(req.ShiftTypeID)

	weekOff := req.WeekOff
	if len(weekOff) == 0 && shiftType != nil {
		weekOff = shiftType.WeekOff
	}

	return &ValidatedAssignment{
		EmployeeID:  req.EmployeeID,
		StoreID:     storeID,
		ShiftTypeID: req.ShiftTypeID,
		Start:       start,
		End:         end,
		DayOfWeek:   dateutil.WeekdayKey(start),
		ShiftLabel:  shiftLabel(shiftType),
		WeekOff:     weekOff,
		Status:      AssignmentScheduled,
	}, nil
}

// shiftLabel builds the human-readable shift code, e.g. "M 09:00-17:00".
func shiftLabel(st *ShiftType) string {
	if st == nil {
		return ""
	}
	initial := ""
	for _, r := range st.Title {
		initial = string(r)
		break
	}
	return fmt.Sprintf("%s %s-%s", initial, st.StartTime, st.EndTime)
}
