package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/username/shift-planner/internal/roster"
	"github.com/username/shift-planner/pkg/dateutil"
)

// Store is the sqlite-backed assignment store adapter. It owns persistence
// for assignments and holidays and assembles the read snapshot the engine
// consumes. Every day value is normalized to UTC midnight on write and on
// query bounds, so callers may pass times carrying any location.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Open opens (or creates) the sqlite database at path and migrates the
// schema.
func Open(path string, logger *zap.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(
		&roster.Employee{},
		&roster.ShiftType{},
		&roster.ShiftAssignment{},
		&roster.AttendanceRecord{},
		&roster.LeaveRequest{},
		&roster.Holiday{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// CreateRange persists one assignment row per date of a validated
// assignment, inside a single transaction. Single-date assignments produce
// one row. The caller has already validated the range, so no per-day checks
// happen here.
func (s *Store) CreateRange(va *roster.ValidatedAssignment) ([]roster.ShiftAssignment, error) {
	start := dateutil.UTCDay(va.Start)
	end := start
	if va.End != nil {
		end = dateutil.UTCDay(*va.End)
	}

	dates, err := dateutil.EachDate(start, end)
	if err != nil {
		return nil, fmt.Errorf("invalid assignment range: %w", err)
	}

	rows := make([]roster.ShiftAssignment, 0, dateutil.DaysBetween(start, end))
	for _, d := range dates {
		rows = append(rows, roster.ShiftAssignment{
			ID:          uuid.NewString(),
			EmployeeID:  va.EmployeeID,
			StoreID:     va.StoreID,
			ShiftTypeID: va.ShiftTypeID,
			Date:        d,
			DayOfWeek:   dateutil.WeekdayKey(d),
			Status:      va.Status,
			ShiftLabel:  va.ShiftLabel,
			WeekOff:     va.WeekOff,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create assignments: %w", err)
	}

	s.logger.Info("Assignments created",
		zap.String("employee_id", va.EmployeeID),
		zap.String("store_id", va.StoreID),
		zap.Int("days", len(rows)))

	return rows, nil
}

// UpdateAssignment rewrites an existing assignment in place from a
// validated edit.
func (s *Store) UpdateAssignment(id string, va *roster.ValidatedAssignment) error {
	var end *time.Time
	if va.End != nil {
		e := dateutil.UTCDay(*va.End)
		end = &e
	}

	updates := map[string]any{
		"employee_id":   va.EmployeeID,
		"store_id":      va.StoreID,
		"shift_type_id": va.ShiftTypeID,
		"date":          dateutil.UTCDay(va.Start),
		"end_date":      end,
		"day_of_week":   va.DayOfWeek,
		"shift_label":   va.ShiftLabel,
		"status":        va.Status,
	}

	res := s.db.Model(&roster.ShiftAssignment{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update assignment %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("assignment not found: %s", id)
	}

	// Updates with a map skips the serializer, so the override list is
	// written through the model path separately.
	if err := s.db.Model(&roster.ShiftAssignment{ID: id}).Update("week_off", va.WeekOff).Error; err != nil {
		return fmt.Errorf("failed to update assignment %s: %w", id, err)
	}
	return nil
}

// DeleteAssignment removes an assignment by id.
func (s *Store) DeleteAssignment(id string) error {
	res := s.db.Where("id = ?", id).Delete(&roster.ShiftAssignment{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete assignment %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("assignment not found: %s", id)
	}
	return nil
}

// ListAssignments returns a store's assignments whose date falls inside the
// window, single-date rows and range rows overlapping it alike.
func (s *Store) ListAssignments(storeID string, from, to time.Time) ([]roster.ShiftAssignment, error) {
	from = dateutil.UTCDay(from)
	to = dateutil.UTCDay(to)

	var rows []roster.ShiftAssignment
	err := s.db.
		Where("store_id = ?", storeID).
		Where("date <= ? AND (end_date >= ? OR (end_date IS NULL AND date >= ?))", to, from, from).
		Order("date, employee_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return rows, nil
}

// AddHoliday persists a holiday, generating its id.
func (s *Store) AddHoliday(h roster.Holiday) (roster.Holiday, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	h.Date = dateutil.UTCDay(h.Date)
	if h.EndDate != nil {
		e := dateutil.UTCDay(*h.EndDate)
		if e.Before(h.Date) {
			return roster.Holiday{}, fmt.Errorf("holiday range end %s before start %s",
				dateutil.FormatDate(e), dateutil.FormatDate(h.Date))
		}
		h.EndDate = &e
	}

	if err := s.db.Create(&h).Error; err != nil {
		return roster.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return h, nil
}

// Holidays returns every holiday, active and inactive. Filtering to active
// is the holiday index's job.
func (s *Store) Holidays() ([]roster.Holiday, error) {
	var rows []roster.Holiday
	if err := s.db.Order("date").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return rows, nil
}

// SaveEmployee upserts directory data.
func (s *Store) SaveEmployee(e roster.Employee) error {
	return s.db.Save(&e).Error
}

// SaveShiftType upserts a shift-type catalog entry.
func (s *Store) SaveShiftType(st roster.ShiftType) error {
	return s.db.Save(&st).Error
}

// SaveAttendance upserts an externally produced attendance record.
func (s *Store) SaveAttendance(r roster.AttendanceRecord) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.Date = dateutil.UTCDay(r.Date)
	return s.db.Save(&r).Error
}

// SaveLeave upserts an externally decided leave request.
func (s *Store) SaveLeave(l roster.LeaveRequest) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.StartDate = dateutil.UTCDay(l.StartDate)
	l.EndDate = dateutil.UTCDay(l.EndDate)
	return s.db.Save(&l).Error
}

// LoadSnapshot assembles the engine's read snapshot for one store and date
// window: the store's employees, active shift types, attendance and leaves
// touching the window, every holiday, and the assignments overlapping the
// window.
func (s *Store) LoadSnapshot(storeID string, from, to time.Time) (*roster.Snapshot, error) {
	from = dateutil.UTCDay(from)
	to = dateutil.UTCDay(to)

	snap := &roster.Snapshot{}

	if err := s.db.Where("store_id = ?", storeID).Order("name").Find(&snap.Employees).Error; err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	if err := s.db.Where("active = ?", true).Find(&snap.ShiftTypes).Error; err != nil {
		return nil, fmt.Errorf("failed to load shift types: %w", err)
	}
	if err := s.db.Where("date BETWEEN ? AND ?", from, to).Find(&snap.Attendance).Error; err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}
	if err := s.db.Where("start_date <= ? AND end_date >= ?", to, from).Find(&snap.Leaves).Error; err != nil {
		return nil, fmt.Errorf("failed to load leaves: %w", err)
	}
	if err := s.db.Find(&snap.Holidays).Error; err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}

	assignments, err := s.ListAssignments(storeID, from, to)
	if err != nil {
		return nil, err
	}
	snap.Assignments = assignments

	s.logger.Debug("Snapshot loaded",
		zap.String("store_id", storeID),
		zap.String("from", dateutil.FormatDate(from)),
		zap.String("to", dateutil.FormatDate(to)),
		zap.Int("employees", len(snap.Employees)),
		zap.Int("assignments", len(snap.Assignments)))

	return snap, nil
}
