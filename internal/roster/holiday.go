package roster

import (
	"time"

	"github.com/username/shift-planner/pkg/dateutil"
)

// HolidayIndex answers day-granularity holiday lookups over a fixed holiday
// collection. Inactive holidays are ignored. The index is immutable after
// construction and safe for concurrent use.
type HolidayIndex struct {
	days map[string]bool // key: YYYY-MM-DD
}

// NewHolidayIndex builds an index over the active holidays, expanding ranged
// holidays into their individual days.
func NewHolidayIndex(holidays []Holiday) *HolidayIndex {
	idx := &HolidayIndex{days: make(map[string]bool)}

	for _, h := range holidays {
		if !h.Active {
			continue
		}

		if h.EndDate == nil {
			idx.days[dateutil.FormatDate(h.Date)] = true
			continue
		}

		dates, err := dateutil.EachDate(h.Date, *h.EndDate)
		if err != nil {
			// Inverted range; treat as the single start date.
			idx.days[dateutil.FormatDate(h.Date)] = true
			continue
		}
		for _, d := range dates {
			idx.days[dateutil.FormatDate(d)] = true
		}
	}

	return idx
}

// IsHoliday reports whether the given date falls on an active holiday.
// Time of day is ignored.
func (idx *HolidayIndex) IsHoliday(date time.Time) bool {
	return idx.days[dateutil.FormatDate(date)]
}

// Len returns the number of distinct holiday days in the index.
func (idx *HolidayIndex) Len() int {
	return len(idx.days)
}
