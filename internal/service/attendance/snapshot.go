package attendance

import (
	"time"

	"github.com/rosterline/attendance-engine-go/internal/domain/attendance"
	"github.com/rosterline/attendance-engine-go/internal/domain/holiday"
)

// Snapshot freezes the holiday calendar and settings for one reconciliation
// batch. Settings or holiday changes made while a batch runs are not observed
// mid-batch.
type Snapshot struct {
	Settings attendance.Settings

	holidays map[string]holiday.Holiday
}

func NewSnapshot(settings attendance.Settings, holidays []holiday.Holiday) Snapshot {
	byDay := make(map[string]holiday.Holiday, len(holidays))
	for _, h := range holidays {
		byDay[h.Date.Format("2006-01-02")] = h
	}
	return Snapshot{
		Settings: settings,
		holidays: byDay,
	}
}

// IsHoliday reports whether the calendar day is in the frozen holiday list.
func (s Snapshot) IsHoliday(day time.Time) bool {
	_, ok := s.holidays[day.Format("2006-01-02")]
	return ok
}
