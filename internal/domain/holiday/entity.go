package holiday

import "time"

// Holiday applies uniformly to all employees; there are no per-site calendars.
type Holiday struct {
	ID   string
	Date time.Time
	Name string
}
