package domain

import "time"

// DayKeyFormat is the canonical encoding of a counter day.
const DayKeyFormat = "2006-01-02"

// DailyCounter tracks how many orders a professional has completed on
// one local calendar day. There is exactly one live row per
// (professional, day); the daily reset is implicit in the date key.
type DailyCounter struct {
	ProfessionalID string
	Day            string // DayKeyFormat in the professional's timezone
	CompletedCount int
	UpdatedAt      time.Time
}

// NextOrdinal is the 1-based position the next completed order would take.
func (c *DailyCounter) NextOrdinal() int {
	return c.CompletedCount + 1
}

// DayKey derives the counter key for a point in time in the given
// location. Crossing local midnight changes the key, which is what
// resets the ordinal sequence to 1.
func DayKey(at time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return at.In(loc).Format(DayKeyFormat)
}
