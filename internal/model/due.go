package model

import (
	"math"
	"time"
)

// DueBucket is a coarse urgency classification for a due date.
type DueBucket string

const (
	BucketNone    DueBucket = "none"
	BucketOverdue DueBucket = "overdue"
	BucketToday   DueBucket = "today"
	BucketSoon    DueBucket = "soon"
	BucketNormal  DueBucket = "normal"
)

// soonWindow is how far ahead a due date still counts as "soon".
const soonWindow = 7

// BucketFor classifies a due date relative to now. Dates on the current
// calendar day are "today" regardless of clock time; anything earlier is
// "overdue"; dates within the next seven days are "soon".
func BucketFor(due *time.Time, now time.Time) DueBucket {
	if due == nil {
		return BucketNone
	}
	if due.Year() == now.Year() && due.YearDay() == now.YearDay() {
		return BucketToday
	}
	if due.Before(now) {
		return BucketOverdue
	}
	if !due.After(now.AddDate(0, 0, soonWindow)) {
		return BucketSoon
	}
	return BucketNormal
}

// Percent returns round(part/total*100), or 0 when total is zero.
func Percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
