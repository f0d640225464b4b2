package schedule

import "time"

// Category is a check-in time-of-day bucket
type Category string

const (
	BeforeHours Category = "before-hours"
	AfterSchool Category = "after-school"
	AfterDinner Category = "after-dinner"
	ReturnBy8PM Category = "return-by-8pm"
	Late        Category = "late"
)

// Upper bounds are exclusive minutes since midnight; anything at or past
// the last threshold is Late.
var thresholds = []struct {
	before int
	cat    Category
}{
	{16 * 60, BeforeHours},    // before 16:00
	{19 * 60, AfterSchool},    // 16:00 - 18:59
	{20 * 60, AfterDinner},    // 19:00 - 19:59
	{20*60 + 30, ReturnBy8PM}, // 20:00 - 20:29
}

// Classify maps a wall-clock time to its check-in category
func Classify(t time.Time) Category {
	return ClassifyMinute(t.Hour()*60 + t.Minute())
}

// ClassifyMinute maps a minute-of-day value to its category
func ClassifyMinute(minute int) Category {
	for _, th := range thresholds {
		if minute < th.before {
			return th.cat
		}
	}
	return Late
}
