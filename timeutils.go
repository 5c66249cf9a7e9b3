package otp

import (
	"time"
)

// The plan endpoint takes US-style dates and am/pm clock times.

func planDate(t time.Time) string {
	return t.Format("01-02-2006")
}

func planClock(t time.Time) string {
	return t.Format("3:04pm")
}
