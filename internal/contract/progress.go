package contract

import "time"

const day = 24 * time.Hour

// EstimateProgress returns the elapsed share of the scheduled duration as a
// whole percentage in [0, 100]. The duration is at least one day. Missing
// dates report 0.
//
// All three times are read as wall clock readings, so a now taken in the
// operator's zone lines up with calendar dates stored as UTC midnight.
func EstimateProgress(start, finish, now time.Time) int {
	if start.IsZero() || finish.IsZero() {
		return 0
	}

	start, finish, now = wallClock(start), wallClock(finish), wallClock(now)

	total := max(finish.Sub(start), day)
	elapsed := min(max(now.Sub(start), 0), total)

	// Milliseconds keep elapsed*100 well inside int64.
	pct := int(elapsed.Milliseconds() * 100 / total.Milliseconds())

	return min(max(pct, 0), 100)
}
