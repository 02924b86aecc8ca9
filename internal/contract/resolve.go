package contract

import "time"

// Resolve derives the effective status of c on the calendar day of now.
//
// Manual closure wins over everything else. A stored suspended or cancelled
// status is kept as-is. Otherwise the status follows the contract dates, with
// both boundaries counting as in progress. Missing dates resolve to draft.
func Resolve(c Contract, now time.Time) Status {
	if c.ClosedManually {
		// A manual closure without a close date is reported as delayed.
		if c.ClosedDate != nil {
			return StatusClosed
		}

		return StatusClosedWithDelay
	}

	switch stored := Normalize(c.Status); stored {
	case StatusSuspended, StatusCancelled:
		return stored
	}

	if c.StartDate.IsZero() || c.FinishDate.IsZero() {
		return StatusDraft
	}

	today := dayOf(now)

	switch {
	case today.Before(dayOf(c.StartDate)):
		return StatusDraft
	case !today.After(dayOf(c.FinishDate)):
		return StatusInProgress
	default:
		return StatusClosedWithDelay
	}
}
