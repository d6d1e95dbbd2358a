package postings

import "time"

// ResolveStatus derives the posting status from its milestone dates at the
// given instant. Missing start or end dates mean the posting data is
// incomplete and the posting stays SCHEDULED; a missing evaluation end date
// collapses onto the application end date. Boundaries are half-open on the
// end side: at exactly applicationEndDate the posting is already CLOSED.
func ResolveStatus(start, end, evalEnd *time.Time, now time.Time) Status {
	if start == nil || end == nil {
		return StatusScheduled
	}
	evaluationEnd := end
	if evalEnd != nil {
		evaluationEnd = evalEnd
	}
	switch {
	case now.Before(*start):
		return StatusScheduled
	case now.Before(*end):
		return StatusInProgress
	case now.Before(*evaluationEnd):
		return StatusClosed
	default:
		return StatusEvaluationComplete
	}
}

// ResolveStatusFor is a convenience wrapper over ResolveStatus for a posting.
func ResolveStatusFor(p JobPosting, now time.Time) Status {
	return ResolveStatus(p.ApplicationStartDate, p.ApplicationEndDate, p.EvaluationEndDate, now)
}
