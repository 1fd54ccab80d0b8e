package quest

import (
	"fmt"

	"axiom/internal/calendar"
)

// PenaltyRates are the per-cadence XP penalty percentages applied when a
// quest's window rolled over without a completion.
type PenaltyRates struct {
	Daily  int
	Weekly int
	Epic   int
}

// ResetResult is the outcome of one batch reset pass. TotalPenalty is summed
// ceiling-rounded XP; the caller subtracts it from the player and
// re-normalizes. StreakBroken is only ever set by the daily branch.
type ResetResult struct {
	Quests       []Quest
	TotalPenalty int
	StreakBroken bool
	Messages     []string
}

// ResetAll re-evaluates every quest's lifecycle state against the current
// calendar snapshot in a single pass. A quest missed for N days accrues
// exactly one penalty, not N: the engine always recomputes from "now" rather
// than replaying the gap day by day. Quest order never changes the totals,
// only the order of Messages.
func ResetAll(quests []Quest, cal calendar.Snapshot, rates PenaltyRates) ResetResult {
	res := ResetResult{Quests: make([]Quest, len(quests))}

	for i, q := range quests {
		switch q.Cadence {
		case CadenceDaily:
			res.resetDaily(&q, cal, rates.Daily)
		case CadenceWeekly:
			res.resetWindowed(&q, cal.WeekStart, rates.Weekly, "weekly")
		default:
			// Epic and legendary share the monthly window.
			res.resetWindowed(&q, cal.MonthStart, rates.Epic, "monthly")
		}
		res.Quests[i] = q
	}

	return res
}

func (res *ResetResult) resetDaily(q *Quest, cal calendar.Snapshot, rate int) {
	switch {
	case q.LastCompletedAt == cal.Today:
		// Done today; leave it alone.

	case q.Status == StatusCompleted && q.LastCompletedAt == cal.Yesterday:
		// Fresh slate: yesterday's completion rolls into a new pending day.
		q.Status = StatusPending

	case q.LastCompletedAt != cal.Yesterday && q.CreatedAt < cal.Today:
		// Missed a day outright. One penalty regardless of gap length.
		pen := ceilPct(q.XPReward, rate)
		res.TotalPenalty += pen
		res.StreakBroken = true
		q.Status = StatusPending
		res.Messages = append(res.Messages, fmt.Sprintf("%s was missed (-%d XP, streak broken)", q.Title, pen))
	}

	// Catch-all: anything still marked complete from an older day resets.
	if q.Status == StatusCompleted && q.LastCompletedAt < cal.Today {
		q.Status = StatusPending
	}
}

// resetWindowed handles the weekly and monthly cadences. Streaks are a
// daily-only concept, so a missed window costs XP but never the streak, and a
// pending quest keeps its status through the penalty.
func (res *ResetResult) resetWindowed(q *Quest, windowStart string, rate int, window string) {
	completedInWindow := q.LastCompletedAt != "" && q.LastCompletedAt >= windowStart

	switch {
	case completedInWindow:
		// Done within the current window; leave it alone.

	case q.Status == StatusCompleted:
		// Completion predates the window: new window, back to pending.
		q.Status = StatusPending
		res.Messages = append(res.Messages, fmt.Sprintf("%s reset for a new %s window", q.Title, window))

	case q.CreatedAt < windowStart:
		pen := ceilPct(q.XPReward, rate)
		res.TotalPenalty += pen
		res.Messages = append(res.Messages, fmt.Sprintf("%s missed its %s window (-%d XP)", q.Title, window, pen))
	}
}

// ceilPct computes ceil(v * pct / 100) without floating point.
func ceilPct(v, pct int) int {
	if v <= 0 || pct <= 0 {
		return 0
	}
	return (v*pct + 99) / 100
}
