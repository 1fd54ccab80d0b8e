// Package chronicle labels each day's activity for display and logging. It
// reads the engine's output and has no influence back on it.
package chronicle

type Rating string

const (
	RatingStrong   Rating = "strong"
	RatingSteady   Rating = "steady"
	RatingNeutral  Rating = "neutral"
	RatingLight    Rating = "light"
	RatingRecovery Rating = "recovery"

	// RatingAbsent is assigned by callers when no record exists for a day at
	// all. Classify never returns it.
	RatingAbsent Rating = "absent"
)

// Classify labels a day from its counters. Precedence, first match wins:
// coming back after an absent/light day beats everything, then a strong day
// needs three completions with nothing lost.
func Classify(completedCount, xpLost, eventsToday int, previousDayRating Rating) Rating {
	switch {
	case (previousDayRating == RatingAbsent || previousDayRating == RatingLight) && completedCount >= 1:
		return RatingRecovery
	case completedCount >= 3 && xpLost == 0:
		return RatingStrong
	case completedCount >= 1:
		return RatingSteady
	case eventsToday >= 1:
		return RatingLight
	default:
		return RatingNeutral
	}
}

// DayRecord is the per-calendar-day summary row. It is written once per
// session and consumed only for display; the engine never reads it back.
type DayRecord struct {
	Date            string `json:"date"`
	QuestsCompleted int    `json:"quests_completed"`
	XPGained        int    `json:"xp_gained"`
	XPLost          int    `json:"xp_lost"`
	EventCount      int    `json:"event_count"`
	Rating          Rating `json:"rating"`
}
