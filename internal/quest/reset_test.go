package quest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axiom/internal/calendar"
)

var testRates = PenaltyRates{Daily: 10, Weekly: 20, Epic: 30}

func snapshotFor(today, yesterday, weekStart, monthStart string) calendar.Snapshot {
	return calendar.Snapshot{Today: today, Yesterday: yesterday, WeekStart: weekStart, MonthStart: monthStart}
}

// Wednesday 2024-01-03.
var midWeek = snapshotFor("2024-01-03", "2024-01-02", "2024-01-01", "2024-01-01")

func TestResetAll_DailyMissedAccruesOnePenalty(t *testing.T) {
	q := Quest{ID: "q1", Title: "Morning run", Cadence: CadenceDaily, Status: StatusPending, XPReward: 100, CreatedAt: "2024-01-01"}

	res := ResetAll([]Quest{q}, midWeek, testRates)

	require.Len(t, res.Quests, 1)
	assert.Equal(t, StatusPending, res.Quests[0].Status)
	assert.Equal(t, 10, res.TotalPenalty)
	assert.True(t, res.StreakBroken)
	assert.Len(t, res.Messages, 1)
}

func TestResetAll_DailyCompletedTodayUntouched(t *testing.T) {
	q := Quest{ID: "q1", Cadence: CadenceDaily, Status: StatusCompleted, XPReward: 100, CreatedAt: "2024-01-01", LastCompletedAt: "2024-01-03"}

	res := ResetAll([]Quest{q}, midWeek, testRates)

	assert.Equal(t, StatusCompleted, res.Quests[0].Status)
	assert.Zero(t, res.TotalPenalty)
	assert.False(t, res.StreakBroken)
}

func TestResetAll_DailyFreshSlateFromYesterday(t *testing.T) {
	q := Quest{ID: "q1", Cadence: CadenceDaily, Status: StatusCompleted, XPReward: 100, CreatedAt: "2024-01-01", LastCompletedAt: "2024-01-02"}

	res := ResetAll([]Quest{q}, midWeek, testRates)

	assert.Equal(t, StatusPending, res.Quests[0].Status)
	assert.Zero(t, res.TotalPenalty)
	assert.False(t, res.StreakBroken)
}

func TestResetAll_DailyCreatedTodayIsSafe(t *testing.T) {
	q := Quest{ID: "q1", Cadence: CadenceDaily, Status: StatusPending, XPReward: 100, CreatedAt: "2024-01-03"}

	res := ResetAll([]Quest{q}, midWeek, testRates)

	assert.Zero(t, res.TotalPenalty)
	assert.False(t, res.StreakBroken)
}

func TestResetAll_DailyStaleCompletionGetsPenaltyAndReset(t *testing.T) {
	// Completed three days ago and never reopened: catch-all reset plus the
	// missed-day penalty.
	q := Quest{ID: "q1", Cadence: CadenceDaily, Status: StatusCompleted, XPReward: 55, CreatedAt: "2023-12-20", LastCompletedAt: "2023-12-31"}

	res := ResetAll([]Quest{q}, midWeek, testRates)

	assert.Equal(t, StatusPending, res.Quests[0].Status)
	assert.Equal(t, 6, res.TotalPenalty) // ceil(55 * 0.10)
	assert.True(t, res.StreakBroken)
}

func TestResetAll_WeeklyCompletedThisWeekUntouched(t *testing.T) {
	q := Quest{ID: "q1", Cadence: CadenceWeekly, Status: StatusCompleted, XPReward: 150, CreatedAt: "2023-12-01", LastCompletedAt: "2024-01-02"}

	res := ResetAll([]Quest{q}, midWeek, testRates)

	assert.Equal(t, StatusCompleted, res.Quests[0].Status)
	assert.Zero(t, res.TotalPenalty)
}

func TestResetAll_WeeklyRollsOverWithoutPenalty(t *testing.T) {
	q := Quest{ID: "q1", Cadence: CadenceWeekly, Status: StatusCompleted, XPReward: 150, CreatedAt: "2023-12-01", LastCompletedAt: "2023-12-28"}

	res := ResetAll([]Quest{q}, midWeek, testRates)

	assert.Equal(t, StatusPending, res.Quests[0].Status)
	assert.Zero(t, res.TotalPenalty)
	assert.False(t, res.StreakBroken)
}

func TestResetAll_WeeklyMissedWindowKeepsStatusTakesPenalty(t *testing.T) {
	q := Quest{ID: "q1", Cadence: CadenceWeekly, Status: StatusPending, XPReward: 150, CreatedAt: "2023-12-01"}

	res := ResetAll([]Quest{q}, midWeek, testRates)

	assert.Equal(t, StatusPending, res.Quests[0].Status)
	assert.Equal(t, 30, res.TotalPenalty) // ceil(150 * 0.20)
	assert.False(t, res.StreakBroken, "streaks are a daily-only concept")
}

func TestResetAll_EpicUsesMonthlyWindow(t *testing.T) {
	cal := snapshotFor("2024-02-10", "2024-02-09", "2024-02-05", "2024-02-01")

	completed := Quest{ID: "q1", Cadence: CadenceEpic, Status: StatusCompleted, XPReward: 300, CreatedAt: "2023-11-01", LastCompletedAt: "2024-01-20"}
	missed := Quest{ID: "q2", Cadence: CadenceEpic, Status: StatusPending, XPReward: 300, CreatedAt: "2023-11-01"}
	fresh := Quest{ID: "q3", Cadence: CadenceEpic, Status: StatusCompleted, XPReward: 300, CreatedAt: "2023-11-01", LastCompletedAt: "2024-02-03"}

	res := ResetAll([]Quest{completed, missed, fresh}, cal, testRates)

	assert.Equal(t, StatusPending, res.Quests[0].Status, "january completion resets in february")
	assert.Equal(t, StatusPending, res.Quests[1].Status)
	assert.Equal(t, StatusCompleted, res.Quests[2].Status, "this month's completion survives")
	assert.Equal(t, 90, res.TotalPenalty) // ceil(300 * 0.30), once
}

func TestResetAll_PenaltyBound(t *testing.T) {
	// No input set can cost more than 30% of every reward, ceiling-rounded.
	quests := []Quest{
		{ID: "a", Cadence: CadenceDaily, XPReward: 101, CreatedAt: "2023-01-01"},
		{ID: "b", Cadence: CadenceWeekly, XPReward: 77, CreatedAt: "2023-01-01"},
		{ID: "c", Cadence: CadenceEpic, XPReward: 333, CreatedAt: "2023-01-01"},
		{ID: "d", Cadence: CadenceLegendary, XPReward: 999, CreatedAt: "2023-01-01"},
		{ID: "e", Cadence: CadenceDaily, XPReward: 50, CreatedAt: "2023-01-01", LastCompletedAt: "2024-01-03", Status: StatusCompleted},
	}

	res := ResetAll(quests, midWeek, testRates)

	bound := 0
	for _, q := range quests {
		bound += (q.XPReward*30 + 99) / 100
	}
	assert.LessOrEqual(t, res.TotalPenalty, bound)
	assert.Positive(t, res.TotalPenalty)
}

func TestResetAll_OrderIndependentTotals(t *testing.T) {
	quests := []Quest{
		{ID: "a", Cadence: CadenceDaily, XPReward: 100, CreatedAt: "2023-01-01"},
		{ID: "b", Cadence: CadenceWeekly, XPReward: 200, CreatedAt: "2023-01-01"},
		{ID: "c", Cadence: CadenceEpic, XPReward: 300, CreatedAt: "2023-01-01"},
	}
	reversed := []Quest{quests[2], quests[1], quests[0]}

	a := ResetAll(quests, midWeek, testRates)
	b := ResetAll(reversed, midWeek, testRates)

	assert.Equal(t, a.TotalPenalty, b.TotalPenalty)
	assert.Equal(t, a.StreakBroken, b.StreakBroken)
}

func TestResetAll_BatchEquivalentToSequentialDays(t *testing.T) {
	// A 5-day gap in one pass must land where a pass on day 1 followed by a
	// pass on day 5 lands: one penalty, final status pending.
	q := Quest{ID: "q1", Cadence: CadenceDaily, Status: StatusCompleted, XPReward: 100, CreatedAt: "2023-12-20", LastCompletedAt: "2023-12-31"}

	day5 := snapshotFor("2024-01-05", "2024-01-04", "2024-01-01", "2024-01-01")
	oneShot := ResetAll([]Quest{q}, day5, testRates)

	day1 := snapshotFor("2024-01-01", "2023-12-31", "2024-01-01", "2024-01-01")
	staged := ResetAll([]Quest{q}, day1, testRates)
	staged2 := ResetAll(staged.Quests, day5, testRates)

	assert.Equal(t, oneShot.Quests[0].Status, staged2.Quests[0].Status)
	// The miss is charged exactly once along either path.
	assert.Equal(t, 10, oneShot.TotalPenalty)
	assert.Equal(t, oneShot.TotalPenalty, staged.TotalPenalty+staged2.TotalPenalty)
}
