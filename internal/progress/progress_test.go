package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_SingleLevelUp(t *testing.T) {
	level, xp, threshold := Normalize(1, 120, 100)
	assert.Equal(t, 2, level)
	assert.Equal(t, 20, xp)
	assert.Equal(t, 125, threshold)
}

func TestNormalize_MultiLevelUp(t *testing.T) {
	// 100 + 125 = 225 spent crossing two levels.
	level, xp, threshold := Normalize(1, 230, 100)
	assert.Equal(t, 3, level)
	assert.Equal(t, 5, xp)
	assert.Equal(t, 156, threshold) // floor(125 * 1.25)
}

func TestNormalize_LevelDownBorrowsPreviousThreshold(t *testing.T) {
	// Penalty scenario: level 5 at 10 XP loses 50.
	level, xp, threshold := Normalize(5, -40, 200)
	assert.Equal(t, 4, level)
	assert.Equal(t, 160, threshold) // ceil(200 / 1.25)
	assert.Equal(t, 120, xp)        // -40 + 160
	assert.GreaterOrEqual(t, xp, 0)
	assert.Less(t, xp, threshold)
}

func TestNormalize_ClampsAtLevelOne(t *testing.T) {
	level, xp, threshold := Normalize(1, -500, 100)
	assert.Equal(t, 1, level)
	assert.Equal(t, 0, xp)
	assert.Equal(t, 100, threshold)

	// A deep loss that burns through several levels still bottoms out clean.
	level, xp, _ = Normalize(3, -10000, 156)
	assert.Equal(t, 1, level)
	assert.Equal(t, 0, xp)
}

func TestNormalize_GuardsNonPositiveThreshold(t *testing.T) {
	level, xp, threshold := Normalize(1, 50, 0)
	assert.Equal(t, 1, level)
	assert.Equal(t, 50, xp)
	assert.Equal(t, BaseThreshold, threshold)

	_, _, threshold = Normalize(2, 10, -7)
	assert.Equal(t, BaseThreshold, threshold)
}

func TestNormalize_Idempotent(t *testing.T) {
	cases := []struct{ level, xp, threshold int }{
		{1, 0, 100},
		{1, 99, 100},
		{1, 120, 100},
		{2, 500, 125},
		{5, -40, 200},
		{3, -10000, 156},
		{10, 0, 745},
	}
	for _, c := range cases {
		l1, x1, t1 := Normalize(c.level, c.xp, c.threshold)
		l2, x2, t2 := Normalize(l1, x1, t1)
		assert.Equal(t, l1, l2)
		assert.Equal(t, x1, x2)
		assert.Equal(t, t1, t2)
	}
}

func TestNormalize_ThresholdMonotonicOverGains(t *testing.T) {
	level, xp, threshold := 1, 0, 100
	prev := threshold
	for i := 0; i < 40; i++ {
		level, xp, threshold = Normalize(level, xp+90, threshold)
		require.GreaterOrEqual(t, threshold, prev)
		require.True(t, xp >= 0 && xp < threshold)
		prev = threshold
	}
	require.Greater(t, level, 1)
}

func TestNormalize_DownPathThresholdNonIncreasing(t *testing.T) {
	// Climb, then fall back through the same levels: thresholds shrink.
	level, xp, threshold := Normalize(1, 2000, 100)
	prev := threshold
	for level > 1 {
		level, xp, threshold = Normalize(level, xp-threshold-1, threshold)
		require.LessOrEqual(t, threshold, prev)
		prev = threshold
	}
	_ = xp
}

func TestApply_AtomicOutcome(t *testing.T) {
	p := NewPlayer()
	p.Apply(Outcome{XP: 120, Credits: 30, Stats: map[StatKey]int{StatPhysical: 2}})

	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 20, p.CurrentXP)
	assert.Equal(t, 30, p.Credits)
	assert.Equal(t, 2, p.Stats[StatPhysical])
}

func TestApply_InverseRestoresCountersButNotBoundary(t *testing.T) {
	p := NewPlayer()
	o := Outcome{XP: 80, Credits: 10, Stats: map[StatKey]int{StatCreative: 1}}
	p.Apply(o)
	p.Apply(o.Inverse())

	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.CurrentXP)
	assert.Equal(t, 0, p.Credits)
	assert.Equal(t, 0, p.Stats[StatCreative])
}

func TestApply_CreditsAndStatsFloorAtZero(t *testing.T) {
	p := NewPlayer()
	p.Apply(Outcome{XP: 0, Credits: -50, Stats: map[StatKey]int{StatMental: -3}})
	assert.Equal(t, 0, p.Credits)
	assert.Equal(t, 0, p.Stats[StatMental])
}

func TestApplyPenalty_IgnoresNonPositive(t *testing.T) {
	p := NewPlayer()
	p.CurrentXP = 40
	p.ApplyPenalty(0)
	p.ApplyPenalty(-5)
	assert.Equal(t, 40, p.CurrentXP)
}

func TestSpendCredits(t *testing.T) {
	p := NewPlayer()
	p.Credits = 100
	assert.True(t, p.SpendCredits(60))
	assert.Equal(t, 40, p.Credits)
	assert.False(t, p.SpendCredits(41))
	assert.Equal(t, 40, p.Credits)
	assert.False(t, p.SpendCredits(-1))
}
