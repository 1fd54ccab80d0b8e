package nexus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axiom/internal/progress"
)

func TestNewWorld_Shape(t *testing.T) {
	w := NewWorld()

	require.Len(t, w.Districts, 6)
	require.Len(t, w.Companions, 6)
	require.Len(t, w.Expeditions, 4)
	require.Len(t, w.Milestones, 9)
	assert.Equal(t, 1, w.Era)

	seen := map[progress.StatKey]bool{}
	for _, d := range w.Districts {
		assert.False(t, seen[d.Stat], "stat %s bound twice", d.Stat)
		seen[d.Stat] = true
		assert.Len(t, d.Structures, 3)
		for i, s := range d.Structures {
			assert.Equal(t, i+1, s.Tier, "%s structures are tier-ordered", d.ID)
			assert.False(t, s.IsBuilt)
		}
	}
	for _, s := range progress.AllStats() {
		assert.True(t, seen[s], "no district for %s", s)
	}
}

func TestNewWorld_StartingUnlocks(t *testing.T) {
	w := NewWorld()

	for _, d := range w.Districts {
		assert.Equal(t, d.UnlockLevel <= 1, d.IsUnlocked, d.ID)
	}
	for _, c := range w.Companions {
		d := w.district(c.DistrictID)
		require.NotNil(t, d, c.ID)
		assert.Equal(t, d.IsUnlocked, c.IsPresent, "%s present iff home district is open", c.ID)
	}
}

func TestNewWorld_MilestonesAllHavePredicates(t *testing.T) {
	w := NewWorld()
	for _, m := range w.Milestones {
		_, ok := milestonePredicates[m.ID]
		assert.True(t, ok, "milestone %s has no predicate", m.ID)
		assert.False(t, m.IsEarned)
	}
}

func TestNewWorld_PassesInvariants(t *testing.T) {
	w := NewWorld()
	assert.NotPanics(t, func() { w.assertInvariants() })
}
