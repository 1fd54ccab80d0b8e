package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"axiom/internal/nexus"
)

func TestEvaluate_MilestoneOutranksEverything(t *testing.T) {
	events := []nexus.WorldEvent{
		{Type: nexus.EventDecay, Message: "the Ironworks is falling into disrepair"},
		{Type: nexus.EventMilestone, Message: "milestone earned: First Foundation"},
	}

	d := Evaluate(3, events)

	assert.True(t, d.ShouldNotify)
	assert.Equal(t, "milestone earned: First Foundation", d.Body)
}

func TestEvaluate_CompanionNews(t *testing.T) {
	events := []nexus.WorldEvent{
		{Type: nexus.EventCompanion, Message: "Brann the Smith has left the Ironworks"},
	}

	d := Evaluate(0, events)

	assert.True(t, d.ShouldNotify)
	assert.Equal(t, "Brann the Smith has left the Ironworks", d.Body)
}

func TestEvaluate_DecayBeatsPendingNudge(t *testing.T) {
	events := []nexus.WorldEvent{
		{Type: nexus.EventBuild, Message: "Forge rises in the Ironworks"},
		{Type: nexus.EventDecay, Message: "the Sanctum is falling into disrepair"},
	}

	d := Evaluate(5, events)

	assert.True(t, d.ShouldNotify)
	assert.Equal(t, "The Nexus needs you", d.Title)
}

func TestEvaluate_PendingNudge(t *testing.T) {
	d := Evaluate(2, nil)

	assert.True(t, d.ShouldNotify)
	assert.Contains(t, d.Body, "2 daily quest(s)")
}

func TestEvaluate_QuietDay(t *testing.T) {
	d := Evaluate(0, []nexus.WorldEvent{{Type: nexus.EventBuild, Message: "x"}})

	assert.False(t, d.ShouldNotify)
	assert.Empty(t, d.Title)
}
