// Package notify decides whether the day's activity deserves an alert. It is
// strictly downstream of the engine: it reads emitted events and pending
// counts and has no write access back into the core.
package notify

import (
	"fmt"

	"axiom/internal/nexus"
)

// Decision is what the delivery layer acts on.
type Decision struct {
	ShouldNotify bool   `json:"should_notify"`
	Title        string `json:"title,omitempty"`
	Body         string `json:"body,omitempty"`
}

// Evaluate picks at most one notification, milestone and companion news
// first, then a pending-quest nudge.
func Evaluate(pendingDailies int, events []nexus.WorldEvent) Decision {
	for _, ev := range events {
		switch ev.Type {
		case nexus.EventMilestone, nexus.EventCompanion:
			return Decision{ShouldNotify: true, Title: "News from the Nexus", Body: ev.Message}
		}
	}

	for _, ev := range events {
		if ev.Type == nexus.EventDecay {
			return Decision{ShouldNotify: true, Title: "The Nexus needs you", Body: ev.Message}
		}
	}

	if pendingDailies > 0 {
		return Decision{
			ShouldNotify: true,
			Title:        "Quests await",
			Body:         fmt.Sprintf("%d daily quest(s) still pending today", pendingDailies),
		}
	}

	return Decision{}
}
