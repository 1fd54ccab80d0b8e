// Package narrative is the flavor-text boundary. The engine never blocks on
// a generative service: when none is configured (or it errors), the static
// narrator and the fixed reward tables keep every outcome deterministic.
package narrative

import (
	"context"

	"axiom/internal/quest"
)

// Service produces flavor narration for a completed quest. Implementations
// may call out to a generative backend; errors are expected and the caller
// falls back to the static narrator.
type Service interface {
	QuestNarration(ctx context.Context, q quest.Quest) (string, error)
}

// Static is the deterministic fallback narrator.
type Static struct{}

func (Static) QuestNarration(_ context.Context, q quest.Quest) (string, error) {
	switch q.Cadence {
	case quest.CadenceWeekly:
		return "A week's work, banked. The Nexus takes note.", nil
	case quest.CadenceEpic:
		return "A long road walked to its end. The districts stir.", nil
	case quest.CadenceLegendary:
		return "Stories will be told of this one.", nil
	default:
		return "Another stone laid. The settlement grows.", nil
	}
}

// DefaultRewards is the fixed XP/credit economy keyed by cadence and
// difficulty, used when a quest was created without explicit rewards.
func DefaultRewards(c quest.Cadence, d quest.Difficulty) (xp, credits int) {
	base := 0
	switch d {
	case quest.DifficultyEasy:
		base = 50
	case quest.DifficultyHard:
		base = 200
	case quest.DifficultyExtreme:
		base = 400
	default:
		base = 100
	}

	switch c {
	case quest.CadenceWeekly:
		xp = base * 3 / 2
	case quest.CadenceEpic:
		xp = base * 2
	case quest.CadenceLegendary:
		xp = base * 3
	default:
		xp = base
	}

	return xp, xp / 5
}
