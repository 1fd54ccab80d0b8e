// Package quest holds the quest model and the calendar-boundary reset
// engine. Dates are stored as local "2006-01-02" strings so window checks are
// string comparisons against the calendar snapshot.
package quest

import (
	"sort"

	"github.com/google/uuid"

	"axiom/internal/progress"
)

// Cadence is a quest's repetition class. It determines the reset window and
// the reward scale.
type Cadence string

const (
	CadenceDaily     Cadence = "daily"
	CadenceWeekly    Cadence = "weekly"
	CadenceEpic      Cadence = "epic"
	CadenceLegendary Cadence = "legendary"
)

type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
	DifficultyExtreme Difficulty = "extreme"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

type Quest struct {
	ID             string                   `json:"id"`
	Title          string                   `json:"title"`
	Description    string                   `json:"description,omitempty"`
	Cadence        Cadence                  `json:"cadence"`
	Difficulty     Difficulty               `json:"difficulty"`
	Status         Status                   `json:"status"`
	XPReward       int                      `json:"xp_reward"`
	CurrencyReward int                      `json:"currency_reward"`
	StatRewards    map[progress.StatKey]int `json:"stat_rewards,omitempty"`

	// LinkedStat is the legacy single-stat binding used when StatRewards is
	// empty. See TouchedStats.
	LinkedStat progress.StatKey `json:"linked_stat,omitempty"`

	CreatedAt       string `json:"created_at"`                  // date string
	LastCompletedAt string `json:"last_completed_at,omitempty"` // "" when never completed
}

// New creates a pending quest with a fresh id, created on the given day.
func New(title string, cadence Cadence, difficulty Difficulty, createdAt string) Quest {
	return Quest{
		ID:         uuid.NewString(),
		Title:      title,
		Cadence:    cadence,
		Difficulty: difficulty,
		Status:     StatusPending,
		CreatedAt:  createdAt,
	}
}

// Clone deep-copies the quest so the reward map is never shared between a
// stored copy and a live one.
func (q Quest) Clone() Quest {
	if q.StatRewards != nil {
		rewards := make(map[progress.StatKey]int, len(q.StatRewards))
		for k, v := range q.StatRewards {
			rewards[k] = v
		}
		q.StatRewards = rewards
	}
	return q
}

// TouchedStats resolves which stats a completion touches. The reward map
// wins; an empty map falls back to the single linked stat. The two branches
// are deliberately explicit so both stay independently testable.
func (q Quest) TouchedStats() []progress.StatKey {
	if len(q.StatRewards) > 0 {
		keys := make([]progress.StatKey, 0, len(q.StatRewards))
		for k := range q.StatRewards {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		return keys
	}
	if q.LinkedStat != "" {
		return []progress.StatKey{q.LinkedStat}
	}
	return nil
}

// StatDeltas is the stat portion of a completion outcome: the reward map, or
// a single point on the linked stat.
func (q Quest) StatDeltas() map[progress.StatKey]int {
	if len(q.StatRewards) > 0 {
		out := make(map[progress.StatKey]int, len(q.StatRewards))
		for k, v := range q.StatRewards {
			out[k] = v
		}
		return out
	}
	if q.LinkedStat != "" {
		return map[progress.StatKey]int{q.LinkedStat: 1}
	}
	return nil
}

// DifficultyMultiplier scales XP-free effects like vitality gains.
func (q Quest) DifficultyMultiplier() float64 {
	switch q.Difficulty {
	case DifficultyEasy:
		return 0.6
	case DifficultyHard:
		return 1.5
	case DifficultyExtreme:
		return 2
	default:
		return 1
	}
}

func (q Quest) CadenceMultiplier() float64 {
	switch q.Cadence {
	case CadenceWeekly:
		return 1.5
	case CadenceEpic:
		return 2
	case CadenceLegendary:
		return 3
	default:
		return 1
	}
}
