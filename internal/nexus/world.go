// Package nexus simulates the player's settlement: district vitality,
// structure condition, companion mood, expeditions, and milestones, all
// derived from quest completions and elapsed days. Every operation is a pure
// transformation over a cloned snapshot.
package nexus

import (
	"fmt"

	"axiom/internal/progress"
)

type EventType string

const (
	EventUnlock    EventType = "unlock"
	EventBuild     EventType = "build"
	EventRecovery  EventType = "recovery"
	EventDecay     EventType = "decay"
	EventCompanion EventType = "companion"
	EventDiscovery EventType = "discovery"
	EventMilestone EventType = "milestone"
)

// WorldEvent is one entry in the world's bounded event log.
type WorldEvent struct {
	Type    EventType `json:"type"`
	Message string    `json:"message"`
	Day     string    `json:"day,omitempty"`
}

// Band is the display class of a district's vitality. Decaying and Ruined
// are the "bottom two": leaving them is a recovery, entering Worn or below
// from above is decay worth reporting.
type Band string

const (
	BandRadiant  Band = "radiant"  // 80+
	BandStable   Band = "stable"   // 60..79
	BandWorn     Band = "worn"     // 40..59
	BandDecaying Band = "decaying" // 20..39
	BandRuined   Band = "ruined"   // 0..19
)

func BandFor(vitality int) Band {
	switch {
	case vitality >= 80:
		return BandRadiant
	case vitality >= 60:
		return BandStable
	case vitality >= 40:
		return BandWorn
	case vitality >= 20:
		return BandDecaying
	default:
		return BandRuined
	}
}

func bandRank(b Band) int {
	switch b {
	case BandRadiant:
		return 4
	case BandStable:
		return 3
	case BandWorn:
		return 2
	case BandDecaying:
		return 1
	default:
		return 0
	}
}

func inBottomBands(b Band) bool { return b == BandDecaying || b == BandRuined }

type Mood string

const (
	MoodJoyful     Mood = "joyful"
	MoodContent    Mood = "content"
	MoodUneasy     Mood = "uneasy"
	MoodDistressed Mood = "distressed"
)

func moodFor(vitality, loyalty int) Mood {
	switch {
	case vitality >= 70 && loyalty >= 60:
		return MoodJoyful
	case vitality >= 40:
		return MoodContent
	case vitality >= 20:
		return MoodUneasy
	default:
		return MoodDistressed
	}
}

type StructureState struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Tier        int    `json:"tier"`
	IsBuilt     bool   `json:"is_built"`
	Condition   int    `json:"condition"`
	UnlockLevel int    `json:"unlock_level"`
	BuildCost   int    `json:"build_cost"`
}

type DistrictState struct {
	ID                     string           `json:"id"`
	Name                   string           `json:"name"`
	Stat                   progress.StatKey `json:"stat"`
	IsUnlocked             bool             `json:"is_unlocked"`
	UnlockLevel            int              `json:"unlock_level"`
	Vitality               int              `json:"vitality"`
	Structures             []StructureState `json:"structures"`
	ConsecutiveNeglectDays int              `json:"consecutive_neglect_days"`
}

// CompanionState tracks the resident bound to one district. Presence is a
// hysteresis variable: departure below vitality 10, return only after
// QuestsSinceReturn reaches the threshold while vitality has recovered.
type CompanionState struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	DistrictID        string `json:"district_id"`
	IsPresent         bool   `json:"is_present"`
	Loyalty           int    `json:"loyalty"`
	Mood              Mood   `json:"mood"`
	QuestsSinceReturn int    `json:"quests_since_return"`
}

type ExpeditionState struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	UnlockLevel   int              `json:"unlock_level"`
	Stat          progress.StatKey `json:"stat"`
	StatThreshold int              `json:"stat_threshold"`
	Cost          int              `json:"cost"`
	IsUnlocked    bool             `json:"is_unlocked"`
	IsCompleted   bool             `json:"is_completed"`
}

type MilestoneState struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsEarned bool   `json:"is_earned"`
}

// WorldState is the per-player settlement snapshot. Era, unlock, build, and
// milestone flags are monotonic; the event log is capped, newest first.
type WorldState struct {
	Era int    `json:"era"` // 1..5, derived from player level
	Day string `json:"day"` // last simulated day, "" before the first pass

	Districts   []DistrictState   `json:"districts"`
	Companions  []CompanionState  `json:"companions"`
	Expeditions []ExpeditionState `json:"expeditions"`
	Milestones  []MilestoneState  `json:"milestones"`
	Events      []WorldEvent      `json:"events"`

	TotalStructuresBuilt  int `json:"total_structures_built"`
	TotalRecoveries       int `json:"total_recoveries"`
	CurrentPristineStreak int `json:"current_pristine_streak"`
	LongestPristineStreak int `json:"longest_pristine_streak"`
}

// Clone deep-copies the snapshot so operations stay pure.
func (w WorldState) Clone() WorldState {
	out := w
	out.Districts = make([]DistrictState, len(w.Districts))
	for i, d := range w.Districts {
		d.Structures = append([]StructureState(nil), d.Structures...)
		out.Districts[i] = d
	}
	out.Companions = append([]CompanionState(nil), w.Companions...)
	out.Expeditions = append([]ExpeditionState(nil), w.Expeditions...)
	out.Milestones = append([]MilestoneState(nil), w.Milestones...)
	out.Events = append([]WorldEvent(nil), w.Events...)
	return out
}

func (w *WorldState) district(id string) *DistrictState {
	for i := range w.Districts {
		if w.Districts[i].ID == id {
			return &w.Districts[i]
		}
	}
	return nil
}

func (w *WorldState) districtForStat(stat progress.StatKey) *DistrictState {
	for i := range w.Districts {
		if w.Districts[i].Stat == stat {
			return &w.Districts[i]
		}
	}
	return nil
}

func (w *WorldState) companionFor(districtID string) *CompanionState {
	for i := range w.Companions {
		if w.Companions[i].DistrictID == districtID {
			return &w.Companions[i]
		}
	}
	return nil
}

func (w *WorldState) expedition(id string) *ExpeditionState {
	for i := range w.Expeditions {
		if w.Expeditions[i].ID == id {
			return &w.Expeditions[i]
		}
	}
	return nil
}

func clampPct(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// eraForLevel maps player level onto an era band (thresholds 1/5/15/30/50).
func eraForLevel(level int) int {
	switch {
	case level >= 50:
		return 5
	case level >= 30:
		return 4
	case level >= 15:
		return 3
	case level >= 5:
		return 2
	default:
		return 1
	}
}

// assertInvariants panics on states only an engine bug can produce.
func (w *WorldState) assertInvariants() {
	built := 0
	for i := range w.Districts {
		d := &w.Districts[i]
		if d.Vitality < 0 || d.Vitality > 100 {
			panic(fmt.Sprintf("nexus: district %s vitality out of range: %d", d.ID, d.Vitality))
		}
		for j := range d.Structures {
			s := &d.Structures[j]
			if s.Condition < 0 || s.Condition > 100 {
				panic(fmt.Sprintf("nexus: structure %s condition out of range: %d", s.ID, s.Condition))
			}
			if s.IsBuilt {
				built++
			}
		}
	}
	if built != w.TotalStructuresBuilt {
		panic(fmt.Sprintf("nexus: built-structure counter drift: counted %d, recorded %d", built, w.TotalStructuresBuilt))
	}
	for i := range w.Companions {
		c := &w.Companions[i]
		if c.Loyalty < 0 || c.Loyalty > 100 {
			panic(fmt.Sprintf("nexus: companion %s loyalty out of range: %d", c.ID, c.Loyalty))
		}
	}
}

// ValidationError is an expected, user-legible rejection of a world action.
// It is a result value, never a panic: every case is a recoverable outcome of
// a user acting against current state.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
