package nexus

// Milestone predicates are static and evaluated against the whole snapshot
// after every mutating operation. Earning is monotonic, so re-checking an
// earned milestone is a no-op and the pass is safe to run as often as needed.

const (
	MilestoneFirstFoundation = "first_foundation"
	MilestoneMasterBuilder   = "master_builder"
	MilestoneFullMap         = "full_map"
	MilestoneRestorer        = "restorer"
	MilestonePristineWeek    = "pristine_week"
	MilestoneSecondEra       = "second_era"
	MilestoneGoldenAge       = "golden_age"
	MilestonePathfinder      = "pathfinder"
	MilestoneVoyager         = "voyager"
)

var milestonePredicates = map[string]func(w *WorldState) bool{
	MilestoneFirstFoundation: func(w *WorldState) bool { return w.TotalStructuresBuilt >= 1 },
	MilestoneMasterBuilder:   func(w *WorldState) bool { return w.TotalStructuresBuilt >= 5 },
	MilestoneFullMap: func(w *WorldState) bool {
		for i := range w.Districts {
			if !w.Districts[i].IsUnlocked {
				return false
			}
		}
		return len(w.Districts) > 0
	},
	MilestoneRestorer:     func(w *WorldState) bool { return w.TotalRecoveries >= 10 },
	MilestonePristineWeek: func(w *WorldState) bool { return w.LongestPristineStreak >= 7 },
	MilestoneSecondEra:    func(w *WorldState) bool { return w.Era >= 2 },
	MilestoneGoldenAge:    func(w *WorldState) bool { return w.Era >= 4 },
	MilestonePathfinder: func(w *WorldState) bool {
		for i := range w.Expeditions {
			if w.Expeditions[i].IsCompleted {
				return true
			}
		}
		return false
	},
	MilestoneVoyager: func(w *WorldState) bool {
		for i := range w.Expeditions {
			if !w.Expeditions[i].IsCompleted {
				return false
			}
		}
		return len(w.Expeditions) > 0
	},
}

func (s Simulator) checkMilestones(w *WorldState, emitted *[]WorldEvent) {
	for i := range w.Milestones {
		m := &w.Milestones[i]
		if m.IsEarned {
			continue
		}
		pred, ok := milestonePredicates[m.ID]
		if !ok {
			continue
		}
		if pred(w) {
			m.IsEarned = true
			s.emit(w, emitted, EventMilestone, "milestone earned: %s", m.Name)
		}
	}
}
