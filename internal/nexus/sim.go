package nexus

import (
	"fmt"
	"math"

	"axiom/internal/config"
	"axiom/internal/progress"
	"axiom/internal/quest"
)

// Simulator applies world transitions under a fixed balance. All methods are
// pure: they clone the input snapshot, never touch storage, and return the
// new state plus the events that pass emitted (newest first in the state's
// log, append-ordered in the returned slice).
type Simulator struct {
	Balance config.Balance
}

func NewSimulator(b config.Balance) Simulator {
	return Simulator{Balance: b}
}

func (s Simulator) emit(w *WorldState, emitted *[]WorldEvent, t EventType, format string, args ...any) {
	ev := WorldEvent{Type: t, Message: fmt.Sprintf(format, args...), Day: w.Day}
	*emitted = append(*emitted, ev)

	limit := s.Balance.EventLogCap
	if limit <= 0 {
		limit = 50
	}
	w.Events = append([]WorldEvent{ev}, w.Events...)
	if len(w.Events) > limit {
		w.Events = w.Events[:limit]
	}
}

// questVitalityGain is round(5 x difficulty x cadence).
func (s Simulator) questVitalityGain(q quest.Quest) int {
	base := float64(s.Balance.QuestVitalityBase)
	return int(math.Round(base * q.DifficultyMultiplier() * q.CadenceMultiplier()))
}

// OnQuestCompleted feeds one completion into the world: vitality for every
// touched district, companion loyalty and hysteresis, era, level unlocks,
// expedition eligibility, and finally the milestone pass.
func (s Simulator) OnQuestCompleted(st WorldState, q quest.Quest, p progress.Player) (WorldState, []WorldEvent) {
	w := st.Clone()
	var emitted []WorldEvent

	gain := s.questVitalityGain(q)

	for _, stat := range q.TouchedStats() {
		d := w.districtForStat(stat)
		if d == nil || !d.IsUnlocked {
			continue
		}

		before := BandFor(d.Vitality)
		d.Vitality = clampPct(d.Vitality + gain)
		d.ConsecutiveNeglectDays = 0

		if after := BandFor(d.Vitality); inBottomBands(before) && !inBottomBands(after) {
			w.TotalRecoveries++
			s.emit(&w, &emitted, EventRecovery, "%s is recovering", d.Name)
		}

		if c := w.companionFor(d.ID); c != nil {
			c.Loyalty = clampPct(c.Loyalty + 1)
			if c.IsPresent {
				c.Mood = moodFor(d.Vitality, c.Loyalty)
			} else {
				c.QuestsSinceReturn++
				if c.QuestsSinceReturn >= s.Balance.CompanionReturnQuests && d.Vitality >= s.Balance.CompanionReturnVitality {
					c.IsPresent = true
					c.QuestsSinceReturn = 0
					c.Mood = moodFor(d.Vitality, c.Loyalty)
					s.emit(&w, &emitted, EventCompanion, "%s has returned to %s", c.Name, d.Name)
				}
			}
		}
	}

	// Era never decreases even if the caller hands us a smaller level.
	if era := eraForLevel(p.Level); era > w.Era {
		w.Era = era
	}

	s.unlockByLevel(&w, &emitted, p)
	s.checkMilestones(&w, &emitted)

	w.assertInvariants()
	return w, emitted
}

// OnQuestUncompleted reverses the vitality delta of a completion. Undo is
// silent: no events, no recovery accounting, no milestone pass.
func (s Simulator) OnQuestUncompleted(st WorldState, q quest.Quest) WorldState {
	w := st.Clone()
	gain := s.questVitalityGain(q)

	for _, stat := range q.TouchedStats() {
		d := w.districtForStat(stat)
		if d == nil || !d.IsUnlocked {
			continue
		}
		d.Vitality = clampPct(d.Vitality - gain)
	}

	w.assertInvariants()
	return w
}

// OnDailyDecay runs the day-boundary pass: touched districts breathe,
// neglected ones decay at an accelerating rate, structures wear while their
// district is run down, and companions depart when it collapses. day becomes
// the world's new simulated day.
func (s Simulator) OnDailyDecay(st WorldState, touched map[progress.StatKey]bool, day string) (WorldState, []WorldEvent) {
	w := st.Clone()
	w.Day = day
	var emitted []WorldEvent

	for i := range w.Districts {
		d := &w.Districts[i]
		if !d.IsUnlocked {
			continue
		}

		wasTouched := touched[d.Stat]
		if wasTouched {
			d.Vitality = clampPct(d.Vitality + s.Balance.TouchedVitalityGain)
			d.ConsecutiveNeglectDays = 0
		} else {
			d.ConsecutiveNeglectDays++
			loss := s.Balance.DecayBase + d.ConsecutiveNeglectDays*s.Balance.DecayPerNeglect
			if loss > s.Balance.DecayCap {
				loss = s.Balance.DecayCap
			}

			before := BandFor(d.Vitality)
			d.Vitality = clampPct(d.Vitality - loss)
			after := BandFor(d.Vitality)
			if bandRank(after) < bandRank(before) && bandRank(after) <= bandRank(BandWorn) {
				s.emit(&w, &emitted, EventDecay, "%s is falling into disrepair", d.Name)
			}
		}

		if d.Vitality < s.Balance.WearVitality {
			loss := s.Balance.WearLoss
			if d.Vitality < s.Balance.CriticalWearVitality {
				loss = s.Balance.CriticalWearLoss
			}
			for j := range d.Structures {
				if d.Structures[j].IsBuilt {
					d.Structures[j].Condition = clampPct(d.Structures[j].Condition - loss)
				}
			}
		}

		if c := w.companionFor(d.ID); c != nil && c.IsPresent {
			if d.Vitality < s.Balance.CompanionDepartBelow {
				c.IsPresent = false
				c.QuestsSinceReturn = 0
				s.emit(&w, &emitted, EventCompanion, "%s has left %s", c.Name, d.Name)
			} else {
				c.Mood = moodFor(d.Vitality, c.Loyalty)
				if !wasTouched {
					c.Loyalty = clampPct(c.Loyalty - 1)
				}
			}
		}
	}

	// Pristine streak: every unlocked district held the line today.
	pristine := true
	for i := range w.Districts {
		d := &w.Districts[i]
		if d.IsUnlocked && d.Vitality < s.Balance.PristineVitality {
			pristine = false
			break
		}
	}
	if pristine {
		w.CurrentPristineStreak++
		if w.CurrentPristineStreak > w.LongestPristineStreak {
			w.LongestPristineStreak = w.CurrentPristineStreak
		}
	} else {
		w.CurrentPristineStreak = 0
	}

	s.checkMilestones(&w, &emitted)

	w.assertInvariants()
	return w, emitted
}

// BuildStructure validates and performs one build. It returns the credits
// spent so the caller can debit the player.
func (s Simulator) BuildStructure(st WorldState, districtID, structureID string, playerLevel, playerCredits int) (WorldState, []WorldEvent, int, error) {
	w := st.Clone()
	var emitted []WorldEvent

	d := w.district(districtID)
	if d == nil {
		return st, nil, 0, validationf("district %s not found", districtID)
	}

	var target *StructureState
	for i := range d.Structures {
		if d.Structures[i].ID == structureID {
			target = &d.Structures[i]
			break
		}
	}
	if target == nil {
		return st, nil, 0, validationf("structure %s not found in %s", structureID, d.Name)
	}
	if !d.IsUnlocked {
		return st, nil, 0, validationf("%s is still locked", d.Name)
	}
	if target.IsBuilt {
		return st, nil, 0, validationf("%s is already built", target.Name)
	}
	if playerLevel < target.UnlockLevel {
		return st, nil, 0, validationf("%s requires level %d", target.Name, target.UnlockLevel)
	}
	if target.Tier > 1 && !tierBuilt(d, target.Tier-1) {
		return st, nil, 0, validationf("%s needs its tier %d predecessor built first", target.Name, target.Tier-1)
	}
	if playerCredits < target.BuildCost {
		return st, nil, 0, validationf("%s costs %d credits, you have %d", target.Name, target.BuildCost, playerCredits)
	}

	target.IsBuilt = true
	target.Condition = 100
	d.Vitality = clampPct(d.Vitality + s.Balance.BuildVitalityGain)
	w.TotalStructuresBuilt++
	s.emit(&w, &emitted, EventBuild, "%s rises in %s", target.Name, d.Name)

	s.checkMilestones(&w, &emitted)

	w.assertInvariants()
	return w, emitted, target.BuildCost, nil
}

// RepairStructure restores a worn structure. The cost is proportional to the
// damage and always below the original build price.
func (s Simulator) RepairStructure(st WorldState, districtID, structureID string, playerCredits int) (WorldState, []WorldEvent, int, error) {
	w := st.Clone()
	var emitted []WorldEvent

	d := w.district(districtID)
	if d == nil {
		return st, nil, 0, validationf("district %s not found", districtID)
	}

	var target *StructureState
	for i := range d.Structures {
		if d.Structures[i].ID == structureID {
			target = &d.Structures[i]
			break
		}
	}
	if target == nil {
		return st, nil, 0, validationf("structure %s not found in %s", structureID, d.Name)
	}
	if !target.IsBuilt {
		return st, nil, 0, validationf("%s has not been built yet", target.Name)
	}
	if target.Condition >= s.Balance.RepairSkipAbove {
		return st, nil, 0, validationf("%s does not need repairs", target.Name)
	}

	cost := s.RepairCost(*target)
	if playerCredits < cost {
		return st, nil, 0, validationf("repairing %s costs %d credits, you have %d", target.Name, cost, playerCredits)
	}

	target.Condition = 100
	s.emit(&w, &emitted, EventRecovery, "%s has been restored", target.Name)

	s.checkMilestones(&w, &emitted)

	w.assertInvariants()
	return w, emitted, cost, nil
}

// RepairCost is max(min, round(buildCost x damage% x rate)).
func (s Simulator) RepairCost(st StructureState) int {
	damage := float64(100-st.Condition) / 100
	rate := float64(s.Balance.RepairRatePct) / 100
	cost := int(math.Round(float64(st.BuildCost) * damage * rate))
	if cost < s.Balance.RepairMinCost {
		cost = s.Balance.RepairMinCost
	}
	return cost
}

// LaunchExpedition completes an unlocked expedition, one-way.
func (s Simulator) LaunchExpedition(st WorldState, expeditionID string, playerCredits, playerLevel int, stats map[progress.StatKey]int) (WorldState, []WorldEvent, int, error) {
	w := st.Clone()
	var emitted []WorldEvent

	e := w.expedition(expeditionID)
	if e == nil {
		return st, nil, 0, validationf("expedition %s not found", expeditionID)
	}
	if !e.IsUnlocked {
		return st, nil, 0, validationf("%s has not been charted yet", e.Name)
	}
	if e.IsCompleted {
		return st, nil, 0, validationf("%s is already complete", e.Name)
	}
	if playerLevel < e.UnlockLevel {
		return st, nil, 0, validationf("%s requires level %d", e.Name, e.UnlockLevel)
	}
	if stats[e.Stat] < e.StatThreshold {
		return st, nil, 0, validationf("%s requires %d %s, you have %d", e.Name, e.StatThreshold, e.Stat, stats[e.Stat])
	}
	if playerCredits < e.Cost {
		return st, nil, 0, validationf("%s costs %d credits, you have %d", e.Name, e.Cost, playerCredits)
	}

	e.IsCompleted = true
	s.emit(&w, &emitted, EventDiscovery, "expedition complete: %s", e.Name)

	s.checkMilestones(&w, &emitted)

	w.assertInvariants()
	return w, emitted, e.Cost, nil
}

// unlockByLevel scans for districts and expeditions that became eligible.
func (s Simulator) unlockByLevel(w *WorldState, emitted *[]WorldEvent, p progress.Player) {
	for i := range w.Districts {
		d := &w.Districts[i]
		if !d.IsUnlocked && p.Level >= d.UnlockLevel {
			d.IsUnlocked = true
			s.emit(w, emitted, EventUnlock, "%s is now open", d.Name)
		}
	}
	for i := range w.Expeditions {
		e := &w.Expeditions[i]
		if !e.IsUnlocked && p.Level >= e.UnlockLevel && p.Stats[e.Stat] >= e.StatThreshold {
			e.IsUnlocked = true
			s.emit(w, emitted, EventDiscovery, "a route to %s has been charted", e.Name)
		}
	}
}

func tierBuilt(d *DistrictState, tier int) bool {
	for i := range d.Structures {
		if d.Structures[i].Tier == tier && d.Structures[i].IsBuilt {
			return true
		}
	}
	return false
}
