// Package game sequences the pure subsystems around storage: load before a
// core call, write after, and treat each call's output as the sole source of
// truth for the next. The core assumes a single session mutates a player's
// state at a time.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"

	"axiom/internal/calendar"
	"axiom/internal/chronicle"
	"axiom/internal/config"
	"axiom/internal/narrative"
	"axiom/internal/nexus"
	"axiom/internal/progress"
	"axiom/internal/quest"
	"axiom/internal/storage"
)

type Engine struct {
	Store    storage.Store
	Sim      nexus.Simulator
	Clock    calendar.Clock
	Balance  config.Balance
	Narrator narrative.Service
	Log      *log.Logger
}

func New(store storage.Store, clock calendar.Clock, balance config.Balance, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		Store:    store,
		Sim:      nexus.NewSimulator(balance),
		Clock:    clock,
		Balance:  balance,
		Narrator: narrative.Static{},
		Log:      logger,
	}
}

func (e *Engine) rates() quest.PenaltyRates {
	return quest.PenaltyRates{
		Daily:  e.Balance.DailyPenaltyPct,
		Weekly: e.Balance.WeeklyPenaltyPct,
		Epic:   e.Balance.EpicPenaltyPct,
	}
}

func (e *Engine) snapshot() calendar.Snapshot {
	return calendar.SnapshotAt(e.Clock.Now())
}

// warnf records a collaborator failure without surfacing it: background
// persistence must never decide whether a quest completed.
func (e *Engine) warnf(format string, args ...any) {
	e.Log.Printf("warn: "+format, args...)
}

func (e *Engine) loadPlayer(ctx context.Context) (progress.Player, error) {
	p, err := e.Store.LoadPlayer(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return progress.NewPlayer(), nil
	}
	return p, err
}

func (e *Engine) loadWorld(ctx context.Context) (nexus.WorldState, error) {
	w, err := e.Store.LoadWorld(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nexus.NewWorld(), nil
	}
	return w, err
}

func (e *Engine) savePlayer(ctx context.Context, p progress.Player) {
	if err := e.Store.SavePlayer(ctx, p); err != nil {
		e.warnf("save player: %v", err)
	}
}

func (e *Engine) saveWorld(ctx context.Context, w nexus.WorldState) {
	if err := e.Store.SaveWorld(ctx, w); err != nil {
		e.warnf("save world: %v", err)
	}
}

func (e *Engine) saveQuest(ctx context.Context, q quest.Quest) {
	if err := e.Store.SaveQuest(ctx, q); err != nil {
		e.warnf("save quest %s: %v", q.ID, err)
	}
}

// SessionResult is what a client renders after the catch-up pass.
type SessionResult struct {
	Player       progress.Player    `json:"player"`
	Quests       []quest.Quest      `json:"quests"`
	World        nexus.WorldState   `json:"world"`
	Penalty      int                `json:"penalty"`
	StreakBroken bool               `json:"streak_broken"`
	Messages     []string           `json:"messages,omitempty"`
	Events       []nexus.WorldEvent `json:"events,omitempty"`
	Rating       chronicle.Rating   `json:"rating"`
}

// StartSession runs the whole catch-up pipeline once: reset every quest
// against today's boundaries, apply the summed penalty through the level
// calculator, run the decay pass if a day boundary was crossed, and classify
// the chronicle day. One batch pass covers any number of missed days.
func (e *Engine) StartSession(ctx context.Context) (SessionResult, error) {
	cal := e.snapshot()

	p, err := e.loadPlayer(ctx)
	if err != nil {
		return SessionResult{}, fmt.Errorf("load player: %w", err)
	}
	quests, err := e.Store.ListQuests(ctx)
	if err != nil {
		return SessionResult{}, fmt.Errorf("load quests: %w", err)
	}
	w, err := e.loadWorld(ctx)
	if err != nil {
		return SessionResult{}, fmt.Errorf("load world: %w", err)
	}

	res := quest.ResetAll(quests, cal, e.rates())
	if res.TotalPenalty > 0 {
		p.ApplyPenalty(res.TotalPenalty)
	}
	if res.StreakBroken {
		p.StreakDays = 0
	}

	var events []nexus.WorldEvent
	if w.Day != cal.Today {
		touched := make(map[progress.StatKey]bool)
		for _, q := range res.Quests {
			if q.LastCompletedAt == cal.Today {
				for _, s := range q.TouchedStats() {
					touched[s] = true
				}
			}
		}
		w, events = e.Sim.OnDailyDecay(w, touched, cal.Today)
	}

	p.LastActiveDate = cal.Today

	completedToday := 0
	for _, q := range res.Quests {
		if q.LastCompletedAt == cal.Today {
			completedToday++
		}
	}
	rating := chronicle.Classify(completedToday, res.TotalPenalty, len(events), e.previousRating(ctx, cal.Yesterday))
	rec := chronicle.DayRecord{
		Date:            cal.Today,
		QuestsCompleted: completedToday,
		XPLost:          res.TotalPenalty,
		EventCount:      len(events),
		Rating:          rating,
	}

	e.savePlayer(ctx, p)
	for _, q := range res.Quests {
		e.saveQuest(ctx, q)
	}
	e.saveWorld(ctx, w)
	if err := e.Store.UpsertDay(ctx, rec); err != nil {
		e.warnf("save day record: %v", err)
	}

	return SessionResult{
		Player:       p,
		Quests:       res.Quests,
		World:        w,
		Penalty:      res.TotalPenalty,
		StreakBroken: res.StreakBroken,
		Messages:     res.Messages,
		Events:       events,
		Rating:       rating,
	}, nil
}

func (e *Engine) previousRating(ctx context.Context, date string) chronicle.Rating {
	rec, err := e.Store.GetDay(ctx, date)
	if err != nil {
		return chronicle.RatingAbsent
	}
	return rec.Rating
}

// CreateQuest registers a new pending quest dated today. Zero rewards mean
// the default economy fills them in at completion time.
func (e *Engine) CreateQuest(ctx context.Context, q quest.Quest) (quest.Quest, error) {
	cal := e.snapshot()
	created := quest.New(q.Title, q.Cadence, q.Difficulty, cal.Today)
	created.Description = q.Description
	created.XPReward = q.XPReward
	created.CurrencyReward = q.CurrencyReward
	created.StatRewards = q.StatRewards
	created.LinkedStat = q.LinkedStat
	if created.Cadence == "" {
		created.Cadence = quest.CadenceDaily
	}
	if created.Difficulty == "" {
		created.Difficulty = quest.DifficultyMedium
	}
	if err := e.Store.SaveQuest(ctx, created); err != nil {
		return quest.Quest{}, fmt.Errorf("save quest: %w", err)
	}
	return created, nil
}

// rewardOutcome resolves a quest's completion outcome, falling back to the
// deterministic economy tables when the quest carries no explicit rewards.
func rewardOutcome(q quest.Quest) progress.Outcome {
	xp, credits := q.XPReward, q.CurrencyReward
	if xp == 0 && credits == 0 {
		xp, credits = narrative.DefaultRewards(q.Cadence, q.Difficulty)
	}
	return progress.Outcome{XP: xp, Credits: credits, Stats: q.StatDeltas()}
}

// CompleteResult reports one completion.
type CompleteResult struct {
	Quest         quest.Quest        `json:"quest"`
	Player        progress.Player    `json:"player"`
	World         nexus.WorldState   `json:"world"`
	Events        []nexus.WorldEvent `json:"events,omitempty"`
	XPGained      int                `json:"xp_gained"`
	CreditsGained int                `json:"credits_gained"`
	Narration     string             `json:"narration,omitempty"`
}

// CompleteQuest marks a quest done today, applies its outcome atomically,
// and feeds the completion into the world simulation.
func (e *Engine) CompleteQuest(ctx context.Context, id string) (CompleteResult, error) {
	cal := e.snapshot()

	q, err := e.Store.GetQuest(ctx, id)
	if err != nil {
		return CompleteResult{}, fmt.Errorf("quest %s: %w", id, err)
	}
	if q.Status == quest.StatusCompleted {
		return CompleteResult{}, &nexus.ValidationError{Reason: q.Title + " is already completed"}
	}

	p, err := e.loadPlayer(ctx)
	if err != nil {
		return CompleteResult{}, fmt.Errorf("load player: %w", err)
	}
	w, err := e.loadWorld(ctx)
	if err != nil {
		return CompleteResult{}, fmt.Errorf("load world: %w", err)
	}

	firstDailyToday := q.Cadence == quest.CadenceDaily && !e.dailyCompletedToday(ctx, cal, q.ID)

	q.Status = quest.StatusCompleted
	q.LastCompletedAt = cal.Today

	outcome := rewardOutcome(q)
	p.Apply(outcome)
	if firstDailyToday {
		p.StreakDays++
	}
	p.LastActiveDate = cal.Today

	w, events := e.Sim.OnQuestCompleted(w, q, p)

	narration := e.narrate(ctx, q)

	e.savePlayer(ctx, p)
	e.saveQuest(ctx, q)
	e.saveWorld(ctx, w)
	e.bumpChronicle(ctx, cal, 1, outcome.XP, 0, len(events))

	return CompleteResult{
		Quest:         q,
		Player:        p,
		World:         w,
		Events:        events,
		XPGained:      outcome.XP,
		CreditsGained: outcome.Credits,
		Narration:     narration,
	}, nil
}

// UncompleteQuest undoes a completion made today. The outcome is reversed
// through the same normalization path, and the world delta is withdrawn
// silently.
func (e *Engine) UncompleteQuest(ctx context.Context, id string) (CompleteResult, error) {
	cal := e.snapshot()

	q, err := e.Store.GetQuest(ctx, id)
	if err != nil {
		return CompleteResult{}, fmt.Errorf("quest %s: %w", id, err)
	}
	if q.Status != quest.StatusCompleted || q.LastCompletedAt != cal.Today {
		return CompleteResult{}, &nexus.ValidationError{Reason: q.Title + " was not completed today"}
	}

	p, err := e.loadPlayer(ctx)
	if err != nil {
		return CompleteResult{}, fmt.Errorf("load player: %w", err)
	}
	w, err := e.loadWorld(ctx)
	if err != nil {
		return CompleteResult{}, fmt.Errorf("load world: %w", err)
	}

	outcome := rewardOutcome(q)
	p.Apply(outcome.Inverse())

	w = e.Sim.OnQuestUncompleted(w, q)

	q.Status = quest.StatusPending
	q.LastCompletedAt = ""

	if q.Cadence == quest.CadenceDaily && !e.dailyCompletedToday(ctx, cal, q.ID) && p.StreakDays > 0 {
		p.StreakDays--
	}

	e.savePlayer(ctx, p)
	e.saveQuest(ctx, q)
	e.saveWorld(ctx, w)
	e.bumpChronicle(ctx, cal, -1, -outcome.XP, 0, 0)

	return CompleteResult{Quest: q, Player: p, World: w}, nil
}

// dailyCompletedToday reports whether any daily quest other than exclude was
// already completed today.
func (e *Engine) dailyCompletedToday(ctx context.Context, cal calendar.Snapshot, exclude string) bool {
	quests, err := e.Store.ListQuests(ctx)
	if err != nil {
		e.warnf("list quests: %v", err)
		return true // fail closed: no double streak bumps on a flaky read
	}
	for _, q := range quests {
		if q.ID != exclude && q.Cadence == quest.CadenceDaily && q.LastCompletedAt == cal.Today {
			return true
		}
	}
	return false
}

func (e *Engine) narrate(ctx context.Context, q quest.Quest) string {
	if e.Narrator != nil {
		if text, err := e.Narrator.QuestNarration(ctx, q); err == nil {
			return text
		} else {
			e.warnf("narration for %s: %v", q.ID, err)
		}
	}
	text, _ := narrative.Static{}.QuestNarration(ctx, q)
	return text
}

// WorldResult reports a world action (build, repair, expedition).
type WorldResult struct {
	Player       progress.Player    `json:"player"`
	World        nexus.WorldState   `json:"world"`
	Events       []nexus.WorldEvent `json:"events,omitempty"`
	CreditsSpent int                `json:"credits_spent"`
}

// BuildStructure validates through the simulator and debits the player.
func (e *Engine) BuildStructure(ctx context.Context, districtID, structureID string) (WorldResult, error) {
	p, err := e.loadPlayer(ctx)
	if err != nil {
		return WorldResult{}, fmt.Errorf("load player: %w", err)
	}
	w, err := e.loadWorld(ctx)
	if err != nil {
		return WorldResult{}, fmt.Errorf("load world: %w", err)
	}

	w, events, spent, err := e.Sim.BuildStructure(w, districtID, structureID, p.Level, p.Credits)
	if err != nil {
		return WorldResult{}, err
	}
	p.SpendCredits(spent)

	e.savePlayer(ctx, p)
	e.saveWorld(ctx, w)
	e.bumpChronicle(ctx, e.snapshot(), 0, 0, 0, len(events))

	return WorldResult{Player: p, World: w, Events: events, CreditsSpent: spent}, nil
}

func (e *Engine) RepairStructure(ctx context.Context, districtID, structureID string) (WorldResult, error) {
	p, err := e.loadPlayer(ctx)
	if err != nil {
		return WorldResult{}, fmt.Errorf("load player: %w", err)
	}
	w, err := e.loadWorld(ctx)
	if err != nil {
		return WorldResult{}, fmt.Errorf("load world: %w", err)
	}

	w, events, spent, err := e.Sim.RepairStructure(w, districtID, structureID, p.Credits)
	if err != nil {
		return WorldResult{}, err
	}
	p.SpendCredits(spent)

	e.savePlayer(ctx, p)
	e.saveWorld(ctx, w)
	e.bumpChronicle(ctx, e.snapshot(), 0, 0, 0, len(events))

	return WorldResult{Player: p, World: w, Events: events, CreditsSpent: spent}, nil
}

func (e *Engine) LaunchExpedition(ctx context.Context, expeditionID string) (WorldResult, error) {
	p, err := e.loadPlayer(ctx)
	if err != nil {
		return WorldResult{}, fmt.Errorf("load player: %w", err)
	}
	w, err := e.loadWorld(ctx)
	if err != nil {
		return WorldResult{}, fmt.Errorf("load world: %w", err)
	}

	w, events, spent, err := e.Sim.LaunchExpedition(w, expeditionID, p.Credits, p.Level, p.Stats)
	if err != nil {
		return WorldResult{}, err
	}
	p.SpendCredits(spent)

	e.savePlayer(ctx, p)
	e.saveWorld(ctx, w)
	e.bumpChronicle(ctx, e.snapshot(), 0, 0, 0, len(events))

	return WorldResult{Player: p, World: w, Events: events, CreditsSpent: spent}, nil
}

// PendingDailies counts today's unfinished daily quests, for notifications.
func (e *Engine) PendingDailies(ctx context.Context) (int, error) {
	quests, err := e.Store.ListQuests(ctx)
	if err != nil {
		return 0, fmt.Errorf("list quests: %w", err)
	}
	cal := e.snapshot()
	n := 0
	for _, q := range quests {
		if q.Cadence == quest.CadenceDaily && q.LastCompletedAt != cal.Today {
			n++
		}
	}
	return n, nil
}

// bumpChronicle folds deltas into today's record and re-classifies it.
// Best-effort, like every other deferred write.
func (e *Engine) bumpChronicle(ctx context.Context, cal calendar.Snapshot, completedDelta, xpGained, xpLost, eventDelta int) {
	rec, err := e.Store.GetDay(ctx, cal.Today)
	if err != nil {
		rec = chronicle.DayRecord{Date: cal.Today}
	}
	rec.QuestsCompleted += completedDelta
	if rec.QuestsCompleted < 0 {
		rec.QuestsCompleted = 0
	}
	rec.XPGained += xpGained
	if rec.XPGained < 0 {
		rec.XPGained = 0
	}
	rec.XPLost += xpLost
	rec.EventCount += eventDelta
	rec.Rating = chronicle.Classify(rec.QuestsCompleted, rec.XPLost, rec.EventCount, e.previousRating(ctx, cal.Yesterday))

	if err := e.Store.UpsertDay(ctx, rec); err != nil {
		e.warnf("save day record: %v", err)
	}
}
