package storage

import (
	"context"
	"sort"
	"sync"

	"axiom/internal/chronicle"
	"axiom/internal/nexus"
	"axiom/internal/progress"
	"axiom/internal/quest"
)

// MemoryStore keeps everything in process. It backs demo mode and tests; it
// is an explicitly constructed instance, injected like the durable store, so
// nothing touches process-wide state.
type MemoryStore struct {
	mu        sync.RWMutex
	player    *progress.Player
	quests    map[string]quest.Quest
	world     *nexus.WorldState
	chronicle map[string]chronicle.DayRecord
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		quests:    make(map[string]quest.Quest),
		chronicle: make(map[string]chronicle.DayRecord),
	}
}

func (s *MemoryStore) LoadPlayer(ctx context.Context) (progress.Player, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.player == nil {
		return progress.Player{}, ErrNotFound
	}
	return s.player.Clone(), nil
}

func (s *MemoryStore) SavePlayer(ctx context.Context, p progress.Player) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p.Clone()
	s.player = &cp
	return nil
}

func (s *MemoryStore) ListQuests(ctx context.Context) ([]quest.Quest, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]quest.Quest, 0, len(s.quests))
	for _, q := range s.quests {
		out = append(out, q.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) GetQuest(ctx context.Context, id string) (quest.Quest, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quests[id]
	if !ok {
		return quest.Quest{}, ErrNotFound
	}
	return q.Clone(), nil
}

func (s *MemoryStore) SaveQuest(ctx context.Context, q quest.Quest) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quests[q.ID] = q.Clone()
	return nil
}

func (s *MemoryStore) DeleteQuest(ctx context.Context, id string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.quests, id)
	return nil
}

func (s *MemoryStore) LoadWorld(ctx context.Context) (nexus.WorldState, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.world == nil {
		return nexus.WorldState{}, ErrNotFound
	}
	return s.world.Clone(), nil
}

func (s *MemoryStore) SaveWorld(ctx context.Context, w nexus.WorldState) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := w.Clone()
	s.world = &cp
	return nil
}

func (s *MemoryStore) UpsertDay(ctx context.Context, rec chronicle.DayRecord) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chronicle[rec.Date] = rec
	return nil
}

func (s *MemoryStore) GetDay(ctx context.Context, date string) (chronicle.DayRecord, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.chronicle[date]
	if !ok {
		return chronicle.DayRecord{}, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) ListDays(ctx context.Context, limit int) ([]chronicle.DayRecord, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]chronicle.DayRecord, 0, len(s.chronicle))
	for _, rec := range s.chronicle {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
