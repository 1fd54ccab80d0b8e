// Package storage defines the persistence boundary of the engine. Writes are
// best-effort from the core's perspective: a failed save is logged by the
// caller and never blocks an in-memory transition, which is self-healing
// because the next reset pass recomputes from "now".
package storage

import (
	"context"
	"errors"

	"axiom/internal/chronicle"
	"axiom/internal/nexus"
	"axiom/internal/progress"
	"axiom/internal/quest"
)

// ErrNotFound marks the first run: no player, world, or quest row yet.
var ErrNotFound = errors.New("storage: not found")

type PlayerRepository interface {
	LoadPlayer(ctx context.Context) (progress.Player, error)
	SavePlayer(ctx context.Context, p progress.Player) error
}

type QuestRepository interface {
	ListQuests(ctx context.Context) ([]quest.Quest, error)
	GetQuest(ctx context.Context, id string) (quest.Quest, error)
	SaveQuest(ctx context.Context, q quest.Quest) error
	DeleteQuest(ctx context.Context, id string) error
}

type WorldRepository interface {
	LoadWorld(ctx context.Context) (nexus.WorldState, error)
	SaveWorld(ctx context.Context, w nexus.WorldState) error
}

type ChronicleRepository interface {
	UpsertDay(ctx context.Context, rec chronicle.DayRecord) error
	GetDay(ctx context.Context, date string) (chronicle.DayRecord, error)
	ListDays(ctx context.Context, limit int) ([]chronicle.DayRecord, error)
}

// Store bundles the four repositories an engine needs.
type Store interface {
	PlayerRepository
	QuestRepository
	WorldRepository
	ChronicleRepository
}
