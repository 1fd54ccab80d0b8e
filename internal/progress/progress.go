// Package progress owns the player aggregate: level, experience, credits,
// streak, and lifetime stat counters. All XP changes go through Normalize so
// the 0 <= xp < threshold invariant holds after every write.
package progress

// StatKey identifies one of the six life stats a quest can touch. Each
// district in the nexus is permanently bound to exactly one of these.
type StatKey string

const (
	StatPhysical  StatKey = "physical"
	StatCognitive StatKey = "cognitive"
	StatMental    StatKey = "mental"
	StatCareer    StatKey = "career"
	StatFinancial StatKey = "financial"
	StatCreative  StatKey = "creative"
)

// AllStats lists every stat key in a stable order.
func AllStats() []StatKey {
	return []StatKey{StatPhysical, StatCognitive, StatMental, StatCareer, StatFinancial, StatCreative}
}

// BaseThreshold is the XP required to leave level 1. Each level-up grows the
// threshold by x1.25 (floored); level-downs borrow back the previous
// threshold with a ceiling division, so the two directions are symmetric but
// not perfectly invertible at the boundary.
const BaseThreshold = 100

type Player struct {
	Level          int             `json:"level"`
	CurrentXP      int             `json:"current_xp"`
	XPToNextLevel  int             `json:"xp_to_next_level"`
	Credits        int             `json:"credits"`
	StreakDays     int             `json:"streak_days"`
	LastActiveDate string          `json:"last_active_date,omitempty"`
	Stats          map[StatKey]int `json:"stats"`
}

func NewPlayer() Player {
	stats := make(map[StatKey]int, 6)
	for _, s := range AllStats() {
		stats[s] = 0
	}
	return Player{
		Level:         1,
		CurrentXP:     0,
		XPToNextLevel: BaseThreshold,
		Stats:         stats,
	}
}

// Clone deep-copies the player so a stored copy and a live copy never share
// the stats map.
func (p Player) Clone() Player {
	if p.Stats != nil {
		stats := make(map[StatKey]int, len(p.Stats))
		for k, v := range p.Stats {
			stats[k] = v
		}
		p.Stats = stats
	}
	return p
}

// Normalize folds a (level, xp, threshold) triple back into the canonical
// range. It never errors: a non-positive threshold is clamped to the base
// threshold because the calculator sits on the hot path of every quest
// toggle, and xp clamps to 0 once level 1 is reached.
func Normalize(level, xp, threshold int) (int, int, int) {
	if threshold <= 0 {
		threshold = BaseThreshold
	}
	if level < 1 {
		level = 1
	}

	for xp >= threshold {
		xp -= threshold
		level++
		threshold = threshold * 5 / 4 // x1.25, floored
	}

	for xp < 0 && level > 1 {
		prev := (threshold*4 + 4) / 5 // ceil(threshold / 1.25)
		xp += prev
		level--
		threshold = prev
	}

	if xp < 0 {
		xp = 0
	}

	return level, xp, threshold
}

// Outcome bundles the XP, currency, and stat deltas of a single quest toggle
// so they are applied atomically rather than as three independent writes.
type Outcome struct {
	XP      int
	Credits int
	Stats   map[StatKey]int
}

// Inverse returns the outcome that undoes o.
func (o Outcome) Inverse() Outcome {
	inv := Outcome{XP: -o.XP, Credits: -o.Credits}
	if len(o.Stats) > 0 {
		inv.Stats = make(map[StatKey]int, len(o.Stats))
		for k, v := range o.Stats {
			inv.Stats[k] = -v
		}
	}
	return inv
}

// Apply mutates the player with the full outcome in one step. Credits and
// stat counters floor at zero; XP is re-normalized.
func (p *Player) Apply(o Outcome) {
	p.Level, p.CurrentXP, p.XPToNextLevel = Normalize(p.Level, p.CurrentXP+o.XP, p.XPToNextLevel)

	p.Credits += o.Credits
	if p.Credits < 0 {
		p.Credits = 0
	}

	if len(o.Stats) > 0 && p.Stats == nil {
		p.Stats = make(map[StatKey]int, len(o.Stats))
	}
	for k, v := range o.Stats {
		next := p.Stats[k] + v
		if next < 0 {
			next = 0
		}
		p.Stats[k] = next
	}
}

// ApplyPenalty subtracts xp and re-normalizes, borrowing from lower levels
// as needed and bottoming out at level 1 with zero XP.
func (p *Player) ApplyPenalty(xp int) {
	if xp <= 0 {
		return
	}
	p.Level, p.CurrentXP, p.XPToNextLevel = Normalize(p.Level, p.CurrentXP-xp, p.XPToNextLevel)
}

// SpendCredits debits the player, refusing to go negative.
func (p *Player) SpendCredits(amount int) bool {
	if amount < 0 || p.Credits < amount {
		return false
	}
	p.Credits -= amount
	return true
}
