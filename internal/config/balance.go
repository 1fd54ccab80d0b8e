package config

// Balance holds the gameplay tuning numbers shared by the reset engine and
// the nexus simulator.
type Balance struct {
	// Reset penalties, percent of a quest's XP reward, ceiling-rounded.
	DailyPenaltyPct  int `yaml:"daily_penalty_pct" json:"daily_penalty_pct"`
	WeeklyPenaltyPct int `yaml:"weekly_penalty_pct" json:"weekly_penalty_pct"`
	EpicPenaltyPct   int `yaml:"epic_penalty_pct" json:"epic_penalty_pct"`

	// District vitality.
	QuestVitalityBase   int `yaml:"quest_vitality_base" json:"quest_vitality_base"`
	TouchedVitalityGain int `yaml:"touched_vitality_gain" json:"touched_vitality_gain"`
	DecayBase           int `yaml:"decay_base" json:"decay_base"`
	DecayPerNeglect     int `yaml:"decay_per_neglect" json:"decay_per_neglect"`
	DecayCap            int `yaml:"decay_cap" json:"decay_cap"`
	PristineVitality    int `yaml:"pristine_vitality" json:"pristine_vitality"`

	// Structure wear while a district is run down.
	WearVitality         int `yaml:"wear_vitality" json:"wear_vitality"`
	WearLoss             int `yaml:"wear_loss" json:"wear_loss"`
	CriticalWearVitality int `yaml:"critical_wear_vitality" json:"critical_wear_vitality"`
	CriticalWearLoss     int `yaml:"critical_wear_loss" json:"critical_wear_loss"`

	// Companion hysteresis.
	CompanionDepartBelow    int `yaml:"companion_depart_below" json:"companion_depart_below"`
	CompanionReturnQuests   int `yaml:"companion_return_quests" json:"companion_return_quests"`
	CompanionReturnVitality int `yaml:"companion_return_vitality" json:"companion_return_vitality"`

	// Structure economy.
	RepairMinCost     int `yaml:"repair_min_cost" json:"repair_min_cost"`
	RepairRatePct     int `yaml:"repair_rate_pct" json:"repair_rate_pct"`
	RepairSkipAbove   int `yaml:"repair_skip_above" json:"repair_skip_above"`
	BuildVitalityGain int `yaml:"build_vitality_gain" json:"build_vitality_gain"`

	// World event log cap, newest first.
	EventLogCap int `yaml:"event_log_cap" json:"event_log_cap"`
}

// Default returns the shipped balance.
func Default() Balance {
	return Balance{
		DailyPenaltyPct:  10,
		WeeklyPenaltyPct: 20,
		EpicPenaltyPct:   30,

		QuestVitalityBase:   5,
		TouchedVitalityGain: 2,
		DecayBase:           3,
		DecayPerNeglect:     2,
		DecayCap:            15,
		PristineVitality:    40,

		WearVitality:         50,
		WearLoss:             4,
		CriticalWearVitality: 25,
		CriticalWearLoss:     8,

		CompanionDepartBelow:    10,
		CompanionReturnQuests:   3,
		CompanionReturnVitality: 15,

		RepairMinCost:     10,
		RepairRatePct:     50,
		RepairSkipAbove:   95,
		BuildVitalityGain: 5,

		EventLogCap: 50,
	}
}

// Gentle returns a forgiving preset for players easing in.
func Gentle() Balance {
	cfg := Default()
	cfg.DailyPenaltyPct = 5
	cfg.WeeklyPenaltyPct = 10
	cfg.EpicPenaltyPct = 15
	cfg.DecayCap = 10
	cfg.CompanionDepartBelow = 5
	return cfg
}

// Brutal returns a punishing preset.
func Brutal() Balance {
	cfg := Default()
	cfg.DailyPenaltyPct = 15
	cfg.WeeklyPenaltyPct = 30
	cfg.EpicPenaltyPct = 45
	cfg.DecayBase = 5
	cfg.DecayCap = 20
	cfg.PristineVitality = 50
	return cfg
}
