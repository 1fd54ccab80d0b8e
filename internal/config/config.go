// Package config carries the application settings and the gameplay balance
// numbers. Settings come from the environment, balance from an optional YAML
// file with preset and per-field overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the process-level configuration, populated from the environment.
type Config struct {
	Addr        string `env:"AXIOM_ADDR" envDefault:":8420"`
	DataPath    string `env:"AXIOM_DB" envDefault:"axiom.db"`
	BalanceFile string `env:"AXIOM_BALANCE"`
	Preset      string `env:"AXIOM_PRESET"`
	Demo        bool   `env:"AXIOM_DEMO"`
}

// balanceFile is the on-disk shape: a preset name plus sparse overrides.
type balanceFile struct {
	Preset    string   `yaml:"preset"`
	Overrides *Balance `yaml:"overrides"`
}

// LoadBalance resolves the balance for a preset name and optional YAML file.
// File overrides win over the preset; a zero field in the file is ignored so
// partial files stay partial.
func LoadBalance(preset, path string) (Balance, error) {
	cfg := presetBalance(preset)

	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read balance file: %w", err)
	}

	var bf balanceFile
	if err := yaml.Unmarshal(raw, &bf); err != nil {
		return cfg, fmt.Errorf("parse balance file: %w", err)
	}

	if bf.Preset != "" {
		cfg = presetBalance(bf.Preset)
	}
	if bf.Overrides != nil {
		mergeBalance(&cfg, *bf.Overrides)
	}
	return cfg, nil
}

func presetBalance(name string) Balance {
	switch name {
	case "gentle":
		return Gentle()
	case "brutal":
		return Brutal()
	default:
		return Default()
	}
}

// mergeBalance copies every non-zero field from src onto dst.
func mergeBalance(dst *Balance, src Balance) {
	set := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	set(&dst.DailyPenaltyPct, src.DailyPenaltyPct)
	set(&dst.WeeklyPenaltyPct, src.WeeklyPenaltyPct)
	set(&dst.EpicPenaltyPct, src.EpicPenaltyPct)
	set(&dst.QuestVitalityBase, src.QuestVitalityBase)
	set(&dst.TouchedVitalityGain, src.TouchedVitalityGain)
	set(&dst.DecayBase, src.DecayBase)
	set(&dst.DecayPerNeglect, src.DecayPerNeglect)
	set(&dst.DecayCap, src.DecayCap)
	set(&dst.PristineVitality, src.PristineVitality)
	set(&dst.WearVitality, src.WearVitality)
	set(&dst.WearLoss, src.WearLoss)
	set(&dst.CriticalWearVitality, src.CriticalWearVitality)
	set(&dst.CriticalWearLoss, src.CriticalWearLoss)
	set(&dst.CompanionDepartBelow, src.CompanionDepartBelow)
	set(&dst.CompanionReturnQuests, src.CompanionReturnQuests)
	set(&dst.CompanionReturnVitality, src.CompanionReturnVitality)
	set(&dst.RepairMinCost, src.RepairMinCost)
	set(&dst.RepairRatePct, src.RepairRatePct)
	set(&dst.RepairSkipAbove, src.RepairSkipAbove)
	set(&dst.BuildVitalityGain, src.BuildVitalityGain)
	set(&dst.EventLogCap, src.EventLogCap)
}
