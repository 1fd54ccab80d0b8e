package nexus

import "axiom/internal/progress"

// NewWorld returns the starting settlement: six districts bound to the six
// stats, three tiered structures each, one companion per district, and the
// expedition and milestone rosters. Only the two level-1 districts begin
// unlocked; their companions start present.
func NewWorld() WorldState {
	w := WorldState{
		Era: 1,
		Districts: []DistrictState{
			district("d_ironworks", "the Ironworks", progress.StatPhysical, 1, 60,
				structure("s_forge", "Forge", 1, 1, 40),
				structure("s_foundry", "Foundry", 2, 4, 90),
				structure("s_colossus", "Colossus Hall", 3, 10, 200),
			),
			district("d_athenaeum", "the Athenaeum", progress.StatCognitive, 1, 60,
				structure("s_scriptorium", "Scriptorium", 1, 1, 40),
				structure("s_observatory", "Observatory", 2, 4, 90),
				structure("s_great_library", "Great Library", 3, 10, 200),
			),
			district("d_sanctum", "the Sanctum", progress.StatMental, 3, 50,
				structure("s_garden", "Still Garden", 1, 3, 50),
				structure("s_springs", "Quiet Springs", 2, 7, 110),
				structure("s_spire", "Serene Spire", 3, 14, 240),
			),
			district("d_exchange", "the Exchange", progress.StatCareer, 5, 50,
				structure("s_guildhall", "Guildhall", 1, 5, 60),
				structure("s_embassy", "Embassy", 2, 9, 130),
				structure("s_summit", "Summit Tower", 3, 18, 280),
			),
			district("d_treasury", "the Treasury", progress.StatFinancial, 8, 50,
				structure("s_vault", "Vault", 1, 8, 70),
				structure("s_mint", "Mint", 2, 12, 150),
				structure("s_reserve", "Grand Reserve", 3, 22, 320),
			),
			district("d_atelier", "the Atelier", progress.StatCreative, 12, 50,
				structure("s_studio", "Studio", 1, 12, 80),
				structure("s_gallery", "Gallery", 2, 16, 170),
				structure("s_opera", "Opera House", 3, 26, 360),
			),
		},
		Companions: []CompanionState{
			companion("c_brann", "Brann the Smith", "d_ironworks"),
			companion("c_sage", "Sage Elowen", "d_athenaeum"),
			companion("c_mirei", "Mirei the Keeper", "d_sanctum"),
			companion("c_orvus", "Broker Orvus", "d_exchange"),
			companion("c_denna", "Warden Denna", "d_treasury"),
			companion("c_liro", "Liro the Painter", "d_atelier"),
		},
		Expeditions: []ExpeditionState{
			{ID: "e_foothills", Name: "the Ashen Foothills", UnlockLevel: 5, Stat: progress.StatPhysical, StatThreshold: 10, Cost: 50},
			{ID: "e_ruins", Name: "the Sunken Archive", UnlockLevel: 10, Stat: progress.StatCognitive, StatThreshold: 20, Cost: 120},
			{ID: "e_mirror_lake", Name: "Mirror Lake", UnlockLevel: 15, Stat: progress.StatMental, StatThreshold: 30, Cost: 200},
			{ID: "e_far_coast", Name: "the Far Coast", UnlockLevel: 25, Stat: progress.StatCareer, StatThreshold: 40, Cost: 400},
		},
		Milestones: []MilestoneState{
			{ID: MilestoneFirstFoundation, Name: "First Foundation"},
			{ID: MilestoneMasterBuilder, Name: "Master Builder"},
			{ID: MilestoneFullMap, Name: "The Full Map"},
			{ID: MilestoneRestorer, Name: "Restorer"},
			{ID: MilestonePristineWeek, Name: "A Pristine Week"},
			{ID: MilestoneSecondEra, Name: "A Second Era"},
			{ID: MilestoneGoldenAge, Name: "Golden Age"},
			{ID: MilestonePathfinder, Name: "Pathfinder"},
			{ID: MilestoneVoyager, Name: "Voyager"},
		},
	}

	for i := range w.Districts {
		d := &w.Districts[i]
		if d.UnlockLevel <= 1 {
			d.IsUnlocked = true
		}
	}
	for i := range w.Companions {
		c := &w.Companions[i]
		if d := w.district(c.DistrictID); d != nil && d.IsUnlocked {
			c.IsPresent = true
			c.Mood = moodFor(d.Vitality, c.Loyalty)
		}
	}
	return w
}

func district(id, name string, stat progress.StatKey, unlockLevel, vitality int, structures ...StructureState) DistrictState {
	return DistrictState{
		ID:          id,
		Name:        name,
		Stat:        stat,
		UnlockLevel: unlockLevel,
		Vitality:    vitality,
		Structures:  structures,
	}
}

func structure(id, name string, tier, unlockLevel, cost int) StructureState {
	return StructureState{ID: id, Name: name, Tier: tier, UnlockLevel: unlockLevel, BuildCost: cost}
}

func companion(id, name, districtID string) CompanionState {
	return CompanionState{ID: id, Name: name, DistrictID: districtID, Loyalty: 50, Mood: MoodContent}
}
