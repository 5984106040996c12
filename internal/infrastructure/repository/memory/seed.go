package memory

import "github.com/riskibarqy/ortan-league/internal/domain/leaderboard"

const (
	DivisionStarter = "Starter"
	DivisionPro     = "Pro"
)

// SeedLeaderboards returns a fresh league with every team on zero.
func SeedLeaderboards() leaderboard.Dataset {
	return leaderboard.Dataset{
		Divisions: map[string]leaderboard.Table{
			DivisionStarter: {
				seedTeam("T1", "Ortan Lions"),
				seedTeam("T2", "Ortan Owls"),
				seedTeam("T3", "Harbor Hawks"),
				seedTeam("T4", "Valley Wolves"),
			},
			DivisionPro: {
				seedTeam("P1", "Northside Rovers"),
				seedTeam("P2", "Eastgate United"),
				seedTeam("P3", "Riverside Athletic"),
			},
		},
	}
}

func seedTeam(id, name string) leaderboard.Standing {
	return leaderboard.Standing{
		TeamID: id,
		Extra:  map[string]any{"name": name},
	}
}
