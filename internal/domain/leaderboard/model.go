package leaderboard

// Dataset is the complete league document: every division and its table.
type Dataset struct {
	Divisions map[string]Table
	// Extra keeps top-level document keys other than the divisions so a
	// load/save cycle writes them back untouched.
	Extra map[string]any
}

// Table is one division's standings. Its order is derived from the ranking
// rule and is recomputed after every mutation.
type Table []Standing

// Standing is one team's cumulative record within a division.
type Standing struct {
	TeamID string
	Played int
	Wins   int
	Draws  int
	Losses int
	Points int
	// Extra keeps document fields the standings rules do not interpret,
	// such as a display name.
	Extra map[string]any
}

// MatchResult describes the outcome of one fixture. Goal counts are pointers
// so an absent value can be told apart from zero.
type MatchResult struct {
	Division   string
	HomeTeamID string
	AwayTeamID string
	HomeGoals  *int
	AwayGoals  *int
}

// Division returns the named table and whether it exists.
func (d Dataset) Division(name string) (Table, bool) {
	table, ok := d.Divisions[name]
	return table, ok
}

// IndexOf returns the position of the team in the table, or -1.
func (t Table) IndexOf(teamID string) int {
	for i := range t {
		if t[i].TeamID == teamID {
			return i
		}
	}
	return -1
}
