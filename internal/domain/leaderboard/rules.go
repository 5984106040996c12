package leaderboard

import (
	"fmt"
	"sort"
	"strings"
)

const (
	PointsForWin  = 3
	PointsForDraw = 1
)

// Validate checks that every field of the result is present. Zero goals are
// valid; a nil goal pointer is not.
func (r MatchResult) Validate() error {
	if strings.TrimSpace(r.Division) == "" ||
		strings.TrimSpace(r.HomeTeamID) == "" ||
		strings.TrimSpace(r.AwayTeamID) == "" ||
		r.HomeGoals == nil ||
		r.AwayGoals == nil {
		return ErrMissingFields
	}
	if *r.HomeGoals < 0 || *r.AwayGoals < 0 {
		return fmt.Errorf("%w: home=%d away=%d", ErrInvalidGoals, *r.HomeGoals, *r.AwayGoals)
	}

	return nil
}

// ApplyResult records the result against the named division of dataset, then
// re-ranks that division. The dataset is mutated in place and the updated
// table is returned. Nothing is mutated when an error is returned.
//
// A result whose home and away ids are equal is accepted and both sides of
// the outcome land on the same entry.
func ApplyResult(dataset Dataset, result MatchResult) (Table, error) {
	if err := result.Validate(); err != nil {
		return nil, err
	}

	table, ok := dataset.Division(result.Division)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDivision, result.Division)
	}

	home := table.IndexOf(result.HomeTeamID)
	away := table.IndexOf(result.AwayTeamID)
	if home < 0 || away < 0 {
		return nil, fmt.Errorf("%w: division=%s home=%s away=%s",
			ErrTeamNotFound, result.Division, result.HomeTeamID, result.AwayTeamID)
	}

	table[home].Played++
	table[away].Played++

	homeGoals, awayGoals := *result.HomeGoals, *result.AwayGoals
	switch {
	case homeGoals > awayGoals:
		table[home].Wins++
		table[home].Points += PointsForWin
		table[away].Losses++
	case homeGoals < awayGoals:
		table[away].Wins++
		table[away].Points += PointsForWin
		table[home].Losses++
	default:
		table[home].Draws++
		table[home].Points += PointsForDraw
		table[away].Draws++
		table[away].Points += PointsForDraw
	}

	SortTable(table)
	dataset.Divisions[result.Division] = table

	return table, nil
}

// SortTable orders the table by points, then wins, both descending. Entries
// equal on both keys keep their previous relative order.
func SortTable(table Table) {
	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		return table[i].Wins > table[j].Wins
	})
}
