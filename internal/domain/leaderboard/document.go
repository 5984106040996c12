package leaderboard

import (
	"fmt"
	"io"

	sonic "github.com/bytedance/sonic"
)

const documentKey = "leaderboards"

// Keys of a standing entry in the persisted document.
const (
	keyTeamID = "teamId"
	keyPlayed = "played"
	keyWins   = "w"
	keyDraws  = "d"
	keyLosses = "l"
	keyPoints = "points"
)

var standingKeys = []string{keyTeamID, keyPlayed, keyWins, keyDraws, keyLosses, keyPoints}

// documentJSON sorts map keys so the persisted document is stable between
// writes, and keeps numbers as json.Number so untouched fields survive a
// round trip without float conversion.
var documentJSON = sonic.Config{
	SortMapKeys: true,
	UseNumber:   true,
	EscapeHTML:  false,
}.Froze()

type standingFields struct {
	TeamID string `json:"teamId"`
	Played int    `json:"played"`
	Wins   int    `json:"w"`
	Draws  int    `json:"d"`
	Losses int    `json:"l"`
	Points int    `json:"points"`
}

// MarshalDocument encodes the dataset as the persisted document, indented
// with two spaces.
func MarshalDocument(dataset Dataset) ([]byte, error) {
	return documentJSON.MarshalIndent(dataset, "", "  ")
}

// EncodeDocument writes the dataset to w in the same layout as
// MarshalDocument, followed by a newline.
func EncodeDocument(w io.Writer, dataset Dataset) error {
	enc := documentJSON.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dataset)
}

// UnmarshalDocument decodes a persisted document. A document without a
// leaderboards object is rejected.
func UnmarshalDocument(data []byte) (Dataset, error) {
	var dataset Dataset
	if err := documentJSON.Unmarshal(data, &dataset); err != nil {
		return Dataset{}, err
	}
	if dataset.Divisions == nil {
		return Dataset{}, fmt.Errorf("document has no %q object", documentKey)
	}

	return dataset, nil
}

func (d Dataset) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Extra)+1)
	for key, value := range d.Extra {
		out[key] = value
	}
	divisions := make(map[string]Table, len(d.Divisions))
	for name, table := range d.Divisions {
		if table == nil {
			table = Table{}
		}
		divisions[name] = table
	}
	out[documentKey] = divisions

	return documentJSON.Marshal(out)
}

func (d *Dataset) UnmarshalJSON(data []byte) error {
	var top map[string]any
	if err := documentJSON.Unmarshal(data, &top); err != nil {
		return err
	}
	if top == nil {
		return fmt.Errorf("document is null")
	}

	var divisions struct {
		Leaderboards map[string]Table `json:"leaderboards"`
	}
	if err := documentJSON.Unmarshal(data, &divisions); err != nil {
		return fmt.Errorf("decode %s: %w", documentKey, err)
	}

	delete(top, documentKey)
	if len(top) == 0 {
		top = nil
	}

	d.Divisions = divisions.Leaderboards
	d.Extra = top
	return nil
}

func (s Standing) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+len(standingKeys))
	for key, value := range s.Extra {
		out[key] = value
	}
	out[keyTeamID] = s.TeamID
	out[keyPlayed] = s.Played
	out[keyWins] = s.Wins
	out[keyDraws] = s.Draws
	out[keyLosses] = s.Losses
	out[keyPoints] = s.Points

	return documentJSON.Marshal(out)
}

func (s *Standing) UnmarshalJSON(data []byte) error {
	var fields standingFields
	if err := documentJSON.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields.Played < 0 || fields.Wins < 0 || fields.Draws < 0 || fields.Losses < 0 || fields.Points < 0 {
		return fmt.Errorf("team %q has a negative counter", fields.TeamID)
	}

	var extra map[string]any
	if err := documentJSON.Unmarshal(data, &extra); err != nil {
		return err
	}
	for _, key := range standingKeys {
		delete(extra, key)
	}
	if len(extra) == 0 {
		extra = nil
	}

	*s = Standing{
		TeamID: fields.TeamID,
		Played: fields.Played,
		Wins:   fields.Wins,
		Draws:  fields.Draws,
		Losses: fields.Losses,
		Points: fields.Points,
		Extra:  extra,
	}
	return nil
}
