package postgres

import "time"

type leagueDocumentTableModel struct {
	Name      string    `db:"name"`
	Payload   []byte    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}
