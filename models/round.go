package models

// RoundStatus соответствует CHECK-ограничению на колонке round.status.
type RoundStatus string

const (
	RoundStatusDraft      RoundStatus = "draft"
	RoundStatusReady      RoundStatus = "ready"
	RoundStatusInProgress RoundStatus = "in_progress"
	RoundStatusCompleted  RoundStatus = "completed"
)

func (s RoundStatus) Valid() bool {
	switch s {
	case RoundStatusDraft, RoundStatusReady, RoundStatusInProgress, RoundStatusCompleted:
		return true
	}
	return false
}

type Round struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	Sequence     int         `json:"sequence" db:"sequence"`
	Status       RoundStatus `json:"status" db:"status"`
	Name         string      `json:"name" db:"name"`
	Abbreviation *string     `json:"abbreviation" db:"abbreviation"`
}

type Motion struct {
	ID        int     `json:"id" db:"id"`
	RoundID   int     `json:"round_id" db:"round_id"`
	Text      string  `json:"text" db:"text"`
	Infoslide *string `json:"infoslide" db:"infoslide"`
}
