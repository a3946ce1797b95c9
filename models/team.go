package models

type Team struct {
	ID           int     `json:"id" db:"id"`
	TournamentID int     `json:"tournament_id" db:"tournament_id"`
	Name         string  `json:"name" db:"name"`
	Abbreviation *string `json:"abbreviation" db:"abbreviation"`

	Speakers []Speaker `json:"speakers,omitempty" db:"-"`
}

type Speaker struct {
	ID     int    `json:"id" db:"id"`
	TeamID int    `json:"team_id" db:"team_id"`
	Name   string `json:"name" db:"name"`
}
