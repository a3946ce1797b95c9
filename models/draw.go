package models

// TeamStanding is derived from counted ballots, it is never stored.
type TeamStanding struct {
	TeamID        int `json:"team_id" db:"team_id"`
	TeamPoints    int `json:"team_points" db:"team_points"`
	SpeakerPoints int `json:"speaker_points" db:"speaker_points"`
}

type DrawTeam struct {
	TeamID   int    `json:"team_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type DrawDebate struct {
	DebateID int        `json:"debate_id"`
	Teams    []DrawTeam `json:"teams"`
}

// RoundDraw is the persisted draw of a round, debates ordered by id.
type RoundDraw struct {
	RoundID      int          `json:"round_id"`
	TournamentID int          `json:"tournament_id"`
	Debates      []DrawDebate `json:"debates"`
}
