package models

type Debate struct {
	ID      int `json:"id" db:"id"`
	RoundID int `json:"round_id" db:"round_id"`
}

// DebateTeam is one side of a drawn debate. Position is the team's index in
// its matchup.
type DebateTeam struct {
	DebateID int `json:"debate_id" db:"debate_id"`
	TeamID   int `json:"team_id" db:"team_id"`
	Position int `json:"position" db:"position"`
}

type Ballot struct {
	ID       int `json:"id" db:"id"`
	DebateID int `json:"debate_id" db:"debate_id"`
	JudgeID  int `json:"judge_id" db:"judge_id"`
	Version  int `json:"version" db:"version"`
}

type BallotSpeakerPoints struct {
	ID              int `json:"id" db:"id"`
	BallotID        int `json:"ballot_id" db:"ballot_id"`
	SpeakerID       int `json:"speaker_id" db:"speaker_id"`
	SpeakerPosition int `json:"speaker_position" db:"speaker_position"`
	Score           int `json:"score" db:"score"`
}

type BallotTeamScore struct {
	ID       int `json:"id" db:"id"`
	BallotID int `json:"ballot_id" db:"ballot_id"`
	TeamID   int `json:"team_id" db:"team_id"`
	Score    int `json:"score" db:"score"`
}
