package testutil

import (
	"database/sql"
	"strconv"
	"testing"
	"time"

	"github.com/Dosada05/tabbit/db"
)

// SetupTestDB opens a fresh in-memory SQLite database with the full schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, dialect, err := db.Connect("sqlite://:memory:", 5*time.Second)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(conn, dialect); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return conn
}

func insert(t *testing.T, conn *sql.DB, query string, args ...any) int {
	t.Helper()
	var id int
	if err := conn.QueryRow(query, args...).Scan(&id); err != nil {
		t.Fatalf("Failed to insert fixture: %v", err)
	}
	return id
}

func CreateTournament(t *testing.T, conn *sql.DB, name string) int {
	t.Helper()
	return insert(t, conn, `INSERT INTO tournament (name) VALUES ($1) RETURNING id`, name)
}

func CreateTeam(t *testing.T, conn *sql.DB, tournamentID int, name string) int {
	t.Helper()
	return insert(t, conn, `INSERT INTO team (tournament_id, name) VALUES ($1, $2) RETURNING id`, tournamentID, name)
}

func CreateSpeaker(t *testing.T, conn *sql.DB, teamID int, name string) int {
	t.Helper()
	return insert(t, conn, `INSERT INTO speaker (team_id, name) VALUES ($1, $2) RETURNING id`, teamID, name)
}

func CreateJudge(t *testing.T, conn *sql.DB, tournamentID int, name string) int {
	t.Helper()
	return insert(t, conn, `INSERT INTO judge (tournament_id, name) VALUES ($1, $2) RETURNING id`, tournamentID, name)
}

func CreateRound(t *testing.T, conn *sql.DB, tournamentID, sequence int) int {
	t.Helper()
	return insert(t, conn,
		`INSERT INTO round (tournament_id, sequence, status, name) VALUES ($1, $2, 'draft', $3) RETURNING id`,
		tournamentID, sequence, "Round "+strconv.Itoa(sequence))
}

func CreateDebate(t *testing.T, conn *sql.DB, roundID int, teamIDs ...int) int {
	t.Helper()
	id := insert(t, conn, `INSERT INTO debate (round_id) VALUES ($1) RETURNING id`, roundID)
	for pos, teamID := range teamIDs {
		if _, err := conn.Exec(`INSERT INTO debate_team (debate_id, team_id, position) VALUES ($1, $2, $3)`, id, teamID, pos); err != nil {
			t.Fatalf("Failed to insert debate team: %v", err)
		}
	}
	return id
}

func CreateBallot(t *testing.T, conn *sql.DB, debateID, judgeID, version int) int {
	t.Helper()
	return insert(t, conn,
		`INSERT INTO ballot (debate_id, judge_id, version) VALUES ($1, $2, $3) RETURNING id`,
		debateID, judgeID, version)
}

func CreateTeamScore(t *testing.T, conn *sql.DB, ballotID, teamID, score int) int {
	t.Helper()
	return insert(t, conn,
		`INSERT INTO ballot_team_score (ballot_id, team_id, score) VALUES ($1, $2, $3) RETURNING id`,
		ballotID, teamID, score)
}

func CreateSpeakerPoints(t *testing.T, conn *sql.DB, ballotID, speakerID, position, score int) int {
	t.Helper()
	return insert(t, conn,
		`INSERT INTO ballot_speaker_points (ballot_id, speaker_id, speaker_position, score) VALUES ($1, $2, $3, $4) RETURNING id`,
		ballotID, speakerID, position, score)
}

func CreateTag(t *testing.T, conn *sql.DB, tournamentID int, name string) int {
	t.Helper()
	return insert(t, conn, `INSERT INTO tag (tournament_id, name) VALUES ($1, $2) RETURNING id`, tournamentID, name)
}
