package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/tabbit/models"
)

type StandingRepository interface {
	// ListByTournament returns one standing per team of the tournament. When
	// beforeSequence is set only rounds with a lower sequence are counted.
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, beforeSequence *int) ([]models.TeamStanding, error)
}

type sqlStandingRepository struct {
	db *sql.DB
}

func NewStandingRepository(db *sql.DB) StandingRepository {
	return &sqlStandingRepository{db: db}
}

func (r *sqlStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// The counted ballot of a debate is the one with the highest version, ties
// going to the highest id.
const standingsQuery = `
	WITH counted_ballot AS (
		SELECT b.id
		FROM ballot b
		JOIN debate d ON d.id = b.debate_id
		JOIN round r ON r.id = d.round_id
		WHERE r.tournament_id = $1 %s
		AND NOT EXISTS (
			SELECT 1 FROM ballot newer
			WHERE newer.debate_id = b.debate_id
			AND (newer.version > b.version OR (newer.version = b.version AND newer.id > b.id))
		)
	),
	team_points AS (
		SELECT s.team_id, SUM(s.score) AS points
		FROM ballot_team_score s
		JOIN counted_ballot c ON c.id = s.ballot_id
		GROUP BY s.team_id
	),
	speaker_points AS (
		SELECT sp.team_id, SUM(p.score) AS points
		FROM ballot_speaker_points p
		JOIN counted_ballot c ON c.id = p.ballot_id
		JOIN speaker sp ON sp.id = p.speaker_id
		GROUP BY sp.team_id
	)
	SELECT t.id, COALESCE(tp.points, 0), COALESCE(spp.points, 0)
	FROM team t
	LEFT JOIN team_points tp ON tp.team_id = t.id
	LEFT JOIN speaker_points spp ON spp.team_id = t.id
	WHERE t.tournament_id = $1
	ORDER BY COALESCE(tp.points, 0) DESC, COALESCE(spp.points, 0) DESC, t.id`

func (r *sqlStandingRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, beforeSequence *int) ([]models.TeamStanding, error) {
	args := []interface{}{tournamentID}
	sequenceFilter := ""
	if beforeSequence != nil {
		sequenceFilter = "AND r.sequence < $2"
		args = append(args, *beforeSequence)
	}

	rows, err := r.getExecutor(exec).QueryContext(ctx, fmt.Sprintf(standingsQuery, sequenceFilter), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]models.TeamStanding, 0)
	for rows.Next() {
		var s models.TeamStanding
		if scanErr := rows.Scan(&s.TeamID, &s.TeamPoints, &s.SpeakerPoints); scanErr != nil {
			return nil, scanErr
		}
		standings = append(standings, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return standings, nil
}
