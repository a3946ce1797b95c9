package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/tabbit/models"
)

var (
	ErrBallotSpeakerPointsNotFound = errors.New("ballot speaker points not found")
	ErrBallotTeamScoreNotFound     = errors.New("ballot team score not found")
)

type ListBallotSpeakerPointsFilter struct {
	BallotID  *int
	SpeakerID *int
	Page
}

type ListBallotTeamScoresFilter struct {
	BallotID *int
	TeamID   *int
	Page
}

type BallotSpeakerPointsRepository interface {
	Create(ctx context.Context, points *models.BallotSpeakerPoints) error
	GetByID(ctx context.Context, id int) (*models.BallotSpeakerPoints, error)
	List(ctx context.Context, filter ListBallotSpeakerPointsFilter) ([]models.BallotSpeakerPoints, error)
	Delete(ctx context.Context, id int) error
}

type BallotTeamScoreRepository interface {
	Create(ctx context.Context, score *models.BallotTeamScore) error
	GetByID(ctx context.Context, id int) (*models.BallotTeamScore, error)
	List(ctx context.Context, filter ListBallotTeamScoresFilter) ([]models.BallotTeamScore, error)
	Delete(ctx context.Context, id int) error
}

type sqlBallotSpeakerPointsRepository struct {
	db *sql.DB
}

func NewBallotSpeakerPointsRepository(db *sql.DB) BallotSpeakerPointsRepository {
	return &sqlBallotSpeakerPointsRepository{db: db}
}

func (r *sqlBallotSpeakerPointsRepository) Create(ctx context.Context, p *models.BallotSpeakerPoints) error {
	query := `
		INSERT INTO ballot_speaker_points (ballot_id, speaker_id, speaker_position, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, p.BallotID, p.SpeakerID, p.SpeakerPosition, p.Score).Scan(&p.ID)
	return translateError(err)
}

func (r *sqlBallotSpeakerPointsRepository) GetByID(ctx context.Context, id int) (*models.BallotSpeakerPoints, error) {
	query := `SELECT id, ballot_id, speaker_id, speaker_position, score FROM ballot_speaker_points WHERE id = $1`

	p := &models.BallotSpeakerPoints{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.BallotID, &p.SpeakerID, &p.SpeakerPosition, &p.Score)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBallotSpeakerPointsNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *sqlBallotSpeakerPointsRepository) List(ctx context.Context, filter ListBallotSpeakerPointsFilter) ([]models.BallotSpeakerPoints, error) {
	q := newListQuery(`SELECT id, ballot_id, speaker_id, speaker_position, score FROM ballot_speaker_points`)
	q.eq("ballot_id", filter.BallotID)
	q.eq("speaker_id", filter.SpeakerID)
	query, args := q.build("id", filter.Page)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]models.BallotSpeakerPoints, 0)
	for rows.Next() {
		var p models.BallotSpeakerPoints
		if scanErr := rows.Scan(&p.ID, &p.BallotID, &p.SpeakerID, &p.SpeakerPosition, &p.Score); scanErr != nil {
			return nil, scanErr
		}
		points = append(points, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

func (r *sqlBallotSpeakerPointsRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ballot_speaker_points WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrBallotSpeakerPointsNotFound)
}

type sqlBallotTeamScoreRepository struct {
	db *sql.DB
}

func NewBallotTeamScoreRepository(db *sql.DB) BallotTeamScoreRepository {
	return &sqlBallotTeamScoreRepository{db: db}
}

func (r *sqlBallotTeamScoreRepository) Create(ctx context.Context, s *models.BallotTeamScore) error {
	query := `INSERT INTO ballot_team_score (ballot_id, team_id, score) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, s.BallotID, s.TeamID, s.Score).Scan(&s.ID)
	return translateError(err)
}

func (r *sqlBallotTeamScoreRepository) GetByID(ctx context.Context, id int) (*models.BallotTeamScore, error) {
	s := &models.BallotTeamScore{}
	err := r.db.QueryRowContext(ctx, `SELECT id, ballot_id, team_id, score FROM ballot_team_score WHERE id = $1`, id).
		Scan(&s.ID, &s.BallotID, &s.TeamID, &s.Score)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBallotTeamScoreNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sqlBallotTeamScoreRepository) List(ctx context.Context, filter ListBallotTeamScoresFilter) ([]models.BallotTeamScore, error) {
	q := newListQuery(`SELECT id, ballot_id, team_id, score FROM ballot_team_score`)
	q.eq("ballot_id", filter.BallotID)
	q.eq("team_id", filter.TeamID)
	query, args := q.build("id", filter.Page)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]models.BallotTeamScore, 0)
	for rows.Next() {
		var s models.BallotTeamScore
		if scanErr := rows.Scan(&s.ID, &s.BallotID, &s.TeamID, &s.Score); scanErr != nil {
			return nil, scanErr
		}
		scores = append(scores, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *sqlBallotTeamScoreRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ballot_team_score WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrBallotTeamScoreNotFound)
}
