package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/tabbit/models"
)

var ErrBallotNotFound = errors.New("ballot not found")

type ListBallotsFilter struct {
	DebateID *int
	JudgeID  *int
	Page
}

type BallotRepository interface {
	Create(ctx context.Context, ballot *models.Ballot) error
	GetByID(ctx context.Context, id int) (*models.Ballot, error)
	List(ctx context.Context, filter ListBallotsFilter) ([]models.Ballot, error)
	Update(ctx context.Context, ballot *models.Ballot) error
	Delete(ctx context.Context, id int) error
}

type sqlBallotRepository struct {
	db *sql.DB
}

func NewBallotRepository(db *sql.DB) BallotRepository {
	return &sqlBallotRepository{db: db}
}

func (r *sqlBallotRepository) Create(ctx context.Context, b *models.Ballot) error {
	query := `INSERT INTO ballot (debate_id, judge_id, version) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, b.DebateID, b.JudgeID, b.Version).Scan(&b.ID)
	return translateError(err)
}

func (r *sqlBallotRepository) GetByID(ctx context.Context, id int) (*models.Ballot, error) {
	b := &models.Ballot{}
	err := r.db.QueryRowContext(ctx, `SELECT id, debate_id, judge_id, version FROM ballot WHERE id = $1`, id).
		Scan(&b.ID, &b.DebateID, &b.JudgeID, &b.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBallotNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *sqlBallotRepository) List(ctx context.Context, filter ListBallotsFilter) ([]models.Ballot, error) {
	q := newListQuery(`SELECT id, debate_id, judge_id, version FROM ballot`)
	q.eq("debate_id", filter.DebateID)
	q.eq("judge_id", filter.JudgeID)
	query, args := q.build("id", filter.Page)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ballots := make([]models.Ballot, 0)
	for rows.Next() {
		var b models.Ballot
		if scanErr := rows.Scan(&b.ID, &b.DebateID, &b.JudgeID, &b.Version); scanErr != nil {
			return nil, scanErr
		}
		ballots = append(ballots, b)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ballots, nil
}

func (r *sqlBallotRepository) Update(ctx context.Context, b *models.Ballot) error {
	result, err := r.db.ExecContext(ctx, `UPDATE ballot SET version = $1 WHERE id = $2`, b.Version, b.ID)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrBallotNotFound)
}

func (r *sqlBallotRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ballot WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrBallotNotFound)
}
