package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/tabbit/models"
)

var (
	ErrRoundNotFound  = errors.New("round not found")
	ErrMotionNotFound = errors.New("motion not found")
)

type ListRoundsFilter struct {
	Name         *string
	TournamentID *int
	Status       *models.RoundStatus
	Page
}

type RoundRepository interface {
	Create(ctx context.Context, round *models.Round) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Round, error)
	List(ctx context.Context, filter ListRoundsFilter) ([]models.Round, error)
	Update(ctx context.Context, round *models.Round) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.RoundStatus) error
	// Lock takes the row write lock for the rest of exec's transaction.
	Lock(ctx context.Context, exec SQLExecutor, id int) error
	Delete(ctx context.Context, id int) error
}

type sqlRoundRepository struct {
	db *sql.DB
}

func NewRoundRepository(db *sql.DB) RoundRepository {
	return &sqlRoundRepository{db: db}
}

func (r *sqlRoundRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlRoundRepository) Create(ctx context.Context, round *models.Round) error {
	query := `
		INSERT INTO round (tournament_id, sequence, status, name, abbreviation)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		round.TournamentID, round.Sequence, string(round.Status), round.Name, round.Abbreviation,
	).Scan(&round.ID)
	return translateError(err)
}

func (r *sqlRoundRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Round, error) {
	query := `SELECT id, tournament_id, sequence, status, name, abbreviation FROM round WHERE id = $1`

	round := &models.Round{}
	err := r.getExecutor(exec).QueryRowContext(ctx, query, id).Scan(
		&round.ID, &round.TournamentID, &round.Sequence, &round.Status, &round.Name, &round.Abbreviation,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	return round, nil
}

func (r *sqlRoundRepository) List(ctx context.Context, filter ListRoundsFilter) ([]models.Round, error) {
	q := newListQuery(`SELECT id, tournament_id, sequence, status, name, abbreviation FROM round`)
	q.contains("name", filter.Name)
	q.eq("tournament_id", filter.TournamentID)
	if filter.Status != nil {
		q.where("status = %s", string(*filter.Status))
	}
	query, args := q.build("tournament_id, sequence", filter.Page)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := make([]models.Round, 0)
	for rows.Next() {
		var round models.Round
		if scanErr := rows.Scan(
			&round.ID, &round.TournamentID, &round.Sequence, &round.Status, &round.Name, &round.Abbreviation,
		); scanErr != nil {
			return nil, scanErr
		}
		rounds = append(rounds, round)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return rounds, nil
}

func (r *sqlRoundRepository) Update(ctx context.Context, round *models.Round) error {
	query := `
		UPDATE round SET
			sequence = $1,
			status = $2,
			name = $3,
			abbreviation = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query,
		round.Sequence, string(round.Status), round.Name, round.Abbreviation, round.ID,
	)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}

func (r *sqlRoundRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.RoundStatus) error {
	result, err := r.getExecutor(exec).ExecContext(ctx, `UPDATE round SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}

// No-op UPDATE: a row lock in Postgres, the database write lock in SQLite.
func (r *sqlRoundRepository) Lock(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := r.getExecutor(exec).ExecContext(ctx, `UPDATE round SET status = status WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}

func (r *sqlRoundRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM round WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrRoundNotFound)
}
