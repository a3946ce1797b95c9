package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/tabbit/models"
)

var ErrDebateNotFound = errors.New("debate not found")

type ListDebatesFilter struct {
	RoundID *int
	Page
}

type DebateRepository interface {
	Create(ctx context.Context, exec SQLExecutor, debate *models.Debate) error
	GetByID(ctx context.Context, id int) (*models.Debate, error)
	List(ctx context.Context, filter ListDebatesFilter) ([]models.Debate, error)
	Update(ctx context.Context, debate *models.Debate) error
	Delete(ctx context.Context, id int) error

	AddTeam(ctx context.Context, exec SQLExecutor, debateTeam models.DebateTeam) error
	CountByRound(ctx context.Context, exec SQLExecutor, roundID int) (int, error)
	ListDrawByRound(ctx context.Context, roundID int) ([]models.DrawDebate, error)
}

type sqlDebateRepository struct {
	db *sql.DB
}

func NewDebateRepository(db *sql.DB) DebateRepository {
	return &sqlDebateRepository{db: db}
}

func (r *sqlDebateRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlDebateRepository) Create(ctx context.Context, exec SQLExecutor, d *models.Debate) error {
	err := r.getExecutor(exec).QueryRowContext(ctx, `INSERT INTO debate (round_id) VALUES ($1) RETURNING id`, d.RoundID).
		Scan(&d.ID)
	return translateError(err)
}

func (r *sqlDebateRepository) GetByID(ctx context.Context, id int) (*models.Debate, error) {
	d := &models.Debate{}
	err := r.db.QueryRowContext(ctx, `SELECT id, round_id FROM debate WHERE id = $1`, id).Scan(&d.ID, &d.RoundID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDebateNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *sqlDebateRepository) List(ctx context.Context, filter ListDebatesFilter) ([]models.Debate, error) {
	q := newListQuery(`SELECT id, round_id FROM debate`)
	q.eq("round_id", filter.RoundID)
	query, args := q.build("id", filter.Page)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	debates := make([]models.Debate, 0)
	for rows.Next() {
		var d models.Debate
		if scanErr := rows.Scan(&d.ID, &d.RoundID); scanErr != nil {
			return nil, scanErr
		}
		debates = append(debates, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return debates, nil
}

func (r *sqlDebateRepository) Update(ctx context.Context, d *models.Debate) error {
	result, err := r.db.ExecContext(ctx, `UPDATE debate SET round_id = $1 WHERE id = $2`, d.RoundID, d.ID)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrDebateNotFound)
}

func (r *sqlDebateRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM debate WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrDebateNotFound)
}

func (r *sqlDebateRepository) AddTeam(ctx context.Context, exec SQLExecutor, dt models.DebateTeam) error {
	query := `INSERT INTO debate_team (debate_id, team_id, position) VALUES ($1, $2, $3)`
	_, err := r.getExecutor(exec).ExecContext(ctx, query, dt.DebateID, dt.TeamID, dt.Position)
	return translateError(err)
}

func (r *sqlDebateRepository) CountByRound(ctx context.Context, exec SQLExecutor, roundID int) (int, error) {
	var count int
	err := r.getExecutor(exec).QueryRowContext(ctx, `SELECT COUNT(*) FROM debate WHERE round_id = $1`, roundID).
		Scan(&count)
	return count, err
}

// ListDrawByRound returns the round's debates ordered by id, each with its
// teams ordered by position. Debates without teams are included.
func (r *sqlDebateRepository) ListDrawByRound(ctx context.Context, roundID int) ([]models.DrawDebate, error) {
	query := `
		SELECT d.id, dt.team_id, t.name, dt.position
		FROM debate d
		LEFT JOIN debate_team dt ON dt.debate_id = d.id
		LEFT JOIN team t ON t.id = dt.team_id
		WHERE d.round_id = $1
		ORDER BY d.id, dt.position`

	rows, err := r.db.QueryContext(ctx, query, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	debates := make([]models.DrawDebate, 0)
	for rows.Next() {
		var (
			debateID int
			teamID   sql.NullInt64
			name     sql.NullString
			position sql.NullInt64
		)
		if scanErr := rows.Scan(&debateID, &teamID, &name, &position); scanErr != nil {
			return nil, scanErr
		}

		n := len(debates)
		if n == 0 || debates[n-1].DebateID != debateID {
			debates = append(debates, models.DrawDebate{DebateID: debateID, Teams: make([]models.DrawTeam, 0, 2)})
			n++
		}
		if teamID.Valid {
			debates[n-1].Teams = append(debates[n-1].Teams, models.DrawTeam{
				TeamID:   int(teamID.Int64),
				Name:     name.String,
				Position: int(position.Int64),
			})
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return debates, nil
}
