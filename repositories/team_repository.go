package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/tabbit/models"
)

var ErrTeamNotFound = errors.New("team not found")

type ListTeamsFilter struct {
	Name         *string
	TournamentID *int
	Page
}

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context, filter ListTeamsFilter) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id int) error
}

type sqlTeamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) TeamRepository {
	return &sqlTeamRepository{db: db}
}

func (r *sqlTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `INSERT INTO team (tournament_id, name, abbreviation) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, team.TournamentID, team.Name, team.Abbreviation).Scan(&team.ID)
	return translateError(err)
}

func (r *sqlTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, tournament_id, name, abbreviation FROM team WHERE id = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&team.ID, &team.TournamentID, &team.Name, &team.Abbreviation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *sqlTeamRepository) List(ctx context.Context, filter ListTeamsFilter) ([]models.Team, error) {
	q := newListQuery(`SELECT id, tournament_id, name, abbreviation FROM team`)
	q.contains("name", filter.Name)
	q.eq("tournament_id", filter.TournamentID)
	query, args := q.build("id", filter.Page)

	return r.query(ctx, r.db, query, args...)
}

func (r *sqlTeamRepository) query(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]models.Team, error) {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		if scanErr := rows.Scan(&team.ID, &team.TournamentID, &team.Name, &team.Abbreviation); scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, team)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *sqlTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `UPDATE team SET name = $1, abbreviation = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, team.Name, team.Abbreviation, team.ID)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *sqlTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM team WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
