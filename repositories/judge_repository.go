package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/tabbit/models"
)

var ErrJudgeNotFound = errors.New("judge not found")

type ListJudgesFilter struct {
	Name         *string
	TournamentID *int
	Page
}

type JudgeRepository interface {
	Create(ctx context.Context, judge *models.Judge) error
	GetByID(ctx context.Context, id int) (*models.Judge, error)
	List(ctx context.Context, filter ListJudgesFilter) ([]models.Judge, error)
	Update(ctx context.Context, judge *models.Judge) error
	Delete(ctx context.Context, id int) error
}

type sqlJudgeRepository struct {
	db *sql.DB
}

func NewJudgeRepository(db *sql.DB) JudgeRepository {
	return &sqlJudgeRepository{db: db}
}

func (r *sqlJudgeRepository) Create(ctx context.Context, j *models.Judge) error {
	query := `INSERT INTO judge (tournament_id, name) VALUES ($1, $2) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, j.TournamentID, j.Name).Scan(&j.ID)
	return translateError(err)
}

func (r *sqlJudgeRepository) GetByID(ctx context.Context, id int) (*models.Judge, error) {
	j := &models.Judge{}
	err := r.db.QueryRowContext(ctx, `SELECT id, tournament_id, name FROM judge WHERE id = $1`, id).
		Scan(&j.ID, &j.TournamentID, &j.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJudgeNotFound
		}
		return nil, err
	}
	return j, nil
}

func (r *sqlJudgeRepository) List(ctx context.Context, filter ListJudgesFilter) ([]models.Judge, error) {
	q := newListQuery(`SELECT id, tournament_id, name FROM judge`)
	q.contains("name", filter.Name)
	q.eq("tournament_id", filter.TournamentID)
	query, args := q.build("id", filter.Page)

	return scanJudges(r.db.QueryContext(ctx, query, args...))
}

func scanJudges(rows *sql.Rows, err error) ([]models.Judge, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	judges := make([]models.Judge, 0)
	for rows.Next() {
		var j models.Judge
		if scanErr := rows.Scan(&j.ID, &j.TournamentID, &j.Name); scanErr != nil {
			return nil, scanErr
		}
		judges = append(judges, j)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return judges, nil
}

func (r *sqlJudgeRepository) Update(ctx context.Context, j *models.Judge) error {
	result, err := r.db.ExecContext(ctx, `UPDATE judge SET name = $1 WHERE id = $2`, j.Name, j.ID)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrJudgeNotFound)
}

func (r *sqlJudgeRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM judge WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrJudgeNotFound)
}
