package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/tabbit/models"
)

type ListMotionsFilter struct {
	RoundID *int
	Text    *string
	Page
}

type MotionRepository interface {
	Create(ctx context.Context, motion *models.Motion) error
	GetByID(ctx context.Context, id int) (*models.Motion, error)
	List(ctx context.Context, filter ListMotionsFilter) ([]models.Motion, error)
	Update(ctx context.Context, motion *models.Motion) error
	Delete(ctx context.Context, id int) error
}

type sqlMotionRepository struct {
	db *sql.DB
}

func NewMotionRepository(db *sql.DB) MotionRepository {
	return &sqlMotionRepository{db: db}
}

func (r *sqlMotionRepository) Create(ctx context.Context, m *models.Motion) error {
	query := `INSERT INTO motion (round_id, text, infoslide) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, m.RoundID, m.Text, m.Infoslide).Scan(&m.ID)
	return translateError(err)
}

func (r *sqlMotionRepository) GetByID(ctx context.Context, id int) (*models.Motion, error) {
	m := &models.Motion{}
	err := r.db.QueryRowContext(ctx, `SELECT id, round_id, text, infoslide FROM motion WHERE id = $1`, id).
		Scan(&m.ID, &m.RoundID, &m.Text, &m.Infoslide)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMotionNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *sqlMotionRepository) List(ctx context.Context, filter ListMotionsFilter) ([]models.Motion, error) {
	q := newListQuery(`SELECT id, round_id, text, infoslide FROM motion`)
	q.eq("round_id", filter.RoundID)
	q.contains("text", filter.Text)
	query, args := q.build("id", filter.Page)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	motions := make([]models.Motion, 0)
	for rows.Next() {
		var m models.Motion
		if scanErr := rows.Scan(&m.ID, &m.RoundID, &m.Text, &m.Infoslide); scanErr != nil {
			return nil, scanErr
		}
		motions = append(motions, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return motions, nil
}

func (r *sqlMotionRepository) Update(ctx context.Context, m *models.Motion) error {
	query := `UPDATE motion SET text = $1, infoslide = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, m.Text, m.Infoslide, m.ID)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrMotionNotFound)
}

func (r *sqlMotionRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM motion WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrMotionNotFound)
}
