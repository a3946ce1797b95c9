package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/tabbit/models"
)

var ErrSpeakerNotFound = errors.New("speaker not found")

type ListSpeakersFilter struct {
	Name   *string
	TeamID *int
	Page
}

type SpeakerRepository interface {
	Create(ctx context.Context, speaker *models.Speaker) error
	GetByID(ctx context.Context, id int) (*models.Speaker, error)
	List(ctx context.Context, filter ListSpeakersFilter) ([]models.Speaker, error)
	Update(ctx context.Context, speaker *models.Speaker) error
	Delete(ctx context.Context, id int) error
}

type sqlSpeakerRepository struct {
	db *sql.DB
}

func NewSpeakerRepository(db *sql.DB) SpeakerRepository {
	return &sqlSpeakerRepository{db: db}
}

func (r *sqlSpeakerRepository) Create(ctx context.Context, s *models.Speaker) error {
	query := `INSERT INTO speaker (team_id, name) VALUES ($1, $2) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, s.TeamID, s.Name).Scan(&s.ID)
	return translateError(err)
}

func (r *sqlSpeakerRepository) GetByID(ctx context.Context, id int) (*models.Speaker, error) {
	s := &models.Speaker{}
	err := r.db.QueryRowContext(ctx, `SELECT id, team_id, name FROM speaker WHERE id = $1`, id).
		Scan(&s.ID, &s.TeamID, &s.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSpeakerNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sqlSpeakerRepository) List(ctx context.Context, filter ListSpeakersFilter) ([]models.Speaker, error) {
	q := newListQuery(`SELECT id, team_id, name FROM speaker`)
	q.contains("name", filter.Name)
	q.eq("team_id", filter.TeamID)
	query, args := q.build("id", filter.Page)

	return scanSpeakers(r.db.QueryContext(ctx, query, args...))
}

func scanSpeakers(rows *sql.Rows, err error) ([]models.Speaker, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	speakers := make([]models.Speaker, 0)
	for rows.Next() {
		var s models.Speaker
		if scanErr := rows.Scan(&s.ID, &s.TeamID, &s.Name); scanErr != nil {
			return nil, scanErr
		}
		speakers = append(speakers, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return speakers, nil
}

func (r *sqlSpeakerRepository) Update(ctx context.Context, s *models.Speaker) error {
	result, err := r.db.ExecContext(ctx, `UPDATE speaker SET name = $1 WHERE id = $2`, s.Name, s.ID)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrSpeakerNotFound)
}

func (r *sqlSpeakerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM speaker WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrSpeakerNotFound)
}
