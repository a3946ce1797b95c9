package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tabbit/models"
)

var (
	ErrTagNotFound            = errors.New("tag not found")
	ErrTagAssociationNotFound = errors.New("tag association not found")
)

type ListTagsFilter struct {
	Name         *string
	TournamentID *int
	SpeakerID    *int
	JudgeID      *int
	Page
}

type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, id int) (*models.Tag, error)
	List(ctx context.Context, filter ListTagsFilter) ([]models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id int) error

	AddSpeakers(ctx context.Context, tagID int, speakerIDs []int) error
	RemoveSpeaker(ctx context.Context, tagID, speakerID int) error
	ListSpeakers(ctx context.Context, tagID int) ([]models.Speaker, error)

	AddJudges(ctx context.Context, tagID int, judgeIDs []int) error
	RemoveJudge(ctx context.Context, tagID, judgeID int) error
	ListJudges(ctx context.Context, tagID int) ([]models.Judge, error)
}

type sqlTagRepository struct {
	db *sql.DB
}

func NewTagRepository(db *sql.DB) TagRepository {
	return &sqlTagRepository{db: db}
}

func (r *sqlTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	query := `INSERT INTO tag (tournament_id, name) VALUES ($1, $2) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, tag.TournamentID, tag.Name).Scan(&tag.ID)
	return translateError(err)
}

func (r *sqlTagRepository) GetByID(ctx context.Context, id int) (*models.Tag, error) {
	return r.getByID(ctx, r.db, id)
}

func (r *sqlTagRepository) getByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tag, error) {
	tag := &models.Tag{}
	err := exec.QueryRowContext(ctx, `SELECT id, tournament_id, name FROM tag WHERE id = $1`, id).
		Scan(&tag.ID, &tag.TournamentID, &tag.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (r *sqlTagRepository) List(ctx context.Context, filter ListTagsFilter) ([]models.Tag, error) {
	q := newListQuery(`SELECT id, tournament_id, name FROM tag`)
	q.contains("name", filter.Name)
	q.eq("tournament_id", filter.TournamentID)
	if filter.SpeakerID != nil {
		q.where("id IN (SELECT tag_id FROM speaker_tag WHERE speaker_id = %s)", *filter.SpeakerID)
	}
	if filter.JudgeID != nil {
		q.where("id IN (SELECT tag_id FROM judge_tag WHERE judge_id = %s)", *filter.JudgeID)
	}
	query, args := q.build("id", filter.Page)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]models.Tag, 0)
	for rows.Next() {
		var tag models.Tag
		if scanErr := rows.Scan(&tag.ID, &tag.TournamentID, &tag.Name); scanErr != nil {
			return nil, scanErr
		}
		tags = append(tags, tag)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *sqlTagRepository) Update(ctx context.Context, tag *models.Tag) error {
	result, err := r.db.ExecContext(ctx, `UPDATE tag SET name = $1 WHERE id = $2`, tag.Name, tag.ID)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrTagNotFound)
}

func (r *sqlTagRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tag WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrTagNotFound)
}

// addMembers links every id to the tag in one transaction. Either all links
// are created or none.
func (r *sqlTagRepository) addMembers(ctx context.Context, table, column string, tagID int, ids []int) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = r.getByID(ctx, tx, tagID); err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, tag_id) VALUES ($1, $2)`, table, column)
	for _, id := range ids {
		if _, err = tx.ExecContext(ctx, query, id, tagID); err != nil {
			return translateError(err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *sqlTagRepository) removeMember(ctx context.Context, table, column string, tagID, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE tag_id = $1 AND %s = $2`, table, column)
	result, err := r.db.ExecContext(ctx, query, tagID, id)
	if err != nil {
		return translateError(err)
	}
	return checkAffectedRows(result, ErrTagAssociationNotFound)
}

func (r *sqlTagRepository) AddSpeakers(ctx context.Context, tagID int, speakerIDs []int) error {
	return r.addMembers(ctx, "speaker_tag", "speaker_id", tagID, speakerIDs)
}

func (r *sqlTagRepository) RemoveSpeaker(ctx context.Context, tagID, speakerID int) error {
	return r.removeMember(ctx, "speaker_tag", "speaker_id", tagID, speakerID)
}

func (r *sqlTagRepository) ListSpeakers(ctx context.Context, tagID int) ([]models.Speaker, error) {
	query := `
		SELECT s.id, s.team_id, s.name
		FROM speaker s
		JOIN speaker_tag st ON st.speaker_id = s.id
		WHERE st.tag_id = $1
		ORDER BY s.id`
	return scanSpeakers(r.db.QueryContext(ctx, query, tagID))
}

func (r *sqlTagRepository) AddJudges(ctx context.Context, tagID int, judgeIDs []int) error {
	return r.addMembers(ctx, "judge_tag", "judge_id", tagID, judgeIDs)
}

func (r *sqlTagRepository) RemoveJudge(ctx context.Context, tagID, judgeID int) error {
	return r.removeMember(ctx, "judge_tag", "judge_id", tagID, judgeID)
}

func (r *sqlTagRepository) ListJudges(ctx context.Context, tagID int) ([]models.Judge, error) {
	query := `
		SELECT j.id, j.tournament_id, j.name
		FROM judge j
		JOIN judge_tag jt ON jt.judge_id = j.id
		WHERE jt.tag_id = $1
		ORDER BY j.id`
	return scanJudges(r.db.QueryContext(ctx, query, tagID))
}
