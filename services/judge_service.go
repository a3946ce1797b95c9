package services

import (
	"context"
	"strings"

	"github.com/Dosada05/tabbit/models"
	"github.com/Dosada05/tabbit/repositories"
)

type JudgeService interface {
	CreateJudge(ctx context.Context, input CreateJudgeInput) (*models.Judge, error)
	GetJudgeByID(ctx context.Context, id int) (*models.Judge, error)
	ListJudges(ctx context.Context, input ListJudgesInput) ([]models.Judge, error)
	UpdateJudge(ctx context.Context, id int, input UpdateJudgeInput) (*models.Judge, error)
	DeleteJudge(ctx context.Context, id int) error
}

type CreateJudgeInput struct {
	TournamentID int    `json:"tournament_id"`
	Name         string `json:"name"`
}

type UpdateJudgeInput struct {
	Name models.Optional[string] `json:"name"`
}

type ListJudgesInput struct {
	Name         *string
	TournamentID *int
	Page         repositories.Page
}

type judgeService struct {
	judgeRepo repositories.JudgeRepository
}

func NewJudgeService(judgeRepo repositories.JudgeRepository) JudgeService {
	return &judgeService{judgeRepo: judgeRepo}
}

func (s *judgeService) CreateJudge(ctx context.Context, input CreateJudgeInput) (*models.Judge, error) {
	var v validator
	v.positive("tournament_id", input.TournamentID)
	v.required("name", input.Name)
	if err := v.err(); err != nil {
		return nil, err
	}

	judge := &models.Judge{TournamentID: input.TournamentID, Name: strings.TrimSpace(input.Name)}
	if err := s.judgeRepo.Create(ctx, judge); err != nil {
		return nil, handleRepositoryError(err, "create judge")
	}
	return judge, nil
}

func (s *judgeService) GetJudgeByID(ctx context.Context, id int) (*models.Judge, error) {
	judge, err := s.judgeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get judge")
	}
	return judge, nil
}

func (s *judgeService) ListJudges(ctx context.Context, input ListJudgesInput) ([]models.Judge, error) {
	var v validator
	v.page(input.Page)
	if err := v.err(); err != nil {
		return nil, err
	}

	judges, err := s.judgeRepo.List(ctx, repositories.ListJudgesFilter{
		Name:         input.Name,
		TournamentID: input.TournamentID,
		Page:         input.Page,
	})
	if err != nil {
		return nil, handleRepositoryError(err, "list judges")
	}
	return judges, nil
}

func (s *judgeService) UpdateJudge(ctx context.Context, id int, input UpdateJudgeInput) (*models.Judge, error) {
	judge, err := s.judgeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get judge")
	}

	var v validator
	patchRequiredString(&v, "name", input.Name, &judge.Name)
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.judgeRepo.Update(ctx, judge); err != nil {
		return nil, handleRepositoryError(err, "update judge")
	}
	return judge, nil
}

func (s *judgeService) DeleteJudge(ctx context.Context, id int) error {
	return handleRepositoryError(s.judgeRepo.Delete(ctx, id), "delete judge")
}
