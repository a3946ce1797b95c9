package services

import (
	"context"

	"github.com/Dosada05/tabbit/models"
	"github.com/Dosada05/tabbit/repositories"
)

type DebateService interface {
	CreateDebate(ctx context.Context, input CreateDebateInput) (*models.Debate, error)
	GetDebateByID(ctx context.Context, id int) (*models.Debate, error)
	ListDebates(ctx context.Context, input ListDebatesInput) ([]models.Debate, error)
	UpdateDebate(ctx context.Context, id int, input UpdateDebateInput) (*models.Debate, error)
	DeleteDebate(ctx context.Context, id int) error
}

type CreateDebateInput struct {
	RoundID int `json:"round_id"`
}

type UpdateDebateInput struct {
	RoundID models.Optional[int] `json:"round_id"`
}

type ListDebatesInput struct {
	RoundID *int
	Page    repositories.Page
}

type debateService struct {
	debateRepo repositories.DebateRepository
}

func NewDebateService(debateRepo repositories.DebateRepository) DebateService {
	return &debateService{debateRepo: debateRepo}
}

func (s *debateService) CreateDebate(ctx context.Context, input CreateDebateInput) (*models.Debate, error) {
	var v validator
	v.positive("round_id", input.RoundID)
	if err := v.err(); err != nil {
		return nil, err
	}

	debate := &models.Debate{RoundID: input.RoundID}
	if err := s.debateRepo.Create(ctx, nil, debate); err != nil {
		return nil, handleRepositoryError(err, "create debate")
	}
	return debate, nil
}

func (s *debateService) GetDebateByID(ctx context.Context, id int) (*models.Debate, error) {
	debate, err := s.debateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get debate")
	}
	return debate, nil
}

func (s *debateService) ListDebates(ctx context.Context, input ListDebatesInput) ([]models.Debate, error) {
	var v validator
	v.page(input.Page)
	if err := v.err(); err != nil {
		return nil, err
	}

	debates, err := s.debateRepo.List(ctx, repositories.ListDebatesFilter{RoundID: input.RoundID, Page: input.Page})
	if err != nil {
		return nil, handleRepositoryError(err, "list debates")
	}
	return debates, nil
}

func (s *debateService) UpdateDebate(ctx context.Context, id int, input UpdateDebateInput) (*models.Debate, error) {
	debate, err := s.debateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get debate")
	}

	var v validator
	patchPositiveInt(&v, "round_id", input.RoundID, &debate.RoundID)
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.debateRepo.Update(ctx, debate); err != nil {
		return nil, handleRepositoryError(err, "update debate")
	}
	return debate, nil
}

func (s *debateService) DeleteDebate(ctx context.Context, id int) error {
	return handleRepositoryError(s.debateRepo.Delete(ctx, id), "delete debate")
}
