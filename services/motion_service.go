package services

import (
	"context"
	"strings"

	"github.com/Dosada05/tabbit/models"
	"github.com/Dosada05/tabbit/repositories"
)

type MotionService interface {
	CreateMotion(ctx context.Context, input CreateMotionInput) (*models.Motion, error)
	GetMotionByID(ctx context.Context, id int) (*models.Motion, error)
	ListMotions(ctx context.Context, input ListMotionsInput) ([]models.Motion, error)
	UpdateMotion(ctx context.Context, id int, input UpdateMotionInput) (*models.Motion, error)
	DeleteMotion(ctx context.Context, id int) error
}

type CreateMotionInput struct {
	RoundID   int     `json:"round_id"`
	Text      string  `json:"text"`
	Infoslide *string `json:"infoslide"`
}

type UpdateMotionInput struct {
	Text      models.Optional[string] `json:"text"`
	Infoslide models.Optional[string] `json:"infoslide"`
}

type ListMotionsInput struct {
	RoundID *int
	Text    *string
	Page    repositories.Page
}

type motionService struct {
	motionRepo repositories.MotionRepository
}

func NewMotionService(motionRepo repositories.MotionRepository) MotionService {
	return &motionService{motionRepo: motionRepo}
}

func (s *motionService) CreateMotion(ctx context.Context, input CreateMotionInput) (*models.Motion, error) {
	var v validator
	v.positive("round_id", input.RoundID)
	v.required("text", input.Text)
	if err := v.err(); err != nil {
		return nil, err
	}

	motion := &models.Motion{
		RoundID:   input.RoundID,
		Text:      strings.TrimSpace(input.Text),
		Infoslide: input.Infoslide,
	}
	if err := s.motionRepo.Create(ctx, motion); err != nil {
		return nil, handleRepositoryError(err, "create motion")
	}
	return motion, nil
}

func (s *motionService) GetMotionByID(ctx context.Context, id int) (*models.Motion, error) {
	motion, err := s.motionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get motion")
	}
	return motion, nil
}

func (s *motionService) ListMotions(ctx context.Context, input ListMotionsInput) ([]models.Motion, error) {
	var v validator
	v.page(input.Page)
	if err := v.err(); err != nil {
		return nil, err
	}

	motions, err := s.motionRepo.List(ctx, repositories.ListMotionsFilter{
		RoundID: input.RoundID,
		Text:    input.Text,
		Page:    input.Page,
	})
	if err != nil {
		return nil, handleRepositoryError(err, "list motions")
	}
	return motions, nil
}

func (s *motionService) UpdateMotion(ctx context.Context, id int, input UpdateMotionInput) (*models.Motion, error) {
	motion, err := s.motionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get motion")
	}

	var v validator
	patchRequiredString(&v, "text", input.Text, &motion.Text)
	// Infoslides are free text, whitespace included.
	if input.Infoslide.Set {
		motion.Infoslide = input.Infoslide.Value
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.motionRepo.Update(ctx, motion); err != nil {
		return nil, handleRepositoryError(err, "update motion")
	}
	return motion, nil
}

func (s *motionService) DeleteMotion(ctx context.Context, id int) error {
	return handleRepositoryError(s.motionRepo.Delete(ctx, id), "delete motion")
}
