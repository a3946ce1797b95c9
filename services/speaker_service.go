package services

import (
	"context"
	"strings"

	"github.com/Dosada05/tabbit/models"
	"github.com/Dosada05/tabbit/repositories"
)

type SpeakerService interface {
	CreateSpeaker(ctx context.Context, input CreateSpeakerInput) (*models.Speaker, error)
	GetSpeakerByID(ctx context.Context, id int) (*models.Speaker, error)
	ListSpeakers(ctx context.Context, input ListSpeakersInput) ([]models.Speaker, error)
	UpdateSpeaker(ctx context.Context, id int, input UpdateSpeakerInput) (*models.Speaker, error)
	DeleteSpeaker(ctx context.Context, id int) error
}

type CreateSpeakerInput struct {
	TeamID int    `json:"team_id"`
	Name   string `json:"name"`
}

type UpdateSpeakerInput struct {
	Name models.Optional[string] `json:"name"`
}

type ListSpeakersInput struct {
	Name   *string
	TeamID *int
	Page   repositories.Page
}

type speakerService struct {
	speakerRepo repositories.SpeakerRepository
}

func NewSpeakerService(speakerRepo repositories.SpeakerRepository) SpeakerService {
	return &speakerService{speakerRepo: speakerRepo}
}

func (s *speakerService) CreateSpeaker(ctx context.Context, input CreateSpeakerInput) (*models.Speaker, error) {
	var v validator
	v.positive("team_id", input.TeamID)
	v.required("name", input.Name)
	if err := v.err(); err != nil {
		return nil, err
	}

	speaker := &models.Speaker{TeamID: input.TeamID, Name: strings.TrimSpace(input.Name)}
	if err := s.speakerRepo.Create(ctx, speaker); err != nil {
		return nil, handleRepositoryError(err, "create speaker")
	}
	return speaker, nil
}

func (s *speakerService) GetSpeakerByID(ctx context.Context, id int) (*models.Speaker, error) {
	speaker, err := s.speakerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get speaker")
	}
	return speaker, nil
}

func (s *speakerService) ListSpeakers(ctx context.Context, input ListSpeakersInput) ([]models.Speaker, error) {
	var v validator
	v.page(input.Page)
	if err := v.err(); err != nil {
		return nil, err
	}

	speakers, err := s.speakerRepo.List(ctx, repositories.ListSpeakersFilter{
		Name:   input.Name,
		TeamID: input.TeamID,
		Page:   input.Page,
	})
	if err != nil {
		return nil, handleRepositoryError(err, "list speakers")
	}
	return speakers, nil
}

func (s *speakerService) UpdateSpeaker(ctx context.Context, id int, input UpdateSpeakerInput) (*models.Speaker, error) {
	speaker, err := s.speakerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get speaker")
	}

	var v validator
	patchRequiredString(&v, "name", input.Name, &speaker.Name)
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.speakerRepo.Update(ctx, speaker); err != nil {
		return nil, handleRepositoryError(err, "update speaker")
	}
	return speaker, nil
}

func (s *speakerService) DeleteSpeaker(ctx context.Context, id int) error {
	return handleRepositoryError(s.speakerRepo.Delete(ctx, id), "delete speaker")
}
