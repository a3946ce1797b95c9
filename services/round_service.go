package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Dosada05/tabbit/models"
	"github.com/Dosada05/tabbit/repositories"
	"github.com/Dosada05/tabbit/storage"
)

type RoundService interface {
	CreateRound(ctx context.Context, input CreateRoundInput) (*models.Round, error)
	GetRoundByID(ctx context.Context, id int) (*models.Round, error)
	ListRounds(ctx context.Context, input ListRoundsInput) ([]models.Round, error)
	UpdateRound(ctx context.Context, id int, input UpdateRoundInput) (*models.Round, error)
	DeleteRound(ctx context.Context, id int) error
}

type CreateRoundInput struct {
	TournamentID int                `json:"tournament_id"`
	Sequence     int                `json:"sequence"`
	Status       models.RoundStatus `json:"status"`
	Name         string             `json:"name"`
	Abbreviation *string            `json:"abbreviation"`
}

type UpdateRoundInput struct {
	Sequence     models.Optional[int]                `json:"sequence"`
	Status       models.Optional[models.RoundStatus] `json:"status"`
	Name         models.Optional[string]             `json:"name"`
	Abbreviation models.Optional[string]             `json:"abbreviation"`
}

type ListRoundsInput struct {
	Name         *string
	TournamentID *int
	Status       *models.RoundStatus
	Page         repositories.Page
}

type roundService struct {
	roundRepo repositories.RoundRepository
	uploader  storage.FileUploader
	logger    *slog.Logger
}

func NewRoundService(roundRepo repositories.RoundRepository, uploader storage.FileUploader, logger *slog.Logger) RoundService {
	if uploader == nil {
		uploader = storage.NopUploader{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &roundService{roundRepo: roundRepo, uploader: uploader, logger: logger}
}

func validateRoundStatus(v *validator, status models.RoundStatus) {
	if !status.Valid() {
		v.fail("status", "must be one of draft, ready, in_progress, completed")
	}
}

func (s *roundService) CreateRound(ctx context.Context, input CreateRoundInput) (*models.Round, error) {
	if input.Status == "" {
		input.Status = models.RoundStatusDraft
	}

	var v validator
	v.positive("tournament_id", input.TournamentID)
	v.positive("sequence", input.Sequence)
	v.required("name", input.Name)
	validateRoundStatus(&v, input.Status)
	if err := v.err(); err != nil {
		return nil, err
	}

	round := &models.Round{
		TournamentID: input.TournamentID,
		Sequence:     input.Sequence,
		Status:       input.Status,
		Name:         strings.TrimSpace(input.Name),
		Abbreviation: trimmedPtr(input.Abbreviation),
	}
	if err := s.roundRepo.Create(ctx, round); err != nil {
		return nil, handleRepositoryError(err, "create round")
	}
	return round, nil
}

func (s *roundService) GetRoundByID(ctx context.Context, id int) (*models.Round, error) {
	round, err := s.roundRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get round")
	}
	return round, nil
}

func (s *roundService) ListRounds(ctx context.Context, input ListRoundsInput) ([]models.Round, error) {
	var v validator
	v.page(input.Page)
	if input.Status != nil {
		validateRoundStatus(&v, *input.Status)
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	rounds, err := s.roundRepo.List(ctx, repositories.ListRoundsFilter{
		Name:         input.Name,
		TournamentID: input.TournamentID,
		Status:       input.Status,
		Page:         input.Page,
	})
	if err != nil {
		return nil, handleRepositoryError(err, "list rounds")
	}
	return rounds, nil
}

func (s *roundService) UpdateRound(ctx context.Context, id int, input UpdateRoundInput) (*models.Round, error) {
	round, err := s.roundRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get round")
	}

	var v validator
	patchPositiveInt(&v, "sequence", input.Sequence, &round.Sequence)
	patchRequiredString(&v, "name", input.Name, &round.Name)
	patchNullableString(input.Abbreviation, &round.Abbreviation)
	if input.Status.Set {
		if input.Status.Value == nil {
			v.fail("status", "must not be null")
		} else {
			validateRoundStatus(&v, *input.Status.Value)
			round.Status = *input.Status.Value
		}
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.roundRepo.Update(ctx, round); err != nil {
		return nil, handleRepositoryError(err, "update round")
	}
	return round, nil
}

// DeleteRound removes the round and then its archived draw, if any. A failed
// archive removal is only logged.
func (s *roundService) DeleteRound(ctx context.Context, id int) error {
	if err := s.roundRepo.Delete(ctx, id); err != nil {
		return handleRepositoryError(err, "delete round")
	}
	if err := s.uploader.Delete(ctx, DrawArchiveKey(id)); err != nil {
		s.logger.Error("failed to delete draw archive", "round_id", id, "key", DrawArchiveKey(id), "error", err)
	}
	return nil
}
