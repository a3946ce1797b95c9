package services

import (
	"context"
	"strings"

	"github.com/Dosada05/tabbit/models"
	"github.com/Dosada05/tabbit/repositories"
)

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context, input ListTournamentsInput) ([]models.Tournament, error)
	UpdateTournament(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id int) error
}

type CreateTournamentInput struct {
	Name         string  `json:"name"`
	Abbreviation *string `json:"abbreviation"`
}

type UpdateTournamentInput struct {
	Name         models.Optional[string] `json:"name"`
	Abbreviation models.Optional[string] `json:"abbreviation"`
}

type ListTournamentsInput struct {
	Name *string
	Page repositories.Page
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository) TournamentService {
	return &tournamentService{tournamentRepo: tournamentRepo}
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	var v validator
	v.required("name", input.Name)
	if err := v.err(); err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		Name:         strings.TrimSpace(input.Name),
		Abbreviation: trimmedPtr(input.Abbreviation),
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, handleRepositoryError(err, "create tournament")
	}
	return tournament, nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, input ListTournamentsInput) ([]models.Tournament, error) {
	var v validator
	v.page(input.Page)
	if err := v.err(); err != nil {
		return nil, err
	}

	tournaments, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{Name: input.Name, Page: input.Page})
	if err != nil {
		return nil, handleRepositoryError(err, "list tournaments")
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}

	var v validator
	patchRequiredString(&v, "name", input.Name, &tournament.Name)
	patchNullableString(input.Abbreviation, &tournament.Abbreviation)
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		return nil, handleRepositoryError(err, "update tournament")
	}
	return tournament, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id int) error {
	return handleRepositoryError(s.tournamentRepo.Delete(ctx, id), "delete tournament")
}
