package services

import (
	"context"
	"strings"

	"github.com/Dosada05/tabbit/models"
	"github.com/Dosada05/tabbit/repositories"
)

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context, input ListTeamsInput) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
}

type CreateTeamInput struct {
	TournamentID int     `json:"tournament_id"`
	Name         string  `json:"name"`
	Abbreviation *string `json:"abbreviation"`
}

type UpdateTeamInput struct {
	Name         models.Optional[string] `json:"name"`
	Abbreviation models.Optional[string] `json:"abbreviation"`
}

type ListTeamsInput struct {
	Name         *string
	TournamentID *int
	Page         repositories.Page
}

type teamService struct {
	teamRepo    repositories.TeamRepository
	speakerRepo repositories.SpeakerRepository
}

func NewTeamService(teamRepo repositories.TeamRepository, speakerRepo repositories.SpeakerRepository) TeamService {
	return &teamService{
		teamRepo:    teamRepo,
		speakerRepo: speakerRepo,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	var v validator
	v.positive("tournament_id", input.TournamentID)
	v.required("name", input.Name)
	if err := v.err(); err != nil {
		return nil, err
	}

	team := &models.Team{
		TournamentID: input.TournamentID,
		Name:         strings.TrimSpace(input.Name),
		Abbreviation: trimmedPtr(input.Abbreviation),
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, handleRepositoryError(err, "create team")
	}
	return team, nil
}

// GetTeamByID returns the team with its speakers.
func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get team")
	}

	speakers, err := s.speakerRepo.List(ctx, repositories.ListSpeakersFilter{TeamID: &id, Page: DefaultPage()})
	if err != nil {
		return nil, handleRepositoryError(err, "list team speakers")
	}
	team.Speakers = speakers
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context, input ListTeamsInput) ([]models.Team, error) {
	var v validator
	v.page(input.Page)
	if err := v.err(); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.List(ctx, repositories.ListTeamsFilter{
		Name:         input.Name,
		TournamentID: input.TournamentID,
		Page:         input.Page,
	})
	if err != nil {
		return nil, handleRepositoryError(err, "list teams")
	}
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get team")
	}

	var v validator
	patchRequiredString(&v, "name", input.Name, &team.Name)
	patchNullableString(input.Abbreviation, &team.Abbreviation)
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, handleRepositoryError(err, "update team")
	}
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	return handleRepositoryError(s.teamRepo.Delete(ctx, id), "delete team")
}
