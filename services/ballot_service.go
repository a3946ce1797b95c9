package services

import (
	"context"

	"github.com/Dosada05/tabbit/models"
	"github.com/Dosada05/tabbit/repositories"
)

// BallotService manages ballots and the scores recorded on them.
type BallotService interface {
	CreateBallot(ctx context.Context, input CreateBallotInput) (*models.Ballot, error)
	GetBallotByID(ctx context.Context, id int) (*models.Ballot, error)
	ListBallots(ctx context.Context, input ListBallotsInput) ([]models.Ballot, error)
	UpdateBallot(ctx context.Context, id int, input UpdateBallotInput) (*models.Ballot, error)
	DeleteBallot(ctx context.Context, id int) error

	CreateSpeakerPoints(ctx context.Context, input CreateSpeakerPointsInput) (*models.BallotSpeakerPoints, error)
	GetSpeakerPointsByID(ctx context.Context, id int) (*models.BallotSpeakerPoints, error)
	ListSpeakerPoints(ctx context.Context, input ListSpeakerPointsInput) ([]models.BallotSpeakerPoints, error)
	DeleteSpeakerPoints(ctx context.Context, id int) error

	CreateTeamScore(ctx context.Context, input CreateTeamScoreInput) (*models.BallotTeamScore, error)
	GetTeamScoreByID(ctx context.Context, id int) (*models.BallotTeamScore, error)
	ListTeamScores(ctx context.Context, input ListTeamScoresInput) ([]models.BallotTeamScore, error)
	DeleteTeamScore(ctx context.Context, id int) error
}

type CreateBallotInput struct {
	DebateID int  `json:"debate_id"`
	JudgeID  int  `json:"judge_id"`
	Version  *int `json:"version"`
}

type UpdateBallotInput struct {
	Version models.Optional[int] `json:"version"`
}

type ListBallotsInput struct {
	DebateID *int
	JudgeID  *int
	Page     repositories.Page
}

type CreateSpeakerPointsInput struct {
	BallotID        int `json:"ballot_id"`
	SpeakerID       int `json:"speaker_id"`
	SpeakerPosition int `json:"speaker_position"`
	Score           int `json:"score"`
}

type ListSpeakerPointsInput struct {
	BallotID  *int
	SpeakerID *int
	Page      repositories.Page
}

type CreateTeamScoreInput struct {
	BallotID int `json:"ballot_id"`
	TeamID   int `json:"team_id"`
	Score    int `json:"score"`
}

type ListTeamScoresInput struct {
	BallotID *int
	TeamID   *int
	Page     repositories.Page
}

type ballotService struct {
	ballotRepo        repositories.BallotRepository
	speakerPointsRepo repositories.BallotSpeakerPointsRepository
	teamScoreRepo     repositories.BallotTeamScoreRepository
}

func NewBallotService(
	ballotRepo repositories.BallotRepository,
	speakerPointsRepo repositories.BallotSpeakerPointsRepository,
	teamScoreRepo repositories.BallotTeamScoreRepository,
) BallotService {
	return &ballotService{
		ballotRepo:        ballotRepo,
		speakerPointsRepo: speakerPointsRepo,
		teamScoreRepo:     teamScoreRepo,
	}
}

func (s *ballotService) CreateBallot(ctx context.Context, input CreateBallotInput) (*models.Ballot, error) {
	version := 1
	if input.Version != nil {
		version = *input.Version
	}

	var v validator
	v.positive("debate_id", input.DebateID)
	v.positive("judge_id", input.JudgeID)
	v.positive("version", version)
	if err := v.err(); err != nil {
		return nil, err
	}

	ballot := &models.Ballot{DebateID: input.DebateID, JudgeID: input.JudgeID, Version: version}
	if err := s.ballotRepo.Create(ctx, ballot); err != nil {
		return nil, handleRepositoryError(err, "create ballot")
	}
	return ballot, nil
}

func (s *ballotService) GetBallotByID(ctx context.Context, id int) (*models.Ballot, error) {
	ballot, err := s.ballotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get ballot")
	}
	return ballot, nil
}

func (s *ballotService) ListBallots(ctx context.Context, input ListBallotsInput) ([]models.Ballot, error) {
	var v validator
	v.page(input.Page)
	if err := v.err(); err != nil {
		return nil, err
	}

	ballots, err := s.ballotRepo.List(ctx, repositories.ListBallotsFilter{
		DebateID: input.DebateID,
		JudgeID:  input.JudgeID,
		Page:     input.Page,
	})
	if err != nil {
		return nil, handleRepositoryError(err, "list ballots")
	}
	return ballots, nil
}

func (s *ballotService) UpdateBallot(ctx context.Context, id int, input UpdateBallotInput) (*models.Ballot, error) {
	ballot, err := s.ballotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get ballot")
	}

	var v validator
	patchPositiveInt(&v, "version", input.Version, &ballot.Version)
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.ballotRepo.Update(ctx, ballot); err != nil {
		return nil, handleRepositoryError(err, "update ballot")
	}
	return ballot, nil
}

func (s *ballotService) DeleteBallot(ctx context.Context, id int) error {
	return handleRepositoryError(s.ballotRepo.Delete(ctx, id), "delete ballot")
}

func (s *ballotService) CreateSpeakerPoints(ctx context.Context, input CreateSpeakerPointsInput) (*models.BallotSpeakerPoints, error) {
	var v validator
	v.positive("ballot_id", input.BallotID)
	v.positive("speaker_id", input.SpeakerID)
	v.positive("speaker_position", input.SpeakerPosition)
	v.nonNegative("score", input.Score)
	if err := v.err(); err != nil {
		return nil, err
	}

	points := &models.BallotSpeakerPoints{
		BallotID:        input.BallotID,
		SpeakerID:       input.SpeakerID,
		SpeakerPosition: input.SpeakerPosition,
		Score:           input.Score,
	}
	if err := s.speakerPointsRepo.Create(ctx, points); err != nil {
		return nil, handleRepositoryError(err, "create ballot speaker points")
	}
	return points, nil
}

func (s *ballotService) GetSpeakerPointsByID(ctx context.Context, id int) (*models.BallotSpeakerPoints, error) {
	points, err := s.speakerPointsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get ballot speaker points")
	}
	return points, nil
}

func (s *ballotService) ListSpeakerPoints(ctx context.Context, input ListSpeakerPointsInput) ([]models.BallotSpeakerPoints, error) {
	var v validator
	v.page(input.Page)
	if err := v.err(); err != nil {
		return nil, err
	}

	points, err := s.speakerPointsRepo.List(ctx, repositories.ListBallotSpeakerPointsFilter{
		BallotID:  input.BallotID,
		SpeakerID: input.SpeakerID,
		Page:      input.Page,
	})
	if err != nil {
		return nil, handleRepositoryError(err, "list ballot speaker points")
	}
	return points, nil
}

func (s *ballotService) DeleteSpeakerPoints(ctx context.Context, id int) error {
	return handleRepositoryError(s.speakerPointsRepo.Delete(ctx, id), "delete ballot speaker points")
}

func (s *ballotService) CreateTeamScore(ctx context.Context, input CreateTeamScoreInput) (*models.BallotTeamScore, error) {
	var v validator
	v.positive("ballot_id", input.BallotID)
	v.positive("team_id", input.TeamID)
	v.nonNegative("score", input.Score)
	if err := v.err(); err != nil {
		return nil, err
	}

	score := &models.BallotTeamScore{BallotID: input.BallotID, TeamID: input.TeamID, Score: input.Score}
	if err := s.teamScoreRepo.Create(ctx, score); err != nil {
		return nil, handleRepositoryError(err, "create ballot team score")
	}
	return score, nil
}

func (s *ballotService) GetTeamScoreByID(ctx context.Context, id int) (*models.BallotTeamScore, error) {
	score, err := s.teamScoreRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get ballot team score")
	}
	return score, nil
}

func (s *ballotService) ListTeamScores(ctx context.Context, input ListTeamScoresInput) ([]models.BallotTeamScore, error) {
	var v validator
	v.page(input.Page)
	if err := v.err(); err != nil {
		return nil, err
	}

	scores, err := s.teamScoreRepo.List(ctx, repositories.ListBallotTeamScoresFilter{
		BallotID: input.BallotID,
		TeamID:   input.TeamID,
		Page:     input.Page,
	})
	if err != nil {
		return nil, handleRepositoryError(err, "list ballot team scores")
	}
	return scores, nil
}

func (s *ballotService) DeleteTeamScore(ctx context.Context, id int) error {
	return handleRepositoryError(s.teamScoreRepo.Delete(ctx, id), "delete ballot team score")
}
