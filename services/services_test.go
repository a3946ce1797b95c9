package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tabbit/models"
	"github.com/Dosada05/tabbit/repositories"
	"github.com/Dosada05/tabbit/testutil"
)

func ptr[T any](v T) *T { return &v }

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.True(t, errors.Is(err, ErrValidationFailed))
	return vErr.Fields
}

func TestHandleRepositoryError(t *testing.T) {
	assert.NoError(t, handleRepositoryError(nil, "x"))
	assert.Equal(t, ErrTeamNotFound, handleRepositoryError(repositories.ErrTeamNotFound, "get team"))
	assert.Equal(t, ErrTagAssociationNotFound, handleRepositoryError(repositories.ErrTagAssociationNotFound, "remove"))

	constraint := &repositories.ConstraintError{Constraint: "fk", Message: "Referenced resource does not exist"}
	err := handleRepositoryError(constraint, "create team")
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, repositories.ErrConstraintViolation)
	assert.EqualError(t, err, "Referenced resource does not exist")

	boom := errors.New("boom")
	err = handleRepositoryError(boom, "list teams")
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "failed to list teams: boom")
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"name": "must not be blank", "limit": "must be at least 1"}}
	assert.Equal(t, "validation failed: limit: must be at least 1; name: must not be blank", err.Error())
}

func TestTournamentService(t *testing.T) {
	ctx := context.Background()
	svc := NewTournamentService(repositories.NewTournamentRepository(testutil.SetupTestDB(t)))

	_, err := svc.CreateTournament(ctx, CreateTournamentInput{Name: "   "})
	assert.Equal(t, map[string]string{"name": "must not be blank"}, validationFields(t, err))

	created, err := svc.CreateTournament(ctx, CreateTournamentInput{Name: "  Euros 2025 ", Abbreviation: ptr("EUDC")})
	require.NoError(t, err)
	assert.Equal(t, "Euros 2025", created.Name)
	require.NotNil(t, created.Abbreviation)

	t.Run("absent fields stay unchanged", func(t *testing.T) {
		updated, err := svc.UpdateTournament(ctx, created.ID, UpdateTournamentInput{Name: models.Some("Worlds")})
		require.NoError(t, err)
		assert.Equal(t, "Worlds", updated.Name)
		require.NotNil(t, updated.Abbreviation)
		assert.Equal(t, "EUDC", *updated.Abbreviation)
	})

	t.Run("explicit null clears abbreviation", func(t *testing.T) {
		updated, err := svc.UpdateTournament(ctx, created.ID, UpdateTournamentInput{Abbreviation: models.Null[string]()})
		require.NoError(t, err)
		assert.Nil(t, updated.Abbreviation)

		got, err := svc.GetTournamentByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Abbreviation)
	})

	t.Run("null name is rejected", func(t *testing.T) {
		_, err := svc.UpdateTournament(ctx, created.ID, UpdateTournamentInput{Name: models.Null[string]()})
		assert.Equal(t, "must not be null", validationFields(t, err)["name"])
	})

	t.Run("paging is validated", func(t *testing.T) {
		_, err := svc.ListTournaments(ctx, ListTournamentsInput{Page: repositories.Page{Offset: -1, Limit: 0}})
		fields := validationFields(t, err)
		assert.Contains(t, fields, "offset")
		assert.Contains(t, fields, "limit")
	})

	list, err := svc.ListTournaments(ctx, ListTournamentsInput{Name: ptr("WORLD"), Page: DefaultPage()})
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteTournament(ctx, created.ID))
	_, err = svc.GetTournamentByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
	assert.ErrorIs(t, svc.DeleteTournament(ctx, created.ID), ErrTournamentNotFound)
}

func TestTeamService(t *testing.T) {
	ctx := context.Background()
	conn := testutil.SetupTestDB(t)
	svc := NewTeamService(repositories.NewTeamRepository(conn), repositories.NewSpeakerRepository(conn))
	tournamentID := testutil.CreateTournament(t, conn, "Open")

	team, err := svc.CreateTeam(ctx, CreateTeamInput{TournamentID: tournamentID, Name: "Oxford A"})
	require.NoError(t, err)

	_, err = svc.CreateTeam(ctx, CreateTeamInput{TournamentID: tournamentID, Name: "Oxford A"})
	require.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, "A team with this name already exists in this tournament")

	_, err = svc.CreateTeam(ctx, CreateTeamInput{TournamentID: 9999, Name: "Ghost"})
	require.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, "Referenced resource does not exist")

	_, err = svc.CreateTeam(ctx, CreateTeamInput{Name: ""})
	fields := validationFields(t, err)
	assert.Contains(t, fields, "tournament_id")
	assert.Contains(t, fields, "name")

	testutil.CreateSpeaker(t, conn, team.ID, "Alice")
	testutil.CreateSpeaker(t, conn, team.ID, "Bob")

	got, err := svc.GetTeamByID(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, got.Speakers, 2)
	assert.Equal(t, "Alice", got.Speakers[0].Name)

	_, err = svc.GetTeamByID(ctx, 4242)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestSpeakerAndJudgeServices(t *testing.T) {
	ctx := context.Background()
	conn := testutil.SetupTestDB(t)
	tournamentID := testutil.CreateTournament(t, conn, "Open")
	teamID := testutil.CreateTeam(t, conn, tournamentID, "Team")

	speakers := NewSpeakerService(repositories.NewSpeakerRepository(conn))
	sp, err := speakers.CreateSpeaker(ctx, CreateSpeakerInput{TeamID: teamID, Name: " Ann "})
	require.NoError(t, err)
	assert.Equal(t, "Ann", sp.Name)

	sp, err = speakers.UpdateSpeaker(ctx, sp.ID, UpdateSpeakerInput{Name: models.Some("Anna")})
	require.NoError(t, err)
	assert.Equal(t, "Anna", sp.Name)

	list, err := speakers.ListSpeakers(ctx, ListSpeakersInput{TeamID: &teamID, Page: DefaultPage()})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	judges := NewJudgeService(repositories.NewJudgeRepository(conn))
	j, err := judges.CreateJudge(ctx, CreateJudgeInput{TournamentID: tournamentID, Name: "Judy"})
	require.NoError(t, err)
	require.NoError(t, judges.DeleteJudge(ctx, j.ID))
	_, err = judges.GetJudgeByID(ctx, j.ID)
	assert.ErrorIs(t, err, ErrJudgeNotFound)
}

func TestRoundService(t *testing.T) {
	ctx := context.Background()
	conn := testutil.SetupTestDB(t)
	svc := NewRoundService(repositories.NewRoundRepository(conn), nil, nil)
	tournamentID := testutil.CreateTournament(t, conn, "Open")

	round, err := svc.CreateRound(ctx, CreateRoundInput{TournamentID: tournamentID, Sequence: 1, Name: "Round 1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoundStatusDraft, round.Status)

	_, err = svc.CreateRound(ctx, CreateRoundInput{TournamentID: tournamentID, Sequence: 1, Name: "Again"})
	require.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, "A round with this sequence already exists in this tournament")

	_, err = svc.CreateRound(ctx, CreateRoundInput{TournamentID: tournamentID, Sequence: 0, Name: "Bad", Status: "finished"})
	fields := validationFields(t, err)
	assert.Equal(t, "must be at least 1", fields["sequence"])
	assert.Contains(t, fields, "status")

	updated, err := svc.UpdateRound(ctx, round.ID, UpdateRoundInput{
		Status:       models.Some(models.RoundStatusInProgress),
		Abbreviation: models.Some("R1"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoundStatusInProgress, updated.Status)
	assert.Equal(t, "Round 1", updated.Name)
	require.NotNil(t, updated.Abbreviation)

	_, err = svc.UpdateRound(ctx, round.ID, UpdateRoundInput{Status: models.Null[models.RoundStatus]()})
	assert.Equal(t, "must not be null", validationFields(t, err)["status"])

	status := models.RoundStatusInProgress
	list, err := svc.ListRounds(ctx, ListRoundsInput{Status: &status, Page: DefaultPage()})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	bad := models.RoundStatus("nope")
	_, err = svc.ListRounds(ctx, ListRoundsInput{Status: &bad, Page: DefaultPage()})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestDeleteRoundRemovesDrawArchive(t *testing.T) {
	ctx := context.Background()
	conn := testutil.SetupTestDB(t)
	uploader := &recordingUploader{}
	svc := NewRoundService(repositories.NewRoundRepository(conn), uploader, slog.New(slog.NewTextHandler(io.Discard, nil)))
	tournamentID := testutil.CreateTournament(t, conn, "Open")
	roundID := testutil.CreateRound(t, conn, tournamentID, 1)

	require.NoError(t, svc.DeleteRound(ctx, roundID))
	assert.Equal(t, []string{DrawArchiveKey(roundID)}, uploader.deleted)

	assert.ErrorIs(t, svc.DeleteRound(ctx, roundID), ErrRoundNotFound)
	assert.Len(t, uploader.deleted, 1, "archive untouched when the round is missing")

	uploader.deleteErr = errors.New("bucket unavailable")
	other := testutil.CreateRound(t, conn, tournamentID, 2)
	require.NoError(t, svc.DeleteRound(ctx, other))
	assert.Equal(t, DrawArchiveKey(other), uploader.deleted[1])
}

func TestMotionService(t *testing.T) {
	ctx := context.Background()
	conn := testutil.SetupTestDB(t)
	svc := NewMotionService(repositories.NewMotionRepository(conn))
	roundID := testutil.CreateRound(t, conn, testutil.CreateTournament(t, conn, "Open"), 1)

	m, err := svc.CreateMotion(ctx, CreateMotionInput{RoundID: roundID, Text: "THW ban zoos", Infoslide: ptr("Zoos are...")})
	require.NoError(t, err)

	m, err = svc.UpdateMotion(ctx, m.ID, UpdateMotionInput{Infoslide: models.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, m.Infoslide)
	assert.Equal(t, "THW ban zoos", m.Text)

	list, err := svc.ListMotions(ctx, ListMotionsInput{Text: ptr("zoo"), Page: DefaultPage()})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDebateAndBallotServices(t *testing.T) {
	ctx := context.Background()
	conn := testutil.SetupTestDB(t)
	tournamentID := testutil.CreateTournament(t, conn, "Open")
	roundID := testutil.CreateRound(t, conn, tournamentID, 1)
	otherRound := testutil.CreateRound(t, conn, tournamentID, 2)
	teamID := testutil.CreateTeam(t, conn, tournamentID, "A")
	speakerID := testutil.CreateSpeaker(t, conn, teamID, "Ann")
	judgeID := testutil.CreateJudge(t, conn, tournamentID, "Judy")

	debates := NewDebateService(repositories.NewDebateRepository(conn))
	debate, err := debates.CreateDebate(ctx, CreateDebateInput{RoundID: roundID})
	require.NoError(t, err)

	debate, err = debates.UpdateDebate(ctx, debate.ID, UpdateDebateInput{RoundID: models.Some(otherRound)})
	require.NoError(t, err)
	assert.Equal(t, otherRound, debate.RoundID)

	_, err = debates.UpdateDebate(ctx, debate.ID, UpdateDebateInput{RoundID: models.Some(0)})
	assert.ErrorIs(t, err, ErrValidationFailed)

	ballots := NewBallotService(
		repositories.NewBallotRepository(conn),
		repositories.NewBallotSpeakerPointsRepository(conn),
		repositories.NewBallotTeamScoreRepository(conn),
	)

	ballot, err := ballots.CreateBallot(ctx, CreateBallotInput{DebateID: debate.ID, JudgeID: judgeID})
	require.NoError(t, err)
	assert.Equal(t, 1, ballot.Version)

	_, err = ballots.CreateBallot(ctx, CreateBallotInput{DebateID: debate.ID, JudgeID: judgeID, Version: ptr(0)})
	assert.Equal(t, "must be at least 1", validationFields(t, err)["version"])

	ballot, err = ballots.UpdateBallot(ctx, ballot.ID, UpdateBallotInput{Version: models.Some(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, ballot.Version)

	points, err := ballots.CreateSpeakerPoints(ctx, CreateSpeakerPointsInput{BallotID: ballot.ID, SpeakerID: speakerID, SpeakerPosition: 1, Score: 75})
	require.NoError(t, err)
	assert.NotZero(t, points.ID)

	_, err = ballots.CreateSpeakerPoints(ctx, CreateSpeakerPointsInput{BallotID: ballot.ID, SpeakerID: speakerID, SpeakerPosition: 2, Score: 70})
	require.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, "This speaker already has points recorded for this ballot")

	_, err = ballots.CreateSpeakerPoints(ctx, CreateSpeakerPointsInput{BallotID: ballot.ID, SpeakerID: speakerID, SpeakerPosition: 0, Score: -1})
	fields := validationFields(t, err)
	assert.Contains(t, fields, "speaker_position")
	assert.Contains(t, fields, "score")

	score, err := ballots.CreateTeamScore(ctx, CreateTeamScoreInput{BallotID: ballot.ID, TeamID: teamID, Score: 1})
	require.NoError(t, err)

	_, err = ballots.CreateTeamScore(ctx, CreateTeamScoreInput{BallotID: ballot.ID, TeamID: teamID, Score: 0})
	assert.EqualError(t, err, "This team already has a score recorded for this ballot")

	scores, err := ballots.ListTeamScores(ctx, ListTeamScoresInput{BallotID: &ballot.ID, Page: DefaultPage()})
	require.NoError(t, err)
	require.Len(t, scores, 1)

	require.NoError(t, ballots.DeleteTeamScore(ctx, score.ID))
	_, err = ballots.GetTeamScoreByID(ctx, score.ID)
	assert.ErrorIs(t, err, ErrBallotTeamScoreNotFound)

	require.NoError(t, ballots.DeleteSpeakerPoints(ctx, points.ID))
	assert.ErrorIs(t, ballots.DeleteSpeakerPoints(ctx, points.ID), ErrBallotSpeakerPointsNotFound)

	require.NoError(t, debates.DeleteDebate(ctx, debate.ID))
	_, err = ballots.GetBallotByID(ctx, ballot.ID)
	assert.ErrorIs(t, err, ErrBallotNotFound)
}

func TestTagService(t *testing.T) {
	ctx := context.Background()
	conn := testutil.SetupTestDB(t)
	svc := NewTagService(repositories.NewTagRepository(conn))
	tournamentID := testutil.CreateTournament(t, conn, "Open")
	teamID := testutil.CreateTeam(t, conn, tournamentID, "A")
	s1 := testutil.CreateSpeaker(t, conn, teamID, "Ann")
	s2 := testutil.CreateSpeaker(t, conn, teamID, "Ben")
	judgeID := testutil.CreateJudge(t, conn, tournamentID, "Judy")

	tag, err := svc.CreateTag(ctx, CreateTagInput{TournamentID: tournamentID, Name: "ESL"})
	require.NoError(t, err)

	_, err = svc.AddSpeakers(ctx, tag.ID, AddTagSpeakersInput{})
	assert.Contains(t, validationFields(t, err), "speaker_ids")

	_, err = svc.AddSpeakers(ctx, tag.ID, AddTagSpeakersInput{SpeakerIDs: []int{s1, 0}})
	assert.Contains(t, validationFields(t, err), "speaker_ids[1]")

	speakers, err := svc.AddSpeakers(ctx, tag.ID, AddTagSpeakersInput{SpeakerIDs: []int{s1, s2}})
	require.NoError(t, err)
	assert.Len(t, speakers, 2)

	_, err = svc.AddSpeakers(ctx, 999, AddTagSpeakersInput{SpeakerIDs: []int{s1}})
	assert.ErrorIs(t, err, ErrTagNotFound)

	require.NoError(t, svc.RemoveSpeaker(ctx, tag.ID, s1))
	assert.ErrorIs(t, svc.RemoveSpeaker(ctx, tag.ID, s1), ErrTagAssociationNotFound)

	speakers, err = svc.ListSpeakers(ctx, tag.ID)
	require.NoError(t, err)
	require.Len(t, speakers, 1)
	assert.Equal(t, s2, speakers[0].ID)

	judges, err := svc.AddJudges(ctx, tag.ID, AddTagJudgesInput{JudgeIDs: []int{judgeID}})
	require.NoError(t, err)
	assert.Len(t, judges, 1)

	tags, err := svc.ListTags(ctx, ListTagsInput{JudgeID: &judgeID, Page: DefaultPage()})
	require.NoError(t, err)
	require.Len(t, tags, 1)

	_, err = svc.ListJudges(ctx, 999)
	assert.ErrorIs(t, err, ErrTagNotFound)

	updated, err := svc.UpdateTag(ctx, tag.ID, UpdateTagInput{Name: models.Some("Novice")})
	require.NoError(t, err)
	assert.Equal(t, "Novice", updated.Name)
}
