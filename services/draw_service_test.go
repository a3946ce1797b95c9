package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tabbit/models"
	"github.com/Dosada05/tabbit/realtime"
	"github.com/Dosada05/tabbit/repositories"
	"github.com/Dosada05/tabbit/storage"
	"github.com/Dosada05/tabbit/testutil"
)

type recordingBroadcaster struct {
	mu       sync.Mutex
	rooms    []string
	messages []interface{}
}

func (b *recordingBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rooms = append(b.rooms, roomID)
	b.messages = append(b.messages, message)
}

type recordingUploader struct {
	storage.NopUploader
	keys      []string
	bodies    [][]byte
	deleted   []string
	err       error
	deleteErr error
}

func (u *recordingUploader) Delete(_ context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	return u.deleteErr
}

func (u *recordingUploader) Upload(_ context.Context, key, _ string, r io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	u.keys = append(u.keys, key)
	u.bodies = append(u.bodies, body)
	return &storage.UploadResult{Key: key}, nil
}

type drawFixture struct {
	conn         *sql.DB
	svc          DrawService
	broadcaster  *recordingBroadcaster
	uploader     *recordingUploader
	tournamentID int
}

func newDrawFixture(t *testing.T) *drawFixture {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	f := &drawFixture{
		conn:         conn,
		broadcaster:  &recordingBroadcaster{},
		uploader:     &recordingUploader{},
		tournamentID: testutil.CreateTournament(t, conn, "Open"),
	}
	f.svc = NewDrawService(
		conn,
		repositories.NewTournamentRepository(conn),
		repositories.NewRoundRepository(conn),
		repositories.NewDebateRepository(conn),
		repositories.NewStandingRepository(conn),
		f.broadcaster,
		f.uploader,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		DrawServiceConfig{
			DefaultTeamsPerMatchup: 2,
			NewRand: func() *rand.Rand {
				return rand.New(rand.NewPCG(1, 2))
			},
		},
	)
	return f
}

func (f *drawFixture) teams(t *testing.T, names ...string) []int {
	ids := make([]int, len(names))
	for i, name := range names {
		ids[i] = testutil.CreateTeam(t, f.conn, f.tournamentID, name)
	}
	return ids
}

func drawTeamIDs(rd *models.RoundDraw) [][]int {
	out := make([][]int, len(rd.Debates))
	for i, d := range rd.Debates {
		for _, team := range d.Teams {
			out[i] = append(out[i], team.TeamID)
		}
	}
	return out
}

func TestGenerateDrawPersistsDebates(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture(t)
	teamIDs := f.teams(t, "A", "B", "C", "D")
	roundID := testutil.CreateRound(t, f.conn, f.tournamentID, 1)

	rd, err := f.svc.GenerateDraw(ctx, roundID, GenerateDrawInput{})
	require.NoError(t, err)

	assert.Equal(t, roundID, rd.RoundID)
	assert.Equal(t, f.tournamentID, rd.TournamentID)
	require.Len(t, rd.Debates, 2)

	var drawn []int
	for _, d := range rd.Debates {
		require.Len(t, d.Teams, 2)
		for pos, team := range d.Teams {
			assert.Equal(t, pos, team.Position)
			assert.NotEmpty(t, team.Name)
			drawn = append(drawn, team.TeamID)
		}
	}
	assert.ElementsMatch(t, teamIDs, drawn)

	stored, err := f.svc.GetDraw(ctx, roundID)
	require.NoError(t, err)
	assert.Equal(t, rd, stored)

	var status string
	require.NoError(t, f.conn.QueryRow(`SELECT status FROM round WHERE id = $1`, roundID).Scan(&status))
	assert.Equal(t, string(models.RoundStatusReady), status)
}

func TestGenerateDrawReleasesDraw(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture(t)
	f.teams(t, "A", "B")
	roundID := testutil.CreateRound(t, f.conn, f.tournamentID, 1)

	rd, err := f.svc.GenerateDraw(ctx, roundID, GenerateDrawInput{})
	require.NoError(t, err)

	room := realtime.TournamentRoom(f.tournamentID)
	require.Equal(t, []string{room}, f.broadcaster.rooms)
	msg, ok := f.broadcaster.messages[0].(realtime.Message)
	require.True(t, ok)
	assert.Equal(t, realtime.MessageDrawReleased, msg.Type)
	assert.Equal(t, rd, msg.Payload)

	require.Equal(t, []string{DrawArchiveKey(roundID)}, f.uploader.keys)
	var archived models.RoundDraw
	require.NoError(t, json.Unmarshal(f.uploader.bodies[0], &archived))
	assert.Equal(t, *rd, archived)
}

func TestGenerateDrawIgnoresArchiveFailure(t *testing.T) {
	f := newDrawFixture(t)
	f.uploader.err = errors.New("bucket unavailable")
	f.teams(t, "A", "B")
	roundID := testutil.CreateRound(t, f.conn, f.tournamentID, 1)

	rd, err := f.svc.GenerateDraw(context.Background(), roundID, GenerateDrawInput{})
	require.NoError(t, err)
	assert.Len(t, rd.Debates, 1)
}

func TestGenerateDrawIsReproducibleWithSeed(t *testing.T) {
	results := make([][][]int, 2)
	for i := range results {
		f := newDrawFixture(t)
		f.teams(t, "A", "B", "C", "D", "E", "F")
		roundID := testutil.CreateRound(t, f.conn, f.tournamentID, 1)
		rd, err := f.svc.GenerateDraw(context.Background(), roundID, GenerateDrawInput{})
		require.NoError(t, err)
		results[i] = drawTeamIDs(rd)
	}
	assert.Equal(t, results[0], results[1])
}

func TestGenerateDrawRejectsSecondDraw(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture(t)
	f.teams(t, "A", "B")
	roundID := testutil.CreateRound(t, f.conn, f.tournamentID, 1)

	_, err := f.svc.GenerateDraw(ctx, roundID, GenerateDrawInput{})
	require.NoError(t, err)

	_, err = f.svc.GenerateDraw(ctx, roundID, GenerateDrawInput{})
	assert.ErrorIs(t, err, ErrDrawAlreadyExists)
	assert.Len(t, f.broadcaster.rooms, 1)
}

func TestGenerateDrawConcurrentRequestsCreateOneDraw(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture(t)
	f.teams(t, "A", "B", "C", "D")
	roundID := testutil.CreateRound(t, f.conn, f.tournamentID, 1)

	const requests = 4
	errs := make([]error, requests)
	var wg sync.WaitGroup
	for i := range requests {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.svc.GenerateDraw(ctx, roundID, GenerateDrawInput{})
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrDrawAlreadyExists)
	}
	assert.Equal(t, 1, succeeded)

	var debates int
	require.NoError(t, f.conn.QueryRow(`SELECT COUNT(*) FROM debate WHERE round_id = $1`, roundID).Scan(&debates))
	assert.Equal(t, 2, debates)
}

func TestGenerateDrawInvalidConfig(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture(t)
	f.teams(t, "A", "B", "C")
	roundID := testutil.CreateRound(t, f.conn, f.tournamentID, 1)

	_, err := f.svc.GenerateDraw(ctx, roundID, GenerateDrawInput{})
	require.ErrorIs(t, err, ErrInvalidDrawConfig)
	assert.EqualError(t, err, "number of teams must be a multiple of 2")

	_, err = f.svc.GenerateDraw(ctx, roundID, GenerateDrawInput{TeamsPerMatchup: ptr(0)})
	require.ErrorIs(t, err, ErrInvalidDrawConfig)
	assert.EqualError(t, err, "teams per matchup must be positive, got 0")

	rd, err := f.svc.GetDraw(ctx, roundID)
	require.NoError(t, err)
	assert.Empty(t, rd.Debates)
	assert.Empty(t, f.broadcaster.rooms)

	rd, err = f.svc.GenerateDraw(ctx, roundID, GenerateDrawInput{TeamsPerMatchup: ptr(3)})
	require.NoError(t, err)
	require.Len(t, rd.Debates, 1)
	assert.Len(t, rd.Debates[0].Teams, 3)
}

func TestGenerateDrawUnknownRound(t *testing.T) {
	f := newDrawFixture(t)
	_, err := f.svc.GenerateDraw(context.Background(), 404, GenerateDrawInput{})
	assert.ErrorIs(t, err, ErrRoundNotFound)

	_, err = f.svc.GetDraw(context.Background(), 404)
	assert.ErrorIs(t, err, ErrRoundNotFound)
}

// The winner of round 1 is the only team on one point, so round 2 pulls one
// zero-point team up to meet it.
func TestGenerateDrawUsesEarlierRoundStandings(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture(t)
	ids := f.teams(t, "A", "B", "C", "D")
	judgeID := testutil.CreateJudge(t, f.conn, f.tournamentID, "Judy")

	round1 := testutil.CreateRound(t, f.conn, f.tournamentID, 1)
	debateID := testutil.CreateDebate(t, f.conn, round1, ids[0], ids[1])
	ballotID := testutil.CreateBallot(t, f.conn, debateID, judgeID, 1)
	testutil.CreateTeamScore(t, f.conn, ballotID, ids[0], 1)
	testutil.CreateTeamScore(t, f.conn, ballotID, ids[1], 0)

	round2 := testutil.CreateRound(t, f.conn, f.tournamentID, 2)
	rd, err := f.svc.GenerateDraw(ctx, round2, GenerateDrawInput{})
	require.NoError(t, err)
	require.Len(t, rd.Debates, 2)

	top := drawTeamIDs(rd)[1]
	assert.Equal(t, ids[0], top[1])
	assert.NotContains(t, drawTeamIDs(rd)[0], ids[0])
}

func TestListStandings(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture(t)
	ids := f.teams(t, "A", "B")

	standings, err := f.svc.ListStandings(ctx, f.tournamentID)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.ElementsMatch(t, ids, []int{standings[0].TeamID, standings[1].TeamID})

	_, err = f.svc.ListStandings(ctx, 999)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
