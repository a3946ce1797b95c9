package routes

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tabbit/handlers"
	"github.com/Dosada05/tabbit/middleware"
	"github.com/Dosada05/tabbit/realtime"
	"github.com/Dosada05/tabbit/repositories"
	"github.com/Dosada05/tabbit/services"
	"github.com/Dosada05/tabbit/testutil"
)

type testServer struct {
	t      *testing.T
	db     *sql.DB
	hub    *realtime.Hub
	router http.Handler
}

func newTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tournamentRepo := repositories.NewTournamentRepository(conn)
	teamRepo := repositories.NewTeamRepository(conn)
	speakerRepo := repositories.NewSpeakerRepository(conn)
	judgeRepo := repositories.NewJudgeRepository(conn)
	roundRepo := repositories.NewRoundRepository(conn)
	debateRepo := repositories.NewDebateRepository(conn)

	tournamentService := services.NewTournamentService(tournamentRepo)
	hub := realtime.NewHub(logger)
	drawService := services.NewDrawService(conn, tournamentRepo, roundRepo, debateRepo,
		repositories.NewStandingRepository(conn), hub, nil, logger,
		services.DrawServiceConfig{
			DefaultTeamsPerMatchup: 2,
			NewRand:                func() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) },
		})

	h := Handlers{
		Tournament: handlers.NewTournamentHandler(tournamentService, drawService),
		Team:       handlers.NewTeamHandler(services.NewTeamService(teamRepo, speakerRepo)),
		Speaker:    handlers.NewSpeakerHandler(services.NewSpeakerService(speakerRepo)),
		Judge:      handlers.NewJudgeHandler(services.NewJudgeService(judgeRepo)),
		Round:      handlers.NewRoundHandler(services.NewRoundService(roundRepo, nil, logger), drawService),
		Motion:     handlers.NewMotionHandler(services.NewMotionService(repositories.NewMotionRepository(conn))),
		Debate:     handlers.NewDebateHandler(services.NewDebateService(debateRepo)),
		Ballot: handlers.NewBallotHandler(services.NewBallotService(
			repositories.NewBallotRepository(conn),
			repositories.NewBallotSpeakerPointsRepository(conn),
			repositories.NewBallotTeamScoreRepository(conn),
		)),
		Tag:       handlers.NewTagHandler(services.NewTagService(repositories.NewTagRepository(conn))),
		WebSocket: handlers.NewWebSocketHandler(hub, opts.AllowedOrigins),
		View:      handlers.NewViewHandler(tournamentService),
	}

	if opts.Logger == nil {
		opts.Logger = logger
	}
	router := chi.NewRouter()
	SetupRoutes(router, h, opts)
	return &testServer{t: t, db: conn, hub: hub, router: router}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestPing(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := s.do(http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"ready"`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := s.do(http.MethodGet, "/v2/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "the requested resource could not be found", decode(t, rec)["error"])
}

func TestMethodNotAllowedIsJSON(t *testing.T) {
	s := newTestServer(t, Options{})
	tid := testutil.CreateTournament(t, s.db, "Euros")
	teamID := testutil.CreateTeam(t, s.db, tid, "Alpha")

	for _, path := range []string{"/v1/teams/" + strconv.Itoa(teamID), "/ping"} {
		rec := s.do(http.MethodPut, path, `{"name": "Beta"}`)
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, "the PUT method is not supported for this resource", decode(t, rec)["error"])
	}
}

func TestTournamentCRUD(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := s.do(http.MethodPost, "/v1/tournaments", `{"name": "Worlds", "abbreviation": "WUDC"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)["tournament"].(map[string]any)
	id := int(created["id"].(float64))
	assert.Equal(t, "Worlds", created["name"])
	path := "/v1/tournaments/" + strconv.Itoa(id)

	rec = s.do(http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "WUDC", decode(t, rec)["tournament"].(map[string]any)["abbreviation"])

	rec = s.do(http.MethodPatch, path, `{"abbreviation": null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode(t, rec)["tournament"].(map[string]any)
	assert.Nil(t, updated["abbreviation"])
	assert.Equal(t, "Worlds", updated["name"])

	rec = s.do(http.MethodGet, "/v1/tournaments?name=Worlds", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["tournaments"], 1)

	rec = s.do(http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "tournament not found", decode(t, rec)["error"])
}

func TestRequestErrors(t *testing.T) {
	s := newTestServer(t, Options{})
	tid := testutil.CreateTournament(t, s.db, "Euros")
	testutil.CreateTeam(t, s.db, tid, "Alpha")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"malformed JSON", http.MethodPost, "/v1/tournaments", `{"name":`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/v1/tournaments", `{"name": "x", "venue": "y"}`, http.StatusBadRequest},
		{"empty body", http.MethodPost, "/v1/tournaments", ``, http.StatusBadRequest},
		{"blank name", http.MethodPost, "/v1/tournaments", `{"name": "  "}`, http.StatusUnprocessableEntity},
		{"bad id", http.MethodGet, "/v1/tournaments/abc", ``, http.StatusBadRequest},
		{"missing team", http.MethodGet, "/v1/teams/999", ``, http.StatusNotFound},
		{"duplicate team", http.MethodPost, "/v1/teams", `{"tournament_id": ` + strconv.Itoa(tid) + `, "name": "Alpha"}`, http.StatusConflict},
		{"non-integer filter", http.MethodGet, "/v1/teams?tournament_id=x", ``, http.StatusUnprocessableEntity},
		{"negative offset", http.MethodGet, "/v1/teams?offset=-1", ``, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Contains(t, decode(t, rec), "error")
		})
	}
}

func TestValidationErrorListsFields(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := s.do(http.MethodGet, "/v1/tournaments?limit=abc", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	fields := decode(t, rec)["error"].(map[string]any)
	assert.Equal(t, "must be an integer", fields["limit"])
}

func TestDuplicateTeamMessage(t *testing.T) {
	s := newTestServer(t, Options{})
	tid := testutil.CreateTournament(t, s.db, "Euros")
	testutil.CreateTeam(t, s.db, tid, "Alpha")

	rec := s.do(http.MethodPost, "/v1/teams", `{"tournament_id": `+strconv.Itoa(tid)+`, "name": "Alpha"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "A team with this name already exists in this tournament", decode(t, rec)["error"])
}

func TestDrawEndpoints(t *testing.T) {
	s := newTestServer(t, Options{})
	tid := testutil.CreateTournament(t, s.db, "Euros")
	for _, name := range []string{"A", "B", "C", "D"} {
		testutil.CreateTeam(t, s.db, tid, name)
	}
	rid := testutil.CreateRound(t, s.db, tid, 1)
	drawPath := "/v1/rounds/" + strconv.Itoa(rid) + "/draw"

	rec := s.do(http.MethodPost, drawPath, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	draw := decode(t, rec)["draw"].(map[string]any)
	assert.Equal(t, float64(rid), draw["round_id"])
	debates := draw["debates"].([]any)
	require.Len(t, debates, 2)
	for _, d := range debates {
		assert.Len(t, d.(map[string]any)["teams"], 2)
	}

	rec = s.do(http.MethodGet, drawPath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["draw"].(map[string]any)["debates"], 2)

	rec = s.do(http.MethodGet, "/v1/rounds/"+strconv.Itoa(rid), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decode(t, rec)["round"].(map[string]any)["status"])

	rec = s.do(http.MethodPost, drawPath, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodGet, "/v1/tournaments/"+strconv.Itoa(tid)+"/standings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["standings"], 4)
}

func TestDrawInvalidConfiguration(t *testing.T) {
	s := newTestServer(t, Options{})
	tid := testutil.CreateTournament(t, s.db, "Euros")
	for _, name := range []string{"A", "B", "C"} {
		testutil.CreateTeam(t, s.db, tid, name)
	}
	rid := testutil.CreateRound(t, s.db, tid, 1)
	drawPath := "/v1/rounds/" + strconv.Itoa(rid) + "/draw"

	rec := s.do(http.MethodPost, drawPath, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "number of teams must be a multiple of 2", decode(t, rec)["error"])

	rec = s.do(http.MethodPost, drawPath, `{"teams_per_matchup": 3}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, decode(t, rec)["draw"].(map[string]any)["debates"], 1)

	rec = s.do(http.MethodPost, "/v1/rounds/999/draw", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTagMembers(t *testing.T) {
	s := newTestServer(t, Options{})
	tid := testutil.CreateTournament(t, s.db, "Euros")
	team := testutil.CreateTeam(t, s.db, tid, "Alpha")
	sp1 := testutil.CreateSpeaker(t, s.db, team, "Ann")
	sp2 := testutil.CreateSpeaker(t, s.db, team, "Bob")
	judge := testutil.CreateJudge(t, s.db, tid, "Jo")
	tag := testutil.CreateTag(t, s.db, tid, "Novice")
	base := "/v1/tags/" + strconv.Itoa(tag)

	body, err := json.Marshal(map[string][]int{"speaker_ids": {sp1, sp2}})
	require.NoError(t, err)
	rec := s.do(http.MethodPost, base+"/speakers", string(body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, decode(t, rec)["speakers"], 2)

	rec = s.do(http.MethodPost, base+"/judges", `{"judge_ids": [`+strconv.Itoa(judge)+`]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, base+"/judges", `{"judge_ids": []}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "judge_ids")

	rec = s.do(http.MethodPost, base+"/judges", `{"ids": [1]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, base+"/speakers/"+strconv.Itoa(sp1), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, base+"/speakers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["speakers"], 1)

	rec = s.do(http.MethodGet, "/v1/tags/999/judges", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTournamentsPage(t *testing.T) {
	s := newTestServer(t, Options{})
	testutil.CreateTournament(t, s.db, "Worlds <2025>")

	rec := s.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	rows := doc.Find("table#tournaments tbody tr")
	require.Equal(t, 1, rows.Length())
	assert.Equal(t, "Worlds <2025>", rows.Find("td.name").Text())
}

func TestRateLimitAppliesToAPIOnly(t *testing.T) {
	s := newTestServer(t, Options{RateLimiter: middleware.NewRateLimiter(1, 1)})

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/v1/tournaments", "").Code)
	rec := s.do(http.MethodGet, "/v1/tournaments", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/ping", "").Code)
}

func TestSwaggerDocIsServed(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := s.do(http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/v1/rounds/{roundID}/draw")
}

func TestWebSocketOriginCheck(t *testing.T) {
	s := newTestServer(t, Options{AllowedOrigins: []string{"https://tab.example"}})
	srv := httptest.NewServer(s.router)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		_ = s.hub.Run(ctx)
		close(stopped)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/tournaments/1"

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://tab.example"}})
	require.NoError(t, err)
	conn.Close()

	conn, _, err = websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err, "clients without an Origin header are accepted")
	conn.Close()
}
