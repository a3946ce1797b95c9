package routes

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/tabbit/docs" // регистрирует swagger-документ
	"github.com/Dosada05/tabbit/handlers"
	"github.com/Dosada05/tabbit/middleware"
)

type Handlers struct {
	Tournament *handlers.TournamentHandler
	Team       *handlers.TeamHandler
	Speaker    *handlers.SpeakerHandler
	Judge      *handlers.JudgeHandler
	Round      *handlers.RoundHandler
	Motion     *handlers.MotionHandler
	Debate     *handlers.DebateHandler
	Ballot     *handlers.BallotHandler
	Tag        *handlers.TagHandler
	WebSocket  *handlers.WebSocketHandler
	View       *handlers.ViewHandler
}

type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// RateLimiter is applied to /v1 only. Nil disables limiting.
	RateLimiter *middleware.RateLimiter
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/ping", handlers.Ping)
	router.Get("/", h.View.Tournaments)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// WebSocket не проходит через Timeout: соединение долгоживущее
	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	router.Route("/v1", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(30 * time.Second))
		if opts.RateLimiter != nil {
			r.Use(opts.RateLimiter.Handler)
		}

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", h.Tournament.ListTournaments)
			r.Post("/", h.Tournament.CreateTournament)
			r.Route("/{tournamentID}", func(r chi.Router) {
				r.Get("/", h.Tournament.GetTournamentByID)
				r.Patch("/", h.Tournament.UpdateTournament)
				r.Delete("/", h.Tournament.DeleteTournament)
				r.Get("/standings", h.Tournament.ListStandings)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", h.Team.ListTeams)
			r.Post("/", h.Team.CreateTeam)
			r.Get("/{teamID}", h.Team.GetTeamByID)
			r.Patch("/{teamID}", h.Team.UpdateTeam)
			r.Delete("/{teamID}", h.Team.DeleteTeam)
		})

		r.Route("/speakers", func(r chi.Router) {
			r.Get("/", h.Speaker.ListSpeakers)
			r.Post("/", h.Speaker.CreateSpeaker)
			r.Get("/{speakerID}", h.Speaker.GetSpeakerByID)
			r.Patch("/{speakerID}", h.Speaker.UpdateSpeaker)
			r.Delete("/{speakerID}", h.Speaker.DeleteSpeaker)
		})

		r.Route("/judges", func(r chi.Router) {
			r.Get("/", h.Judge.ListJudges)
			r.Post("/", h.Judge.CreateJudge)
			r.Get("/{judgeID}", h.Judge.GetJudgeByID)
			r.Patch("/{judgeID}", h.Judge.UpdateJudge)
			r.Delete("/{judgeID}", h.Judge.DeleteJudge)
		})

		r.Route("/rounds", func(r chi.Router) {
			r.Get("/", h.Round.ListRounds)
			r.Post("/", h.Round.CreateRound)
			r.Route("/{roundID}", func(r chi.Router) {
				r.Get("/", h.Round.GetRoundByID)
				r.Patch("/", h.Round.UpdateRound)
				r.Delete("/", h.Round.DeleteRound)
				r.Get("/draw", h.Round.GetDraw)
				r.Post("/draw", h.Round.GenerateDraw)
			})
		})

		r.Route("/motions", func(r chi.Router) {
			r.Get("/", h.Motion.ListMotions)
			r.Post("/", h.Motion.CreateMotion)
			r.Get("/{motionID}", h.Motion.GetMotionByID)
			r.Patch("/{motionID}", h.Motion.UpdateMotion)
			r.Delete("/{motionID}", h.Motion.DeleteMotion)
		})

		r.Route("/debates", func(r chi.Router) {
			r.Get("/", h.Debate.ListDebates)
			r.Post("/", h.Debate.CreateDebate)
			r.Get("/{debateID}", h.Debate.GetDebateByID)
			r.Patch("/{debateID}", h.Debate.UpdateDebate)
			r.Delete("/{debateID}", h.Debate.DeleteDebate)
		})

		r.Route("/ballots", func(r chi.Router) {
			r.Get("/", h.Ballot.ListBallots)
			r.Post("/", h.Ballot.CreateBallot)
			r.Get("/{ballotID}", h.Ballot.GetBallotByID)
			r.Patch("/{ballotID}", h.Ballot.UpdateBallot)
			r.Delete("/{ballotID}", h.Ballot.DeleteBallot)
		})

		r.Route("/ballot-speaker-points", func(r chi.Router) {
			r.Get("/", h.Ballot.ListSpeakerPoints)
			r.Post("/", h.Ballot.CreateSpeakerPoints)
			r.Get("/{pointsID}", h.Ballot.GetSpeakerPointsByID)
			r.Delete("/{pointsID}", h.Ballot.DeleteSpeakerPoints)
		})

		r.Route("/ballot-team-scores", func(r chi.Router) {
			r.Get("/", h.Ballot.ListTeamScores)
			r.Post("/", h.Ballot.CreateTeamScore)
			r.Get("/{scoreID}", h.Ballot.GetTeamScoreByID)
			r.Delete("/{scoreID}", h.Ballot.DeleteTeamScore)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", h.Tag.ListTags)
			r.Post("/", h.Tag.CreateTag)
			r.Route("/{tagID}", func(r chi.Router) {
				r.Get("/", h.Tag.GetTagByID)
				r.Patch("/", h.Tag.UpdateTag)
				r.Delete("/", h.Tag.DeleteTag)

				r.Get("/speakers", h.Tag.ListSpeakers)
				r.Post("/speakers", h.Tag.AddSpeakers)
				r.Delete("/speakers/{speakerID}", h.Tag.RemoveSpeaker)

				r.Get("/judges", h.Tag.ListJudges)
				r.Post("/judges", h.Tag.AddJudges)
				r.Delete("/judges/{judgeID}", h.Tag.RemoveJudge)
			})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "the requested resource could not be found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "the "+r.Method+" method is not supported for this resource")
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
