package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"

	"github.com/Dosada05/tabbit/draw"
	"github.com/Dosada05/tabbit/models"
	"github.com/Dosada05/tabbit/realtime"
	"github.com/Dosada05/tabbit/repositories"
	"github.com/Dosada05/tabbit/storage"
)

type DrawService interface {
	GenerateDraw(ctx context.Context, roundID int, input GenerateDrawInput) (*models.RoundDraw, error)
	GetDraw(ctx context.Context, roundID int) (*models.RoundDraw, error)
	ListStandings(ctx context.Context, tournamentID int) ([]models.TeamStanding, error)
}

type GenerateDrawInput struct {
	TeamsPerMatchup *int `json:"teams_per_matchup"`
}

// Broadcaster pushes messages to websocket rooms.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type DrawServiceConfig struct {
	DefaultTeamsPerMatchup int
	// NewRand returns the random source of one draw. Nil uses the global source.
	NewRand func() *rand.Rand
}

type drawService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	roundRepo      repositories.RoundRepository
	debateRepo     repositories.DebateRepository
	standingRepo   repositories.StandingRepository
	broadcaster    Broadcaster
	uploader       storage.FileUploader
	logger         *slog.Logger
	cfg            DrawServiceConfig
}

func NewDrawService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	roundRepo repositories.RoundRepository,
	debateRepo repositories.DebateRepository,
	standingRepo repositories.StandingRepository,
	broadcaster Broadcaster,
	uploader storage.FileUploader,
	logger *slog.Logger,
	cfg DrawServiceConfig,
) DrawService {
	if logger == nil {
		logger = slog.Default()
	}
	if uploader == nil {
		uploader = storage.NopUploader{}
	}
	if cfg.DefaultTeamsPerMatchup == 0 {
		cfg.DefaultTeamsPerMatchup = 2
	}
	return &drawService{
		db:             db,
		tournamentRepo: tournamentRepo,
		roundRepo:      roundRepo,
		debateRepo:     debateRepo,
		standingRepo:   standingRepo,
		broadcaster:    broadcaster,
		uploader:       uploader,
		logger:         logger,
		cfg:            cfg,
	}
}

// DrawArchiveKey is the object key a released draw is archived under.
func DrawArchiveKey(roundID int) string {
	return "draws/round-" + strconv.Itoa(roundID) + ".json"
}

func (s *drawService) rng() *rand.Rand {
	if s.cfg.NewRand == nil {
		return nil
	}
	return s.cfg.NewRand()
}

func (s *drawService) GenerateDraw(ctx context.Context, roundID int, input GenerateDrawInput) (result *models.RoundDraw, err error) {
	teamsPerMatchup := s.cfg.DefaultTeamsPerMatchup
	if input.TeamsPerMatchup != nil {
		teamsPerMatchup = *input.TeamsPerMatchup
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.Error("draw rollback failed", "round_id", roundID, "error", rbErr)
			}
		}
	}()

	// Блокируем раунд до подсчёта дебатов: параллельный запрос дождётся коммита
	// и увидит уже созданную жеребьёвку.
	if err = s.roundRepo.Lock(ctx, tx, roundID); err != nil {
		return nil, handleRepositoryError(err, "lock round")
	}

	round, err := s.roundRepo.GetByID(ctx, tx, roundID)
	if err != nil {
		return nil, handleRepositoryError(err, "get round")
	}

	existing, err := s.debateRepo.CountByRound(ctx, tx, roundID)
	if err != nil {
		return nil, handleRepositoryError(err, "count debates")
	}
	if existing > 0 {
		return nil, ErrDrawAlreadyExists
	}

	before := round.Sequence
	standings, err := s.standingRepo.ListByTournament(ctx, tx, round.TournamentID, &before)
	if err != nil {
		return nil, handleRepositoryError(err, "load standings")
	}

	pool := draw.Pool{Teams: make([]draw.Team, len(standings))}
	for i, st := range standings {
		pool.Teams[i] = draw.Team{ID: st.TeamID, TeamPoints: st.TeamPoints, SpeakerPoints: st.SpeakerPoints}
	}

	built, err := draw.Build(pool, draw.Config{TeamsPerMatchup: teamsPerMatchup}, s.rng())
	if err != nil {
		return nil, &DrawConfigError{Message: err.Error(), Err: err}
	}

	for _, matchup := range built.Matchups {
		debate := &models.Debate{RoundID: roundID}
		if err = s.debateRepo.Create(ctx, tx, debate); err != nil {
			return nil, handleRepositoryError(err, "create debate")
		}
		for position, team := range matchup {
			dt := models.DebateTeam{DebateID: debate.ID, TeamID: team.ID, Position: position}
			if err = s.debateRepo.AddTeam(ctx, tx, dt); err != nil {
				return nil, handleRepositoryError(err, "add debate team")
			}
		}
	}

	if round.Status == models.RoundStatusDraft {
		if err = s.roundRepo.UpdateStatus(ctx, tx, roundID, models.RoundStatusReady); err != nil {
			return nil, handleRepositoryError(err, "update round status")
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit draw: %w", err)
	}

	s.logger.Info("draw generated",
		"round_id", roundID,
		"tournament_id", round.TournamentID,
		"teams", len(pool.Teams),
		"debates", len(built.Matchups),
	)

	result, err = s.loadDraw(ctx, round)
	if err != nil {
		return nil, err
	}
	s.release(ctx, result)
	return result, nil
}

// release notifies the tournament room and archives the draw. Failures are
// logged only, the draw is already committed.
func (s *drawService) release(ctx context.Context, rd *models.RoundDraw) {
	if s.broadcaster != nil {
		room := realtime.TournamentRoom(rd.TournamentID)
		s.broadcaster.BroadcastToRoom(room, realtime.Message{
			Type:    realtime.MessageDrawReleased,
			Payload: rd,
			RoomID:  room,
		})
	}

	body, err := json.Marshal(rd)
	if err != nil {
		s.logger.Error("failed to encode draw archive", "round_id", rd.RoundID, "error", err)
		return
	}
	res, err := s.uploader.Upload(ctx, DrawArchiveKey(rd.RoundID), "application/json", bytes.NewReader(body))
	if err != nil {
		s.logger.Error("failed to archive draw", "round_id", rd.RoundID, "error", err)
		return
	}
	s.logger.Debug("draw archived", "round_id", rd.RoundID, "key", res.Key, "location", res.Location)
}

func (s *drawService) GetDraw(ctx context.Context, roundID int) (*models.RoundDraw, error) {
	round, err := s.roundRepo.GetByID(ctx, nil, roundID)
	if err != nil {
		return nil, handleRepositoryError(err, "get round")
	}
	return s.loadDraw(ctx, round)
}

func (s *drawService) loadDraw(ctx context.Context, round *models.Round) (*models.RoundDraw, error) {
	debates, err := s.debateRepo.ListDrawByRound(ctx, round.ID)
	if err != nil {
		return nil, handleRepositoryError(err, "load draw")
	}
	return &models.RoundDraw{
		RoundID:      round.ID,
		TournamentID: round.TournamentID,
		Debates:      debates,
	}, nil
}

func (s *drawService) ListStandings(ctx context.Context, tournamentID int) ([]models.TeamStanding, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}
	standings, err := s.standingRepo.ListByTournament(ctx, nil, tournamentID, nil)
	if err != nil {
		return nil, handleRepositoryError(err, "list standings")
	}
	return standings, nil
}
