package handlers

import (
	"net/http"

	"github.com/Dosada05/tabbit/services"
)

// BallotHandler serves ballots and the speaker points and team scores
// recorded on them.
type BallotHandler struct {
	ballotService services.BallotService
}

func NewBallotHandler(bs services.BallotService) *BallotHandler {
	return &BallotHandler{ballotService: bs}
}

func (h *BallotHandler) CreateBallot(w http.ResponseWriter, r *http.Request) {
	var input services.CreateBallotInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	ballot, err := h.ballotService.CreateBallot(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"ballot": ballot}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BallotHandler) GetBallotByID(w http.ResponseWriter, r *http.Request) {
	ballotID, err := getIDFromURL(r, "ballotID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	ballot, err := h.ballotService.GetBallotByID(r.Context(), ballotID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ballot": ballot}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BallotHandler) ListBallots(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	input := services.ListBallotsInput{
		DebateID: q.Int("debate_id"),
		JudgeID:  q.Int("judge_id"),
		Page:     q.Page(),
	}
	if !q.Valid(w, r) {
		return
	}

	ballots, err := h.ballotService.ListBallots(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ballots": ballots}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BallotHandler) UpdateBallot(w http.ResponseWriter, r *http.Request) {
	ballotID, err := getIDFromURL(r, "ballotID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateBallotInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	ballot, err := h.ballotService.UpdateBallot(r.Context(), ballotID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ballot": ballot}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BallotHandler) DeleteBallot(w http.ResponseWriter, r *http.Request) {
	ballotID, err := getIDFromURL(r, "ballotID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.ballotService.DeleteBallot(r.Context(), ballotID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *BallotHandler) CreateSpeakerPoints(w http.ResponseWriter, r *http.Request) {
	var input services.CreateSpeakerPointsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	points, err := h.ballotService.CreateSpeakerPoints(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"ballot_speaker_points": points}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BallotHandler) GetSpeakerPointsByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "pointsID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	points, err := h.ballotService.GetSpeakerPointsByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ballot_speaker_points": points}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BallotHandler) ListSpeakerPoints(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	input := services.ListSpeakerPointsInput{
		BallotID:  q.Int("ballot_id"),
		SpeakerID: q.Int("speaker_id"),
		Page:      q.Page(),
	}
	if !q.Valid(w, r) {
		return
	}

	points, err := h.ballotService.ListSpeakerPoints(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ballot_speaker_points": points}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BallotHandler) DeleteSpeakerPoints(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "pointsID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.ballotService.DeleteSpeakerPoints(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *BallotHandler) CreateTeamScore(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTeamScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	score, err := h.ballotService.CreateTeamScore(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"ballot_team_score": score}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BallotHandler) GetTeamScoreByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "scoreID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	score, err := h.ballotService.GetTeamScoreByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ballot_team_score": score}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BallotHandler) ListTeamScores(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	input := services.ListTeamScoresInput{
		BallotID: q.Int("ballot_id"),
		TeamID:   q.Int("team_id"),
		Page:     q.Page(),
	}
	if !q.Valid(w, r) {
		return
	}

	scores, err := h.ballotService.ListTeamScores(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ballot_team_scores": scores}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BallotHandler) DeleteTeamScore(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "scoreID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.ballotService.DeleteTeamScore(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
