package handlers

import (
	"net/http"

	"github.com/Dosada05/tabbit/models"
	"github.com/Dosada05/tabbit/services"
)

type RoundHandler struct {
	roundService services.RoundService
	drawService  services.DrawService
}

func NewRoundHandler(rs services.RoundService, ds services.DrawService) *RoundHandler {
	return &RoundHandler{
		roundService: rs,
		drawService:  ds,
	}
}

func (h *RoundHandler) CreateRound(w http.ResponseWriter, r *http.Request) {
	var input services.CreateRoundInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round, err := h.roundService.CreateRound(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoundHandler) GetRoundByID(w http.ResponseWriter, r *http.Request) {
	roundID, err := getIDFromURL(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round, err := h.roundService.GetRoundByID(r.Context(), roundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoundHandler) ListRounds(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	input := services.ListRoundsInput{
		Name:         q.String("name"),
		TournamentID: q.Int("tournament_id"),
		Page:         q.Page(),
	}
	if status := q.String("status"); status != nil {
		s := models.RoundStatus(*status)
		input.Status = &s
	}
	if !q.Valid(w, r) {
		return
	}

	rounds, err := h.roundService.ListRounds(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rounds": rounds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoundHandler) UpdateRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := getIDFromURL(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateRoundInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round, err := h.roundService.UpdateRound(r.Context(), roundID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoundHandler) DeleteRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := getIDFromURL(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.roundService.DeleteRound(r.Context(), roundID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GenerateDraw godoc
// @Summary Generate the draw of a round
// @Description Brackets teams by points from earlier rounds, shuffles each bracket and pulls teams up where needed.
// @Tags draws
// @Accept json
// @Produce json
// @Param roundID path int true "Round ID"
// @Param input body services.GenerateDrawInput false "Matchup size, defaults to server config"
// @Success 201 {object} map[string]models.RoundDraw
// @Failure 404,409,422 {object} map[string]interface{}
// @Router /v1/rounds/{roundID}/draw [post]
func (h *RoundHandler) GenerateDraw(w http.ResponseWriter, r *http.Request) {
	roundID, err := getIDFromURL(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.GenerateDrawInput
	if err := readOptionalJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	draw, err := h.drawService.GenerateDraw(r.Context(), roundID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"draw": draw}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RoundHandler) GetDraw(w http.ResponseWriter, r *http.Request) {
	roundID, err := getIDFromURL(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	draw, err := h.drawService.GetDraw(r.Context(), roundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"draw": draw}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
