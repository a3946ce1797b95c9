package handlers

import (
	"net/http"

	"github.com/Dosada05/tabbit/services"
)

type JudgeHandler struct {
	judgeService services.JudgeService
}

func NewJudgeHandler(s services.JudgeService) *JudgeHandler {
	return &JudgeHandler{judgeService: s}
}

func (h *JudgeHandler) CreateJudge(w http.ResponseWriter, r *http.Request) {
	var input services.CreateJudgeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	judge, err := h.judgeService.CreateJudge(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"judge": judge}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JudgeHandler) GetJudgeByID(w http.ResponseWriter, r *http.Request) {
	judgeID, err := getIDFromURL(r, "judgeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	judge, err := h.judgeService.GetJudgeByID(r.Context(), judgeID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"judge": judge}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JudgeHandler) ListJudges(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	input := services.ListJudgesInput{
		Name:         q.String("name"),
		TournamentID: q.Int("tournament_id"),
		Page:         q.Page(),
	}
	if !q.Valid(w, r) {
		return
	}

	judges, err := h.judgeService.ListJudges(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"judges": judges}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JudgeHandler) UpdateJudge(w http.ResponseWriter, r *http.Request) {
	judgeID, err := getIDFromURL(r, "judgeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateJudgeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	judge, err := h.judgeService.UpdateJudge(r.Context(), judgeID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"judge": judge}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JudgeHandler) DeleteJudge(w http.ResponseWriter, r *http.Request) {
	judgeID, err := getIDFromURL(r, "judgeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.judgeService.DeleteJudge(r.Context(), judgeID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
