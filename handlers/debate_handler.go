package handlers

import (
	"net/http"

	"github.com/Dosada05/tabbit/services"
)

type DebateHandler struct {
	debateService services.DebateService
}

func NewDebateHandler(s services.DebateService) *DebateHandler {
	return &DebateHandler{debateService: s}
}

func (h *DebateHandler) CreateDebate(w http.ResponseWriter, r *http.Request) {
	var input services.CreateDebateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	debate, err := h.debateService.CreateDebate(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"debate": debate}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DebateHandler) GetDebateByID(w http.ResponseWriter, r *http.Request) {
	debateID, err := getIDFromURL(r, "debateID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	debate, err := h.debateService.GetDebateByID(r.Context(), debateID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"debate": debate}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DebateHandler) ListDebates(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	input := services.ListDebatesInput{
		RoundID: q.Int("round_id"),
		Page:    q.Page(),
	}
	if !q.Valid(w, r) {
		return
	}

	debates, err := h.debateService.ListDebates(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"debates": debates}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DebateHandler) UpdateDebate(w http.ResponseWriter, r *http.Request) {
	debateID, err := getIDFromURL(r, "debateID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateDebateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	debate, err := h.debateService.UpdateDebate(r.Context(), debateID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"debate": debate}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DebateHandler) DeleteDebate(w http.ResponseWriter, r *http.Request) {
	debateID, err := getIDFromURL(r, "debateID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.debateService.DeleteDebate(r.Context(), debateID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
