package handlers

import (
	"net/http"

	"github.com/Dosada05/tabbit/services"
)

type SpeakerHandler struct {
	speakerService services.SpeakerService
}

func NewSpeakerHandler(s services.SpeakerService) *SpeakerHandler {
	return &SpeakerHandler{speakerService: s}
}

func (h *SpeakerHandler) CreateSpeaker(w http.ResponseWriter, r *http.Request) {
	var input services.CreateSpeakerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	speaker, err := h.speakerService.CreateSpeaker(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"speaker": speaker}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SpeakerHandler) GetSpeakerByID(w http.ResponseWriter, r *http.Request) {
	speakerID, err := getIDFromURL(r, "speakerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	speaker, err := h.speakerService.GetSpeakerByID(r.Context(), speakerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"speaker": speaker}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SpeakerHandler) ListSpeakers(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	input := services.ListSpeakersInput{
		Name:   q.String("name"),
		TeamID: q.Int("team_id"),
		Page:   q.Page(),
	}
	if !q.Valid(w, r) {
		return
	}

	speakers, err := h.speakerService.ListSpeakers(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"speakers": speakers}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SpeakerHandler) UpdateSpeaker(w http.ResponseWriter, r *http.Request) {
	speakerID, err := getIDFromURL(r, "speakerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateSpeakerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	speaker, err := h.speakerService.UpdateSpeaker(r.Context(), speakerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"speaker": speaker}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SpeakerHandler) DeleteSpeaker(w http.ResponseWriter, r *http.Request) {
	speakerID, err := getIDFromURL(r, "speakerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.speakerService.DeleteSpeaker(r.Context(), speakerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
