package handlers

import (
	"net/http"

	"github.com/Dosada05/tabbit/services"
)

type MotionHandler struct {
	motionService services.MotionService
}

func NewMotionHandler(s services.MotionService) *MotionHandler {
	return &MotionHandler{motionService: s}
}

func (h *MotionHandler) CreateMotion(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMotionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	motion, err := h.motionService.CreateMotion(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"motion": motion}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MotionHandler) GetMotionByID(w http.ResponseWriter, r *http.Request) {
	motionID, err := getIDFromURL(r, "motionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	motion, err := h.motionService.GetMotionByID(r.Context(), motionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"motion": motion}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MotionHandler) ListMotions(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	input := services.ListMotionsInput{
		RoundID: q.Int("round_id"),
		Text:    q.String("text"),
		Page:    q.Page(),
	}
	if !q.Valid(w, r) {
		return
	}

	motions, err := h.motionService.ListMotions(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"motions": motions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MotionHandler) UpdateMotion(w http.ResponseWriter, r *http.Request) {
	motionID, err := getIDFromURL(r, "motionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateMotionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	motion, err := h.motionService.UpdateMotion(r.Context(), motionID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"motion": motion}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MotionHandler) DeleteMotion(w http.ResponseWriter, r *http.Request) {
	motionID, err := getIDFromURL(r, "motionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.motionService.DeleteMotion(r.Context(), motionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
