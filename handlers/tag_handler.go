package handlers

import (
	"net/http"

	"github.com/Dosada05/tabbit/services"
)

type TagHandler struct {
	tagService services.TagService
}

func NewTagHandler(ts services.TagService) *TagHandler {
	return &TagHandler{tagService: ts}
}

func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTagInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tag, err := h.tagService.CreateTag(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tag": tag}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TagHandler) GetTagByID(w http.ResponseWriter, r *http.Request) {
	tagID, err := getIDFromURL(r, "tagID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tag, err := h.tagService.GetTagByID(r.Context(), tagID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tag": tag}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	input := services.ListTagsInput{
		Name:         q.String("name"),
		TournamentID: q.Int("tournament_id"),
		SpeakerID:    q.Int("speaker_id"),
		JudgeID:      q.Int("judge_id"),
		Page:         q.Page(),
	}
	if !q.Valid(w, r) {
		return
	}

	tags, err := h.tagService.ListTags(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tags": tags}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TagHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	tagID, err := getIDFromURL(r, "tagID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateTagInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tag, err := h.tagService.UpdateTag(r.Context(), tagID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tag": tag}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	tagID, err := getIDFromURL(r, "tagID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tagService.DeleteTag(r.Context(), tagID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddSpeakers обрабатывает POST /v1/tags/{tagID}/speakers с телом {"ids": [...]}.
func (h *TagHandler) AddSpeakers(w http.ResponseWriter, r *http.Request) {
	tagID, err := getIDFromURL(r, "tagID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.AddTagSpeakersInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	speakers, err := h.tagService.AddSpeakers(r.Context(), tagID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"speakers": speakers}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TagHandler) ListSpeakers(w http.ResponseWriter, r *http.Request) {
	tagID, err := getIDFromURL(r, "tagID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	speakers, err := h.tagService.ListSpeakers(r.Context(), tagID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"speakers": speakers}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TagHandler) RemoveSpeaker(w http.ResponseWriter, r *http.Request) {
	tagID, err := getIDFromURL(r, "tagID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	speakerID, err := getIDFromURL(r, "speakerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tagService.RemoveSpeaker(r.Context(), tagID, speakerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TagHandler) AddJudges(w http.ResponseWriter, r *http.Request) {
	tagID, err := getIDFromURL(r, "tagID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.AddTagJudgesInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	judges, err := h.tagService.AddJudges(r.Context(), tagID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"judges": judges}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TagHandler) ListJudges(w http.ResponseWriter, r *http.Request) {
	tagID, err := getIDFromURL(r, "tagID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	judges, err := h.tagService.ListJudges(r.Context(), tagID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"judges": judges}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TagHandler) RemoveJudge(w http.ResponseWriter, r *http.Request) {
	tagID, err := getIDFromURL(r, "tagID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	judgeID, err := getIDFromURL(r, "judgeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tagService.RemoveJudge(r.Context(), tagID, judgeID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
