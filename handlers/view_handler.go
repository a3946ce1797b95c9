package handlers

import (
	"net/http"

	"github.com/Dosada05/tabbit/services"
	"github.com/Dosada05/tabbit/views"
)

type ViewHandler struct {
	tournamentService services.TournamentService
}

func NewViewHandler(ts services.TournamentService) *ViewHandler {
	return &ViewHandler{tournamentService: ts}
}

// Ping is the liveness probe.
func Ping(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, "ready", nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Tournaments renders the HTML overview at GET /.
func (h *ViewHandler) Tournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.ListTournaments(r.Context(), services.ListTournamentsInput{
		Page: services.DefaultPage(),
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.TournamentsPage(tournaments).Render(r.Context(), w); err != nil {
		logError(r, "failed to render tournaments page", err)
	}
}
