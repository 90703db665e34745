package adapthttp

import (
	"net/http"

	"github.com/WTomoharu/db-final-project/internal/domain"
)

func (s *Server) handleListWeights(w http.ResponseWriter, r *http.Request) {
	records, err := s.weight.List(r.Context(), userFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if records == nil {
		records = []domain.WeightRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"weightRecords": records})
}

func (s *Server) handleAddWeight(w http.ResponseWriter, r *http.Request) {
	weight, err := formFloat(r, "weight")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.weight.Record(r.Context(), userFrom(r).ID, weight); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	http.Redirect(w, r, "/weights", http.StatusFound)
}
