package adapthttp

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/WTomoharu/db-final-project/internal/app"
	"github.com/WTomoharu/db-final-project/internal/domain"
)

func (s *Server) handleMyGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.group.ListForUser(r.Context(), userFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if groups == nil {
		groups = []domain.Group{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

func (s *Server) handleCreateGroupForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"page": "group_create"})
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	if _, err := s.group.Create(r.Context(), name, userFrom(r).ID); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	http.Redirect(w, r, "/groups", http.StatusFound)
}

func (s *Server) handleGroupDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	group, isMember, reports, err := s.group.Detail(r.Context(), userFrom(r).ID, id)
	if errors.Is(err, app.ErrGroupNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if reports == nil {
		reports = []domain.Report{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"group":    group,
		"isMember": isMember,
		"reports":  reports,
	})
}

func (s *Server) handleJoinGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.group.Join(r.Context(), userFrom(r).ID, id); err != nil {
		s.writeGroupError(w, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/groups/%d", id), http.StatusFound)
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.group.Delete(r.Context(), userFrom(r).ID, id); err != nil {
		s.writeGroupError(w, err)
		return
	}
	http.Redirect(w, r, "/groups", http.StatusFound)
}

func (s *Server) handlePostReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.group.PostReport(r.Context(), userFrom(r).ID, id, r.FormValue("comment")); err != nil {
		s.writeGroupError(w, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/groups/%d", id), http.StatusFound)
}

func (s *Server) writeGroupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrGroupNotFound), errors.Is(err, app.ErrNoWeightRecord):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, app.ErrNotMember):
		writeError(w, http.StatusForbidden, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
