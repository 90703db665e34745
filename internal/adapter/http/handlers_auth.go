// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"errors"
	"net/http"

	"github.com/WTomoharu/db-final-project/internal/app"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	var username *string
	if user, err := s.sessionUser(r); err == nil {
		username = &user.Username
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"title":    "Weight Tracker",
		"username": username,
	})
}

func (s *Server) handleDev(w http.ResponseWriter, r *http.Request) {
	title := "Please log in"
	if user, err := s.sessionUser(r); err == nil {
		title = "Welcome " + user.Username
	}
	writeJSON(w, http.StatusOK, map[string]any{"title": title})
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"page": "login"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	token, err := s.auth.Login(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if errors.Is(err, app.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleSignupForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"page": "signup"})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	_, err := s.auth.Signup(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if errors.Is(err, app.ErrUsernameTaken) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	_ = s.auth.Logout(r.Context(), cookie.Value)
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"user": userFrom(r)})
}

// handleChangeGoalWeight is the validated goal-weight path.
func (s *Server) handleChangeGoalWeight(w http.ResponseWriter, r *http.Request) {
	goal, err := formFloat(r, "goal_weight")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if goal <= 0 {
		writeError(w, http.StatusBadRequest, errors.New("target weight must be greater than 0"))
		return
	}

	if err := s.weight.SetGoalWeight(r.Context(), userFrom(r).ID, goal); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	http.Redirect(w, r, "/me", http.StatusFound)
}

// handleUpdateGoal is the legacy goal-weight path. Unlike /me/goal_weight it
// accepts any parseable value.
func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := formFloat(r, "goal_weight")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.weight.SetGoalWeight(r.Context(), userFrom(r).ID, goal); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	user, err := s.sessionUser(r)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"goal_weight": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"goal_weight": user.GoalWeight})
}
