package adapthttp

import (
	"net/http"

	"github.com/WTomoharu/db-final-project/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth   *app.AuthService
	weight *app.WeightService
	group  *app.GroupService
	oidc   *OIDCConfig
}

// New creates a Server wired to the given application services. oidcCfg may
// be nil when SSO is not configured.
func New(auth *app.AuthService, weight *app.WeightService, group *app.GroupService, oidcCfg *OIDCConfig) *Server {
	return &Server{auth: auth, weight: weight, group: group, oidc: oidcCfg}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /dev", s.handleDev)

	mux.HandleFunc("GET /login", s.handleLoginForm)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /signup", s.handleSignupForm)
	mux.HandleFunc("POST /signup", s.handleSignup)
	mux.HandleFunc("GET /logout", s.handleLogout)
	mux.HandleFunc("POST /logout", s.handleLogout)

	mux.HandleFunc("POST /update-goal", s.requireAuth(s.handleUpdateGoal))
	mux.HandleFunc("GET /get-goal", s.handleGetGoal)
	mux.HandleFunc("GET /me", s.requireAuth(s.handleMe))
	mux.HandleFunc("POST /me/goal_weight", s.requireAuth(s.handleChangeGoalWeight))

	mux.HandleFunc("GET /weights", s.requireAuth(s.handleListWeights))
	mux.HandleFunc("POST /weights", s.requireAuth(s.handleAddWeight))

	mux.HandleFunc("GET /groups", s.requireAuth(s.handleMyGroups))
	mux.HandleFunc("GET /groups/create", s.requireAuth(s.handleCreateGroupForm))
	mux.HandleFunc("POST /groups/create", s.requireAuth(s.handleCreateGroup))
	mux.HandleFunc("GET /groups/{id}", s.requireAuth(s.handleGroupDetail))
	mux.HandleFunc("POST /groups/{id}/join", s.requireAuth(s.handleJoinGroup))
	mux.HandleFunc("POST /groups/{id}/delete", s.requireAuth(s.handleDeleteGroup))
	mux.HandleFunc("POST /groups/{id}/weights", s.requireAuth(s.handlePostReport))

	if s.oidc != nil && s.oidc.Enabled {
		mux.HandleFunc("GET /auth/sso/login", s.handleSSOLogin)
		mux.HandleFunc("GET /auth/sso/callback", s.handleSSOCallback)
	}

	return withLogging(mux)
}
