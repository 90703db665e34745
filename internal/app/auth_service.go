// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"

	"github.com/WTomoharu/db-final-project/internal/domain"
)

var (
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken indicates that the username is already registered.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrNotAuthenticated indicates that no valid session accompanied the request.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrUserNotFound indicates that a session referenced a user that no longer exists.
	ErrUserNotFound = errors.New("user not found")
)

// AuthService handles signup, login and session resolution.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
	}
}

// Signup registers a new user. The weight fields start out null.
func (s *AuthService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}
	return s.users.Create(ctx, username, password)
}

// Login authenticates a user and creates a session. Unknown username and
// wrong password collapse into one error.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil || user == nil {
		return "", ErrInvalidCredentials
	}

	if !ConstantTimeCompare(user.Password, password) {
		return "", ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return "", err
	}

	if err := s.sessions.Create(ctx, user.ID, token); err != nil {
		return "", err
	}

	return token, nil
}

// Logout invalidates a session. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ResolveSession maps a session token to its user. It fails with
// ErrNotAuthenticated when the token is missing or unknown, and with
// ErrUserNotFound when the session references a deleted user. No password
// re-verification happens here; trust is delegated to the token's issuance
// at login.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotAuthenticated
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// LoginWithUser creates a session for an already authenticated identity
// (e.g. via SSO), auto-provisioning the account with a random password that
// can never match a form login.
func (s *AuthService) LoginWithUser(ctx context.Context, username string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		placeholder, err := generateToken()
		if err != nil {
			return "", err
		}
		user, err = s.users.Create(ctx, username, placeholder)
		if err != nil {
			// Creation may race a concurrent provision (unique constraint).
			user, err = s.users.GetByUsername(ctx, username)
			if err != nil || user == nil {
				return "", err
			}
		}
	}

	token, err := generateToken()
	if err != nil {
		return "", err
	}

	if err := s.sessions.Create(ctx, user.ID, token); err != nil {
		return "", err
	}

	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// ConstantTimeCompare performs a constant-time comparison of two strings.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
