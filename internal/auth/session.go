package auth

import (
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the signed-in user as seen by a client. It satisfies
// valuations.Session and supplies the bearer token for remote calls.
type Session struct {
	mu     sync.RWMutex
	userID string
	token  string
}

// NewSession creates a session for userID authenticated by token.
func NewSession(userID, token string) *Session {
	return &Session{userID: userID, token: token}
}

// SessionFromToken builds a session from a token issued by this server.
// The signature is not checked here; the server checks it on every call.
func SessionFromToken(token string) (*Session, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user_id", ErrInvalidToken)
	}
	return NewSession(claims.UserID, token), nil
}

// CurrentUserID returns the signed-in user's ID, or "" when signed out.
func (s *Session) CurrentUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Token returns the bearer token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set replaces the signed-in user.
func (s *Session) Set(userID, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.token = token
}

// Clear signs the user out.
func (s *Session) Clear() {
	s.Set("", "")
}
