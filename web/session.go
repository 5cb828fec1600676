package web

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
)

const sessionCookie = "session_token"

// sessionStore holds active login sessions in memory, keyed by opaque token.
type sessionStore struct {
	mu     sync.Mutex
	tokens map[string]string // token -> username
}

func newSessionStore() *sessionStore {
	return &sessionStore{tokens: make(map[string]string)}
}

// create registers a new session for username and returns its token.
func (s *sessionStore) create(username string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = username
	s.mu.Unlock()
	return token
}

// lookup resolves a token to its username.
func (s *sessionStore) lookup(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.tokens[token]
	return user, ok
}

// drop invalidates a token.
func (s *sessionStore) drop(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// currentUser resolves the request's session cookie to a logged-in username.
func (s *sessionStore) currentUser(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}
	return s.lookup(c.Value)
}
