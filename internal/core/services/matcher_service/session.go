package matcher_service

import (
	"errors"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
)

// ErrConfirmationRequired is returned when leaving AI mode without confirmation.
var ErrConfirmationRequired = errors.New("switching to keyword search requires confirmation")

const KeywordModeDisclaimer = "Keyword search is less advanced and relies on exact matches. Continue?"

// Session holds the search mode of one visitor. The mode is never persisted.
type Session struct {
	mu   sync.Mutex
	mode domain.SearchMode
}

func NewSession() *Session {
	return &Session{mode: domain.SearchModeAI}
}

func (s *Session) Mode() domain.SearchMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SwitchMode applies a mode change. Going to keyword search needs confirmed=true,
// going back to AI is unconditional. Returns whether the mode changed.
func (s *Session) SwitchMode(mode domain.SearchMode, confirmed bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == s.mode {
		return false, nil
	}

	if mode == domain.SearchModeKeyword && !confirmed {
		return false, ErrConfirmationRequired
	}

	s.mode = mode
	return true, nil
}

// Sessions keeps the most recent visitor sessions keyed by session id.
type Sessions struct {
	cache *lru.Cache[string, *Session]
}

func NewSessions(size int) (*Sessions, error) {
	cache, err := lru.New[string, *Session](size)
	if err != nil {
		return nil, err
	}
	return &Sessions{cache: cache}, nil
}

// Get returns the session for id, creating it in AI mode on first use.
func (s *Sessions) Get(id string) *Session {
	if session, ok := s.cache.Get(id); ok {
		return session
	}
	session := NewSession()
	// при гонке побеждает первая сохранённая сессия
	if previous, ok, _ := s.cache.PeekOrAdd(id, session); ok {
		return previous
	}
	return session
}
