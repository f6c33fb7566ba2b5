package service

import (
	"context"
	"sync"

	"github.com/cloud-wave-best-zizon/till-service/internal/domain"
	"github.com/google/uuid"
)

// Session tracks who is operating the till.
type Session struct {
	mu     sync.RWMutex
	id     string
	user   *domain.User
	authFn func(ctx context.Context, pin string) (domain.User, error)
}

func NewSession(catalog *CatalogService) *Session {
	return &Session{
		id:     uuid.NewString(),
		authFn: catalog.Authenticate,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Login(ctx context.Context, pin string) (domain.User, error) {
	user, err := s.authFn(ctx, pin)
	if err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return user, nil
}

func (s *Session) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// User returns the logged-in operator or ErrNotAuthenticated.
func (s *Session) User() (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return domain.User{}, domain.ErrNotAuthenticated
	}
	return *s.user, nil
}
