package repository

import (
	"context"
	"fmt"

	"github.com/cloud-wave-best-zizon/till-service/internal/domain"
)

// UserRepository is the static till roster.
type UserRepository struct {
	users []domain.User
}

func NewUserRepository(users []domain.User) *UserRepository {
	return &UserRepository{users: append([]domain.User(nil), users...)}
}

func (r *UserRepository) FindByPIN(_ context.Context, pin string) (domain.User, error) {
	for _, u := range r.users {
		if u.PIN == pin {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("user: %w", domain.ErrNotFound)
}
