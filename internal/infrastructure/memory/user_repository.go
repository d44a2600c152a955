package memory

import (
	"context"

	"github.com/jhoicas/comandas-api/internal/domain"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria. El email es único sin distinguir mayúsculas.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el repositorio.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email := entity.NormalizeEmail(user.Email)
	for _, u := range r.s.users {
		if entity.NormalizeEmail(u.Email) == email {
			return domain.ErrEmailAlreadyExists
		}
	}
	if _, ok := r.s.users[user.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	email = entity.NormalizeEmail(email)
	for _, u := range r.s.users {
		if entity.NormalizeEmail(u.Email) == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}
