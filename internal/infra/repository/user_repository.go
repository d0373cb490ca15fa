package repository

import (
	"tillpoint/internal/domain/user"
	"tillpoint/internal/infra/store"
	"tillpoint/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrUserNotFound = errs.New("user not found")

type UserRepository struct {
	store *store.Store
}

func NewUserRepository(st *store.Store) *UserRepository {
	return &UserRepository{store: st}
}

func (r *UserRepository) FindByUsername(username string) (*user.User, error) {
	rec, ok := r.store.UserByUsername(username)
	if !ok {
		return nil, ErrUserNotFound
	}
	return store.ToUser(rec)
}

func (r *UserRepository) FindByID(userID uuid.UUID) (*user.User, error) {
	rec, ok := r.store.UserByID(userID)
	if !ok {
		return nil, ErrUserNotFound
	}
	return store.ToUser(rec)
}
