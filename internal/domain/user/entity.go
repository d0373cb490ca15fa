package user

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyUsername = errors.New("username cannot be empty")
)

type User struct {
	id           uuid.UUID
	username     string
	fullName     string
	role         Role
	passwordHash string
	active       bool
}

func NewUser(id uuid.UUID, username, fullName string, role Role, passwordHash string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &User{
		id:           id,
		username:     username,
		fullName:     fullName,
		role:         role,
		passwordHash: passwordHash,
		active:       true,
	}, nil
}

func ReconstructUser(id uuid.UUID, username, fullName string, role Role, passwordHash string, active bool) *User {
	return &User{
		id:           id,
		username:     username,
		fullName:     fullName,
		role:         role,
		passwordHash: passwordHash,
		active:       active,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) FullName() string     { return u.fullName }
func (u *User) Role() Role           { return u.role }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) IsActive() bool       { return u.active }
