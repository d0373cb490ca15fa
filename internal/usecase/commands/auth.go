package commands

import (
	"context"

	"tillpoint/internal/domain/user"
	"tillpoint/internal/pkg/errs"
	"tillpoint/internal/pkg/password"

	"github.com/google/uuid"
)

// TokenIssuer signs access tokens; implemented by the jwt service.
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, role user.Role) (string, error)
}

type LoginResult struct {
	Token    string
	UserID   uuid.UUID
	Username string
	Role     user.Role
}

type Authenticator struct {
	users  UserReader
	tokens TokenIssuer
}

func NewAuthenticator(users UserReader, tokens TokenIssuer) *Authenticator {
	return &Authenticator{users: users, tokens: tokens}
}

// Login verifies credentials and issues a signed token. Unknown users,
// wrong passwords, and deactivated accounts all produce the same error so
// the response does not leak which one it was.
func (a *Authenticator) Login(ctx context.Context, username, plainPassword string) (LoginResult, error) {
	u, err := a.users.FindByUsername(username)
	if err != nil {
		return LoginResult{}, errs.Mark(err, errs.ErrAuthenticationFailed)
	}
	if !u.IsActive() {
		return LoginResult{}, errs.ErrAuthenticationFailed
	}
	if err := password.ComparePassword(u.PasswordHash(), plainPassword); err != nil {
		return LoginResult{}, errs.Mark(err, errs.ErrAuthenticationFailed)
	}

	token, err := a.tokens.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return LoginResult{}, errs.Wrap(err, "failed to sign token")
	}

	return LoginResult{
		Token:    token,
		UserID:   u.ID(),
		Username: u.Username(),
		Role:     u.Role(),
	}, nil
}
