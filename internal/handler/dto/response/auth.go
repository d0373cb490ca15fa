package response

import "github.com/google/uuid"

type AuthenticatedUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	User        AuthenticatedUser `json:"user"`
}
