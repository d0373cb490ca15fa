package api

import (
	"net/http"

	reqdto "tillpoint/internal/handler/dto/request"
	resdto "tillpoint/internal/handler/dto/response"
	"tillpoint/internal/handler/middleware"
	"tillpoint/internal/pkg/errs"
	"tillpoint/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authenticator *commands.Authenticator
	users         commands.UserReader
}

func NewAuthHandler(authenticator *commands.Authenticator, users commands.UserReader) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		users:         users,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.authenticator.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrAuthenticationFailed):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid username or password",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.Token,
		User: resdto.AuthenticatedUser{
			ID:       result.UserID,
			Username: result.Username,
			Role:     result.Role.String(),
		},
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	u, err := h.users.FindByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "User not found",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.AuthenticatedUser{
		ID:       u.ID(),
		Username: u.Username(),
		Role:     u.Role().String(),
	})
}
