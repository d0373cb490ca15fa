//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"tillpoint/internal/domain/user"
	"tillpoint/internal/handler/api"
	resdto "tillpoint/internal/handler/dto/response"
	"tillpoint/internal/pkg/errs"
	"tillpoint/internal/pkg/jwt"
	"tillpoint/internal/pkg/password"
	"tillpoint/internal/usecase/commands"
	"tillpoint/tests/common/httptest"
	commandsmock "tillpoint/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testPassword = "opensesame"

type AuthHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockCtrl  *gomock.Controller
	mockUsers *commandsmock.MockUserReader
	handler   *api.AuthHandler

	cashier     *user.User
	cashierHash string
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockUsers = commandsmock.NewMockUserReader(s.mockCtrl)

	jwtService := jwt.NewService("test-secret", time.Hour)
	authenticator := commands.NewAuthenticator(s.mockUsers, jwtService)
	s.handler = api.NewAuthHandler(authenticator, s.mockUsers)

	hash, err := password.HashPassword(testPassword)
	s.Require().NoError(err)
	s.cashierHash = hash
	s.cashier = user.ReconstructUser(uuid.New(), "alice", "Alice Ueda", user.RoleCashier, hash, true)

	s.router.POST("/auth/login", s.handler.Login)
	s.router.GET("/auth/me", func(c *gin.Context) {
		// Stands in for the auth middleware
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.cashier.ID())
		}
		s.handler.Me(c)
	})
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"

	s.Run("success: returns 200 OK and a signed token", func() {
		s.mockUsers.EXPECT().FindByUsername("alice").Return(s.cashier, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"username": "alice", "password": testPassword}, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.NotEmpty(response.AccessToken)
		s.Equal("alice", response.User.Username)
		s.Equal("cashier", response.User.Role)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name string
			body map[string]any
		}{
			{name: "missing username", body: map[string]any{"password": testPassword}},
			{name: "missing password", body: map[string]any{"username": "alice"}},
			{name: "password below 8 chars", body: map[string]any{"username": "alice", "password": "short"}},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, tc.body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: all credential failures return the same 401", func() {
		inactive := user.ReconstructUser(uuid.New(), "bob", "Bob Tanaka", user.RoleCashier, s.cashierHash, false)

		testCases := []struct {
			name    string
			setup   func()
			request map[string]any
		}{
			{
				name: "unknown username",
				setup: func() {
					s.mockUsers.EXPECT().FindByUsername("nobody").
						Return(nil, errs.New("user not found")).Times(1)
				},
				request: map[string]any{"username": "nobody", "password": testPassword},
			},
			{
				name: "wrong password",
				setup: func() {
					s.mockUsers.EXPECT().FindByUsername("alice").Return(s.cashier, nil).Times(1)
				},
				request: map[string]any{"username": "alice", "password": "not-the-password"},
			},
			{
				name: "deactivated account",
				setup: func() {
					s.mockUsers.EXPECT().FindByUsername("bob").Return(inactive, nil).Times(1)
				},
				request: map[string]any{"username": "bob", "password": testPassword},
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				tc.setup()
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, tc.request, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid username or password")
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"

	s.Run("success: returns current user info", func() {
		s.mockUsers.EXPECT().FindByID(s.cashier.ID()).Return(s.cashier, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.AuthenticatedUser
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(s.cashier.ID(), response.ID)
		s.Equal("alice", response.Username)
	})

	s.Run("error: 401 when user_id missing in context", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "User not authenticated")
	})
}
