package controller

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jwtpizza/pizza-service/internal/app/repository"
	"github.com/jwtpizza/pizza-service/internal/app/service"
	"github.com/jwtpizza/pizza-service/internal/db"
	"github.com/jwtpizza/pizza-service/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthControllerTest(t *testing.T) (*gin.Engine, service.AuthService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	authService := service.NewAuthService(repository.NewUserRepository(testDB), nil, "test-secret", 15*time.Minute)
	ctrl := NewAuthController(authService)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	router := gin.New()
	router.POST("/api/auth", ctrl.Register)
	router.PUT("/api/auth", ctrl.Login)
	router.DELETE("/api/auth", authMiddleware.SetAuthUser(), authMiddleware.AuthenticateToken(), ctrl.Logout)
	return router, authService
}

func TestAuthController_Register_Success(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := performRequest(router, http.MethodPost, "/api/auth", RegisterRequest{
		Name:     "pizza diner",
		Email:    "d@jwt.com",
		Password: "diner",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response["token"])
	user := response["user"].(map[string]interface{})
	assert.Equal(t, "d@jwt.com", user["email"])
	assert.NotContains(t, user, "password")
}

func TestAuthController_Register_MissingFields(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := performRequest(router, http.MethodPost, "/api/auth", RegisterRequest{Email: "d@jwt.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"name, email, and password are required"}`, w.Body.String())
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("pizza diner", "d@jwt.com", "diner")
	require.NoError(t, err)

	w := performRequest(router, http.MethodPost, "/api/auth", RegisterRequest{
		Name:     "another diner",
		Email:    "d@jwt.com",
		Password: "other",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthController_Login(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("pizza diner", "d@jwt.com", "diner")
	require.NoError(t, err)

	tests := []struct {
		name       string
		req        LoginRequest
		wantStatus int
	}{
		{name: "Valid credentials", req: LoginRequest{Email: "d@jwt.com", Password: "diner"}, wantStatus: http.StatusOK},
		{name: "Wrong password", req: LoginRequest{Email: "d@jwt.com", Password: "nope"}, wantStatus: http.StatusUnauthorized},
		{name: "Unknown email", req: LoginRequest{Email: "x@jwt.com", Password: "diner"}, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPut, "/api/auth", tt.req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthController_Logout(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, token, err := authService.Register("pizza diner", "d@jwt.com", "diner")
	require.NoError(t, err)

	req := func() int {
		r := performRequestWithToken(router, http.MethodDelete, "/api/auth", token)
		return r.Code
	}
	assert.Equal(t, http.StatusOK, req())
	assert.Equal(t, http.StatusUnauthorized, req())
}
