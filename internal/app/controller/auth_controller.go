package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jwtpizza/pizza-service/internal/app/model"
	"github.com/jwtpizza/pizza-service/internal/app/service"
	apperrors "github.com/jwtpizza/pizza-service/internal/errors"
	"github.com/jwtpizza/pizza-service/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register, login and user update.
type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Register handles user registration
// POST /api/auth
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, "name, email, and password are required")
		return
	}

	user, token, err := ctrl.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
}

// Login handles user login
// PUT /api/auth
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, "email and password are required")
		return
	}

	user, token, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
}

// Logout ends the caller's session
// DELETE /api/auth
func (ctrl *AuthController) Logout(c *gin.Context) {
	token, ok := middleware.GetToken(c)
	if !ok {
		apperrors.Unauthorized(c)
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), token); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logout successful"})
}
