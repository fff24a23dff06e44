package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jwtpizza/pizza-service/internal/app/service"
	apperrors "github.com/jwtpizza/pizza-service/internal/errors"
	"github.com/jwtpizza/pizza-service/internal/middleware"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GetMe returns the authenticated user
// GET /api/user/me
func (ctrl *UserController) GetMe(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apperrors.Unauthorized(c)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser handles account changes
// PUT /api/user/:userId
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "invalid request body")
		return
	}

	caller, _ := middleware.GetUser(c)
	user, token, err := ctrl.userService.UpdateUser(caller, userID, req.Name, req.Email, req.Password)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
}

// ListUsers
// GET /api/user
func (ctrl *UserController) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "not implemented", "users": []interface{}{}, "more": false})
}

// DeleteUser
// DELETE /api/user/:userId
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "not implemented"})
}
