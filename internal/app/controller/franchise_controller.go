package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jwtpizza/pizza-service/internal/app/model"
	"github.com/jwtpizza/pizza-service/internal/app/service"
	apperrors "github.com/jwtpizza/pizza-service/internal/errors"
	"github.com/jwtpizza/pizza-service/internal/middleware"
)

type FranchiseController struct {
	franchiseService service.FranchiseService
}

func NewFranchiseController(franchiseService service.FranchiseService) *FranchiseController {
	return &FranchiseController{franchiseService: franchiseService}
}

type FranchiseAdminRequest struct {
	Email string `json:"email"`
}

type CreateFranchiseRequest struct {
	Name   string                  `json:"name"`
	Admins []FranchiseAdminRequest `json:"admins"`
}

type CreateStoreRequest struct {
	Name string `json:"name"`
}

// ListFranchises
// GET /api/franchise?page=0&limit=10&name=pizza*
func (ctrl *FranchiseController) ListFranchises(c *gin.Context) {
	caller, _ := middleware.GetUser(c)
	page, err := ctrl.franchiseService.GetFranchises(
		caller,
		queryInt(c, "page", 0),
		queryInt(c, "limit", 10),
		c.DefaultQuery("name", "*"),
	)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListUserFranchises
// GET /api/franchise/:userId
func (ctrl *FranchiseController) ListUserFranchises(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	caller, _ := middleware.GetUser(c)
	franchises, err := ctrl.franchiseService.GetUserFranchises(caller, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, franchises)
}

// CreateFranchise
// POST /api/franchise
func (ctrl *FranchiseController) CreateFranchise(c *gin.Context) {
	var req CreateFranchiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "invalid franchise")
		return
	}

	franchise := &model.Franchise{Name: req.Name}
	for _, admin := range req.Admins {
		franchise.Admins = append(franchise.Admins, model.FranchiseAdmin{Email: admin.Email})
	}

	caller, _ := middleware.GetUser(c)
	created, err := ctrl.franchiseService.CreateFranchise(caller, franchise)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// DeleteFranchise
// DELETE /api/franchise/:franchiseId
func (ctrl *FranchiseController) DeleteFranchise(c *gin.Context) {
	franchiseID, ok := parseIDParam(c, "franchiseId")
	if !ok {
		return
	}

	caller, _ := middleware.GetUser(c)
	if err := ctrl.franchiseService.DeleteFranchise(caller, franchiseID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "franchise deleted"})
}

// CreateStore
// POST /api/franchise/:franchiseId/store
func (ctrl *FranchiseController) CreateStore(c *gin.Context) {
	franchiseID, ok := parseIDParam(c, "franchiseId")
	if !ok {
		return
	}

	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "invalid store")
		return
	}

	caller, _ := middleware.GetUser(c)
	store, err := ctrl.franchiseService.CreateStore(caller, franchiseID, &model.Store{Name: req.Name})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, store)
}

// DeleteStore
// DELETE /api/franchise/:franchiseId/store/:storeId
func (ctrl *FranchiseController) DeleteStore(c *gin.Context) {
	franchiseID, ok := parseIDParam(c, "franchiseId")
	if !ok {
		return
	}
	storeID, ok := parseIDParam(c, "storeId")
	if !ok {
		return
	}

	caller, _ := middleware.GetUser(c)
	if err := ctrl.franchiseService.DeleteStore(caller, franchiseID, storeID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "store deleted"})
}
