package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jwtpizza/pizza-service/internal/app/model"
	"github.com/jwtpizza/pizza-service/internal/app/service"
	apperrors "github.com/jwtpizza/pizza-service/internal/errors"
	"github.com/jwtpizza/pizza-service/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

type AddMenuItemRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

type OrderItemRequest struct {
	MenuID      uint    `json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type PlaceOrderRequest struct {
	FranchiseID uint               `json:"franchiseId"`
	StoreID     uint               `json:"storeId"`
	Items       []OrderItemRequest `json:"items"`
}

type PlaceOrderResponse struct {
	Order                *model.DinerOrder `json:"order"`
	FollowLinkToEndChaos string            `json:"followLinkToEndChaos"`
	JWT                  string            `json:"jwt"`
}

// GetMenu lists the menu
// GET /api/order/menu
func (ctrl *OrderController) GetMenu(c *gin.Context) {
	menu, err := ctrl.orderService.GetMenu()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

// AddMenuItem adds an item and returns the updated menu
// PUT /api/order/menu
func (ctrl *OrderController) AddMenuItem(c *gin.Context) {
	var req AddMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "invalid menu item")
		return
	}

	caller, _ := middleware.GetUser(c)
	menu, err := ctrl.orderService.AddMenuItem(caller, &model.MenuItem{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

// GetOrders lists the caller's orders
// GET /api/order?page=N
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	caller, _ := middleware.GetUser(c)
	page, err := ctrl.orderService.GetOrders(caller, queryInt(c, "page", 1))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// PlaceOrder records an order and forwards it to the factory
// POST /api/order
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, "invalid order")
		return
	}

	order := &model.DinerOrder{
		FranchiseID: req.FranchiseID,
		StoreID:     req.StoreID,
		Items:       make([]model.OrderItem, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, model.OrderItem{
			MenuID:      item.MenuID,
			Description: item.Description,
			Price:       item.Price,
		})
	}

	caller, _ := middleware.GetUser(c)
	result, err := ctrl.orderService.PlaceOrder(c.Request.Context(), caller, order)
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) && appErr.Kind == apperrors.KindUpstream && result != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message":              appErr.Message,
				"followLinkToEndChaos": result.ReportURL,
			})
			return
		}
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, PlaceOrderResponse{
		Order:                result.Order,
		FollowLinkToEndChaos: result.ReportURL,
		JWT:                  result.JWT,
	})
}
