package service

import (
	"context"
	"errors"
	"time"

	"github.com/jwtpizza/pizza-service/internal/app/model"
	"github.com/jwtpizza/pizza-service/internal/app/repository"
	apperrors "github.com/jwtpizza/pizza-service/internal/errors"
	"github.com/jwtpizza/pizza-service/internal/events"
	"github.com/jwtpizza/pizza-service/internal/metrics"
	"github.com/jwtpizza/pizza-service/pkg/factory"
	"github.com/jwtpizza/pizza-service/pkg/logger"
)

// Factory fulfills persisted orders.
type Factory interface {
	SubmitOrder(ctx context.Context, req factory.OrderRequest) (*factory.OrderResponse, error)
}

// OrderResult is the outcome of placing an order. ReportURL is set whenever the
// factory answered; JWT only when it accepted the order.
type OrderResult struct {
	Order     *model.DinerOrder
	ReportURL string
	JWT       string
}

type OrderService interface {
	GetMenu() ([]model.MenuItem, error)
	AddMenuItem(caller *model.User, item *model.MenuItem) ([]model.MenuItem, error)
	GetOrders(caller *model.User, page int) (*model.OrderPage, error)
	PlaceOrder(ctx context.Context, caller *model.User, order *model.DinerOrder) (*OrderResult, error)
}

type orderService struct {
	menuRepo  repository.MenuRepository
	orderRepo repository.OrderRepository
	factory   Factory
	publisher events.Publisher
}

func NewOrderService(
	menuRepo repository.MenuRepository,
	orderRepo repository.OrderRepository,
	factory Factory,
	publisher events.Publisher,
) OrderService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &orderService{
		menuRepo:  menuRepo,
		orderRepo: orderRepo,
		factory:   factory,
		publisher: publisher,
	}
}

func (s *orderService) GetMenu() ([]model.MenuItem, error) {
	return s.menuRepo.GetMenu()
}

// AddMenuItem is admin only and returns the updated menu.
func (s *orderService) AddMenuItem(caller *model.User, item *model.MenuItem) ([]model.MenuItem, error) {
	if !caller.IsRole(model.RoleAdmin) {
		return nil, apperrors.Forbidden("unable to add menu item")
	}
	if item.Title == "" {
		return nil, apperrors.Validation("title is required")
	}

	if err := s.menuRepo.AddMenuItem(item); err != nil {
		return nil, err
	}

	logger.Info("Menu item added", map[string]interface{}{
		"menu_id": item.ID,
		"title":   item.Title,
	})
	return s.menuRepo.GetMenu()
}

func (s *orderService) GetOrders(caller *model.User, page int) (*model.OrderPage, error) {
	return s.orderRepo.GetOrders(caller, page)
}

// PlaceOrder persists the order and then submits it to the factory. The order
// stays persisted when the factory rejects it; the rejection is returned as an
// Upstream error alongside a result carrying the factory's report URL.
func (s *orderService) PlaceOrder(ctx context.Context, caller *model.User, order *model.DinerOrder) (*OrderResult, error) {
	if order.FranchiseID == 0 || order.StoreID == 0 {
		return nil, apperrors.Validation("franchiseId and storeId are required")
	}

	created, err := s.orderRepo.AddDinerOrder(caller, order)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	resp, err := s.factory.SubmitOrder(ctx, factory.OrderRequest{
		Diner: factory.Diner{ID: caller.ID, Name: caller.Name, Email: caller.Email},
		Order: created,
	})
	metrics.FactoryLatency.Observe(time.Since(started).Seconds())

	result := &OrderResult{Order: created}
	switch {
	case errors.Is(err, factory.ErrOrderRejected):
		if resp != nil {
			result.ReportURL = resp.ReportURL
		}
		s.record(ctx, created, metrics.OutcomeRejected, result.ReportURL)
		logger.Warn("Factory rejected order", map[string]interface{}{
			"order_id":   created.ID,
			"report_url": result.ReportURL,
		})
		return result, apperrors.Upstream("Failed to fulfill order at factory", err)
	case err != nil:
		s.record(ctx, created, metrics.OutcomeError, "")
		logger.Error("Factory request failed", err, map[string]interface{}{
			"order_id": created.ID,
		})
		return nil, err
	}

	result.ReportURL = resp.ReportURL
	result.JWT = resp.JWT
	s.record(ctx, created, metrics.OutcomeFulfilled, result.ReportURL)

	logger.Info("Order fulfilled", map[string]interface{}{
		"order_id": created.ID,
		"diner_id": caller.ID,
		"items":    len(created.Items),
	})
	return result, nil
}

// record counts the outcome and publishes it. Publishing failures never fail the order.
func (s *orderService) record(ctx context.Context, order *model.DinerOrder, outcome, reportURL string) {
	var total float64
	for _, item := range order.Items {
		total += item.Price
	}

	metrics.OrdersTotal.WithLabelValues(outcome).Inc()
	if outcome == metrics.OutcomeFulfilled {
		metrics.PizzasSold.Add(float64(len(order.Items)))
		metrics.Revenue.Add(total)
	}

	err := s.publisher.PublishOrder(ctx, events.OrderEvent{
		OrderID:     order.ID,
		DinerID:     order.DinerID,
		FranchiseID: order.FranchiseID,
		StoreID:     order.StoreID,
		Items:       len(order.Items),
		Total:       total,
		Outcome:     outcome,
		ReportURL:   reportURL,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		logger.Warn("Failed to publish order event", map[string]interface{}{
			"order_id": order.ID,
			"error":    err.Error(),
		})
	}
}
