package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jwtpizza/pizza-service/internal/app/model"
	apperrors "github.com/jwtpizza/pizza-service/internal/errors"
	"github.com/jwtpizza/pizza-service/internal/metrics"
	"github.com/jwtpizza/pizza-service/pkg/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) newOrder() *model.DinerOrder {
	return &model.DinerOrder{
		FranchiseID: 1,
		StoreID:     1,
		Items: []model.OrderItem{
			{MenuID: env.menu[0].ID, Description: "Veggie", Price: 0.0038},
			{MenuID: env.menu[1].ID, Description: "Pepperoni", Price: 0.0042},
		},
	}
}

func TestOrderService_AddMenuItem(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.admin(t)
	diner := env.addUser(t, "pizza diner", "d@jwt.com")

	_, err := env.orders.AddMenuItem(diner, &model.MenuItem{Title: "Student", Price: 0.0001})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Equal(t, "unable to add menu item", err.Error())

	_, err = env.orders.AddMenuItem(nil, &model.MenuItem{Title: "Student", Price: 0.0001})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = env.orders.AddMenuItem(admin, &model.MenuItem{Price: 0.0001})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	menu, err := env.orders.AddMenuItem(admin, &model.MenuItem{Title: "Student", Description: "No topping", Image: "pizza9.png", Price: 0.0001})
	require.NoError(t, err)
	require.Len(t, menu, 3)
	assert.Equal(t, "Student", menu[2].Title)
}

func TestOrderService_PlaceOrder_Fulfilled(t *testing.T) {
	env := setupTestEnv(t)
	diner := env.addUser(t, "pizza diner", "d@jwt.com")

	result, err := env.orders.PlaceOrder(context.Background(), diner, env.newOrder())
	require.NoError(t, err)
	assert.Equal(t, "http://factory/report", result.ReportURL)
	assert.Equal(t, "factory.jwt.sig", result.JWT)
	require.Len(t, result.Order.Items, 2)

	require.Len(t, env.factory.requests, 1)
	req := env.factory.requests[0]
	assert.Equal(t, factory.Diner{ID: diner.ID, Name: "pizza diner", Email: "d@jwt.com"}, req.Diner)
	sent := req.Order.(*model.DinerOrder)
	assert.Equal(t, env.menu[0].ID, sent.Items[0].MenuID)
	assert.Equal(t, env.menu[1].ID, sent.Items[1].MenuID)

	require.Len(t, env.publisher.events, 1)
	event := env.publisher.events[0]
	assert.Equal(t, metrics.OutcomeFulfilled, event.Outcome)
	assert.Equal(t, 2, event.Items)
	assert.InDelta(t, 0.008, event.Total, 1e-9)

	page, err := env.orders.GetOrders(diner, 1)
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, result.Order.ID, page.Orders[0].ID)
	require.Len(t, page.Orders[0].Items, 2)
	assert.Equal(t, "Veggie", page.Orders[0].Items[0].Description)
}

func TestOrderService_PlaceOrder_Rejected(t *testing.T) {
	env := setupTestEnv(t)
	diner := env.addUser(t, "pizza diner", "d@jwt.com")
	env.factory.resp = &factory.OrderResponse{ReportURL: "http://factory/chaos"}
	env.factory.err = factory.ErrOrderRejected

	result, err := env.orders.PlaceOrder(context.Background(), diner, env.newOrder())
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	require.NotNil(t, result)
	assert.Equal(t, "http://factory/chaos", result.ReportURL)
	assert.Empty(t, result.JWT)

	require.Len(t, env.publisher.events, 1)
	assert.Equal(t, metrics.OutcomeRejected, env.publisher.events[0].Outcome)

	// the order stays recorded
	page, err := env.orders.GetOrders(diner, 1)
	require.NoError(t, err)
	assert.Len(t, page.Orders, 1)
}

func TestOrderService_PlaceOrder_FactoryUnreachable(t *testing.T) {
	env := setupTestEnv(t)
	diner := env.addUser(t, "pizza diner", "d@jwt.com")
	env.factory.resp = nil
	env.factory.err = errors.New("dial tcp: connection refused")

	result, err := env.orders.PlaceOrder(context.Background(), diner, env.newOrder())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnexpected, apperrors.KindOf(err))
	assert.Nil(t, result)
	require.Len(t, env.publisher.events, 1)
	assert.Equal(t, metrics.OutcomeError, env.publisher.events[0].Outcome)
}

func TestOrderService_PlaceOrder_Invalid(t *testing.T) {
	env := setupTestEnv(t)
	diner := env.addUser(t, "pizza diner", "d@jwt.com")

	_, err := env.orders.PlaceOrder(context.Background(), diner, &model.DinerOrder{StoreID: 1})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	order := env.newOrder()
	order.Items[1].MenuID = 999
	_, err = env.orders.PlaceOrder(context.Background(), diner, order)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, env.factory.requests)
}

func TestOrderService_PublishFailureDoesNotFailOrder(t *testing.T) {
	env := setupTestEnv(t)
	diner := env.addUser(t, "pizza diner", "d@jwt.com")
	env.publisher.err = errBrokerDown

	result, err := env.orders.PlaceOrder(context.Background(), diner, env.newOrder())
	require.NoError(t, err)
	assert.Equal(t, "factory.jwt.sig", result.JWT)
}
