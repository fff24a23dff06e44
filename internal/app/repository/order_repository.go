package repository

import (
	"github.com/jwtpizza/pizza-service/internal/app/model"
	apperrors "github.com/jwtpizza/pizza-service/internal/errors"
	"github.com/jwtpizza/pizza-service/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	GetOrders(user *model.User, page int) (*model.OrderPage, error)
	AddDinerOrder(user *model.User, order *model.DinerOrder) (*model.DinerOrder, error)
}

type orderRepository struct {
	db          *gorm.DB
	listPerPage int
}

func NewOrderRepository(db *gorm.DB, listPerPage int) OrderRepository {
	return &orderRepository{db: db, listPerPage: listPerPage}
}

// GetOrders returns one page of the user's orders, each with its items.
func (r *orderRepository) GetOrders(user *model.User, page int) (*model.OrderPage, error) {
	if page < 1 {
		page = 1
	}

	orders := []model.DinerOrder{}
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id")
		}).
		Where("diner_id = ?", user.ID).
		Order("id").
		Offset(GetOffset(page, r.listPerPage)).
		Limit(r.listPerPage).
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to fetch orders", err, map[string]interface{}{
			"diner_id": user.ID,
			"page":     page,
		})
		return nil, err
	}

	for i := range orders {
		if orders[i].Items == nil {
			orders[i].Items = []model.OrderItem{}
		}
	}

	return &model.OrderPage{DinerID: user.ID, Orders: orders, Page: page}, nil
}

// AddDinerOrder persists the order and its items atomically. Every item must
// reference an existing menu item; items keep their request order.
func (r *orderRepository) AddDinerOrder(user *model.User, order *model.DinerOrder) (*model.DinerOrder, error) {
	items := order.Items
	if items == nil {
		items = []model.OrderItem{}
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if _, err := getID(tx, "menu_items", "id", item.MenuID); err != nil {
				if apperrors.KindOf(err) == apperrors.KindNotFound {
					return apperrors.NotFound("menu item %d not found", item.MenuID)
				}
				return err
			}
		}

		order.ID = 0
		order.DinerID = user.ID
		if err := tx.Omit("Items").Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].ID = 0
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to create order", err, map[string]interface{}{
			"diner_id": user.ID,
		})
		return nil, err
	}

	order.Items = items
	logger.Debug("Order created", map[string]interface{}{
		"order_id":    order.ID,
		"diner_id":    user.ID,
		"items_count": len(items),
	})
	return order, nil
}
