package repository

import (
	"github.com/jwtpizza/pizza-service/internal/app/model"
	"github.com/jwtpizza/pizza-service/pkg/logger"
	"gorm.io/gorm"
)

type MenuRepository interface {
	GetMenu() ([]model.MenuItem, error)
	AddMenuItem(item *model.MenuItem) error
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) GetMenu() ([]model.MenuItem, error) {
	items := []model.MenuItem{}
	if err := r.db.Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) AddMenuItem(item *model.MenuItem) error {
	item.ID = 0
	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create menu item", err, map[string]interface{}{
			"title": item.Title,
		})
		return err
	}

	logger.Debug("Menu item created", map[string]interface{}{
		"menu_id": item.ID,
		"title":   item.Title,
	})
	return nil
}
