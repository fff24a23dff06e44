package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwtpizza/pizza-service/internal/app/model"
	apperrors "github.com/jwtpizza/pizza-service/internal/errors"
	"github.com/jwtpizza/pizza-service/pkg/logger"
	"gorm.io/gorm"
)

const defaultFranchiseLimit = 10

type FranchiseRepository interface {
	CreateFranchise(franchise *model.Franchise) (*model.Franchise, error)
	DeleteFranchise(franchiseID uint) error
	GetFranchises(user *model.User, page, limit int, nameFilter string) (*model.FranchisePage, error)
	GetUserFranchises(userID uint) ([]model.Franchise, error)
	GetFranchise(franchiseID uint) (*model.Franchise, error)
	CreateStore(franchiseID uint, store *model.Store) (*model.Store, error)
	DeleteStore(franchiseID, storeID uint) error
}

type franchiseRepository struct {
	db *gorm.DB
}

func NewFranchiseRepository(db *gorm.DB) FranchiseRepository {
	return &franchiseRepository{db: db}
}

// CreateFranchise resolves every admin by email before inserting anything, then
// stores the franchise and one franchisee role per admin.
func (r *franchiseRepository) CreateFranchise(franchise *model.Franchise) (*model.Franchise, error) {
	logger.Debug("Creating franchise in database", map[string]interface{}{
		"name":   franchise.Name,
		"admins": len(franchise.Admins),
	})

	created := &model.Franchise{Name: franchise.Name}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		admins := make([]model.FranchiseAdmin, 0, len(franchise.Admins))
		for _, admin := range franchise.Admins {
			var found model.FranchiseAdmin
			err := tx.Model(&model.User{}).Select("id, name, email").Where("email = ?", admin.Email).Take(&found).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("unknown user for franchise admin %s provided", admin.Email)
			}
			if err != nil {
				return err
			}
			admins = append(admins, found)
		}

		if err := tx.Omit("Stores").Create(created).Error; err != nil {
			return apperrors.ParseError(err, "franchise "+franchise.Name)
		}

		for _, admin := range admins {
			objectID := created.ID
			role := &model.UserRole{UserID: admin.ID, Role: model.RoleFranchisee, ObjectID: &objectID}
			if err := tx.Create(role).Error; err != nil {
				return err
			}
		}
		created.Admins = admins
		return nil
	})
	if err != nil {
		logger.Error("Failed to create franchise", err, map[string]interface{}{
			"name": franchise.Name,
		})
		return nil, err
	}

	created.Stores = []model.Store{}
	return created, nil
}

// DeleteFranchise removes the franchise, its stores and its franchisee roles together.
func (r *franchiseRepository) DeleteFranchise(franchiseID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("franchise_id = ?", franchiseID).Delete(&model.Store{}).Error; err != nil {
			return err
		}
		if err := tx.Where("role = ? AND object_id = ?", model.RoleFranchisee, franchiseID).Delete(&model.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Franchise{}, franchiseID).Error
	})
	if err != nil {
		logger.Error("Failed to delete franchise", err, map[string]interface{}{
			"franchise_id": franchiseID,
		})
		return err
	}

	logger.Debug("Franchise deleted", map[string]interface{}{
		"franchise_id": franchiseID,
	})
	return nil
}

// GetFranchises lists franchises whose name matches nameFilter, where '*' is a
// wildcard. page is 0-based. Admins get franchises with admins and store revenue;
// everyone else gets store ids and names only.
func (r *franchiseRepository) GetFranchises(user *model.User, page, limit int, nameFilter string) (*model.FranchisePage, error) {
	if limit <= 0 {
		limit = defaultFranchiseLimit
	}
	if page < 0 {
		page = 0
	}
	pattern := strings.ReplaceAll(nameFilter, "*", "%")
	if pattern == "" {
		pattern = "%"
	}

	franchises := []model.Franchise{}
	err := r.db.
		Where("name LIKE ?", pattern).
		Order("id").
		Offset(page * limit).
		Limit(limit + 1).
		Find(&franchises).Error
	if err != nil {
		return nil, err
	}

	more := len(franchises) > limit
	if more {
		franchises = franchises[:limit]
	}

	admin := user.IsRole(model.RoleAdmin)
	for i := range franchises {
		if admin {
			err = r.populate(&franchises[i])
		} else {
			err = r.loadStoreNames(&franchises[i])
		}
		if err != nil {
			return nil, err
		}
	}

	return &model.FranchisePage{Franchises: franchises, More: more}, nil
}

// GetUserFranchises returns the franchises userID administers, fully populated.
func (r *franchiseRepository) GetUserFranchises(userID uint) ([]model.Franchise, error) {
	var franchiseIDs []uint
	err := r.db.Model(&model.UserRole{}).
		Where("user_id = ? AND role = ? AND object_id IS NOT NULL", userID, model.RoleFranchisee).
		Pluck("object_id", &franchiseIDs).Error
	if err != nil {
		return nil, err
	}

	franchises := []model.Franchise{}
	if len(franchiseIDs) == 0 {
		return franchises, nil
	}

	if err := r.db.Where("id IN ?", franchiseIDs).Order("id").Find(&franchises).Error; err != nil {
		return nil, err
	}
	for i := range franchises {
		if err := r.populate(&franchises[i]); err != nil {
			return nil, err
		}
	}
	return franchises, nil
}

func (r *franchiseRepository) GetFranchise(franchiseID uint) (*model.Franchise, error) {
	var franchise model.Franchise
	if err := r.db.First(&franchise, franchiseID).Error; err != nil {
		return nil, apperrors.ParseError(err, fmt.Sprintf("franchise %d", franchiseID))
	}
	if err := r.populate(&franchise); err != nil {
		return nil, err
	}
	return &franchise, nil
}

func (r *franchiseRepository) CreateStore(franchiseID uint, store *model.Store) (*model.Store, error) {
	if _, err := getID(r.db, "franchises", "id", franchiseID); err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.NotFound("franchise %d not found", franchiseID)
		}
		return nil, err
	}

	created := &model.Store{FranchiseID: franchiseID, Name: store.Name}
	if err := r.db.Create(created).Error; err != nil {
		logger.Error("Failed to create store", err, map[string]interface{}{
			"franchise_id": franchiseID,
		})
		return nil, err
	}

	logger.Debug("Store created", map[string]interface{}{
		"franchise_id": franchiseID,
		"store_id":     created.ID,
	})
	return created, nil
}

func (r *franchiseRepository) DeleteStore(franchiseID, storeID uint) error {
	return r.db.Where("franchise_id = ? AND id = ?", franchiseID, storeID).Delete(&model.Store{}).Error
}

// populate attaches admins and stores with their revenue.
func (r *franchiseRepository) populate(franchise *model.Franchise) error {
	admins := []model.FranchiseAdmin{}
	err := r.db.Table("user_roles").
		Select("users.id, users.name, users.email").
		Joins("JOIN users ON users.id = user_roles.user_id").
		Where("user_roles.role = ? AND user_roles.object_id = ?", model.RoleFranchisee, franchise.ID).
		Order("user_roles.id").
		Scan(&admins).Error
	if err != nil {
		return err
	}

	stores := []model.Store{}
	err = r.db.Table("stores").
		Select("stores.id, stores.franchise_id, stores.name, COALESCE(SUM(order_items.price), 0) AS total_revenue").
		Joins("LEFT JOIN diner_orders ON diner_orders.store_id = stores.id").
		Joins("LEFT JOIN order_items ON order_items.order_id = diner_orders.id").
		Where("stores.franchise_id = ?", franchise.ID).
		Group("stores.id, stores.franchise_id, stores.name").
		Order("stores.id").
		Scan(&stores).Error
	if err != nil {
		return err
	}

	franchise.Admins = admins
	franchise.Stores = stores
	return nil
}

func (r *franchiseRepository) loadStoreNames(franchise *model.Franchise) error {
	stores := []model.Store{}
	if err := r.db.Select("id, name").Where("franchise_id = ?", franchise.ID).Order("id").Find(&stores).Error; err != nil {
		return err
	}
	franchise.Stores = stores
	return nil
}
