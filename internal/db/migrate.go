package db

import (
	"fmt"

	"github.com/jwtpizza/pizza-service/config"
	"github.com/jwtpizza/pizza-service/internal/app/model"
	"github.com/jwtpizza/pizza-service/pkg/logger"
	"github.com/jwtpizza/pizza-service/pkg/util"
	"gorm.io/gorm"
)

// Models lists every table owned by the service, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.AuthSession{},
		&model.MenuItem{},
		&model.Franchise{},
		&model.Store{},
		&model.UserRole{},
		&model.DinerOrder{},
		&model.OrderItem{},
	}
}

// Migrate runs database migrations and seeds the default admin
func Migrate(conn *gorm.DB, admin config.AdminConfig) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := conn.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedAdmin(conn, admin); err != nil {
		logger.Error("Failed to seed default admin", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// seedAdmin creates the configured admin when the user table is empty.
func seedAdmin(conn *gorm.DB, admin config.AdminConfig) error {
	var count int64
	if err := conn.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Users already present, skipping admin seed", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}
	if admin.Email == "" || admin.Password == "" {
		return nil
	}

	hash, err := util.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	return conn.Transaction(func(tx *gorm.DB) error {
		user := &model.User{Name: admin.Name, Email: admin.Email, PasswordHash: hash}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if err := tx.Create(&model.UserRole{UserID: user.ID, Role: model.RoleAdmin}).Error; err != nil {
			return err
		}
		logger.Info("Default admin created", map[string]interface{}{
			"user_id": user.ID,
			"email":   user.Email,
		})
		return nil
	})
}
