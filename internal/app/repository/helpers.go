package repository

import (
	"github.com/jwtpizza/pizza-service/internal/app/model"
	apperrors "github.com/jwtpizza/pizza-service/internal/errors"
	"gorm.io/gorm"
)

// GetOffset converts a 1-based page into a row offset. Pages below 1 are treated as the first page.
func GetOffset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	if pageSize < 0 {
		pageSize = 0
	}
	return (page - 1) * pageSize
}

// getID returns the id of the single row of table whose column equals value.
func getID(tx *gorm.DB, table, column string, value interface{}) (uint, error) {
	var ids []uint
	err := tx.Table(table).Where(column+" = ?", value).Limit(1).Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, apperrors.NotFound("no %s row with %s %v", table, column, value)
	}
	return ids[0], nil
}

// loadRoles attaches the user's role rows in insertion order.
func loadRoles(tx *gorm.DB, user *model.User) error {
	var rows []model.UserRole
	if err := tx.Where("user_id = ?", user.ID).Order("id").Find(&rows).Error; err != nil {
		return err
	}

	user.Roles = make([]model.Role, 0, len(rows))
	for _, row := range rows {
		user.Roles = append(user.Roles, row.ToRole())
	}
	return nil
}
