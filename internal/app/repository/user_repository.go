package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/jwtpizza/pizza-service/internal/app/model"
	apperrors "github.com/jwtpizza/pizza-service/internal/errors"
	"github.com/jwtpizza/pizza-service/pkg/logger"
	"github.com/jwtpizza/pizza-service/pkg/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	AddUser(newUser model.NewUser) (*model.User, error)
	GetUser(email, password string) (*model.User, error)
	GetUserByID(id uint) (*model.User, error)
	UpdateUser(id uint, name, email, password string) (*model.User, error)
	LoginUser(userID uint, token string) error
	LogoutUser(token string) error
	IsLoggedIn(token string) (bool, error)
	PurgeSessions(before time.Time) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// AddUser stores the user and its roles in one transaction. A franchisee role
// names its franchise, which must already exist.
func (r *userRepository) AddUser(newUser model.NewUser) (*model.User, error) {
	logger.Debug("Creating user in database", map[string]interface{}{
		"email": newUser.Email,
	})

	hash, err := util.HashPassword(newUser.Password)
	if err != nil {
		return nil, err
	}

	assignments := newUser.Roles
	if len(assignments) == 0 {
		assignments = []model.RoleAssignment{{Role: model.RoleDiner}}
	}

	user := &model.User{
		Name:         newUser.Name,
		Email:        newUser.Email,
		PasswordHash: hash,
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return apperrors.ParseError(err, "user "+newUser.Email)
		}

		user.Roles = make([]model.Role, 0, len(assignments))
		for _, assignment := range assignments {
			row := model.UserRole{UserID: user.ID, Role: assignment.Role}
			if assignment.Role == model.RoleFranchisee {
				franchiseID, err := getID(tx, "franchises", "name", assignment.Object)
				if err != nil {
					if apperrors.KindOf(err) == apperrors.KindNotFound {
						return apperrors.NotFound("franchise %s not found", assignment.Object)
					}
					return err
				}
				row.ObjectID = &franchiseID
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			user.Roles = append(user.Roles, row.ToRole())
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": newUser.Email,
		})
		return nil, err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, nil
}

// GetUser authenticates by email and password.
func (r *userRepository) GetUser(email, password string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthenticated("unknown user")
		}
		return nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Debug("Password mismatch", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, apperrors.Unauthenticated("unknown user")
	}

	if err := loadRoles(r.db, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, apperrors.ParseError(err, fmt.Sprintf("user %d", id))
	}
	if err := loadRoles(r.db, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser changes only the non-empty fields and returns the refreshed user.
func (r *userRepository) UpdateUser(id uint, name, email, password string) (*model.User, error) {
	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if email != "" {
		updates["email"] = email
	}
	if password != "" {
		hash, err := util.HashPassword(password)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = hash
	}

	if len(updates) > 0 {
		logger.Debug("Updating user in database", map[string]interface{}{
			"user_id": id,
			"fields":  len(updates),
		})
		if err := r.db.Model(&model.User{ID: id}).Updates(updates).Error; err != nil {
			return nil, apperrors.ParseError(err, "user "+email)
		}
	}

	return r.GetUserByID(id)
}

// LoginUser records the token's signature as a live session. Recording the same token twice is a no-op.
func (r *userRepository) LoginUser(userID uint, token string) error {
	signature := util.GetTokenSignature(token)
	if signature == "" {
		return apperrors.Validation("malformed token")
	}

	session := &model.AuthSession{Token: signature, UserID: userID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(session).Error
}

func (r *userRepository) LogoutUser(token string) error {
	return r.db.Where("token = ?", util.GetTokenSignature(token)).Delete(&model.AuthSession{}).Error
}

func (r *userRepository) IsLoggedIn(token string) (bool, error) {
	signature := util.GetTokenSignature(token)
	if signature == "" {
		return false, nil
	}

	var count int64
	if err := r.db.Model(&model.AuthSession{}).Where("token = ?", signature).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// PurgeSessions deletes session markers created before the cutoff.
func (r *userRepository) PurgeSessions(before time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", before).Delete(&model.AuthSession{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
