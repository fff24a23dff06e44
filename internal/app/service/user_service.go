package service

import (
	"github.com/jwtpizza/pizza-service/internal/app/model"
	"github.com/jwtpizza/pizza-service/internal/app/repository"
	apperrors "github.com/jwtpizza/pizza-service/internal/errors"
	"github.com/jwtpizza/pizza-service/pkg/logger"
)

type UserService interface {
	UpdateUser(caller *model.User, userID uint, name, email, password string) (*model.User, string, error)
}

type userService struct {
	userRepo    repository.UserRepository
	authService AuthService
}

func NewUserService(userRepo repository.UserRepository, authService AuthService) UserService {
	return &userService{userRepo: userRepo, authService: authService}
}

// UpdateUser lets a user change their own account, or an admin change anyone's.
// A fresh token carrying the updated identity is returned.
func (s *userService) UpdateUser(caller *model.User, userID uint, name, email, password string) (*model.User, string, error) {
	if caller == nil || (caller.ID != userID && !caller.IsRole(model.RoleAdmin)) {
		logger.Warn("User update denied", map[string]interface{}{
			"target_user_id": userID,
		})
		return nil, "", apperrors.Forbidden("unauthorized")
	}

	user, err := s.userRepo.UpdateUser(userID, name, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.authService.SetAuth(user)
	if err != nil {
		return nil, "", err
	}

	logger.Info("User updated", map[string]interface{}{
		"user_id":   user.ID,
		"caller_id": caller.ID,
	})
	return user, token, nil
}
