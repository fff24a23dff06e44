package service

import (
	"strings"

	"github.com/jwtpizza/pizza-service/internal/app/model"
	"github.com/jwtpizza/pizza-service/internal/app/repository"
	apperrors "github.com/jwtpizza/pizza-service/internal/errors"
	"github.com/jwtpizza/pizza-service/pkg/logger"
)

type FranchiseService interface {
	GetFranchises(caller *model.User, page, limit int, name string) (*model.FranchisePage, error)
	GetUserFranchises(caller *model.User, userID uint) ([]model.Franchise, error)
	CreateFranchise(caller *model.User, franchise *model.Franchise) (*model.Franchise, error)
	DeleteFranchise(caller *model.User, franchiseID uint) error
	CreateStore(caller *model.User, franchiseID uint, store *model.Store) (*model.Store, error)
	DeleteStore(caller *model.User, franchiseID, storeID uint) error
}

type franchiseService struct {
	franchiseRepo repository.FranchiseRepository
}

func NewFranchiseService(franchiseRepo repository.FranchiseRepository) FranchiseService {
	return &franchiseService{franchiseRepo: franchiseRepo}
}

func (s *franchiseService) GetFranchises(caller *model.User, page, limit int, name string) (*model.FranchisePage, error) {
	return s.franchiseRepo.GetFranchises(caller, page, limit, name)
}

// GetUserFranchises returns an empty list when someone other than the user or an admin asks.
func (s *franchiseService) GetUserFranchises(caller *model.User, userID uint) ([]model.Franchise, error) {
	if caller == nil || (caller.ID != userID && !caller.IsRole(model.RoleAdmin)) {
		return []model.Franchise{}, nil
	}
	return s.franchiseRepo.GetUserFranchises(userID)
}

func (s *franchiseService) CreateFranchise(caller *model.User, franchise *model.Franchise) (*model.Franchise, error) {
	if !caller.IsRole(model.RoleAdmin) {
		return nil, apperrors.Forbidden("unable to create a franchise")
	}
	franchise.Name = strings.TrimSpace(franchise.Name)
	if franchise.Name == "" {
		return nil, apperrors.Validation("name is required")
	}

	created, err := s.franchiseRepo.CreateFranchise(franchise)
	if err != nil {
		return nil, err
	}

	logger.Info("Franchise created", map[string]interface{}{
		"franchise_id": created.ID,
		"name":         created.Name,
		"admins":       len(created.Admins),
	})
	return created, nil
}

func (s *franchiseService) DeleteFranchise(caller *model.User, franchiseID uint) error {
	if !caller.IsRole(model.RoleAdmin) {
		return apperrors.Forbidden("unable to delete a franchise")
	}
	if err := s.franchiseRepo.DeleteFranchise(franchiseID); err != nil {
		return err
	}

	logger.Info("Franchise deleted", map[string]interface{}{
		"franchise_id": franchiseID,
	})
	return nil
}

func (s *franchiseService) CreateStore(caller *model.User, franchiseID uint, store *model.Store) (*model.Store, error) {
	if err := s.authorizeStores(caller, franchiseID, "unable to create a store"); err != nil {
		return nil, err
	}
	store.Name = strings.TrimSpace(store.Name)
	if store.Name == "" {
		return nil, apperrors.Validation("name is required")
	}

	return s.franchiseRepo.CreateStore(franchiseID, store)
}

func (s *franchiseService) DeleteStore(caller *model.User, franchiseID, storeID uint) error {
	if err := s.authorizeStores(caller, franchiseID, "unable to delete a store"); err != nil {
		return err
	}
	return s.franchiseRepo.DeleteStore(franchiseID, storeID)
}

// authorizeStores allows admins and the franchise's own admins. Non-admins
// asking about a missing franchise are refused rather than told it is missing.
func (s *franchiseService) authorizeStores(caller *model.User, franchiseID uint, denied string) error {
	if caller.IsRole(model.RoleAdmin) {
		return nil
	}
	if caller == nil {
		return apperrors.Forbidden(denied)
	}

	franchise, err := s.franchiseRepo.GetFranchise(franchiseID)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return apperrors.Forbidden(denied)
		}
		return err
	}
	if !franchise.HasAdmin(caller.ID) {
		logger.Warn("Store change denied", map[string]interface{}{
			"franchise_id": franchiseID,
			"user_id":      caller.ID,
		})
		return apperrors.Forbidden(denied)
	}
	return nil
}
