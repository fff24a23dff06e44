package service

import (
	"context"
	"strings"
	"time"

	"github.com/jwtpizza/pizza-service/internal/app/model"
	"github.com/jwtpizza/pizza-service/internal/app/repository"
	apperrors "github.com/jwtpizza/pizza-service/internal/errors"
	"github.com/jwtpizza/pizza-service/internal/metrics"
	"github.com/jwtpizza/pizza-service/pkg/logger"
	"github.com/jwtpizza/pizza-service/pkg/util"
)

// SessionCache short-circuits authentication for revoked sessions.
type SessionCache interface {
	RevokeSession(ctx context.Context, signature string) error
	IsSessionRevoked(ctx context.Context, signature string) (bool, error)
}

type AuthService interface {
	Register(name, email, password string) (*model.User, string, error)
	Login(email, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
	SetAuth(user *model.User) (string, error)
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	sessions  SessionCache
	jwtSecret string
	expiry    time.Duration
}

// NewAuthService builds the auth service. sessions may be nil.
func NewAuthService(
	userRepo repository.UserRepository,
	sessions SessionCache,
	jwtSecret string,
	expiry time.Duration,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		expiry:    expiry,
	}
}

func (s *authService) Register(name, email, password string) (*model.User, string, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		metrics.AuthAttempts.WithLabelValues("invalid").Inc()
		return nil, "", apperrors.Validation("name, email, and password are required")
	}

	logger.Info("Attempting user registration", map[string]interface{}{
		"email": email,
		"name":  name,
	})

	user, err := s.userRepo.AddUser(model.NewUser{
		Name:     name,
		Email:    email,
		Password: password,
		Roles:    []model.RoleAssignment{{Role: model.RoleDiner}},
	})
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		logger.Warn("Registration failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return nil, "", err
	}

	token, err := s.SetAuth(user)
	if err != nil {
		return nil, "", err
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})
	return user, token, nil
}

func (s *authService) Login(email, password string) (*model.User, string, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.GetUser(email, password)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		logger.Warn("Login failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return nil, "", err
	}

	token, err := s.SetAuth(user)
	if err != nil {
		return nil, "", err
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, token, nil
}

// Logout ends the session. A cache failure is logged; the database marker is authoritative.
func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.userRepo.LogoutUser(token); err != nil {
		logger.Error("Failed to clear session", err)
		return err
	}

	if s.sessions != nil {
		if err := s.sessions.RevokeSession(ctx, util.GetTokenSignature(token)); err != nil {
			logger.Warn("Failed to cache revoked session", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return nil
}

// SetAuth signs a token for user and records it as a live session.
func (s *authService) SetAuth(user *model.User) (string, error) {
	token, err := util.GenerateToken(claimsFromUser(user), s.jwtSecret, s.expiry)
	if err != nil {
		logger.Error("Failed to generate token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return "", err
	}

	if err := s.userRepo.LoginUser(user.ID, token); err != nil {
		logger.Error("Failed to record session", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return "", err
	}
	return token, nil
}

// Authenticate returns the user a token was issued to, provided the signature
// verifies and the session has not been logged out.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := util.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return nil, apperrors.Unauthenticated("unauthorized")
	}

	signature := util.GetTokenSignature(token)
	if s.sessions != nil {
		revoked, err := s.sessions.IsSessionRevoked(ctx, signature)
		if err != nil {
			logger.Warn("Session cache unavailable, falling back to database", map[string]interface{}{
				"error": err.Error(),
			})
		} else if revoked {
			return nil, apperrors.Unauthenticated("unauthorized")
		}
	}

	live, err := s.userRepo.IsLoggedIn(token)
	if err != nil {
		return nil, err
	}
	if !live {
		return nil, apperrors.Unauthenticated("unauthorized")
	}

	return userFromClaims(claims), nil
}

func claimsFromUser(user *model.User) util.Claims {
	roles := make([]util.RoleClaim, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, util.RoleClaim{Role: string(r.Kind), ObjectID: r.FranchiseID})
	}
	return util.Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Roles:  roles,
	}
}

func userFromClaims(claims *util.Claims) *model.User {
	roles := make([]model.Role, 0, len(claims.Roles))
	for _, r := range claims.Roles {
		kind := model.RoleKind(r.Role)
		if !kind.Valid() {
			continue
		}
		role := model.Role{Kind: kind}
		if kind == model.RoleFranchisee {
			role.FranchiseID = r.ObjectID
		}
		roles = append(roles, role)
	}
	return &model.User{
		ID:    claims.UserID,
		Name:  claims.Name,
		Email: claims.Email,
		Roles: roles,
	}
}
