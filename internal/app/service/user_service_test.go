package service

import (
	"testing"

	apperrors "github.com/jwtpizza/pizza-service/internal/errors"
	"github.com/jwtpizza/pizza-service/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_UpdateUser(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.admin(t)
	alice := env.addUser(t, "alice", "alice@jwt.com")
	bob := env.addUser(t, "bob", "bob@jwt.com")

	t.Run("Self update", func(t *testing.T) {
		user, token, err := env.users.UpdateUser(alice, alice.ID, "alice b", "", "")
		require.NoError(t, err)
		assert.Equal(t, "alice b", user.Name)

		claims, err := util.ValidateToken(token, testJWTSecret)
		require.NoError(t, err)
		assert.Equal(t, "alice b", claims.Name)
	})

	t.Run("Other user denied", func(t *testing.T) {
		user, token, err := env.users.UpdateUser(alice, bob.ID, "hacked", "", "")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Equal(t, "unauthorized", err.Error())
		assert.Nil(t, user)
		assert.Empty(t, token)

		unchanged, err := env.userRepo.GetUserByID(bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", unchanged.Name)
	})

	t.Run("Admin updates anyone", func(t *testing.T) {
		user, _, err := env.users.UpdateUser(admin, bob.ID, "", "robert@jwt.com", "newpw")
		require.NoError(t, err)
		assert.Equal(t, "robert@jwt.com", user.Email)

		_, _, err = env.auth.Login("robert@jwt.com", "newpw")
		assert.NoError(t, err)
	})

	t.Run("Email taken", func(t *testing.T) {
		_, _, err := env.users.UpdateUser(alice, alice.ID, "", "a@jwt.com", "")
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Anonymous denied", func(t *testing.T) {
		_, _, err := env.users.UpdateUser(nil, alice.ID, "x", "", "")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}
