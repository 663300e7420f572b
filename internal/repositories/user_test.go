package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/amanah-wallet/internal/models"
)

func TestUserWriteRepository_Save(t *testing.T) {
	db, teardown := setupPostgres(t)
	defer teardown()

	repo := NewUserWriteRepository(db)
	ctx := context.Background()

	user := &models.UserDB{
		Username:     "alice",
		Email:        "alice@example.com",
		Phone:        "+60123456789",
		FullName:     "Alice Rahman",
		Country:      "MY",
		PasswordHash: "password123",
	}
	err := repo.Save(ctx, user)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.UserID)
	assert.False(t, user.CreatedAt.IsZero())

	var stored models.UserDB
	err = db.Get(&stored, "SELECT "+userColumns+" FROM users WHERE username=$1", "alice")
	require.NoError(t, err)

	assert.Equal(t, user.UserID, stored.UserID)
	assert.Equal(t, "alice@example.com", stored.Email)
	assert.Equal(t, "Alice Rahman", stored.FullName)
	assert.Equal(t, "password123", stored.PasswordHash)

	t.Run("DuplicateUsername", func(t *testing.T) {
		dup := *user
		dup.Email = "other@example.com"
		dup.Phone = "+60000000000"
		assert.Error(t, repo.Save(ctx, &dup))
	})
}

func TestUserReadRepository(t *testing.T) {
	db, teardown := setupPostgres(t)
	defer teardown()

	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	charlie := createUser(t, db, "charlie")
	createUser(t, db, "dave")

	t.Run("GetByUsername", func(t *testing.T) {
		user, err := readRepo.GetByUsername(ctx, "charlie")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, charlie.UserID, user.UserID)
	})

	t.Run("GetByUsernameNotFound", func(t *testing.T) {
		user, err := readRepo.GetByUsername(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("GetByID", func(t *testing.T) {
		user, err := readRepo.GetByID(ctx, charlie.UserID)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "charlie", user.Username)
	})

	t.Run("GetByIDNotFound", func(t *testing.T) {
		user, err := readRepo.GetByID(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("FindConflictingByEmail", func(t *testing.T) {
		user, err := readRepo.FindConflicting(ctx, "new", "dave@example.com", "+0")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "dave", user.Username)
	})

	t.Run("FindConflictingByPhone", func(t *testing.T) {
		user, err := readRepo.FindConflicting(ctx, "new", "new@example.com", charlie.Phone)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "charlie", user.Username)
	})

	t.Run("NoConflict", func(t *testing.T) {
		user, err := readRepo.FindConflicting(ctx, "new", "new@example.com", "+0")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}
