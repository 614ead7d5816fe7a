package users

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/elibrary/internal/apperr"
	"github.com/mrlokans/elibrary/internal/database"
	"github.com/mrlokans/elibrary/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "users.db")
	db, err := gorm.Open(sqlite.Open(database.SQLiteDSN(dbPath)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db)
}

func TestRepository_CreateUser(t *testing.T) {
	repo := setupTestDB(t)

	user := &entities.User{Name: "Test User", Email: "test@example.com", PasswordHash: "hash"}
	err := repo.CreateUser(context.Background(), user)

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.True(t, user.IsActive)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestRepository_CreateUser_DuplicateEmail(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &entities.User{Name: "First", Email: "dup@example.com", PasswordHash: "a"}))

	err := repo.CreateUser(ctx, &entities.User{Name: "Second", Email: "dup@example.com", PasswordHash: "b"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, "Email already registered", apperr.MessageOf(err))
}

func TestRepository_CreateUser_EmailIsCaseSensitive(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &entities.User{Name: "Lower", Email: "reader@example.com", PasswordHash: "a"}))
	err := repo.CreateUser(ctx, &entities.User{Name: "Upper", Email: "Reader@example.com", PasswordHash: "b"})

	assert.NoError(t, err)
}

func TestRepository_GetUserByID(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	created := &entities.User{Name: "Test User", Email: "test@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.CreateUser(ctx, created))

	user, err := repo.GetUserByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, "Test User", user.Name)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestRepository_GetUserByID_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetUserByID(context.Background(), 999)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRepository_GetUserByEmail(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	created := &entities.User{Name: "Test User", Email: "test@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.CreateUser(ctx, created))

	user, err := repo.GetUserByEmail(ctx, "test@example.com")

	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestRepository_GetUserByEmail_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetUserByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, ErrUserNotFound)
}
