package auth

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/elibrary/internal/apperr"
	"github.com/mrlokans/elibrary/internal/database"
	"github.com/mrlokans/elibrary/internal/database/users"
	"github.com/mrlokans/elibrary/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "auth.db")
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
	return db
}

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	tokens := NewTokenIssuer(testSecret, 30*time.Minute, "elibrary")
	return NewService(users.NewRepository(db), tokens, testCost, zap.NewNop()), db
}

// blindStore never finds a user by email, so Register skips straight to the
// insert the way a request racing another registration would.
type blindStore struct {
	*users.Repository
}

func (blindStore) GetUserByEmail(context.Context, string) (*entities.User, error) {
	return nil, users.ErrUserNotFound
}

func TestService_Register(t *testing.T) {
	svc, db := setupService(t)

	user, err := svc.Register(context.Background(), "Ada", "ada@example.com", "analytical-engine")

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "Ada", user.Name)
	assert.True(t, user.IsActive)
	assert.False(t, user.CreatedAt.IsZero())
	assert.NotEqual(t, "analytical-engine", user.PasswordHash)

	var stored entities.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NoError(t, CheckPassword("analytical-engine", stored.PasswordHash))
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "first-password")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Impostor", "ada@example.com", "second-password")

	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, "Email already registered", apperr.MessageOf(err))

	var count int64
	db.Model(&entities.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestService_Register_RacingDuplicateMapsToSameConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := users.NewRepository(db)
	tokens := NewTokenIssuer(testSecret, 30*time.Minute, "elibrary")
	ctx := context.Background()

	winner := NewService(repo, tokens, testCost, zap.NewNop())
	_, err := winner.Register(ctx, "Ada", "ada@example.com", "first-password")
	require.NoError(t, err)

	loser := NewService(blindStore{repo}, tokens, testCost, zap.NewNop())
	_, err = loser.Register(ctx, "Ada again", "ada@example.com", "second-password")

	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, users.ErrEmailTaken.Message, apperr.MessageOf(err))
}

func TestService_Register_Validation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{name: "blank name", userName: " ", email: "a@example.com", password: "password"},
		{name: "blank email", userName: "A", email: "", password: "password"},
		{name: "empty password", userName: "A", email: "a@example.com", password: ""},
		{name: "password too long", userName: "A", email: "a@example.com", password: string(make([]byte, 73))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Ada", "ada@example.com", "analytical-engine")
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "ada@example.com", "analytical-engine")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, wrongPassword := svc.Authenticate(ctx, "ada@example.com", "difference-engine")
		_, unknownEmail := svc.Authenticate(ctx, "nobody@example.com", "analytical-engine")

		assert.ErrorIs(t, wrongPassword, apperr.ErrUnauthenticated)
		assert.ErrorIs(t, unknownEmail, apperr.ErrUnauthenticated)
		assert.Equal(t, "Invalid credentials", apperr.MessageOf(wrongPassword))
		assert.Equal(t, apperr.MessageOf(wrongPassword), apperr.MessageOf(unknownEmail))
	})

	t.Run("suffix past the bcrypt limit", func(t *testing.T) {
		long := strings.Repeat("a", MaxPasswordBytes)
		_, err := svc.Register(ctx, "Max", "max@example.com", long)
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, "max@example.com", long)
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, "max@example.com", long+"EXTRA")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Authenticate(ctx, "nobody@example.com", long+"EXTRA")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("email match is exact", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "ADA@example.com", "analytical-engine")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		require.NoError(t, db.Model(&entities.User{}).Where("id = ?", registered.ID).Update("is_active", false).Error)
		t.Cleanup(func() {
			db.Model(&entities.User{}).Where("id = ?", registered.ID).Update("is_active", true)
		})

		_, err := svc.Authenticate(ctx, "ada@example.com", "analytical-engine")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_LoginTokenBindsToUser(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Ada", "ada@example.com", "analytical-engine")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "ada@example.com", "analytical-engine")
	require.NoError(t, err)

	userID, err := svc.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)

	resolved, err := svc.ResolveToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, resolved.ID)
}

func TestService_TokenTTL(t *testing.T) {
	svc, _ := setupService(t)

	assert.Equal(t, 30*time.Minute, svc.TokenTTL())
}

func TestService_Login_BadCredentials(t *testing.T) {
	svc, _ := setupService(t)

	token, err := svc.Login(context.Background(), "nobody@example.com", "whatever")

	assert.Empty(t, token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_ResolveToken(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ada", "ada@example.com", "analytical-engine")
	require.NoError(t, err)

	t.Run("invalid token", func(t *testing.T) {
		_, err := svc.ResolveToken(ctx, "garbage")
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenIssuer(testSecret, 30*time.Minute, "elibrary")
		expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := expired.Issue(user.ID)
		require.NoError(t, err)

		_, err = svc.ResolveToken(ctx, token)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("user no longer exists", func(t *testing.T) {
		token, err := svc.tokens.Issue(user.ID + 100)
		require.NoError(t, err)

		_, err = svc.ResolveToken(ctx, token)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("inactive user", func(t *testing.T) {
		token, err := svc.tokens.Issue(user.ID)
		require.NoError(t, err)
		require.NoError(t, db.Model(&entities.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

		_, err = svc.ResolveToken(ctx, token)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})
}
