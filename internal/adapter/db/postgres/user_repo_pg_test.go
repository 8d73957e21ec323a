package postgres

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"article-api/internal/domain/user"
	apperrors "article-api/pkg/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// Every pooled connection would otherwise get its own empty in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

func strPtr(s string) *string { return &s }

func createUser(t *testing.T, repo *UserRepoPG, email string) *user.User {
	u, err := repo.Create(context.Background(), &user.User{
		Name:         "John",
		Email:        email,
		PasswordHash: "$2a$04$hash",
	})
	require.NoError(t, err)
	return u
}

func TestUserRepoPG_Create(t *testing.T) {
	repo := NewUserRepoPG(setupTestDB(t), zaptest.NewLogger(t))
	ctx := context.Background()

	u := createUser(t, repo, "test@register.com")
	assert.Positive(t, u.ID)
	assert.Equal(t, "test@register.com", u.Email)
	assert.Equal(t, "$2a$04$hash", u.PasswordHash)
	assert.Nil(t, u.APIToken)
	assert.False(t, u.CreatedAt.IsZero())

	t.Run("duplicate email", func(t *testing.T) {
		_, err := repo.Create(ctx, &user.User{Name: "Other", Email: "test@register.com", PasswordHash: "x"})

		var exists *apperrors.AlreadyExistsError
		require.ErrorAs(t, err, &exists)
		assert.Equal(t, "email", exists.Field)
	})

	t.Run("token held by another user", func(t *testing.T) {
		require.NoError(t, repo.UpdateToken(ctx, u.ID, strPtr("taken-token")))

		_, err := repo.Create(ctx, &user.User{
			Name:         "Other",
			Email:        "other@register.com",
			PasswordHash: "x",
			APIToken:     strPtr("taken-token"),
		})

		var exists *apperrors.AlreadyExistsError
		require.ErrorAs(t, err, &exists)
		assert.Equal(t, "api_token", exists.Field)
	})

	t.Run("duplicate email with fresh token", func(t *testing.T) {
		_, err := repo.Create(ctx, &user.User{
			Name:         "Other",
			Email:        "test@register.com",
			PasswordHash: "x",
			APIToken:     strPtr("fresh-token"),
		})

		var exists *apperrors.AlreadyExistsError
		require.ErrorAs(t, err, &exists)
		assert.Equal(t, "email", exists.Field)
	})

	t.Run("stores token with the row", func(t *testing.T) {
		created, err := repo.Create(ctx, &user.User{
			Name:         "Jane",
			Email:        "jane@register.com",
			PasswordHash: "x",
			APIToken:     strPtr("jane-token"),
		})
		require.NoError(t, err)

		found, err := repo.GetByToken(ctx, "jane-token")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("nil user", func(t *testing.T) {
		_, err := repo.Create(ctx, nil)
		assert.Error(t, err)
	})
}

func TestUserRepoPG_Lookups(t *testing.T) {
	repo := NewUserRepoPG(setupTestDB(t), zaptest.NewLogger(t))
	ctx := context.Background()
	created := createUser(t, repo, "john@example.com")
	require.NoError(t, repo.UpdateToken(ctx, created.ID, strPtr("token-1")))

	t.Run("by email", func(t *testing.T) {
		u, err := repo.GetByEmail(ctx, "john@example.com")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, created.ID, u.ID)
		require.NotNil(t, u.APIToken)
		assert.Equal(t, "token-1", *u.APIToken)

		u, err = repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("by token", func(t *testing.T) {
		u, err := repo.GetByToken(ctx, "token-1")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, created.ID, u.ID)

		u, err = repo.GetByToken(ctx, "token-2")
		require.NoError(t, err)
		assert.Nil(t, u)

		u, err = repo.GetByToken(ctx, "")
		require.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestUserRepoPG_UpdateToken(t *testing.T) {
	repo := NewUserRepoPG(setupTestDB(t), zaptest.NewLogger(t))
	ctx := context.Background()
	first := createUser(t, repo, "first@example.com")
	second := createUser(t, repo, "second@example.com")

	t.Run("replaces previous token", func(t *testing.T) {
		require.NoError(t, repo.UpdateToken(ctx, first.ID, strPtr("old")))
		require.NoError(t, repo.UpdateToken(ctx, first.ID, strPtr("new")))

		u, err := repo.GetByToken(ctx, "old")
		require.NoError(t, err)
		assert.Nil(t, u, "superseded token must not resolve")

		u, err = repo.GetByToken(ctx, "new")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, first.ID, u.ID)
	})

	t.Run("collision with another user", func(t *testing.T) {
		err := repo.UpdateToken(ctx, second.ID, strPtr("new"))

		var exists *apperrors.AlreadyExistsError
		require.ErrorAs(t, err, &exists)
		assert.Equal(t, "api_token", exists.Field)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, repo.UpdateToken(ctx, first.ID, nil))

		u, err := repo.GetByEmail(ctx, "first@example.com")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Nil(t, u.APIToken)
	})

	t.Run("several users without token", func(t *testing.T) {
		require.NoError(t, repo.UpdateToken(ctx, second.ID, nil))
	})

	t.Run("unknown user", func(t *testing.T) {
		err := repo.UpdateToken(ctx, 999, strPtr("x"))
		var nf *apperrors.NotFoundError
		assert.ErrorAs(t, err, &nf)
	})
}
