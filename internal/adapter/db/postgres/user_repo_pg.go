package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"article-api/internal/domain/user"
	apperrors "article-api/pkg/errors"
)

// UserRepoPG implements the credential store using GORM.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// Create inserts a new user. A duplicate email yields *errors.AlreadyExistsError.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	model := UserSchema{
		Name:     u.Name,
		Email:    u.Email,
		Password: u.PasswordHash,
		APIToken: u.APIToken,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			field := r.conflictField(ctx, u)
			r.log.Warn("user unique constraint violated", zap.String("field", field))
			return nil, apperrors.NewAlreadyExistsError("user", field, fmt.Sprintf("user with this %s already exists", field))
		}
		r.log.Error("failed to create user in db", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return toUser(&model), nil
}

// GetByEmail retrieves a user by email. It returns nil, nil when no user matches.
func (r *UserRepoPG) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email")
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return toUser(&model), nil
}

// GetByToken retrieves the user holding token. It returns nil, nil when no user matches.
func (r *UserRepoPG) GetByToken(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, nil
	}

	var model UserSchema
	if err := r.db.WithContext(ctx).Where("api_token = ?", token).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("failed to get user by token from db", zap.Error(err))
		return nil, fmt.Errorf("failed to get user by token: %w", err)
	}

	return toUser(&model), nil
}

// UpdateToken replaces the user's token. A nil token clears it.
// A token already held by another user yields *errors.AlreadyExistsError.
func (r *UserRepoPG) UpdateToken(ctx context.Context, id int64, token *string) error {
	res := r.db.WithContext(ctx).
		Model(&UserSchema{}).
		Where("id = ?", id).
		Update("api_token", token)

	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			r.log.Warn("api token collision", zap.Int64("id", id))
			return apperrors.NewAlreadyExistsError("user", "api_token", "api token already assigned")
		}
		r.log.Error("failed to update api token", zap.Error(res.Error), zap.Int64("id", id))
		return fmt.Errorf("failed to update api token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%d", id))
	}

	r.log.Debug("api token updated", zap.Int64("id", id), zap.Bool("cleared", token == nil))
	return nil
}

// conflictField names the unique column behind a failed insert of u.
// Translated driver errors do not carry the constraint, so the email is looked up.
func (r *UserRepoPG) conflictField(ctx context.Context, u *user.User) string {
	if u.APIToken == nil {
		return "email"
	}

	var n int64
	if err := r.db.WithContext(ctx).Model(&UserSchema{}).Where("email = ?", u.Email).Count(&n).Error; err != nil || n > 0 {
		return "email"
	}
	return "api_token"
}

func toUser(m *UserSchema) *user.User {
	return &user.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.Password,
		APIToken:     m.APIToken,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
