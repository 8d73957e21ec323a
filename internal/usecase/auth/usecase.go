package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "article-api/internal/domain/user"
	apperrors "article-api/pkg/errors"
	"article-api/pkg/logger"
	"article-api/pkg/security"
	"article-api/pkg/validation"
)

// maxTokenAttempts bounds how often issuance regenerates after a token collision.
const maxTokenAttempts = 5

// MessageInvalidCredentials is returned for both unknown emails and wrong passwords.
const MessageInvalidCredentials = "These credentials do not match our records."

// ErrInvalidCredentials is the uniform login failure.
var ErrInvalidCredentials = apperrors.NewAuthenticationError(MessageInvalidCredentials)

// Repository defines the credential store operations the auth flows need.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)   // Create a new user; duplicate email yields AlreadyExistsError
	GetByEmail(ctx context.Context, email string) (*domain.User, error) // Retrieve user by email, nil when absent
	GetByToken(ctx context.Context, token string) (*domain.User, error) // Retrieve token holder, nil when absent
	UpdateToken(ctx context.Context, id int64, token *string) error     // Replace or clear the user's token
}

// Policy holds the token and password rules.
type Policy struct {
	TokenLength       int
	PasswordMinLength int
}

// Usecase implements registration, login, logout and token resolution.
type Usecase struct {
	repo     Repository
	hasher   security.PasswordHasher
	policy   Policy
	log      *zap.Logger
	validate *validator.Validate

	newToken  func(n int) (string, error)
	dummyHash string
}

// New creates a new auth Usecase.
func New(r Repository, hasher security.PasswordHasher, policy Policy, log *zap.Logger) *Usecase {
	uc := &Usecase{
		repo:     r,
		hasher:   hasher,
		policy:   policy,
		log:      log,
		validate: validation.New(),
		newToken: security.RandomString,
	}

	// Unknown emails are verified against this hash so both failure paths cost one bcrypt compare
	if hash, err := hasher.Hash("not-a-real-password"); err == nil {
		uc.dummyHash = hash
	} else {
		log.Warn("failed to prepare login timing hash", zap.Error(err))
	}

	return uc
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates the submission and stores the account with its first token.
func (uc *Usecase) Register(ctx context.Context, in RegisterRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log)

	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)

	if err := uc.validateRegistration(in); err != nil {
		log.Warn("registration validation failed", zap.Error(err))
		return nil, err
	}

	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		log.Error("failed to check existing email", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to validate email uniqueness", err)
	}
	if existing != nil {
		log.Info("registration with taken email", zap.String("email", in.Email))
		return nil, emailTaken()
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	created, err := uc.createWithToken(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	log.Info("user registered", zap.Int64("user_id", created.ID))
	return NewUser(created), nil
}

func (uc *Usecase) validateRegistration(in RegisterRequest) error {
	ve := &apperrors.ValidationError{Message: apperrors.DefaultValidationMessage}

	if err := uc.validate.Struct(in); err != nil {
		var translated *apperrors.ValidationError
		if !errors.As(validation.Translate(err), &translated) {
			return apperrors.NewInternalError("failed to validate registration", err)
		}
		ve = translated
	}

	if in.Password != "" && len([]rune(in.Password)) < uc.policy.PasswordMinLength {
		ve.Add("password", fmt.Sprintf("The password must be at least %d characters.", uc.policy.PasswordMinLength))
	}

	// bcrypt rejects secrets longer than MaxPasswordBytes bytes
	if len(in.Password) > security.MaxPasswordBytes {
		ve.Add("password", fmt.Sprintf("The password may not be greater than %d characters.", security.MaxPasswordBytes))
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// createWithToken inserts u together with its first token, so a failed
// registration leaves no row behind. Token collisions regenerate.
func (uc *Usecase) createWithToken(ctx context.Context, u *domain.User) (*domain.User, error) {
	log := logger.WithContext(ctx, uc.log)

	for attempt := 1; attempt <= maxTokenAttempts; attempt++ {
		token, err := uc.newToken(uc.policy.TokenLength)
		if err != nil {
			log.Error("failed to generate api token", zap.Error(err))
			return nil, apperrors.NewInternalError("failed to generate api token", err)
		}
		u.APIToken = &token

		created, err := uc.repo.Create(ctx, u)
		if err == nil {
			return created, nil
		}

		var exists *apperrors.AlreadyExistsError
		if !errors.As(err, &exists) {
			log.Error("failed to create user", zap.Error(err))
			return nil, apperrors.NewInternalError("failed to create user", err)
		}
		if exists.Field != "api_token" {
			// Lost a concurrent registration race on the unique email index
			log.Info("registration lost email race", zap.String("email", u.Email))
			return nil, emailTaken()
		}
		log.Warn("api token collision, regenerating", zap.Int("attempt", attempt))
	}

	log.Error("api token issuance exhausted attempts", zap.Int("attempts", maxTokenAttempts))
	return nil, apperrors.NewInternalError("failed to issue a unique api token", nil)
}

func emailTaken() error {
	return apperrors.NewValidationError("email", "The email has already been taken.")
}

// Login verifies the credentials and issues a fresh token, superseding any previous one.
func (uc *Usecase) Login(ctx context.Context, in LoginRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log)

	in.Email = normalizeEmail(in.Email)

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("login validation failed", zap.Error(err))
		return nil, validation.Translate(err)
	}

	u, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		log.Error("failed to look up user for login", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to look up user", err)
	}

	hash := uc.dummyHash
	if u != nil {
		hash = u.PasswordHash
	}
	verified := uc.hasher.Verify(hash, in.Password)

	if u == nil || !verified {
		log.Info("login rejected")
		return nil, ErrInvalidCredentials
	}

	if _, err := uc.issueToken(ctx, u); err != nil {
		return nil, err
	}

	log.Info("user logged in", zap.Int64("user_id", u.ID))
	return NewUser(u), nil
}

// Logout clears the user's token. A nil user is a no-op.
func (uc *Usecase) Logout(ctx context.Context, u *domain.User) error {
	if u == nil {
		return nil
	}

	if err := uc.repo.UpdateToken(ctx, u.ID, nil); err != nil {
		logger.WithContext(ctx, uc.log).Error("failed to clear api token", zap.Error(err))
		return apperrors.NewInternalError("failed to log out", err)
	}
	u.APIToken = nil

	logger.WithContext(ctx, uc.log).Info("user logged out", zap.Int64("user_id", u.ID))
	return nil
}

// Authenticate resolves a bearer token to its holder or fails with ErrUnauthenticated.
func (uc *Usecase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	u, err := uc.repo.GetByToken(ctx, token)
	if err != nil {
		logger.WithContext(ctx, uc.log).Error("failed to resolve api token", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to resolve api token", err)
	}
	if u == nil || !u.HasToken() || !security.ConstantTimeEqual(*u.APIToken, token) {
		return nil, apperrors.ErrUnauthenticated
	}

	return u, nil
}

// issueToken assigns a new random token to u, persists it and returns it.
// A token held by another user is never accepted; issuance regenerates instead.
func (uc *Usecase) issueToken(ctx context.Context, u *domain.User) (string, error) {
	log := logger.WithContext(ctx, uc.log)

	for attempt := 1; attempt <= maxTokenAttempts; attempt++ {
		token, err := uc.newToken(uc.policy.TokenLength)
		if err != nil {
			log.Error("failed to generate api token", zap.Error(err))
			return "", apperrors.NewInternalError("failed to generate api token", err)
		}
		if u.APIToken != nil && *u.APIToken == token {
			continue
		}

		err = uc.repo.UpdateToken(ctx, u.ID, &token)
		if err == nil {
			u.APIToken = &token
			return token, nil
		}

		var exists *apperrors.AlreadyExistsError
		if errors.As(err, &exists) {
			log.Warn("api token collision, regenerating", zap.Int("attempt", attempt))
			continue
		}

		log.Error("failed to persist api token", zap.Error(err))
		return "", apperrors.NewInternalError("failed to persist api token", err)
	}

	log.Error("api token issuance exhausted attempts", zap.Int("attempts", maxTokenAttempts))
	return "", apperrors.NewInternalError("failed to issue a unique api token", nil)
}
