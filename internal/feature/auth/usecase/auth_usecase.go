package usecase

import (
	"context"
	"errors"
	"fmt"

	"notes_backend/internal/feature/auth/domain/entity"
	"notes_backend/internal/shared/apperr"

	"golang.org/x/crypto/bcrypt"
)

// fallbackDummyHash is used only if the dummy hash cannot be generated at the configured cost.
const fallbackDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user and sets its ID.
	// It returns ErrEmailAlreadyExists if the email is already registered.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves the user with the given normalized email.
	// It returns ErrUserNotFound if there is none.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	// IssueToken returns a signed token whose subject is userID.
	IssueToken(userID uint) (string, error)
}

// Option configures an authUsecase.
type Option func(*authUsecase)

// WithHashCost sets the bcrypt cost used when registering users.
func WithHashCost(cost int) Option {
	return func(u *authUsecase) { u.hashCost = cost }
}

// authUsecase implements registration, authentication and login.
type authUsecase struct {
	users    UserRepository
	tokens   TokenIssuer
	hashCost int

	// dummyHash is compared against when the email is unknown. It shares hashCost
	// so that Authenticate spends the same bcrypt time whether or not the user exists.
	dummyHash []byte
}

// NewAuthUsecase creates a new authUsecase.
func NewAuthUsecase(users UserRepository, tokens TokenIssuer, opts ...Option) *authUsecase {
	u := &authUsecase{
		users:    users,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(u)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("dummy-password"), u.hashCost)
	if err != nil {
		hash = []byte(fallbackDummyHash)
	}
	u.dummyHash = hash
	return u
}

// Register creates a user with a bcrypt-hashed password and returns it.
func (u *authUsecase) Register(ctx context.Context, email, password string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, apperr.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &entity.User{Email: email, PasswordHash: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, apperr.Internal(fmt.Errorf("failed to create user: %w", err))
	}
	return user, nil
}

// Authenticate verifies the email/password pair and returns the matching user.
// A bcrypt comparison runs even when the user does not exist to mitigate timing attacks.
func (u *authUsecase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, apperr.Internal(fmt.Errorf("failed to look up user: %w", err))
	}

	passwordHash := u.dummyHash
	if err == nil {
		passwordHash = []byte(user.PasswordHash)
	}
	compareErr := bcrypt.CompareHashAndPassword(passwordHash, []byte(password))

	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates the user and issues a session token for it.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := u.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := u.tokens.IssueToken(user.ID)
	if err != nil {
		return "", nil, apperr.Internal(fmt.Errorf("failed to generate token: %w", err))
	}
	return token, user, nil
}
