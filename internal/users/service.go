package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/auth"
)

var (
	// ErrInvalidCredentials indicates the email/password pair does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRefreshToken indicates the refresh token failed verification.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrInvalidInput indicates missing or malformed registration input.
	ErrInvalidInput = errors.New("invalid input")
)

const bcryptCost = 10

// Tokens carries a freshly issued token pair.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// Service implements account registration and login.
type Service struct {
	Repo   Repo
	Signer *auth.Signer
}

// NewService constructs a Service.
func NewService(repo Repo, signer *auth.Signer) *Service {
	return &Service{Repo: repo, Signer: signer}
}

// Register creates an account and returns the user with a token pair.
func (s *Service) Register(ctx context.Context, email, password string) (User, Tokens, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return User{}, Tokens{}, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if len(password) < 6 {
		return User{}, Tokens{}, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return User{}, Tokens{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         "user",
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, Tokens{}, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return User{}, Tokens{}, err
	}
	return user, tokens, nil
}

// Login verifies credentials and returns the user with a token pair.
func (s *Service) Login(ctx context.Context, email, password string) (User, Tokens, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return User{}, Tokens{}, ErrInvalidCredentials
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, Tokens{}, ErrInvalidCredentials
		}
		return User{}, Tokens{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, Tokens{}, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return User{}, Tokens{}, err
	}
	return user, tokens, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (User, Tokens, error) {
	claims, err := s.Signer.Verify(refreshToken)
	if err != nil {
		return User{}, Tokens{}, ErrInvalidRefreshToken
	}

	user, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, Tokens{}, ErrInvalidRefreshToken
		}
		return User{}, Tokens{}, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return User{}, Tokens{}, err
	}
	return user, tokens, nil
}

func (s *Service) issueTokens(user User) (Tokens, error) {
	access, refresh, err := s.Signer.TokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		return Tokens{}, fmt.Errorf("sign tokens: %w", err)
	}
	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}
