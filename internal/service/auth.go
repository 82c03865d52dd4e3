package service

import (
	"context"
	"errors"
	"time"

	"github.com/civicreport/civicreport-go/internal/crypto"
	"github.com/civicreport/civicreport-go/internal/model"
	"github.com/civicreport/civicreport-go/internal/repository"
)

var (
	ErrFieldsRequired     = errors.New("all fields required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserStore is the credential persistence interface required by AuthService.
// Implemented by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// AuthService handles registration, login and profile lookup.
type AuthService struct {
	store     UserStore
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		store:     store,
		jwtSecret: secret,
		tokenTTL:  ttl,
	}
}

// Register validates the submission and creates a new user account.
// No token is issued; the caller proceeds to the login flow.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) error {
	if req.Email == "" || req.Password == "" || req.ConfirmPassword == "" || req.Role == "" {
		return ErrFieldsRequired
	}
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}

	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return ErrEmailTaken
		}
		return err
	}

	return nil
}

// Login authenticates a user and returns a session token valid for the
// configured TTL. Unknown email and wrong password both return
// ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", ErrFieldsRequired
	}

	user, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !crypto.CheckPassword(req.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return crypto.GenerateToken(user.ID, user.Role, s.jwtSecret, s.tokenTTL)
}

// Profile retrieves the identity data for an authenticated user ID.
func (s *AuthService) Profile(ctx context.Context, userID int64) (model.ProfileResponse, error) {
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return model.ProfileResponse{}, err
	}

	return model.ProfileResponse{
		Email: user.Email,
		Role:  user.Role,
	}, nil
}
