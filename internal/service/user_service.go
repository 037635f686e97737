package service

import (
	"client-service/internal/entity"
	"client-service/internal/repository"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// passwordCost is the bcrypt work factor for stored passwords.
const passwordCost = 10

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordReused     = errors.New("password already exists")
	ErrPasswordNotUpdated = errors.New("error updating password")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

type UserService struct {
	repo UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register stores a new user with a bcrypt hash of the password.
func (s *UserService) Register(ctx context.Context, creds *entity.Credentials) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), passwordCost)
	if err != nil {
		logger.Error().Err(err).Msg("Error hashing password")
		return err
	}

	err = s.repo.CreateUser(ctx, &entity.User{Username: creds.Username, Password: string(hash)})
	if err != nil {
		logger.Error().Err(err).Msgf("Error registering user %s", creds.Username)
		return err
	}
	return nil
}

// Login checks the password against the stored hash. Nothing is issued on success.
func (s *UserService) Login(ctx context.Context, creds *entity.Credentials) error {
	user, err := s.repo.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidCredentials
		}
		logger.Error().Err(err).Msg("Error looking up user for login")
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			logger.Warn().Err(err).Msgf("Stored hash for user %s is unusable", creds.Username)
		}
		return ErrInvalidCredentials
	}
	return nil
}

// ChangePassword replaces the stored hash unless newPassword is the current password.
func (s *UserService) ChangePassword(ctx context.Context, req *entity.ChangePassword) error {
	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error looking up user for password change")
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.NewPassword)) == nil {
		return ErrPasswordReused
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), passwordCost)
	if err != nil {
		logger.Error().Err(err).Msg("Error hashing password")
		return fmt.Errorf("%w: %w", ErrPasswordNotUpdated, err)
	}

	if err := s.repo.UpdatePassword(ctx, req.Username, string(hash)); err != nil {
		logger.Error().Err(err).Msgf("Error updating password for user %s", req.Username)
		return fmt.Errorf("%w: %w", ErrPasswordNotUpdated, err)
	}
	return nil
}
