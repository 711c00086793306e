// Package service contains the application's business logic, orchestrating
// repositories beneath the HTTP handlers.
package service

import (
	"context"
	"net/mail"

	"devlink/internal/auth"
	"devlink/internal/gravatar"
	"devlink/internal/models"
	"devlink/internal/repository"
)

// UserService handles registration, login, and account lifecycle.
type UserService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	tokens      *auth.TokenService
}

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// NewUserService creates a UserService.
func NewUserService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	tokens *auth.TokenService,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
	}
}

// Register creates a user with a gravatar-derived avatar and a bcrypt
// password hash, then issues an identity token. Registering an email twice
// fails with a conflict and creates no second record.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (string, error) {
	if in.Name == "" {
		return "", models.NewValidationError("Name is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return "", models.NewValidationError("Valid email is required")
	}
	if len(in.Password) < 6 {
		return "", models.NewValidationError("Password is required min 6 characters")
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", models.NewConflictError("User already exists")
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
		Avatar:   gravatar.URL(in.Email),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}

// Login verifies credentials against the stored hash and issues a token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.NewUnauthorizedError("Invalid credentials")
	}

	if !auth.CheckPassword(password, user.Password) {
		return "", models.NewUnauthorizedError("Invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}

// GetByID returns the user record for the authenticated caller.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// DeleteAccount removes the caller's profile and then the user record.
// These are two sequential writes, not a transaction; a crash between them
// leaves an orphaned user, which is an accepted inconsistency window.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
