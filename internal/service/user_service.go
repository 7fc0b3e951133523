package service

import (
	"context"

	"kanban/internal/models"
	"kanban/internal/repository"
	"kanban/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService provides user account business logic.
type UserService struct {
	userRepo repository.UserRepository
	issuer   *TokenIssuer
}

// RegisterInput is the input for registering a user.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput is the input for logging in.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, issuer *TokenIssuer) *UserService {
	return &UserService{userRepo: userRepo, issuer: issuer}
}

// Register validates the input, hashes the password, and creates the
// user. The created user carries a freshly issued session token.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and rotates the stored session token.
// The previous token stops working as soon as the new one is stored.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthenticatedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthenticatedError("Invalid credentials")
	}

	token, err := s.issuer.Sign(user)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := s.userRepo.UpdateToken(ctx, user.ID, token); err != nil {
		return nil, err
	}
	user.Token = token
	return user, nil
}

// ChangePassword hashes and stores a new password for the user. The
// current password is not verified before the change.
func (s *UserService) ChangePassword(ctx context.Context, id uint, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	return s.userRepo.UpdatePassword(ctx, id, string(hashed))
}

// FindByToken resolves a bearer token to its user. A miss returns
// (nil, nil), not an error.
func (s *UserService) FindByToken(ctx context.Context, token string) (*models.User, error) {
	return s.userRepo.FindByToken(ctx, token)
}

func (s *UserService) FindAll(ctx context.Context, filter repository.Filter) ([]models.User, error) {
	return s.userRepo.FindAll(ctx, filter)
}

func (s *UserService) Count(ctx context.Context, filter repository.Filter) (int64, error) {
	return s.userRepo.Count(ctx, filter)
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// Update replaces the mutable fields of an existing user.
func (s *UserService) Update(ctx context.Context, id uint, username, email string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Username = username
	user.Email = email
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Patch applies a partial update. The returned bool reports whether a
// row was actually updated; on false the caller echoes its input back.
func (s *UserService) Patch(ctx context.Context, id uint, fields map[string]interface{}) (*models.User, bool, error) {
	rows, err := s.userRepo.Patch(ctx, id, fields)
	if err != nil {
		return nil, false, err
	}
	if rows == 0 {
		return nil, false, nil
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}
