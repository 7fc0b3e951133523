package repository

import (
	"context"
	"errors"
	"strings"

	"kanban/internal/models"

	"gorm.io/gorm"
)

// TokenSigner produces a signed session token for the given user.
type TokenSigner func(user *models.User) (string, error)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindAll(ctx context.Context, filter Filter) ([]models.User, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByToken(ctx context.Context, token string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Patch(ctx context.Context, id uint, fields map[string]interface{}) (int64, error)
	UpdateToken(ctx context.Context, id uint, token string) error
	UpdatePassword(ctx context.Context, id uint, hashed string) error
	Delete(ctx context.Context, id uint) error
}

var userFilterColumns = map[string]bool{
	"username": true,
	"email":    true,
}

var userPatchColumns = map[string]bool{
	"username": true,
	"email":    true,
}

type userRepository struct {
	db   *gorm.DB
	sign TokenSigner
}

// NewUserRepository returns a new UserRepository implementation. The
// signer is used to issue the session token persisted alongside a newly
// created user.
func NewUserRepository(db *gorm.DB, sign TokenSigner) UserRepository {
	return &userRepository{db: db, sign: sign}
}

func (r *userRepository) FindAll(ctx context.Context, filter Filter) ([]models.User, error) {
	where, err := buildWhere(filter, userFilterColumns)
	if err != nil {
		return nil, err
	}

	var users []models.User
	q := r.db.WithContext(ctx)
	if len(where) > 0 {
		q = q.Where(where)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// Count always reports zero regardless of the stored rows; clients of
// the user count endpoint expect this stub.
func (r *userRepository) Count(ctx context.Context, filter Filter) (int64, error) {
	return 0, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) FindByToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// Create inserts the user and persists a freshly signed session token
// in the same transaction, so a registered user always has a usable
// token.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewValidationError("User already exists")
			}
			return models.NewInternalError(err)
		}

		token, err := r.sign(user)
		if err != nil {
			return models.NewInternalError(err)
		}

		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Update("token", token).Error; err != nil {
			return models.NewInternalError(err)
		}
		user.Token = token
		return nil
	})
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Patch(ctx context.Context, id uint, fields map[string]interface{}) (int64, error) {
	picked, err := pickFields(fields, userPatchColumns)
	if err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(picked)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *userRepository) UpdateToken(ctx context.Context, id uint, token string) error {
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("token", token).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, hashed string) error {
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", hashed).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete is a stub: users are never hard-deleted.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
