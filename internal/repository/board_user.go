package repository

import (
	"context"
	"errors"
	"fmt"

	"kanban/internal/models"

	"gorm.io/gorm"
)

// BoardUserRepository defines persistence operations for board
// memberships. Rows are addressed by their composite (board_id,
// user_id) key.
type BoardUserRepository interface {
	FindAll(ctx context.Context, filter Filter) ([]models.BoardUser, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Find(ctx context.Context, boardID, userID uint) (*models.BoardUser, error)
	Create(ctx context.Context, boardUser *models.BoardUser) error
	Update(ctx context.Context, boardUser *models.BoardUser) error
	Patch(ctx context.Context, boardID, userID uint, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, boardID, userID uint) error
}

var boardUserFilterColumns = map[string]bool{
	"board_id": true,
	"user_id":  true,
	"role":     true,
	"starred":  true,
}

var boardUserPatchColumns = map[string]bool{
	"role":    true,
	"starred": true,
}

type boardUserRepository struct {
	db *gorm.DB
}

// NewBoardUserRepository returns a new BoardUserRepository implementation.
func NewBoardUserRepository(db *gorm.DB) BoardUserRepository {
	return &boardUserRepository{db: db}
}

func (r *boardUserRepository) FindAll(ctx context.Context, filter Filter) ([]models.BoardUser, error) {
	where, err := buildWhere(filter, boardUserFilterColumns)
	if err != nil {
		return nil, err
	}

	var memberships []models.BoardUser
	q := r.db.WithContext(ctx)
	if len(where) > 0 {
		q = q.Where(where)
	}
	if err := q.Find(&memberships).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return memberships, nil
}

// Count reports the grand total of memberships; the filter is accepted
// but ignored, like the other entity counts.
func (r *boardUserRepository) Count(ctx context.Context, filter Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.BoardUser{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *boardUserRepository) Find(ctx context.Context, boardID, userID uint) (*models.BoardUser, error) {
	var membership models.BoardUser
	err := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("BoardUser", fmt.Sprintf("%d/%d", boardID, userID))
		}
		return nil, models.NewInternalError(err)
	}
	return &membership, nil
}

func (r *boardUserRepository) Create(ctx context.Context, boardUser *models.BoardUser) error {
	if err := r.db.WithContext(ctx).Create(boardUser).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("User is already a member of this board")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *boardUserRepository) Update(ctx context.Context, boardUser *models.BoardUser) error {
	err := r.db.WithContext(ctx).Model(&models.BoardUser{}).
		Where("board_id = ? AND user_id = ?", boardUser.BoardID, boardUser.UserID).
		Updates(map[string]interface{}{
			"role":    boardUser.Role,
			"starred": boardUser.Starred,
		}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *boardUserRepository) Patch(ctx context.Context, boardID, userID uint, fields map[string]interface{}) (int64, error) {
	picked, err := pickFields(fields, boardUserPatchColumns)
	if err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).Model(&models.BoardUser{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Updates(picked)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *boardUserRepository) Delete(ctx context.Context, boardID, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&models.BoardUser{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
