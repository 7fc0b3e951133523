package repository

import (
	"context"
	"errors"

	"kanban/internal/models"

	"gorm.io/gorm"
)

// BoardRepository defines persistence operations for boards.
type BoardRepository interface {
	FindAll(ctx context.Context, filter Filter) ([]models.Board, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	FindByID(ctx context.Context, id uint) (*models.Board, error)
	Create(ctx context.Context, board *models.Board) error
	Update(ctx context.Context, board *models.Board) error
	Patch(ctx context.Context, id uint, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uint) error
}

var boardFilterColumns = map[string]bool{
	"name":       true,
	"created_by": true,
}

var boardPatchColumns = map[string]bool{
	"name":             true,
	"background_color": true,
	"text_color":       true,
}

type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository returns a new BoardRepository implementation.
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) FindAll(ctx context.Context, filter Filter) ([]models.Board, error) {
	where, err := buildWhere(filter, boardFilterColumns)
	if err != nil {
		return nil, err
	}

	var boards []models.Board
	q := r.db.WithContext(ctx)
	if len(where) > 0 {
		q = q.Where(where)
	}
	if err := q.Find(&boards).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return boards, nil
}

// Count reports the grand total of boards. The filter is accepted but
// ignored; existing clients rely on the grand total.
func (r *boardRepository) Count(ctx context.Context, filter Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Board{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *boardRepository) FindByID(ctx context.Context, id uint) (*models.Board, error) {
	var board models.Board
	if err := r.db.WithContext(ctx).First(&board, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Board", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &board, nil
}

// Create inserts the board and its owner membership row in one
// transaction. A board is never visible without its owner.
func (r *boardRepository) Create(ctx context.Context, board *models.Board) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return models.NewInternalError(err)
		}

		owner := models.BoardUser{
			BoardID: board.ID,
			UserID:  board.CreatedBy,
			Role:    models.RoleOwner,
			Starred: false,
		}
		if err := tx.Create(&owner).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *boardRepository) Update(ctx context.Context, board *models.Board) error {
	if err := r.db.WithContext(ctx).Save(board).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *boardRepository) Patch(ctx context.Context, id uint, fields map[string]interface{}) (int64, error) {
	picked, err := pickFields(fields, boardPatchColumns)
	if err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).Model(&models.Board{}).Where("id = ?", id).Updates(picked)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the board together with its memberships, lists, and
// the cards under those lists, all in one transaction.
func (r *boardRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listIDs []uint
		if err := tx.Model(&models.List{}).Where("board_id = ?", id).Pluck("id", &listIDs).Error; err != nil {
			return models.NewInternalError(err)
		}
		if len(listIDs) > 0 {
			if err := tx.Where("list_id IN ?", listIDs).Delete(&models.Card{}).Error; err != nil {
				return models.NewInternalError(err)
			}
		}
		if err := tx.Where("board_id = ?", id).Delete(&models.List{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("board_id = ?", id).Delete(&models.BoardUser{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&models.Board{}, id).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}
