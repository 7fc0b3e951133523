package repository

import (
	"context"
	"errors"

	"kanban/internal/models"

	"gorm.io/gorm"
)

// ListRepository defines persistence operations for lists.
type ListRepository interface {
	FindAll(ctx context.Context, filter Filter) ([]models.List, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	FindByID(ctx context.Context, id uint) (*models.List, error)
	Create(ctx context.Context, list *models.List) error
	Update(ctx context.Context, list *models.List) error
	Patch(ctx context.Context, id uint, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uint) error
}

var listFilterColumns = map[string]bool{
	"board_id": true,
	"name":     true,
}

var listPatchColumns = map[string]bool{
	"name":     true,
	"board_id": true,
	"position": true,
}

type listRepository struct {
	db *gorm.DB
}

// NewListRepository returns a new ListRepository implementation.
func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) FindAll(ctx context.Context, filter Filter) ([]models.List, error) {
	where, err := buildWhere(filter, listFilterColumns)
	if err != nil {
		return nil, err
	}

	var lists []models.List
	q := r.db.WithContext(ctx)
	if len(where) > 0 {
		q = q.Where(where)
	}
	if err := q.Find(&lists).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return lists, nil
}

// Count reports the grand total of lists. The filter is accepted but
// ignored; existing clients rely on the grand total.
func (r *listRepository) Count(ctx context.Context, filter Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.List{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *listRepository) FindByID(ctx context.Context, id uint) (*models.List, error) {
	var list models.List
	if err := r.db.WithContext(ctx).First(&list, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("List", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &list, nil
}

func (r *listRepository) Create(ctx context.Context, list *models.List) error {
	if err := r.db.WithContext(ctx).Create(list).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *listRepository) Update(ctx context.Context, list *models.List) error {
	if err := r.db.WithContext(ctx).Save(list).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *listRepository) Patch(ctx context.Context, id uint, fields map[string]interface{}) (int64, error) {
	picked, err := pickFields(fields, listPatchColumns)
	if err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).Model(&models.List{}).Where("id = ?", id).Updates(picked)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the list together with its cards in one transaction.
func (r *listRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", id).Delete(&models.Card{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&models.List{}, id).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}
