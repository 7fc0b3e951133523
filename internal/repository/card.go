package repository

import (
	"context"
	"errors"

	"kanban/internal/models"

	"gorm.io/gorm"
)

// CardRepository defines persistence operations for cards.
type CardRepository interface {
	FindAll(ctx context.Context, filter Filter) ([]models.Card, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	FindByID(ctx context.Context, id uint) (*models.Card, error)
	Create(ctx context.Context, card *models.Card) error
	Update(ctx context.Context, card *models.Card) error
	Patch(ctx context.Context, id uint, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uint) error
}

var cardFilterColumns = map[string]bool{
	"list_id": true,
	"name":    true,
}

var cardPatchColumns = map[string]bool{
	"name":        true,
	"list_id":     true,
	"position":    true,
	"due_date":    true,
	"description": true,
}

type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository returns a new CardRepository implementation.
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) FindAll(ctx context.Context, filter Filter) ([]models.Card, error) {
	where, err := buildWhere(filter, cardFilterColumns)
	if err != nil {
		return nil, err
	}

	var cards []models.Card
	q := r.db.WithContext(ctx)
	if len(where) > 0 {
		q = q.Where(where)
	}
	if err := q.Find(&cards).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return cards, nil
}

// Count reports the grand total of cards. The filter is accepted but
// ignored; existing clients rely on the grand total.
func (r *cardRepository) Count(ctx context.Context, filter Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Card{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *cardRepository) FindByID(ctx context.Context, id uint) (*models.Card, error) {
	var card models.Card
	if err := r.db.WithContext(ctx).First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Card", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &card, nil
}

func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *cardRepository) Update(ctx context.Context, card *models.Card) error {
	if err := r.db.WithContext(ctx).Save(card).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *cardRepository) Patch(ctx context.Context, id uint, fields map[string]interface{}) (int64, error) {
	picked, err := pickFields(fields, cardPatchColumns)
	if err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).Model(&models.Card{}).Where("id = ?", id).Updates(picked)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *cardRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Card{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
