package service

import (
	"context"

	"kanban/internal/models"
	"kanban/internal/repository"
)

// CardService provides card business logic.
type CardService struct {
	cardRepo repository.CardRepository
}

// NewCardService returns a new CardService.
func NewCardService(cardRepo repository.CardRepository) *CardService {
	return &CardService{cardRepo: cardRepo}
}

func (s *CardService) FindAll(ctx context.Context, filter repository.Filter) ([]models.Card, error) {
	return s.cardRepo.FindAll(ctx, filter)
}

func (s *CardService) Count(ctx context.Context, filter repository.Filter) (int64, error) {
	return s.cardRepo.Count(ctx, filter)
}

func (s *CardService) FindByID(ctx context.Context, id uint) (*models.Card, error) {
	return s.cardRepo.FindByID(ctx, id)
}

// Create stores a card. Parent integrity is left to the list_id foreign
// key; there is no existence pre-check.
func (s *CardService) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	if card.Name == "" {
		return nil, models.NewValidationError("Card name is required")
	}
	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *CardService) Update(ctx context.Context, id uint, input *models.Card) (*models.Card, error) {
	card, err := s.cardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	card.Name = input.Name
	card.ListID = input.ListID
	card.Position = input.Position
	card.DueDate = input.DueDate
	card.Description = input.Description
	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// Patch applies a partial update. The returned bool reports whether a
// row was actually updated; on false the caller echoes its input back.
func (s *CardService) Patch(ctx context.Context, id uint, fields map[string]interface{}) (*models.Card, bool, error) {
	rows, err := s.cardRepo.Patch(ctx, id, fields)
	if err != nil {
		return nil, false, err
	}
	if rows == 0 {
		return nil, false, nil
	}
	card, err := s.cardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return card, true, nil
}

func (s *CardService) Delete(ctx context.Context, id uint) error {
	if _, err := s.cardRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.cardRepo.Delete(ctx, id)
}
