package service

import (
	"context"

	"kanban/internal/models"
	"kanban/internal/repository"
)

// ListService provides list business logic.
type ListService struct {
	listRepo repository.ListRepository
}

// NewListService returns a new ListService.
func NewListService(listRepo repository.ListRepository) *ListService {
	return &ListService{listRepo: listRepo}
}

func (s *ListService) FindAll(ctx context.Context, filter repository.Filter) ([]models.List, error) {
	return s.listRepo.FindAll(ctx, filter)
}

func (s *ListService) Count(ctx context.Context, filter repository.Filter) (int64, error) {
	return s.listRepo.Count(ctx, filter)
}

func (s *ListService) FindByID(ctx context.Context, id uint) (*models.List, error) {
	return s.listRepo.FindByID(ctx, id)
}

// Create stores a list. Parent integrity is left to the board_id
// foreign key; there is no existence pre-check.
func (s *ListService) Create(ctx context.Context, list *models.List) (*models.List, error) {
	if list.Name == "" {
		return nil, models.NewValidationError("List name is required")
	}
	if err := s.listRepo.Create(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *ListService) Update(ctx context.Context, id uint, input *models.List) (*models.List, error) {
	list, err := s.listRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	list.Name = input.Name
	list.BoardID = input.BoardID
	list.Position = input.Position
	if err := s.listRepo.Update(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Patch applies a partial update. The returned bool reports whether a
// row was actually updated; on false the caller echoes its input back.
func (s *ListService) Patch(ctx context.Context, id uint, fields map[string]interface{}) (*models.List, bool, error) {
	rows, err := s.listRepo.Patch(ctx, id, fields)
	if err != nil {
		return nil, false, err
	}
	if rows == 0 {
		return nil, false, nil
	}
	list, err := s.listRepo.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return list, true, nil
}

// Delete removes the list and its cards.
func (s *ListService) Delete(ctx context.Context, id uint) error {
	if _, err := s.listRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.listRepo.Delete(ctx, id)
}
