package service

import (
	"context"

	"kanban/internal/models"
	"kanban/internal/repository"
)

var validRoles = map[string]bool{
	models.RoleOwner:  true,
	models.RoleEditor: true,
	models.RoleViewer: true,
}

// BoardUserService provides board membership business logic.
type BoardUserService struct {
	boardUserRepo repository.BoardUserRepository
}

// NewBoardUserService returns a new BoardUserService.
func NewBoardUserService(boardUserRepo repository.BoardUserRepository) *BoardUserService {
	return &BoardUserService{boardUserRepo: boardUserRepo}
}

func (s *BoardUserService) FindAll(ctx context.Context, filter repository.Filter) ([]models.BoardUser, error) {
	return s.boardUserRepo.FindAll(ctx, filter)
}

func (s *BoardUserService) Count(ctx context.Context, filter repository.Filter) (int64, error) {
	return s.boardUserRepo.Count(ctx, filter)
}

func (s *BoardUserService) Find(ctx context.Context, boardID, userID uint) (*models.BoardUser, error) {
	return s.boardUserRepo.Find(ctx, boardID, userID)
}

// Create adds a user to a board. Referential integrity is left to the
// foreign keys; only the role value is validated here.
func (s *BoardUserService) Create(ctx context.Context, membership *models.BoardUser) (*models.BoardUser, error) {
	if !validRoles[membership.Role] {
		return nil, models.NewValidationError("Role must be one of owner, editor, viewer")
	}
	if err := s.boardUserRepo.Create(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

func (s *BoardUserService) Update(ctx context.Context, boardID, userID uint, input *models.BoardUser) (*models.BoardUser, error) {
	if !validRoles[input.Role] {
		return nil, models.NewValidationError("Role must be one of owner, editor, viewer")
	}
	membership, err := s.boardUserRepo.Find(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	membership.Role = input.Role
	membership.Starred = input.Starred
	if err := s.boardUserRepo.Update(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// Patch applies a partial update. The returned bool reports whether a
// row was actually updated; on false the caller echoes its input back.
func (s *BoardUserService) Patch(ctx context.Context, boardID, userID uint, fields map[string]interface{}) (*models.BoardUser, bool, error) {
	if role, ok := fields["role"].(string); ok && !validRoles[role] {
		return nil, false, models.NewValidationError("Role must be one of owner, editor, viewer")
	}
	rows, err := s.boardUserRepo.Patch(ctx, boardID, userID, fields)
	if err != nil {
		return nil, false, err
	}
	if rows == 0 {
		return nil, false, nil
	}
	membership, err := s.boardUserRepo.Find(ctx, boardID, userID)
	if err != nil {
		return nil, false, err
	}
	return membership, true, nil
}

func (s *BoardUserService) Delete(ctx context.Context, boardID, userID uint) error {
	if _, err := s.boardUserRepo.Find(ctx, boardID, userID); err != nil {
		return err
	}
	return s.boardUserRepo.Delete(ctx, boardID, userID)
}
