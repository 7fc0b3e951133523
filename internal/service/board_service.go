package service

import (
	"context"

	"kanban/internal/models"
	"kanban/internal/repository"
)

// BoardService provides board business logic.
type BoardService struct {
	boardRepo repository.BoardRepository
}

// NewBoardService returns a new BoardService.
func NewBoardService(boardRepo repository.BoardRepository) *BoardService {
	return &BoardService{boardRepo: boardRepo}
}

func (s *BoardService) FindAll(ctx context.Context, filter repository.Filter) ([]models.Board, error) {
	return s.boardRepo.FindAll(ctx, filter)
}

func (s *BoardService) Count(ctx context.Context, filter repository.Filter) (int64, error) {
	return s.boardRepo.Count(ctx, filter)
}

func (s *BoardService) FindByID(ctx context.Context, id uint) (*models.Board, error) {
	return s.boardRepo.FindByID(ctx, id)
}

// Create stores the board for the given creator. The creator becomes
// the board's owner.
func (s *BoardService) Create(ctx context.Context, board *models.Board, creatorID uint) (*models.Board, error) {
	if board.Name == "" {
		return nil, models.NewValidationError("Board name is required")
	}
	board.CreatedBy = creatorID
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *BoardService) Update(ctx context.Context, id uint, input *models.Board) (*models.Board, error) {
	board, err := s.boardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	board.Name = input.Name
	board.BackgroundColor = input.BackgroundColor
	board.TextColor = input.TextColor
	if err := s.boardRepo.Update(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// Patch applies a partial update. The returned bool reports whether a
// row was actually updated; on false the caller echoes its input back.
func (s *BoardService) Patch(ctx context.Context, id uint, fields map[string]interface{}) (*models.Board, bool, error) {
	rows, err := s.boardRepo.Patch(ctx, id, fields)
	if err != nil {
		return nil, false, err
	}
	if rows == 0 {
		return nil, false, nil
	}
	board, err := s.boardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return board, true, nil
}

// Delete removes the board and everything under it.
func (s *BoardService) Delete(ctx context.Context, id uint) error {
	if _, err := s.boardRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.boardRepo.Delete(ctx, id)
}
