// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"

	"kanban/internal/middleware"

	"gorm.io/gorm"
)

// Options controls how much demo data is generated.
type Options struct {
	Users         int
	BoardsPerUser int
	ListsPerBoard int
	CardsPerList  int
	Password      string
	DryRun        bool
}

// DefaultOptions returns a small but representative data set.
func DefaultOptions() Options {
	return Options{
		Users:         5,
		BoardsPerUser: 2,
		ListsPerBoard: 3,
		CardsPerList:  4,
		Password:      "SeededPass123!",
	}
}

// Run populates the database with demo users, boards, lists, and cards.
func Run(db *gorm.DB, opts Options) error {
	f := NewFactory(db, opts)

	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}

		for j := 0; j < opts.BoardsPerUser; j++ {
			board, err := f.CreateBoard(user)
			if err != nil {
				return fmt.Errorf("seed board: %w", err)
			}

			for k := 0; k < opts.ListsPerBoard; k++ {
				list, err := f.CreateList(board, k+1)
				if err != nil {
					return fmt.Errorf("seed list: %w", err)
				}

				for l := 0; l < opts.CardsPerList; l++ {
					if _, err := f.CreateCard(list, l+1); err != nil {
						return fmt.Errorf("seed card: %w", err)
					}
				}
			}
		}
	}

	middleware.Logger.Info("Seed complete",
		"users", opts.Users,
		"boards_per_user", opts.BoardsPerUser,
	)
	return nil
}
