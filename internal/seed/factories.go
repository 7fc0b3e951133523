package seed

import (
	"fmt"
	"strings"
	"time"

	"kanban/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var boardPalettes = [][2]string{
	{"#0079bf", "#ffffff"},
	{"#d29034", "#1d2125"},
	{"#519839", "#ffffff"},
	{"#b04632", "#ffffff"},
	{"#89609e", "#ffffff"},
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

func (f *Factory) allocID() uint {
	f.nextID++
	return f.nextID
}

// BuildUser constructs a user without persisting it.
func (f *Factory) BuildUser() *models.User {
	username := strings.ToLower(gofakeit.Username())
	if len(username) < 3 {
		username = username + gofakeit.DigitN(3)
	}
	return &models.User{
		Username: username,
		Email:    gofakeit.Email(),
	}
}

// CreateUser persists a user with a bcrypt-hashed seed password.
func (f *Factory) CreateUser() (*models.User, error) {
	user := f.BuildUser()
	hashed, err := bcrypt.GenerateFromPassword([]byte(f.opts.Password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashed)

	if f.opts.DryRun {
		user.ID = f.allocID()
		return user, nil
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildBoard constructs a board without persisting it.
func (f *Factory) BuildBoard(owner *models.User) *models.Board {
	palette := boardPalettes[gofakeit.Number(0, len(boardPalettes)-1)]
	return &models.Board{
		Name:            gofakeit.BuzzWord() + " " + gofakeit.NounAbstract(),
		BackgroundColor: palette[0],
		TextColor:       palette[1],
		CreatedBy:       owner.ID,
	}
}

// CreateBoard persists a board and its owner membership row.
func (f *Factory) CreateBoard(owner *models.User) (*models.Board, error) {
	board := f.BuildBoard(owner)
	if f.opts.DryRun {
		board.ID = f.allocID()
		return board, nil
	}
	return board, f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		membership := models.BoardUser{
			BoardID: board.ID,
			UserID:  owner.ID,
			Role:    models.RoleOwner,
		}
		return tx.Create(&membership).Error
	})
}

// CreateList persists a list at the given position.
func (f *Factory) CreateList(board *models.Board, position int) (*models.List, error) {
	list := &models.List{
		Name:     gofakeit.VerbAction(),
		BoardID:  board.ID,
		Position: position,
	}
	if f.opts.DryRun {
		list.ID = f.allocID()
		return list, nil
	}
	return list, f.db.Create(list).Error
}

// CreateCard persists a card at the given position. Roughly half the
// cards get a due date within the next month.
func (f *Factory) CreateCard(list *models.List, position int) (*models.Card, error) {
	card := &models.Card{
		Name:        gofakeit.Sentence(3),
		ListID:      list.ID,
		Position:    position,
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
	if gofakeit.Bool() {
		due := time.Now().AddDate(0, 0, gofakeit.Number(1, 30))
		card.DueDate = due.Format("2006-01-02")
	}
	if f.opts.DryRun {
		card.ID = f.allocID()
		return card, nil
	}
	return card, f.db.Create(card).Error
}

// CreateMembership adds a non-owner member to a board.
func (f *Factory) CreateMembership(board *models.Board, user *models.User, role string) (*models.BoardUser, error) {
	membership := &models.BoardUser{
		BoardID: board.ID,
		UserID:  user.ID,
		Role:    role,
		Starred: gofakeit.Bool(),
	}
	if f.opts.DryRun {
		return membership, nil
	}
	if err := f.db.Create(membership).Error; err != nil {
		return nil, fmt.Errorf("create membership: %w", err)
	}
	return membership, nil
}
