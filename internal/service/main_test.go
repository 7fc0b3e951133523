package service

import (
	"testing"

	"kanban/internal/models"
	"kanban/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret-used-only-in-tests"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.BoardUser{},
		&models.List{},
		&models.Card{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func setupUserService(t *testing.T) (*UserService, *gorm.DB) {
	db := setupTestDB(t)
	issuer := NewTokenIssuer(testSecret)
	repo := repository.NewUserRepository(db, issuer.Sign)
	return NewUserService(repo, issuer), db
}
