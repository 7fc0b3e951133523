package repository

import (
	"context"
	"errors"
	"testing"

	"kanban/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return db, mock
}

// A broken store must surface as a 500, never as an auth decision.
func TestFindByTokenStoreFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db, staticSigner)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnError(errors.New("connection reset by peer"))

	user, err := repo.FindByToken(context.Background(), "some-token")
	assert.Nil(t, user)
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardFindAllStoreFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBoardRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "boards"`).
		WillReturnError(errors.New("read timeout"))

	boards, err := repo.FindAll(context.Background(), Filter{"created_by": 1})
	assert.Nil(t, boards)
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}
