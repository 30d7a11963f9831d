package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepositoryGetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		wantUsername  string
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email", "is_admin"}).
					AddRow(1, "testuser", "test@example.com", false)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			wantUsername: "testuser",
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else if assert.NotNil(t, user) {
				assert.Equal(t, tt.wantUsername, user.Username)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepositoryGetByUsernameOrEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 OR email = $2 ORDER BY "users"."id" LIMIT $3`)

	t.Run("Found By Email", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow(3, "someone", "someone@example.com")
		mock.ExpectQuery(query).
			WithArgs("someone@example.com", "someone@example.com", 1).
			WillReturnRows(rows)

		user, err := repo.GetByUsernameOrEmail(ctx, "someone@example.com")
		assert.NoError(t, err)
		if assert.NotNil(t, user) {
			assert.Equal(t, "someone", user.Username)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Is Not An Error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("ghost", "ghost", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.GetByUsernameOrEmail(ctx, "ghost")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepositorySetAdmin(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	update := regexp.QuoteMeta(`UPDATE "users" SET "is_admin"=$1 WHERE id = $2`)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(update).
			WithArgs(true, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.SetAdmin(ctx, 5, true))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing User", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(update).
			WithArgs(true, 99).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.SetAdmin(ctx, 99, true)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIsUniqueConstraintError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"Nil", nil, false},
		{"Gorm Duplicated Key", gorm.ErrDuplicatedKey, true},
		{"Postgres Message", assert.AnError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueConstraintError(tt.err))
		})
	}
}
