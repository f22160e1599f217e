package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/nmorel/habitude/internal/error_values"
	"github.com/nmorel/habitude/internal/repository"
	"github.com/nmorel/habitude/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	usersRepo := repository.NewUsersRepoWithConn(mock)
	query := regexp.QuoteMeta(`INSERT INTO users (email, name, password_hash) VALUES ($1, $2, $3);`)
	user := &entity.User{
		Email:        "test@example.com",
		Name:         "tester",
		PasswordHash: "hash",
	}
	testCases := []struct {
		Desc         string
		Error        error
		MockPrepFunc func()
	}{
		{
			Desc:  "successful",
			Error: nil,
			MockPrepFunc: func() {
				mock.ExpectExec(query).WithArgs(user.Email, user.Name, user.PasswordHash).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			Desc:  "unique violation",
			Error: errorvalues.ErrUserExists,
			MockPrepFunc: func() {
				mock.ExpectExec(query).WithArgs(user.Email, user.Name, user.PasswordHash).
					WillReturnError(&pgconn.PgError{Code: "23505"})
			},
		},
		{
			Desc:  "db error",
			Error: errors.New("creating user db error: db error"),
			MockPrepFunc: func() {
				mock.ExpectExec(query).WithArgs(user.Email, user.Name, user.PasswordHash).
					WillReturnError(errors.New("db error"))
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			err := usersRepo.Create(ctx, user)
			if tc.Error != nil {
				assert.EqualError(t, err, tc.Error.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFindUserByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	usersRepo := repository.NewUsersRepoWithConn(mock)
	query := regexp.QuoteMeta(`SELECT id, email, name, password_hash FROM users WHERE email = $1;`)
	uid := uuid.New()
	email := "test@example.com"
	testCases := []struct {
		Desc         string
		Error        error
		Result       *entity.User
		MockPrepFunc func()
	}{
		{
			Desc:  "successful",
			Error: nil,
			Result: &entity.User{
				ID:           uid,
				Email:        email,
				Name:         "tester",
				PasswordHash: "hash",
			},
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(email).WillReturnRows(
					pgxmock.NewRows([]string{"id", "email", "name", "password_hash"}).
						AddRow(uid, email, "tester", "hash"),
				)
			},
		},
		{
			Desc:  "user not found",
			Error: errorvalues.ErrUserNotFound,
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(email).WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			Desc:  "db error",
			Error: errors.New("searching user by email error: db error"),
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(email).WillReturnError(errors.New("db error"))
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			user, err := usersRepo.FindByEmail(ctx, email)
			if tc.Error != nil {
				assert.EqualError(t, err, tc.Error.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.Result, user)
			}
		})
	}
}

func TestAllUsers(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	usersRepo := repository.NewUsersRepoWithConn(mock)
	query := regexp.QuoteMeta(`SELECT id, email, name, password_hash FROM users;`)
	first := uuid.New()
	second := uuid.New()
	t.Run("successful", func(t *testing.T) {
		mock.ExpectQuery(query).WillReturnRows(
			pgxmock.NewRows([]string{"id", "email", "name", "password_hash"}).
				AddRow(first, "a@example.com", "a", "hash_a").
				AddRow(second, "b@example.com", "b", "hash_b"),
		)
		users, err := usersRepo.All(context.Background())
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, first, users[0].ID)
		assert.Equal(t, second, users[1].ID)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).WillReturnError(errors.New("db error"))
		_, err := usersRepo.All(context.Background())
		assert.EqualError(t, err, "listing users error: db error")
	})
}

func TestDeleteUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	usersRepo := repository.NewUsersRepoWithConn(mock)
	query := regexp.QuoteMeta(`DELETE FROM users WHERE id = $1;`)
	uid := uuid.New()
	testCases := []struct {
		Desc         string
		Error        error
		MockPrepFunc func()
	}{
		{
			Desc:  "successful",
			Error: nil,
			MockPrepFunc: func() {
				mock.ExpectExec(query).WithArgs(uid).WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
		},
		{
			Desc:  "user not found",
			Error: errorvalues.ErrUserNotFound,
			MockPrepFunc: func() {
				mock.ExpectExec(query).WithArgs(uid).WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
		},
		{
			Desc:  "db error",
			Error: errors.New("deleting user error: db error"),
			MockPrepFunc: func() {
				mock.ExpectExec(query).WithArgs(uid).WillReturnError(errors.New("db error"))
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			err := usersRepo.Delete(ctx, uid)
			if tc.Error != nil {
				assert.EqualError(t, err, tc.Error.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
