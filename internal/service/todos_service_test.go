package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	errorvalues "github.com/nmorel/habitude/internal/error_values"
	"github.com/nmorel/habitude/internal/repository/mocks"
	"github.com/nmorel/habitude/internal/service"
	"github.com/nmorel/habitude/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestCreateTodo(t *testing.T) {
	ctrl := gomock.NewController(t)
	todosRepo := mocks.NewMockTodosRepositoryI(ctrl)
	serv := service.NewTodosService(todosRepo)
	uid := uuid.New()
	todoID := uuid.New()
	testCases := []struct {
		Desc         string
		Title        string
		Error        error
		MockPrepFunc func()
	}{
		{
			Desc:  "success",
			Title: "Buy milk",
			Error: nil,
			MockPrepFunc: func() {
				todosRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(todoID, nil)
				todosRepo.EXPECT().GetByID(gomock.Any(), todoID).Return(&entity.Todo{
					ID:     todoID,
					UserID: uid,
					Title:  "Buy milk",
				}, nil)
			},
		},
		{
			Desc:  "title is trimmed",
			Title: "  Buy milk  ",
			Error: nil,
			MockPrepFunc: func() {
				todosRepo.EXPECT().Create(gomock.Any(), &entity.Todo{
					UserID: uid,
					Title:  "Buy milk",
				}).Return(todoID, nil)
				todosRepo.EXPECT().GetByID(gomock.Any(), todoID).Return(&entity.Todo{
					ID:     todoID,
					UserID: uid,
					Title:  "Buy milk",
				}, nil)
			},
		},
		{
			Desc:         "empty title rejected before any mutation",
			Title:        "   ",
			Error:        errorvalues.ErrEmptyTitle,
			MockPrepFunc: func() {},
		},
		{
			Desc:  "unknown owner",
			Title: "Buy milk",
			Error: errorvalues.ErrUserNotFound,
			MockPrepFunc: func() {
				todosRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.UUID{}, errorvalues.ErrUserNotFound)
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			todo, err := serv.CreateTodo(ctx, uid, tc.Title)
			if tc.Error != nil {
				assert.ErrorIs(t, err, tc.Error)
			} else {
				require.NoError(t, err)
				assert.Equal(t, todoID, todo.ID)
				assert.Equal(t, "Buy milk", todo.Title)
			}
		})
	}
}

func TestUpdateTodoToggle(t *testing.T) {
	ctrl := gomock.NewController(t)
	todosRepo := mocks.NewMockTodosRepositoryI(ctrl)
	serv := service.NewTodosService(todosRepo)
	uid := uuid.New()
	todoID := uuid.New()
	createdAt := time.Now().Add(-48 * time.Hour)

	t.Run("toggle on sets completed_at", func(t *testing.T) {
		todosRepo.EXPECT().GetByID(gomock.Any(), todoID).Return(&entity.Todo{
			ID:        todoID,
			UserID:    uid,
			Title:     "Buy milk",
			CreatedAt: createdAt,
		}, nil)
		todosRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		todo, err := serv.UpdateTodo(context.Background(), todoID, uid, service.UpdateTodoRequest{
			Completed: boolPtr(true),
			Title:     strPtr("Buy milk"),
		})
		require.NoError(t, err)
		assert.True(t, todo.Completed)
		require.NotNil(t, todo.CompletedAt)
	})

	t.Run("toggle off clears completed_at", func(t *testing.T) {
		completedAt := time.Now()
		todosRepo.EXPECT().GetByID(gomock.Any(), todoID).Return(&entity.Todo{
			ID:          todoID,
			UserID:      uid,
			Title:       "Buy milk",
			Completed:   true,
			CompletedAt: &completedAt,
		}, nil)
		todosRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		todo, err := serv.UpdateTodo(context.Background(), todoID, uid, service.UpdateTodoRequest{
			Completed: boolPtr(false),
		})
		require.NoError(t, err)
		assert.False(t, todo.Completed)
		assert.Nil(t, todo.CompletedAt)
	})

	t.Run("wrong owner", func(t *testing.T) {
		todosRepo.EXPECT().GetByID(gomock.Any(), todoID).Return(&entity.Todo{
			ID:     todoID,
			UserID: uuid.New(),
			Title:  "Buy milk",
		}, nil)
		_, err := serv.UpdateTodo(context.Background(), todoID, uid, service.UpdateTodoRequest{
			Completed: boolPtr(true),
		})
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
}

func TestUpdateTodoDegradesToCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	todosRepo := mocks.NewMockTodosRepositoryI(ctrl)
	serv := service.NewTodosService(todosRepo)
	uid := uuid.New()
	unknownID := uuid.New()
	createdID := uuid.New()

	t.Run("unknown id with title creates with completion state", func(t *testing.T) {
		todosRepo.EXPECT().GetByID(gomock.Any(), unknownID).Return(nil, errorvalues.ErrTodoNotFound)
		todosRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, todo *entity.Todo) (uuid.UUID, error) {
				assert.Equal(t, "Buy milk", todo.Title)
				assert.True(t, todo.Completed)
				assert.NotNil(t, todo.CompletedAt)
				return createdID, nil
			})
		now := time.Now()
		todosRepo.EXPECT().GetByID(gomock.Any(), createdID).Return(&entity.Todo{
			ID:          createdID,
			UserID:      uid,
			Title:       "Buy milk",
			Completed:   true,
			CompletedAt: &now,
		}, nil)
		todo, err := serv.UpdateTodo(context.Background(), unknownID, uid, service.UpdateTodoRequest{
			Completed: boolPtr(true),
			Title:     strPtr("Buy milk"),
		})
		require.NoError(t, err)
		assert.Equal(t, createdID, todo.ID)
	})

	t.Run("unknown id without title is not found", func(t *testing.T) {
		todosRepo.EXPECT().GetByID(gomock.Any(), unknownID).Return(nil, errorvalues.ErrTodoNotFound)
		_, err := serv.UpdateTodo(context.Background(), unknownID, uid, service.UpdateTodoRequest{
			Completed: boolPtr(true),
		})
		assert.ErrorIs(t, err, errorvalues.ErrTodoNotFound)
	})
}

func TestDeleteTodo(t *testing.T) {
	ctrl := gomock.NewController(t)
	todosRepo := mocks.NewMockTodosRepositoryI(ctrl)
	serv := service.NewTodosService(todosRepo)
	uid := uuid.New()
	todoID := uuid.New()
	testCases := []struct {
		Desc         string
		Error        error
		MockPrepFunc func()
	}{
		{
			Desc:  "success",
			Error: nil,
			MockPrepFunc: func() {
				todosRepo.EXPECT().GetByID(gomock.Any(), todoID).Return(&entity.Todo{
					ID:     todoID,
					UserID: uid,
				}, nil)
				todosRepo.EXPECT().Delete(gomock.Any(), todoID).Return(nil)
			},
		},
		{
			Desc:  "wrong owner",
			Error: errorvalues.ErrWrongOwner,
			MockPrepFunc: func() {
				todosRepo.EXPECT().GetByID(gomock.Any(), todoID).Return(&entity.Todo{
					ID:     todoID,
					UserID: uuid.New(),
				}, nil)
			},
		},
		{
			Desc:  "todo not found",
			Error: errorvalues.ErrTodoNotFound,
			MockPrepFunc: func() {
				todosRepo.EXPECT().GetByID(gomock.Any(), todoID).Return(nil, errorvalues.ErrTodoNotFound)
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			err := serv.DeleteTodo(ctx, todoID, uid)
			assert.ErrorIs(t, err, tc.Error)
		})
	}
}

func TestReplaceAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	todosRepo := mocks.NewMockTodosRepositoryI(ctrl)
	serv := service.NewTodosService(todosRepo)
	uid := uuid.New()
	now := time.Now()

	t.Run("replaces wholesale and skips blank titles", func(t *testing.T) {
		todosRepo.EXPECT().DeleteByUserID(gomock.Any(), uid).Return(nil)
		todosRepo.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, todos []*entity.Todo) error {
				require.Len(t, todos, 2)
				assert.Equal(t, "first", todos[0].Title)
				assert.Equal(t, "second", todos[1].Title)
				return nil
			})
		count, err := serv.ReplaceAll(context.Background(), uid, []*entity.Todo{
			{Title: "first", CreatedAt: now},
			{Title: "   "},
			{Title: "second", Completed: true, CreatedAt: now, CompletedAt: &now},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("empty snapshot clears the list", func(t *testing.T) {
		todosRepo.EXPECT().DeleteByUserID(gomock.Any(), uid).Return(nil)
		count, err := serv.ReplaceAll(context.Background(), uid, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}
