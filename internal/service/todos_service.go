package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/nmorel/habitude/internal/error_values"
	"github.com/nmorel/habitude/internal/repository"
	"github.com/nmorel/habitude/pkg/entity"
)

type TodosService struct {
	repo repository.TodosRepositoryI
	now  func() time.Time
}

func NewTodosService(todosRepo repository.TodosRepositoryI) *TodosService {
	if todosRepo == nil {
		log.Fatal("provided nil todosRepo")
	}
	return &TodosService{
		repo: todosRepo,
		now:  time.Now,
	}
}

func (ts *TodosService) ListTodos(ctx context.Context, uid uuid.UUID) ([]*entity.Todo, error) {
	todos, err := ts.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("todos repository error: " + err.Error())
	}
	return todos, nil
}

func (ts *TodosService) CreateTodo(ctx context.Context, uid uuid.UUID, title string) (*entity.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errorvalues.ErrEmptyTitle
	}
	id, err := ts.repo.Create(ctx, &entity.Todo{
		UserID: uid,
		Title:  title,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("todos repository error: " + err.Error())
	}
	todo, err := ts.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("todos repository error: " + err.Error())
	}
	return todo, nil
}

// UpdateTodo applies a partial update with toggle semantics: completed=true
// sets completedAt, completed=false clears it. When no record exists for id
// and a title is supplied, the update behaves as a create so that clients can
// push state for items the server never saw.
func (ts *TodosService) UpdateTodo(ctx context.Context, id, uid uuid.UUID, req UpdateTodoRequest) (*entity.Todo, error) {
	todo, err := ts.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTodoNotFound) {
			return ts.createFromUpdate(ctx, uid, req)
		}
		return nil, errors.New("todos repository error: " + err.Error())
	}
	if todo.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
		if todo.Completed {
			now := ts.now()
			todo.CompletedAt = &now
		} else {
			todo.CompletedAt = nil
		}
	}
	if req.Title != nil {
		if title := strings.TrimSpace(*req.Title); title != "" {
			todo.Title = title
		}
	}
	err = ts.repo.Update(ctx, todo)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTodoNotFound) {
			return nil, err
		}
		return nil, errors.New("todos repository error: " + err.Error())
	}
	return todo, nil
}

func (ts *TodosService) createFromUpdate(ctx context.Context, uid uuid.UUID, req UpdateTodoRequest) (*entity.Todo, error) {
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return nil, errorvalues.ErrTodoNotFound
	}
	todo := &entity.Todo{
		UserID: uid,
		Title:  strings.TrimSpace(*req.Title),
	}
	if req.Completed != nil && *req.Completed {
		now := ts.now()
		todo.Completed = true
		todo.CompletedAt = &now
	}
	id, err := ts.repo.Create(ctx, todo)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("todos repository error: " + err.Error())
	}
	created, err := ts.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("todos repository error: " + err.Error())
	}
	return created, nil
}

func (ts *TodosService) DeleteTodo(ctx context.Context, id, uid uuid.UUID) error {
	todo, err := ts.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTodoNotFound) {
			return err
		}
		return errors.New("todos repository error: " + err.Error())
	}
	if todo.UserID != uid {
		return errorvalues.ErrWrongOwner
	}
	err = ts.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTodoNotFound) {
			return err
		}
		return errors.New("todos repository error: " + err.Error())
	}
	return nil
}

// ReplaceAll swaps the user's whole server-side list for the client snapshot.
// The client cache is strictly a backup: the replace is wholesale, never a merge.
func (ts *TodosService) ReplaceAll(ctx context.Context, uid uuid.UUID, todos []*entity.Todo) (int, error) {
	kept := make([]*entity.Todo, 0, len(todos))
	for _, todo := range todos {
		title := strings.TrimSpace(todo.Title)
		if title == "" {
			continue
		}
		t := &entity.Todo{
			UserID:      uid,
			Title:       title,
			Completed:   todo.Completed,
			CreatedAt:   todo.CreatedAt,
			CompletedAt: todo.CompletedAt,
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = ts.now()
		}
		if !t.Completed {
			t.CompletedAt = nil
		}
		kept = append(kept, t)
	}
	err := ts.repo.DeleteByUserID(ctx, uid)
	if err != nil {
		return 0, errors.New("todos repository error: " + err.Error())
	}
	if len(kept) > 0 {
		err = ts.repo.CreateBatch(ctx, kept)
		if err != nil {
			return 0, errors.New("todos repository error: " + err.Error())
		}
	}
	return len(kept), nil
}
