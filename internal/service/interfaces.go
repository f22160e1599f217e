package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nmorel/habitude/internal/ledger"
	"github.com/nmorel/habitude/pkg/entity"
)

type RegisterRequest struct {
	Email    string `validate:"required,email,max=255"`
	Name     string `validate:"omitempty,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

// UpdateTodoRequest carries the partial update of a todo. Nil fields are left
// untouched. A title is carried on toggles too so an update against an unknown
// id can degrade to a create.
type UpdateTodoRequest struct {
	Completed *bool
	Title     *string
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, gives back user's data with ID.
	Login(ctx context.Context, email, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type TodosServiceI interface {
	// Lists user's todos, newest-created first
	ListTodos(ctx context.Context, uid uuid.UUID) ([]*entity.Todo, error)
	// Creates a todo with a trimmed non-empty title
	CreateTodo(ctx context.Context, uid uuid.UUID, title string) (*entity.Todo, error)
	// Applies a partial update. An unknown id with a title supplied behaves as
	// create-with-explicit-completion-state
	UpdateTodo(ctx context.Context, id, uid uuid.UUID, req UpdateTodoRequest) (*entity.Todo, error)
	DeleteTodo(ctx context.Context, id, uid uuid.UUID) error
	// Replaces the user's whole list with the client's snapshot. Returns the stored count
	ReplaceAll(ctx context.Context, uid uuid.UUID, todos []*entity.Todo) (int, error)
}

type ActivityServiceI interface {
	// Records activity on day. Idempotent: marking a marked day is a no-op
	MarkDay(ctx context.Context, uid uuid.UUID, day ledger.Day) error
	// Removes activity on day. Idempotent
	UnmarkDay(ctx context.Context, uid uuid.UUID, day ledger.Day) error
	Days(ctx context.Context, uid uuid.UUID) ([]ledger.Day, error)
	// Clears the whole ledger. Explicit destructive user action only
	Reset(ctx context.Context, uid uuid.UUID) error
	CurrentStreak(ctx context.Context, uid uuid.UUID) (int, error)
}

type ReminderServiceI interface {
	// Scans every user and delivers at most one reminder per user per calendar day
	RunOnce(ctx context.Context, now time.Time)
	// Sends an immediate reminder to one user, bypassing the daily dedup
	SendTest(ctx context.Context, uid uuid.UUID) error
}
