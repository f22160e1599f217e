package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nmorel/habitude/internal/ledger"
	"github.com/nmorel/habitude/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by email. Can be used for login
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Lists every registered user. Used by the reminder scan
	All(ctx context.Context) ([]*entity.User, error)
	// Updates user's info
	Update(ctx context.Context, user *entity.User) error
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
}

type TodosRepositoryI interface {
	// Creates new todo. Only UserID, Title, Completed, CompletedAt are taken
	// from the argument; returns the server-assigned id
	Create(ctx context.Context, todo *entity.Todo) (uuid.UUID, error)
	// Searches todo with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Todo, error)
	// Lists todos owned by user with uid, newest-created first
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Todo, error)
	// Updates title, completed and completed_at by ID (ID in todo is necessary)
	Update(ctx context.Context, todo *entity.Todo) error
	// Deletes todo with id
	Delete(ctx context.Context, id uuid.UUID) error
	// Deletes all todos of user with uid. Used by the wholesale sync import
	DeleteByUserID(ctx context.Context, uid uuid.UUID) error
	// Inserts todos as-is, preserving client timestamps. Used by the wholesale sync import
	CreateBatch(ctx context.Context, todos []*entity.Todo) error
	// Lists uncompleted todos of user with uid
	GetPendingByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Todo, error)
	// Stamps last_reminder_sent on every currently-pending todo of user with uid
	StampReminders(ctx context.Context, uid uuid.UUID, sentAt time.Time) error
}

type ActivityRepositoryI interface {
	// Records activity on day for user with uid
	Create(ctx context.Context, uid uuid.UUID, day ledger.Day) error
	// Removes activity on day for user with uid (unmark)
	Delete(ctx context.Context, uid uuid.UUID, day ledger.Day) error
	// Inspects if the day is marked
	Exists(ctx context.Context, uid uuid.UUID, day ledger.Day) (bool, error)
	// Provides all marked days of user with uid
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]ledger.Day, error)
	// Clears the whole ledger of user with uid. Explicit reset only
	DeleteByUserID(ctx context.Context, uid uuid.UUID) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
