package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/nmorel/habitude/internal/error_values"
	"github.com/nmorel/habitude/pkg/cleanup"
	"github.com/nmorel/habitude/pkg/entity"
)

type TodosRepository struct {
	conn PgConnection
}

func NewTodosRepo(cfg DBConfig) *TodosRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for todosRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for todosRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &TodosRepository{
		conn: pool,
	}
}

func NewTodosRepoWithConn(conn PgConnection) *TodosRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for todosRepo: " + err.Error())
	}
	return &TodosRepository{
		conn: conn,
	}
}

func (tr *TodosRepository) Create(ctx context.Context, todo *entity.Todo) (uuid.UUID, error) {
	var id uuid.UUID
	row := tr.conn.QueryRow(ctx, `INSERT INTO todos (user_id, title, completed, completed_at) VALUES ($1, $2, $3, $4) RETURNING id;`,
		todo.UserID,
		todo.Title,
		todo.Completed,
		todo.CompletedAt,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrUserNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating todo db error: " + err.Error())
	}
	return id, nil
}

func (tr *TodosRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Todo, error) {
	var todo entity.Todo
	todo.ID = id
	row := tr.conn.QueryRow(ctx, `SELECT user_id, title, completed, created_at, completed_at, last_reminder_sent FROM todos WHERE id = $1;`, id)
	if err := row.Scan(&todo.UserID, &todo.Title, &todo.Completed, &todo.CreatedAt, &todo.CompletedAt, &todo.LastReminderSent); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrTodoNotFound
		}
		return nil, errors.New("getting todo by id error: " + err.Error())
	}
	return &todo, nil
}

func (tr *TodosRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Todo, error) {
	todos := make([]*entity.Todo, 0)
	rows, err := tr.conn.Query(ctx, `SELECT id, user_id, title, completed, created_at, completed_at, last_reminder_sent
		FROM todos WHERE user_id = $1 ORDER BY created_at DESC;`, uid)
	if err != nil {
		return nil, errors.New("getting todos by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		t := entity.Todo{}
		err = rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Completed, &t.CreatedAt, &t.CompletedAt, &t.LastReminderSent)
		if err != nil {
			return nil, errors.New("unmarshalling todo error: " + err.Error())
		}
		todos = append(todos, &t)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return todos, nil
}

func (tr *TodosRepository) Update(ctx context.Context, todo *entity.Todo) error {
	ct, err := tr.conn.Exec(ctx, `UPDATE todos SET title = $1, completed = $2, completed_at = $3 WHERE id = $4;`,
		todo.Title, todo.Completed, todo.CompletedAt, todo.ID,
	)
	if err != nil {
		return errors.New("error updating todo: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrTodoNotFound
	}
	return nil
}

func (tr *TodosRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := tr.conn.Exec(ctx, `DELETE FROM todos WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting todo: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrTodoNotFound
	}
	return nil
}

func (tr *TodosRepository) DeleteByUserID(ctx context.Context, uid uuid.UUID) error {
	_, err := tr.conn.Exec(ctx, `DELETE FROM todos WHERE user_id = $1;`, uid)
	if err != nil {
		return errors.New("error deleting user todos: " + err.Error())
	}
	return nil
}

func (tr *TodosRepository) CreateBatch(ctx context.Context, todos []*entity.Todo) error {
	for _, todo := range todos {
		_, err := tr.conn.Exec(ctx, `INSERT INTO todos (user_id, title, completed, created_at, completed_at) VALUES ($1, $2, $3, $4, $5);`,
			todo.UserID,
			todo.Title,
			todo.Completed,
			todo.CreatedAt,
			todo.CompletedAt,
		)
		if err != nil {
			return errors.New("batch creating todos error: " + err.Error())
		}
	}
	return nil
}

func (tr *TodosRepository) GetPendingByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Todo, error) {
	todos := make([]*entity.Todo, 0)
	rows, err := tr.conn.Query(ctx, `SELECT id, user_id, title, completed, created_at, completed_at, last_reminder_sent
		FROM todos WHERE user_id = $1 AND completed = false ORDER BY created_at DESC;`, uid)
	if err != nil {
		return nil, errors.New("getting pending todos error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		t := entity.Todo{}
		err = rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Completed, &t.CreatedAt, &t.CompletedAt, &t.LastReminderSent)
		if err != nil {
			return nil, errors.New("unmarshalling todo error: " + err.Error())
		}
		todos = append(todos, &t)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return todos, nil
}

func (tr *TodosRepository) StampReminders(ctx context.Context, uid uuid.UUID, sentAt time.Time) error {
	_, err := tr.conn.Exec(ctx, `UPDATE todos SET last_reminder_sent = $2 WHERE user_id = $1 AND completed = false;`,
		uid,
		sentAt,
	)
	if err != nil {
		return errors.New("stamping reminders error: " + err.Error())
	}
	return nil
}
