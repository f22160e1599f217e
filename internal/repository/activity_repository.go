package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/nmorel/habitude/internal/error_values"
	"github.com/nmorel/habitude/internal/ledger"
	"github.com/nmorel/habitude/pkg/cleanup"
)

type ActivityRepository struct {
	conn PgConnection
}

func NewActivityRepo(cfg DBConfig) *ActivityRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for activityRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for activityRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &ActivityRepository{
		conn: pool,
	}
}

func NewActivityRepoWithConn(conn PgConnection) *ActivityRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for activityRepo: " + err.Error())
	}
	return &ActivityRepository{
		conn: conn,
	}
}

func (ar *ActivityRepository) Create(ctx context.Context, uid uuid.UUID, day ledger.Day) error {
	_, err := ar.conn.Exec(
		ctx,
		`INSERT INTO activity_days (user_id, day) VALUES ($1, $2);`,
		uid,
		string(day),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errorvalues.ErrDayMarked
			// FK violation
			case "23503":
				return errorvalues.ErrUserNotFound
			}
		}
		return errors.New("creating activity day error: " + err.Error())
	}
	return nil
}

func (ar *ActivityRepository) Delete(ctx context.Context, uid uuid.UUID, day ledger.Day) error {
	ct, err := ar.conn.Exec(
		ctx,
		`DELETE FROM activity_days WHERE user_id = $1 AND day = $2;`,
		uid,
		string(day),
	)
	if err != nil {
		return errors.New("deleting activity day error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrDayNotMarked
	}
	return nil
}

func (ar *ActivityRepository) Exists(ctx context.Context, uid uuid.UUID, day ledger.Day) (bool, error) {
	var exists bool
	row := ar.conn.QueryRow(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM activity_days WHERE user_id = $1 AND day = $2);`,
		uid,
		string(day),
	)
	err := row.Scan(&exists)
	if err != nil {
		return false, errors.New("inspecting if activity day exists error: " + err.Error())
	}
	return exists, nil
}

func (ar *ActivityRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]ledger.Day, error) {
	rows, err := ar.conn.Query(
		ctx,
		`SELECT day FROM activity_days WHERE user_id = $1 ORDER BY day;`,
		uid,
	)
	if err != nil {
		return nil, errors.New("getting activity days error: " + err.Error())
	}
	defer rows.Close()
	result := make([]ledger.Day, 0)
	for rows.Next() {
		var day string
		err = rows.Scan(&day)
		if err != nil {
			return nil, errors.New("activity day row parsing error: " + err.Error())
		}
		result = append(result, ledger.Day(day))
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected activity rows error: " + rows.Err().Error())
	}
	return result, nil
}

func (ar *ActivityRepository) DeleteByUserID(ctx context.Context, uid uuid.UUID) error {
	_, err := ar.conn.Exec(ctx, `DELETE FROM activity_days WHERE user_id = $1;`, uid)
	if err != nil {
		return errors.New("resetting activity error: " + err.Error())
	}
	return nil
}
