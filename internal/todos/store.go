package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned for operations on a task id that does not exist.
var ErrNotFound = errors.New("task not found")

// Store is the persistence boundary. Handlers depend on this interface so
// tests can substitute an in-memory implementation.
type Store interface {
	Create(ctx context.Context, rawInput, text string) (Task, error)
	List(ctx context.Context) ([]Task, error)
	SetCompleted(ctx context.Context, id int, completed bool) (Task, error)
	Delete(ctx context.Context, id int) error
}

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, rawInput, text string) (Task, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO todos (raw_input, text)
		VALUES ($1, $2)
		RETURNING id, completed, created_at
	`, rawInput, text)

	t := Task{RawInput: rawInput, Text: text}
	if err := row.Scan(&t.ID, &t.Completed, &t.CreatedAt); err != nil {
		return Task{}, fmt.Errorf("insert todo: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, raw_input, text, completed, created_at
		FROM todos
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.RawInput, &t.Text, &t.Completed, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return tasks, nil
}

func (s *PostgresStore) SetCompleted(ctx context.Context, id int, completed bool) (Task, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE todos
		SET completed = $1
		WHERE id = $2
		RETURNING id, raw_input, text, completed, created_at
	`, completed, id)

	var t Task
	err := row.Scan(&t.ID, &t.RawInput, &t.Text, &t.Completed, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, fmt.Errorf("update todo: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
