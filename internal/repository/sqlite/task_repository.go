package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

const createTasksTable = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	done INTEGER NOT NULL DEFAULT 0,
	user_id INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);
`

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) repository.TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTasksTable); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	return nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (int64, error) {
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO tasks (title, done, user_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		task.Title,
		task.Done,
		task.UserID,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	task.ID = id
	return id, nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, done, user_id, created_at, updated_at
FROM tasks
WHERE user_id = ?
ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Done,
			&task.UserID,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (r *TaskRepository) Get(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, done, user_id, created_at, updated_at
FROM tasks
WHERE id = ?`,
		id,
	)

	var task domain.Task
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Done,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &task, nil
}

func (r *TaskRepository) UpdateTitle(ctx context.Context, id, userID int64, title string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE tasks
SET title = ?, updated_at = ?
WHERE id = ? AND user_id = ?`,
		title,
		time.Now().UTC(),
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("update task title: %w", err)
	}
	return checkAffected(res)
}

func (r *TaskRepository) SetDone(ctx context.Context, id, userID int64, done bool) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE tasks
SET done = ?, updated_at = ?
WHERE id = ? AND user_id = ?`,
		done,
		time.Now().UTC(),
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("update task done: %w", err)
	}
	return checkAffected(res)
}

func (r *TaskRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM tasks
WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return checkAffected(res)
}

func (r *TaskRepository) SetDoneAny(ctx context.Context, id int64, done bool) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE tasks
SET done = ?, updated_at = ?
WHERE id = ?`,
		done,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("update task done: %w", err)
	}
	return checkAffected(res)
}

func (r *TaskRepository) DeleteAny(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
