package domain

import "time"

// Task is a to-do item owned by a single user. Tasks live exactly as long as
// their owner; the tasks table cascades on user deletion.
type Task struct {
	ID        int64
	Title     string
	Done      bool
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
