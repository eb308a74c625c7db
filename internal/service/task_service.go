package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// ErrTaskNotFound indicates the task does not exist or is not visible to the
// caller. Mutating another user's task reports this rather than succeeding
// silently, so owners and strangers get distinguishable results.
var ErrTaskNotFound = errors.New("task not found")

// TaskService coordinates task operations. Owner-scoped methods enforce the
// ownership filter; the Any variants serve admin moderation and skip it.
type TaskService interface {
	List(ctx context.Context, ownerID int64) ([]domain.Task, error)
	Create(ctx context.Context, ownerID int64, title string) (*domain.Task, error)
	UpdateTitle(ctx context.Context, id, ownerID int64, title string) error
	SetDone(ctx context.Context, id, ownerID int64, done bool) error
	Delete(ctx context.Context, id, ownerID int64) error
	Get(ctx context.Context, id int64) (*domain.Task, error)
	SetDoneAny(ctx context.Context, id int64, done bool) error
	DeleteAny(ctx context.Context, id int64) error
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) List(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	return s.tasks.ListByUser(ctx, ownerID)
}

func (s *taskService) Create(ctx context.Context, ownerID int64, title string) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	task := &domain.Task{
		Title:  title,
		Done:   false,
		UserID: ownerID,
	}

	if _, err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) UpdateTitle(ctx context.Context, id, ownerID int64, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	return mapTaskErr(s.tasks.UpdateTitle(ctx, id, ownerID, title))
}

func (s *taskService) SetDone(ctx context.Context, id, ownerID int64, done bool) error {
	return mapTaskErr(s.tasks.SetDone(ctx, id, ownerID, done))
}

func (s *taskService) Delete(ctx context.Context, id, ownerID int64) error {
	return mapTaskErr(s.tasks.Delete(ctx, id, ownerID))
}

func (s *taskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, mapTaskErr(err)
	}
	return task, nil
}

func (s *taskService) SetDoneAny(ctx context.Context, id int64, done bool) error {
	return mapTaskErr(s.tasks.SetDoneAny(ctx, id, done))
}

func (s *taskService) DeleteAny(ctx context.Context, id int64) error {
	return mapTaskErr(s.tasks.DeleteAny(ctx, id))
}

func mapTaskErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTaskNotFound
	}
	return err
}
