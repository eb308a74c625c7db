package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewTaskRepository(db).Init(ctx))

	return db
}

func createUser(t *testing.T, repo repository.UserRepository, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:     username,
		PasswordHash: "x",
	}
	_, err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func TestUserCreateDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	createUser(t, repo, "alice")

	_, err := repo.Create(context.Background(), &domain.User{Username: "alice", PasswordHash: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestUserApprove(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createUser(t, repo, "alice")

	require.NoError(t, repo.Approve(ctx, user.ID))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.Approved)

	// idempotent
	require.NoError(t, repo.Approve(ctx, user.ID))

	// unknown id
	assert.ErrorIs(t, repo.Approve(ctx, 9999), repository.ErrNotFound)
}

func TestUserListsSplitByApproval(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := createUser(t, repo, "alice")
	createUser(t, repo, "bob")
	require.NoError(t, repo.Approve(ctx, alice.ID))

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "bob", pending[0].Username)

	approved, err := repo.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "alice", approved[0].Username)
}

func TestUserDeleteCascadesTasks(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	user := createUser(t, users, "alice")

	_, err := tasks.Create(ctx, &domain.Task{Title: "write report", UserID: user.ID})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, &domain.Task{Title: "send mail", UserID: user.ID})
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, user.ID))

	remaining, err := tasks.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	assert.ErrorIs(t, users.Delete(ctx, user.ID), repository.ErrNotFound)
}

func TestTaskOwnershipFilter(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	task := &domain.Task{Title: "buy milk", UserID: alice.ID}
	_, err := tasks.Create(ctx, task)
	require.NoError(t, err)

	// bob cannot touch alice's task
	assert.ErrorIs(t, tasks.UpdateTitle(ctx, task.ID, bob.ID, "stolen"), repository.ErrNotFound)
	assert.ErrorIs(t, tasks.SetDone(ctx, task.ID, bob.ID, true), repository.ErrNotFound)
	assert.ErrorIs(t, tasks.Delete(ctx, task.ID, bob.ID), repository.ErrNotFound)

	// owner can
	require.NoError(t, tasks.UpdateTitle(ctx, task.ID, alice.ID, "buy oat milk"))
	require.NoError(t, tasks.SetDone(ctx, task.ID, alice.ID, true))

	got, err := tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", got.Title)
	assert.True(t, got.Done)

	// admin variants skip the filter
	require.NoError(t, tasks.SetDoneAny(ctx, task.ID, false))
	require.NoError(t, tasks.DeleteAny(ctx, task.ID))
	_, err = tasks.Get(ctx, task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskListOrderedByInsertion(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	alice := createUser(t, users, "alice")

	for _, title := range []string{"first", "second", "third"} {
		_, err := tasks.Create(ctx, &domain.Task{Title: title, UserID: alice.ID})
		require.NoError(t, err)
	}

	list, err := tasks.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Title)
	assert.Equal(t, "second", list[1].Title)
	assert.Equal(t, "third", list[2].Title)
	assert.False(t, list[0].Done)
}
