package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
)

func registerApproved(t *testing.T, users UserService, username string) *domain.User {
	t.Helper()
	ctx := context.Background()
	user, err := users.Register(ctx, username, "password1")
	require.NoError(t, err)
	require.NoError(t, users.Approve(ctx, user.ID))
	return user
}

func TestCreateTaskValidatesTitle(t *testing.T) {
	users, tasks, _ := newTestServices(t)
	ctx := context.Background()

	alice := registerApproved(t, users, "alice")

	_, err := tasks.Create(ctx, alice.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = tasks.Create(ctx, alice.ID, "   \t ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	task, err := tasks.Create(ctx, alice.ID, "buy milk")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", task.Title)
	assert.False(t, task.Done)
	assert.Equal(t, alice.ID, task.UserID)
}

func TestTaskMutationsRespectOwnership(t *testing.T) {
	users, tasks, _ := newTestServices(t)
	ctx := context.Background()

	alice := registerApproved(t, users, "alice")
	bob := registerApproved(t, users, "bob")

	task, err := tasks.Create(ctx, alice.ID, "write spec")
	require.NoError(t, err)

	assert.ErrorIs(t, tasks.UpdateTitle(ctx, task.ID, bob.ID, "hijacked"), ErrTaskNotFound)
	assert.ErrorIs(t, tasks.SetDone(ctx, task.ID, bob.ID, true), ErrTaskNotFound)
	assert.ErrorIs(t, tasks.Delete(ctx, task.ID, bob.ID), ErrTaskNotFound)

	require.NoError(t, tasks.SetDone(ctx, task.ID, alice.ID, true))

	list, err := tasks.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Done)
}

func TestUpdateTitleValidatesInput(t *testing.T) {
	users, tasks, _ := newTestServices(t)
	ctx := context.Background()

	alice := registerApproved(t, users, "alice")
	task, err := tasks.Create(ctx, alice.ID, "write spec")
	require.NoError(t, err)

	assert.ErrorIs(t, tasks.UpdateTitle(ctx, task.ID, alice.ID, "  "), ErrInvalidInput)
	require.NoError(t, tasks.UpdateTitle(ctx, task.ID, alice.ID, "write better spec"))

	got, err := tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "write better spec", got.Title)
}

func TestAdminVariantsBypassOwnership(t *testing.T) {
	users, tasks, _ := newTestServices(t)
	ctx := context.Background()

	alice := registerApproved(t, users, "alice")
	task, err := tasks.Create(ctx, alice.ID, "write spec")
	require.NoError(t, err)

	require.NoError(t, tasks.SetDoneAny(ctx, task.ID, true))

	got, err := tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.Done)

	require.NoError(t, tasks.DeleteAny(ctx, task.ID))
	_, err = tasks.Get(ctx, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	assert.ErrorIs(t, tasks.SetDoneAny(ctx, task.ID, true), ErrTaskNotFound)
	assert.ErrorIs(t, tasks.DeleteAny(ctx, task.ID), ErrTaskNotFound)
}

func TestListEmptyForNewUser(t *testing.T) {
	users, tasks, _ := newTestServices(t)

	alice := registerApproved(t, users, "alice")

	list, err := tasks.List(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
