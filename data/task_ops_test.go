package data

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organizer_server_go/models"
)

func TestCreateTaskDefaults(t *testing.T) {
	testDB(t)

	task := mustCreateTask(t, 1, "Chore")
	assert.Equal(t, models.TaskStatusTodo, task.Status)
	assert.Equal(t, models.TaskPriorityMedium, task.Priority)

	got, err := GetTaskByID(task.Id, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.TaskStatusTodo, got.Status)
}

func TestUpdateTask(t *testing.T) {
	testDB(t)

	task := mustCreateTask(t, 1, "Chore")
	due := int64(1767225600)
	task.Status = models.TaskStatusInProgress
	task.Priority = models.TaskPriorityHigh
	task.DueDate = &due
	require.NoError(t, UpdateTask(task))

	got, err := GetTaskByID(task.Id, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.TaskStatusInProgress, got.Status)
	assert.Equal(t, models.TaskPriorityHigh, got.Priority)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, due, *got.DueDate)
}

func TestSoftDeleteAndRestoreTask(t *testing.T) {
	testDB(t)

	task := mustCreateTask(t, 1, "Chore")
	require.NoError(t, SoftDeleteTask(task.Id, 1))

	got, err := GetTaskByID(task.Id, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err := GetDeletedTasksForUser(1)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, task.Id, deleted[0].OriginalId)

	restored, err := RestoreTask(task.Id, 1)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "Chore", restored.Title)
	assert.Equal(t, task.CreatedAt.Unix(), restored.CreatedAt.Unix())

	deleted, err = GetDeletedTasksForUser(1)
	require.NoError(t, err)
	assert.Empty(t, deleted)
}

func TestSoftDeleteTaskScopedToOwner(t *testing.T) {
	testDB(t)

	task := mustCreateTask(t, 1, "Mine")
	assert.ErrorIs(t, SoftDeleteTask(task.Id, 2), sql.ErrNoRows)

	restoredForeign, err := RestoreTask(task.Id, 2)
	require.NoError(t, err)
	assert.Nil(t, restoredForeign)
}
