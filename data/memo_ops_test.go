package data

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetMemo(t *testing.T) {
	testDB(t)

	memo := mustCreateMemo(t, 1, "Note")
	require.NotZero(t, memo.Id)

	got, err := GetMemoByID(memo.Id, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Note", got.Title)

	// Чужая заметка неотличима от несуществующей
	got, err = GetMemoByID(memo.Id, 2)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateMemo(t *testing.T) {
	testDB(t)

	memo := mustCreateMemo(t, 1, "Before")
	memo.Title = "After"
	require.NoError(t, UpdateMemo(memo))

	got, err := GetMemoByID(memo.Id, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "After", got.Title)

	// Обновление чужой заметки
	memo.UserId = 2
	assert.ErrorIs(t, UpdateMemo(memo), sql.ErrNoRows)
}

func TestSoftDeleteAndRestoreMemo(t *testing.T) {
	testDB(t)

	content := "текст заметки"
	memo := mustCreateMemo(t, 1, "Draft")
	memo.Content = &content
	require.NoError(t, UpdateMemo(memo))

	require.NoError(t, SoftDeleteMemo(memo.Id, 1))

	got, err := GetMemoByID(memo.Id, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err := GetDeletedMemosForUser(1)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, memo.Id, deleted[0].OriginalId)

	restored, err := RestoreMemo(memo.Id, 1)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "Draft", restored.Title)
	require.NotNil(t, restored.Content)
	assert.Equal(t, content, *restored.Content)
	assert.Equal(t, memo.CreatedAt.Unix(), restored.CreatedAt.Unix())

	// Корзина опустела
	deleted, err = GetDeletedMemosForUser(1)
	require.NoError(t, err)
	assert.Empty(t, deleted)
}

func TestSoftDeleteMemoNotFound(t *testing.T) {
	testDB(t)

	memo := mustCreateMemo(t, 1, "Mine")
	assert.ErrorIs(t, SoftDeleteMemo(memo.Id, 2), sql.ErrNoRows)
	assert.ErrorIs(t, SoftDeleteMemo(9999, 1), sql.ErrNoRows)
}

func TestRestoreMemoScopedToOwner(t *testing.T) {
	testDB(t)

	memo := mustCreateMemo(t, 1, "Mine")
	require.NoError(t, SoftDeleteMemo(memo.Id, 1))

	restored, err := RestoreMemo(memo.Id, 2)
	require.NoError(t, err)
	assert.Nil(t, restored)
}
