package data

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoftDeleteBoardMovesToShadowTable(t *testing.T) {
	testDB(t)

	board := mustCreateBoard(t, 1, "Archive Me")

	require.NoError(t, SoftDeleteBoard(board.Id, 1))

	// Активная доска исчезла
	got, err := GetBoardByID(board.Id, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Снимок появился в теневой таблице
	deleted, err := GetDeletedBoardByOriginalID(board.Id, 1)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, board.Id, deleted.OriginalId)
	assert.Equal(t, "Archive Me", deleted.Name)
	assert.Equal(t, "archive-me", deleted.Slug)
	assert.Equal(t, board.CreatedAt.Unix(), deleted.CreatedAt)
	assert.NotZero(t, deleted.DeletedAt)
}

func TestSoftDeleteBoardNotFound(t *testing.T) {
	testDB(t)

	board := mustCreateBoard(t, 1, "Mine")

	// Чужая доска и несуществующая доска дают одинаковую ошибку
	assert.ErrorIs(t, SoftDeleteBoard(board.Id, 2), sql.ErrNoRows)
	assert.ErrorIs(t, SoftDeleteBoard(9999, 1), sql.ErrNoRows)

	// Повторное удаление уже удаленной доски
	require.NoError(t, SoftDeleteBoard(board.Id, 1))
	assert.ErrorIs(t, SoftDeleteBoard(board.Id, 1), sql.ErrNoRows)
}

func TestSoftDeleteBoardRemovesItems(t *testing.T) {
	testDB(t)

	board := mustCreateBoard(t, 1, "With Items")
	memo := mustCreateMemo(t, 1, "Note")
	_, err := AddItemToBoard(board.Id, memoRef(memo.Id), 1)
	require.NoError(t, err)

	require.NoError(t, SoftDeleteBoard(board.Id, 1))

	// Каскад внешнего ключа очистил связи
	var count int
	require.NoError(t, MainDB.Get(&count, `SELECT COUNT(*) FROM BoardItems WHERE BoardId = ?`, board.Id))
	assert.Zero(t, count)
}

func TestGetDeletedBoardsForUser(t *testing.T) {
	testDB(t)

	first := mustCreateBoard(t, 1, "First")
	second := mustCreateBoard(t, 1, "Second")
	foreign := mustCreateBoard(t, 2, "Foreign")

	require.NoError(t, SoftDeleteBoard(first.Id, 1))
	require.NoError(t, SoftDeleteBoard(second.Id, 1))
	require.NoError(t, SoftDeleteBoard(foreign.Id, 2))

	deleted, err := GetDeletedBoardsForUser(1)
	require.NoError(t, err)
	require.Len(t, deleted, 2)
	for _, d := range deleted {
		assert.Equal(t, int64(1), d.UserId)
	}
}

func TestRestoreBoard(t *testing.T) {
	testDB(t)

	board := mustCreateBoard(t, 1, "Project")
	require.NoError(t, SoftDeleteBoard(board.Id, 1))

	restored, err := RestoreBoard(board.Id, 1)
	require.NoError(t, err)
	require.NotNil(t, restored)

	// Восстановленная доска получает новый ID и сохраняет время создания
	assert.NotEqual(t, board.Id, restored.Id)
	assert.Equal(t, "Project", restored.Name)
	assert.Equal(t, board.CreatedAt.Unix(), restored.CreatedAt.Unix())
	assert.False(t, bool(restored.Completed))

	// Запись из теневой таблицы удалена
	deleted, err := GetDeletedBoardByOriginalID(board.Id, 1)
	require.NoError(t, err)
	assert.Nil(t, deleted)

	// Повторное восстановление невозможно
	again, err := RestoreBoard(board.Id, 1)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestRestoreBoardSlugTaken(t *testing.T) {
	testDB(t)

	board := mustCreateBoard(t, 1, "Project")
	require.NoError(t, SoftDeleteBoard(board.Id, 1))

	// Пока доска была в корзине, слаг заняла другая доска
	occupant := mustCreateBoard(t, 1, "Project")
	assert.Equal(t, "project", occupant.Slug)

	restored, err := RestoreBoard(board.Id, 1)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "project-1", restored.Slug)
}

func TestRestoreBoardResetsCompleted(t *testing.T) {
	testDB(t)

	board := mustCreateBoard(t, 1, "Done")
	toggled, err := ToggleBoardCompletion(board.Id, 1)
	require.NoError(t, err)
	require.True(t, bool(toggled.Completed))

	require.NoError(t, SoftDeleteBoard(board.Id, 1))

	restored, err := RestoreBoard(board.Id, 1)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.False(t, bool(restored.Completed))
}

func TestRestoreBoardScopedToOwner(t *testing.T) {
	testDB(t)

	board := mustCreateBoard(t, 1, "Mine")
	require.NoError(t, SoftDeleteBoard(board.Id, 1))

	restored, err := RestoreBoard(board.Id, 2)
	require.NoError(t, err)
	assert.Nil(t, restored)

	// Снимок остался на месте
	deleted, err := GetDeletedBoardByOriginalID(board.Id, 1)
	require.NoError(t, err)
	assert.NotNil(t, deleted)
}
