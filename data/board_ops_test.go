package data

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBoard(t *testing.T) {
	testDB(t)

	desc := "рабочие заметки"
	board, err := CreateBoard(1, "Work", &desc)
	require.NoError(t, err)
	require.NotNil(t, board)

	assert.NotZero(t, board.Id)
	assert.Equal(t, "Work", board.Name)
	assert.Equal(t, "work", board.Slug)
	require.NotNil(t, board.Description)
	assert.Equal(t, desc, *board.Description)
	assert.Equal(t, int64(1), board.UserId)
	assert.Equal(t, int64(1), board.Position)
	assert.False(t, bool(board.Archived))
	assert.False(t, bool(board.Completed))
}

func TestCreateBoardPositionsIncrement(t *testing.T) {
	testDB(t)

	first := mustCreateBoard(t, 1, "First")
	second := mustCreateBoard(t, 1, "Second")
	assert.Equal(t, int64(1), first.Position)
	assert.Equal(t, int64(2), second.Position)

	// Позиции считаются отдельно для каждого пользователя
	other := mustCreateBoard(t, 2, "Other")
	assert.Equal(t, int64(1), other.Position)
}

func TestGetBoardByIDScopedToOwner(t *testing.T) {
	testDB(t)

	board := mustCreateBoard(t, 1, "Mine")

	got, err := GetBoardByID(board.Id, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, board.Id, got.Id)

	// Чужая доска неотличима от несуществующей
	got, err = GetBoardByID(board.Id, 2)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = GetBoardByID(9999, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetBoardBySlug(t *testing.T) {
	testDB(t)

	board := mustCreateBoard(t, 1, "My Board")

	got, err := GetBoardBySlug("my-board", 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, board.Id, got.Id)

	got, err = GetBoardBySlug("my-board", 2)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateBoard(t *testing.T) {
	testDB(t)

	board := mustCreateBoard(t, 1, "Before")

	name := "After"
	updated, err := UpdateBoard(board.Id, 1, &name, nil)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "After", updated.Name)
	// Слаг не меняется при переименовании
	assert.Equal(t, "before", updated.Slug)
	assert.True(t, updated.UpdatedAt.After(board.UpdatedAt) || updated.UpdatedAt.Equal(board.UpdatedAt))

	desc := "описание"
	updated, err = UpdateBoard(board.Id, 1, nil, &desc)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "After", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, desc, *updated.Description)
}

func TestUpdateBoardNotFound(t *testing.T) {
	testDB(t)

	board := mustCreateBoard(t, 1, "Mine")

	name := "Hacked"
	updated, err := UpdateBoard(board.Id, 2, &name, nil)
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestToggleBoardCompletion(t *testing.T) {
	testDB(t)

	board := mustCreateBoard(t, 1, "Todo")

	toggled, err := ToggleBoardCompletion(board.Id, 1)
	require.NoError(t, err)
	require.NotNil(t, toggled)
	assert.True(t, bool(toggled.Completed))

	toggled, err = ToggleBoardCompletion(board.Id, 1)
	require.NoError(t, err)
	require.NotNil(t, toggled)
	assert.False(t, bool(toggled.Completed))
}

func TestSlugUniqueIndexEnforced(t *testing.T) {
	testDB(t)

	_ = mustCreateBoard(t, 1, "Board")

	// Прямое нарушение индекса распознается как конфликт уникальности
	_, err := MainDB.Exec(`INSERT INTO Boards (Name, Slug, UserId, Position, Archived, Completed, CreatedAt, UpdatedAt)
	                       VALUES ('Board', 'board', 1, 2, 0, 0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	require.Error(t, err)
	assert.True(t, isUniqueConstraintErr(err))
	assert.False(t, isUniqueConstraintErr(sql.ErrNoRows))
}
