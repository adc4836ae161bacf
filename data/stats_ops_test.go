package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBoardsWithStats(t *testing.T) {
	testDB(t)

	board := mustCreateBoard(t, 1, "Project")
	empty := mustCreateBoard(t, 1, "Empty")
	memo := mustCreateMemo(t, 1, "Note")
	task := mustCreateTask(t, 1, "Chore")

	_, err := AddItemToBoard(board.Id, memoRef(memo.Id), 1)
	require.NoError(t, err)
	_, err = AddItemToBoard(board.Id, taskRef(task.Id), 1)
	require.NoError(t, err)

	stats, err := GetBoardsWithStats(1, false)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// Порядок по позиции
	assert.Equal(t, board.Id, stats[0].Id)
	assert.Equal(t, 1, stats[0].MemoCount)
	assert.Equal(t, 1, stats[0].TaskCount)

	assert.Equal(t, empty.Id, stats[1].Id)
	assert.Zero(t, stats[1].MemoCount)
	assert.Zero(t, stats[1].TaskCount)
}

func TestGetBoardsWithStatsSkipsOrphans(t *testing.T) {
	testDB(t)

	board := mustCreateBoard(t, 1, "Project")
	memo := mustCreateMemo(t, 1, "Note")

	_, err := AddItemToBoard(board.Id, memoRef(memo.Id), 1)
	require.NoError(t, err)
	require.NoError(t, SoftDeleteMemo(memo.Id, 1))

	stats, err := GetBoardsWithStats(1, false)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	// Осиротевшая ссылка не считается
	assert.Zero(t, stats[0].MemoCount)
}

func TestGetBoardsWithStatsCompletedFilter(t *testing.T) {
	testDB(t)

	active := mustCreateBoard(t, 1, "Active")
	done := mustCreateBoard(t, 1, "Done")
	_, err := ToggleBoardCompletion(done.Id, 1)
	require.NoError(t, err)

	stats, err := GetBoardsWithStats(1, false)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, active.Id, stats[0].Id)

	stats, err = GetBoardsWithStats(1, true)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, done.Id, stats[0].Id)
}

func TestGetBoardsWithStatsLastActivity(t *testing.T) {
	testDB(t)

	board := mustCreateBoard(t, 1, "Project")
	memo := mustCreateMemo(t, 1, "Note")
	_, err := AddItemToBoard(board.Id, memoRef(memo.Id), 1)
	require.NoError(t, err)

	// Правка заметки сдвигает время последней активности доски
	time.Sleep(10 * time.Millisecond)
	memo.Title = "Edited"
	require.NoError(t, UpdateMemo(memo))

	stats, err := GetBoardsWithStats(1, false)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.False(t, stats[0].UpdatedAt.Before(memo.UpdatedAt))
}
