package data

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"organizer_server_go/models"
)

// testDB подменяет глобальные пулы на базы в памяти на время теста.
// Тесты не могут выполняться параллельно, так как делят глобальные переменные.
func testDB(t *testing.T) {
	t.Helper()

	mainDB, err := sqlx.Connect("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	mainDB.SetMaxOpenConns(1)
	_, err = mainDB.Exec(GetMainSchema())
	require.NoError(t, err)

	authDB, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	authDB.SetMaxOpenConns(1)
	_, err = authDB.Exec(GetAuthSchema())
	require.NoError(t, err)

	prevMain, prevAuth := MainDB, AuthDB
	MainDB = mainDB
	AuthDB = authDB
	t.Cleanup(func() {
		MainDB = prevMain
		AuthDB = prevAuth
		mainDB.Close()
		authDB.Close()
	})
}

func memoRef(id int64) models.ItemRef {
	return models.ItemRef{Type: models.ItemTypeMemo, Id: id}
}

func taskRef(id int64) models.ItemRef {
	return models.ItemRef{Type: models.ItemTypeTask, Id: id}
}

func mustCreateBoard(t *testing.T, userID int64, name string) *models.Board {
	t.Helper()
	board, err := CreateBoard(userID, name, nil)
	require.NoError(t, err)
	require.NotNil(t, board)
	return board
}

func mustCreateMemo(t *testing.T, userID int64, title string) *models.Memo {
	t.Helper()
	memo := &models.Memo{UserId: userID, Title: title}
	_, err := CreateMemo(memo)
	require.NoError(t, err)
	return memo
}

func mustCreateTask(t *testing.T, userID int64, title string) *models.Task {
	t.Helper()
	task := &models.Task{UserId: userID, Title: title}
	_, err := CreateTask(task)
	require.NoError(t, err)
	return task
}
