package data

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"organizer_server_go/models"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
)

// slugInsertRetries - количество повторов вставки при конфликте UNIQUE-индекса на слаге.
const slugInsertRetries = 3

// isUniqueConstraintErr сообщает, вызвана ли ошибка нарушением UNIQUE-ограничения.
func isUniqueConstraintErr(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// GetBoardByID извлекает доску по ID с проверкой владельца.
// Возвращает (nil, nil) если доска не найдена или принадлежит другому пользователю
// (чтобы не раскрывать существование чужих досок).
func GetBoardByID(id int64, userID int64) (*models.Board, error) {
	board := &models.Board{}
	query := `SELECT Id, Name, Slug, Description, UserId, Position, Archived, Completed, CreatedAt, UpdatedAt
	          FROM Boards WHERE Id = ? AND UserId = ?`
	err := MainDB.Get(board, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Не найдено
		}
		return nil, fmt.Errorf("GetBoardByID: ошибка получения доски ID %d: %w", id, err)
	}
	return board, nil
}

// GetBoardByIDWithTx извлекает доску по ID с проверкой владельца в рамках транзакции.
func GetBoardByIDWithTx(tx *sqlx.Tx, id int64, userID int64) (*models.Board, error) {
	board := &models.Board{}
	query := `SELECT Id, Name, Slug, Description, UserId, Position, Archived, Completed, CreatedAt, UpdatedAt
	          FROM Boards WHERE Id = ? AND UserId = ?`
	err := tx.Get(board, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Не найдено
		}
		return nil, fmt.Errorf("GetBoardByIDWithTx: ошибка получения доски ID %d: %w", id, err)
	}
	return board, nil
}

// GetBoardBySlug извлекает доску по слагу с проверкой владельца.
// Возвращает (nil, nil) если доска не найдена или чужая.
func GetBoardBySlug(slug string, userID int64) (*models.Board, error) {
	board := &models.Board{}
	query := `SELECT Id, Name, Slug, Description, UserId, Position, Archived, Completed, CreatedAt, UpdatedAt
	          FROM Boards WHERE Slug = ? AND UserId = ?`
	err := MainDB.Get(board, query, slug, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Не найдено
		}
		return nil, fmt.Errorf("GetBoardBySlug: ошибка получения доски по слагу %s: %w", slug, err)
	}
	return board, nil
}

// maxBoardPositionWithTx возвращает максимальную позицию среди активных досок пользователя.
func maxBoardPositionWithTx(tx *sqlx.Tx, userID int64) (int64, error) {
	var maxPos int64
	err := tx.Get(&maxPos, `SELECT COALESCE(MAX(Position), 0) FROM Boards WHERE UserId = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("maxBoardPositionWithTx: ошибка получения позиции для пользователя %d: %w", userID, err)
	}
	return maxPos, nil
}

// TouchBoardWithTx обновляет UpdatedAt доски в рамках транзакции.
func TouchBoardWithTx(tx *sqlx.Tx, boardID int64, now time.Time) error {
	_, err := tx.Exec(`UPDATE Boards SET UpdatedAt = ? WHERE Id = ?`, now, boardID)
	if err != nil {
		return fmt.Errorf("TouchBoardWithTx: ошибка обновления UpdatedAt доски %d: %w", boardID, err)
	}
	return nil
}

// CreateBoard создает новую доску: подбор слага и вставка выполняются в одной
// транзакции, позиция добавляется в конец списка пользователя.
// При конфликте UNIQUE-индекса на слаге (параллельное создание) вставка повторяется.
func CreateBoard(userID int64, name string, description *string) (*models.Board, error) {
	var lastErr error
	for attempt := 0; attempt < slugInsertRetries; attempt++ {
		board, err := createBoardOnce(userID, name, description)
		if err == nil {
			return board, nil
		}
		if !isUniqueConstraintErr(err) {
			return nil, err
		}
		lastErr = err
		log.Printf("CreateBoard: конфликт слага при вставке, повтор (попытка %d)", attempt+1)
	}
	return nil, fmt.Errorf("CreateBoard: не удалось подобрать уникальный слаг: %w", lastErr)
}

func createBoardOnce(userID int64, name string, description *string) (*models.Board, error) {
	tx, err := MainDB.Beginx() // Начинаем транзакцию
	if err != nil {
		return nil, fmt.Errorf("CreateBoard: failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Откатываем, если что-то пошло не так

	slug, err := GenerateUniqueSlugWithTx(tx, name)
	if err != nil {
		return nil, err
	}

	maxPos, err := maxBoardPositionWithTx(tx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	board := &models.Board{
		Name:        name,
		Slug:        slug,
		Description: description,
		UserId:      userID,
		Position:    maxPos + 1,
		Archived:    false,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query := `INSERT INTO Boards (Name, Slug, Description, UserId, Position, Archived, Completed, CreatedAt, UpdatedAt)
	          VALUES (:Name, :Slug, :Description, :UserId, :Position, :Archived, :Completed, :CreatedAt, :UpdatedAt)`
	result, err := tx.NamedExec(query, board)
	if err != nil {
		return nil, fmt.Errorf("CreateBoard: ошибка вставки доски: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("CreateBoard: ошибка получения LastInsertId: %w", err)
	}
	board.Id = id

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("CreateBoard: failed to commit transaction: %w", err)
	}
	log.Printf("Создана доска с ID: %d (слаг: %s) для пользователя %d", id, slug, userID)
	return board, nil
}

// UpdateBoard обновляет имя и/или описание доски. Поля-nil не изменяются.
// Возвращает (nil, nil) если доска не найдена или чужая.
func UpdateBoard(id int64, userID int64, name *string, description *string) (*models.Board, error) {
	board, err := GetBoardByID(id, userID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, nil // Не найдено
	}

	if name != nil {
		board.Name = *name
	}
	if description != nil {
		board.Description = description
	}
	board.UpdatedAt = time.Now()

	query := `UPDATE Boards SET Name = :Name, Description = :Description, UpdatedAt = :UpdatedAt
	          WHERE Id = :Id AND UserId = :UserId`
	result, err := MainDB.NamedExec(query, board)
	if err != nil {
		return nil, fmt.Errorf("UpdateBoard: ошибка обновления доски ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, nil // Не найдено для обновления
	}
	log.Printf("Обновлена доска с ID: %d для пользователя %d", id, userID)
	return board, nil
}

// ToggleBoardCompletion переключает флаг Completed доски.
// Возвращает (nil, nil) если доска не найдена или чужая.
func ToggleBoardCompletion(id int64, userID int64) (*models.Board, error) {
	board, err := GetBoardByID(id, userID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, nil // Не найдено
	}

	board.Completed = !board.Completed
	board.UpdatedAt = time.Now()

	query := `UPDATE Boards SET Completed = :Completed, UpdatedAt = :UpdatedAt
	          WHERE Id = :Id AND UserId = :UserId`
	if _, err := MainDB.NamedExec(query, board); err != nil {
		return nil, fmt.Errorf("ToggleBoardCompletion: ошибка обновления доски ID %d: %w", id, err)
	}
	return board, nil
}
