package data

import (
	"database/sql"
	"fmt"
	"time"

	"organizer_server_go/models"

	log "github.com/sirupsen/logrus"
)

// SoftDeleteBoard переносит доску из активной таблицы в теневую таблицу DeletedBoards.
// Снимок и удаление активной строки выполняются одной транзакцией: доска не может
// оказаться одновременно активной и удаленной (или ни той, ни другой).
// Возвращает sql.ErrNoRows если доска не найдена или чужая.
func SoftDeleteBoard(id int64, userID int64) error {
	tx, err := MainDB.Beginx() // Начинаем транзакцию
	if err != nil {
		return fmt.Errorf("SoftDeleteBoard: failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Откатываем, если что-то пошло не так

	board, err := GetBoardByIDWithTx(tx, id, userID)
	if err != nil {
		return err
	}
	if board == nil {
		return sql.ErrNoRows // Не найдено
	}

	// Снимок доски; временные метки переводятся в unix-секунды
	deleted := &models.DeletedBoard{
		UserId:      board.UserId,
		OriginalId:  board.Id,
		Name:        board.Name,
		Slug:        board.Slug,
		Description: board.Description,
		Position:    board.Position,
		Archived:    board.Archived,
		CreatedAt:   board.CreatedAt.Unix(),
		UpdatedAt:   board.UpdatedAt.Unix(),
		DeletedAt:   time.Now().Unix(),
	}

	insertQuery := `INSERT INTO DeletedBoards (UserId, OriginalId, Name, Slug, Description, Position, Archived, CreatedAt, UpdatedAt, DeletedAt)
	                VALUES (:UserId, :OriginalId, :Name, :Slug, :Description, :Position, :Archived, :CreatedAt, :UpdatedAt, :DeletedAt)`
	if _, err = tx.NamedExec(insertQuery, deleted); err != nil {
		return fmt.Errorf("SoftDeleteBoard: ошибка вставки в DeletedBoards для доски %d: %w", id, err)
	}

	if _, err = tx.Exec(`DELETE FROM Boards WHERE Id = ?`, board.Id); err != nil {
		return fmt.Errorf("SoftDeleteBoard: ошибка удаления доски %d из Boards: %w", id, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("SoftDeleteBoard: failed to commit transaction: %w", err)
	}
	log.Printf("Доска %d перенесена в DeletedBoards для пользователя %d", id, userID)
	return nil
}

// GetDeletedBoardsForUser извлекает удаленные доски пользователя,
// отсортированные по времени удаления (новые первыми).
func GetDeletedBoardsForUser(userID int64) ([]models.DeletedBoard, error) {
	var boards []models.DeletedBoard
	query := `SELECT Id, UserId, OriginalId, Name, Slug, Description, Position, Archived, CreatedAt, UpdatedAt, DeletedAt
	          FROM DeletedBoards WHERE UserId = ? ORDER BY DeletedAt DESC`
	err := MainDB.Select(&boards, query, userID)
	if err != nil {
		return nil, fmt.Errorf("GetDeletedBoardsForUser: ошибка получения удаленных досок для пользователя %d: %w", userID, err)
	}
	return boards, nil
}

// GetDeletedBoardByOriginalID извлекает удаленную доску по исходному ID с проверкой владельца.
// Возвращает (nil, nil) если запись не найдена или чужая.
func GetDeletedBoardByOriginalID(originalID int64, userID int64) (*models.DeletedBoard, error) {
	deleted := &models.DeletedBoard{}
	query := `SELECT Id, UserId, OriginalId, Name, Slug, Description, Position, Archived, CreatedAt, UpdatedAt, DeletedAt
	          FROM DeletedBoards WHERE OriginalId = ? AND UserId = ?`
	err := MainDB.Get(deleted, query, originalID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Не найдено
		}
		return nil, fmt.Errorf("GetDeletedBoardByOriginalID: ошибка получения удаленной доски %d: %w", originalID, err)
	}
	return deleted, nil
}

// RestoreBoard восстанавливает удаленную доску: в активную таблицу вставляется новая
// строка с заново подобранным слагом (старый мог быть занят) и позицией в конце списка,
// флаг Completed всегда сбрасывается, CreatedAt сохраняется из снимка. Запись из
// теневой таблицы удаляется в той же транзакции.
// Возвращает (nil, nil) если удаленная доска не найдена или чужая.
func RestoreBoard(originalID int64, userID int64) (*models.Board, error) {
	var lastErr error
	for attempt := 0; attempt < slugInsertRetries; attempt++ {
		board, err := restoreBoardOnce(originalID, userID)
		if err == nil {
			return board, nil
		}
		if !isUniqueConstraintErr(err) {
			return nil, err
		}
		lastErr = err
		log.Printf("RestoreBoard: конфликт слага при восстановлении, повтор (попытка %d)", attempt+1)
	}
	return nil, fmt.Errorf("RestoreBoard: не удалось подобрать уникальный слаг: %w", lastErr)
}

func restoreBoardOnce(originalID int64, userID int64) (*models.Board, error) {
	tx, err := MainDB.Beginx()
	if err != nil {
		return nil, fmt.Errorf("RestoreBoard: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	deleted := &models.DeletedBoard{}
	query := `SELECT Id, UserId, OriginalId, Name, Slug, Description, Position, Archived, CreatedAt, UpdatedAt, DeletedAt
	          FROM DeletedBoards WHERE OriginalId = ? AND UserId = ?`
	err = tx.Get(deleted, query, originalID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Не найдено
		}
		return nil, fmt.Errorf("RestoreBoard: ошибка получения удаленной доски %d: %w", originalID, err)
	}

	slug, err := GenerateUniqueSlugWithTx(tx, deleted.Name)
	if err != nil {
		return nil, err
	}

	maxPos, err := maxBoardPositionWithTx(tx, userID)
	if err != nil {
		return nil, err
	}

	board := &models.Board{
		Name:        deleted.Name,
		Slug:        slug,
		Description: deleted.Description,
		UserId:      deleted.UserId,
		Position:    maxPos + 1,
		Archived:    deleted.Archived,
		Completed:   false, // При восстановлении доска всегда не завершена
		CreatedAt:   time.Unix(deleted.CreatedAt, 0),
		UpdatedAt:   time.Now(),
	}

	insertQuery := `INSERT INTO Boards (Name, Slug, Description, UserId, Position, Archived, Completed, CreatedAt, UpdatedAt)
	                VALUES (:Name, :Slug, :Description, :UserId, :Position, :Archived, :Completed, :CreatedAt, :UpdatedAt)`
	result, err := tx.NamedExec(insertQuery, board)
	if err != nil {
		return nil, fmt.Errorf("RestoreBoard: ошибка вставки восстановленной доски %d: %w", originalID, err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("RestoreBoard: ошибка получения LastInsertId: %w", err)
	}
	board.Id = newID

	if _, err = tx.Exec(`DELETE FROM DeletedBoards WHERE OriginalId = ? AND UserId = ?`, originalID, userID); err != nil {
		return nil, fmt.Errorf("RestoreBoard: ошибка удаления записи из DeletedBoards для доски %d: %w", originalID, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("RestoreBoard: failed to commit transaction: %w", err)
	}
	log.Printf("Доска %d восстановлена как %d (слаг: %s) для пользователя %d", originalID, newID, slug, userID)
	return board, nil
}
