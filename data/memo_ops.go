package data

import (
	"database/sql"
	"fmt"
	"time"

	"organizer_server_go/models"

	log "github.com/sirupsen/logrus"
)

// CreateMemo создает новую заметку пользователя.
func CreateMemo(memo *models.Memo) (int64, error) {
	now := time.Now()
	memo.CreatedAt = now
	memo.UpdatedAt = now

	query := `INSERT INTO Memos (UserId, Title, Content, CreatedAt, UpdatedAt)
	          VALUES (:UserId, :Title, :Content, :CreatedAt, :UpdatedAt)`
	result, err := MainDB.NamedExec(query, memo)
	if err != nil {
		return 0, fmt.Errorf("CreateMemo: ошибка вставки заметки: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateMemo: ошибка получения LastInsertId: %w", err)
	}
	memo.Id = id
	log.Printf("Создана заметка с ID: %d для пользователя %d", id, memo.UserId)
	return id, nil
}

// GetMemoByID извлекает заметку по ID с проверкой владельца.
// Возвращает (nil, nil) если заметка не найдена или чужая.
func GetMemoByID(id int64, userID int64) (*models.Memo, error) {
	memo := &models.Memo{}
	query := `SELECT Id, UserId, Title, Content, CreatedAt, UpdatedAt
	          FROM Memos WHERE Id = ? AND UserId = ?`
	err := MainDB.Get(memo, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Не найдено
		}
		return nil, fmt.Errorf("GetMemoByID: ошибка получения заметки ID %d: %w", id, err)
	}
	return memo, nil
}

// GetMemosForUser извлекает все заметки пользователя, новые первыми.
func GetMemosForUser(userID int64) ([]models.Memo, error) {
	var memos []models.Memo
	query := `SELECT Id, UserId, Title, Content, CreatedAt, UpdatedAt
	          FROM Memos WHERE UserId = ? ORDER BY UpdatedAt DESC`
	err := MainDB.Select(&memos, query, userID)
	if err != nil {
		return nil, fmt.Errorf("GetMemosForUser: ошибка получения заметок для пользователя %d: %w", userID, err)
	}
	return memos, nil
}

// UpdateMemo обновляет существующую заметку.
// Поля memo.Id и memo.UserId должны быть установлены.
func UpdateMemo(memo *models.Memo) error {
	memo.UpdatedAt = time.Now()

	query := `UPDATE Memos SET Title = :Title, Content = :Content, UpdatedAt = :UpdatedAt
	          WHERE Id = :Id AND UserId = :UserId`
	result, err := MainDB.NamedExec(query, memo)
	if err != nil {
		return fmt.Errorf("UpdateMemo: ошибка обновления заметки ID %d: %w", memo.Id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows // Не найдено для обновления
	}
	return nil
}

// SoftDeleteMemo переносит заметку в теневую таблицу DeletedMemos одной транзакцией.
// Возвращает sql.ErrNoRows если заметка не найдена или чужая.
func SoftDeleteMemo(id int64, userID int64) error {
	tx, err := MainDB.Beginx()
	if err != nil {
		return fmt.Errorf("SoftDeleteMemo: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	memo := &models.Memo{}
	query := `SELECT Id, UserId, Title, Content, CreatedAt, UpdatedAt
	          FROM Memos WHERE Id = ? AND UserId = ?`
	err = tx.Get(memo, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return sql.ErrNoRows // Не найдено
		}
		return fmt.Errorf("SoftDeleteMemo: ошибка получения заметки ID %d: %w", id, err)
	}

	deleted := &models.DeletedMemo{
		UserId:     memo.UserId,
		OriginalId: memo.Id,
		Title:      memo.Title,
		Content:    memo.Content,
		CreatedAt:  memo.CreatedAt.Unix(),
		UpdatedAt:  memo.UpdatedAt.Unix(),
		DeletedAt:  time.Now().Unix(),
	}
	insertQuery := `INSERT INTO DeletedMemos (UserId, OriginalId, Title, Content, CreatedAt, UpdatedAt, DeletedAt)
	                VALUES (:UserId, :OriginalId, :Title, :Content, :CreatedAt, :UpdatedAt, :DeletedAt)`
	if _, err = tx.NamedExec(insertQuery, deleted); err != nil {
		return fmt.Errorf("SoftDeleteMemo: ошибка вставки в DeletedMemos для заметки %d: %w", id, err)
	}

	if _, err = tx.Exec(`DELETE FROM Memos WHERE Id = ?`, memo.Id); err != nil {
		return fmt.Errorf("SoftDeleteMemo: ошибка удаления заметки %d из Memos: %w", id, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("SoftDeleteMemo: failed to commit transaction: %w", err)
	}
	log.Printf("Заметка %d перенесена в DeletedMemos для пользователя %d", id, userID)
	return nil
}

// GetDeletedMemosForUser извлекает удаленные заметки пользователя, новые первыми.
func GetDeletedMemosForUser(userID int64) ([]models.DeletedMemo, error) {
	var memos []models.DeletedMemo
	query := `SELECT Id, UserId, OriginalId, Title, Content, CreatedAt, UpdatedAt, DeletedAt
	          FROM DeletedMemos WHERE UserId = ? ORDER BY DeletedAt DESC`
	err := MainDB.Select(&memos, query, userID)
	if err != nil {
		return nil, fmt.Errorf("GetDeletedMemosForUser: ошибка получения удаленных заметок для пользователя %d: %w", userID, err)
	}
	return memos, nil
}

// RestoreMemo восстанавливает удаленную заметку из теневой таблицы.
// Возвращает (nil, nil) если запись не найдена или чужая.
func RestoreMemo(originalID int64, userID int64) (*models.Memo, error) {
	tx, err := MainDB.Beginx()
	if err != nil {
		return nil, fmt.Errorf("RestoreMemo: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	deleted := &models.DeletedMemo{}
	query := `SELECT Id, UserId, OriginalId, Title, Content, CreatedAt, UpdatedAt, DeletedAt
	          FROM DeletedMemos WHERE OriginalId = ? AND UserId = ?`
	err = tx.Get(deleted, query, originalID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Не найдено
		}
		return nil, fmt.Errorf("RestoreMemo: ошибка получения удаленной заметки %d: %w", originalID, err)
	}

	memo := &models.Memo{
		UserId:    deleted.UserId,
		Title:     deleted.Title,
		Content:   deleted.Content,
		CreatedAt: time.Unix(deleted.CreatedAt, 0),
		UpdatedAt: time.Now(),
	}
	insertQuery := `INSERT INTO Memos (UserId, Title, Content, CreatedAt, UpdatedAt)
	                VALUES (:UserId, :Title, :Content, :CreatedAt, :UpdatedAt)`
	result, err := tx.NamedExec(insertQuery, memo)
	if err != nil {
		return nil, fmt.Errorf("RestoreMemo: ошибка вставки восстановленной заметки %d: %w", originalID, err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("RestoreMemo: ошибка получения LastInsertId: %w", err)
	}
	memo.Id = newID

	if _, err = tx.Exec(`DELETE FROM DeletedMemos WHERE OriginalId = ? AND UserId = ?`, originalID, userID); err != nil {
		return nil, fmt.Errorf("RestoreMemo: ошибка удаления записи из DeletedMemos для заметки %d: %w", originalID, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("RestoreMemo: failed to commit transaction: %w", err)
	}
	log.Printf("Заметка %d восстановлена как %d для пользователя %d", originalID, newID, userID)
	return memo, nil
}
