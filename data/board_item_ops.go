package data

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"organizer_server_go/models"

	log "github.com/sirupsen/logrus"
)

// ErrItemAlreadyOnBoard возвращается при попытке повторно добавить элемент на доску.
var ErrItemAlreadyOnBoard = errors.New("item already exists in board")

// ResolveItemRef разрешает ссылку (itemType, itemId) в содержимое заметки или задачи
// с проверкой владельца. Единая точка диспетчеризации по типу элемента.
// Возвращает (nil, nil) если элемент не найден или чужой.
func ResolveItemRef(ref models.ItemRef, userID int64) (interface{}, error) {
	switch ref.Type {
	case models.ItemTypeMemo:
		memo, err := GetMemoByID(ref.Id, userID)
		if err != nil {
			return nil, err
		}
		if memo == nil {
			return nil, nil
		}
		return memo, nil
	case models.ItemTypeTask:
		task, err := GetTaskByID(ref.Id, userID)
		if err != nil {
			return nil, err
		}
		if task == nil {
			return nil, nil
		}
		return task, nil
	default:
		return nil, fmt.Errorf("ResolveItemRef: неизвестный тип элемента %q", ref.Type)
	}
}

// AddItemToBoard добавляет элемент (заметку или задачу) на доску.
// Последовательность: проверка владельца доски, проверка существования и владельца
// элемента (точечная проверка на момент добавления, не внешний ключ), проверка
// дубликата, вставка с позицией в конце доски и обновление UpdatedAt доски.
// Вставка и touch выполняются одной транзакцией.
// Возвращает sql.ErrNoRows если доска или элемент не найдены (или чужие),
// ErrItemAlreadyOnBoard если элемент уже на доске.
func AddItemToBoard(boardID int64, ref models.ItemRef, userID int64) (*models.BoardItem, error) {
	board, err := GetBoardByID(boardID, userID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, sql.ErrNoRows // Доска не найдена
	}

	content, err := ResolveItemRef(ref, userID)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, sql.ErrNoRows // Элемент не найден
	}

	var exists bool
	err = MainDB.Get(&exists, `SELECT COUNT(*) > 0 FROM BoardItems WHERE BoardId = ? AND ItemType = ? AND ItemId = ?`,
		boardID, ref.Type, ref.Id)
	if err != nil {
		return nil, fmt.Errorf("AddItemToBoard: ошибка проверки дубликата для доски %d: %w", boardID, err)
	}
	if exists {
		return nil, ErrItemAlreadyOnBoard
	}

	tx, err := MainDB.Beginx() // Начинаем транзакцию
	if err != nil {
		return nil, fmt.Errorf("AddItemToBoard: failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Откатываем, если что-то пошло не так

	var maxPos int64
	err = tx.Get(&maxPos, `SELECT COALESCE(MAX(Position), 0) FROM BoardItems WHERE BoardId = ?`, boardID)
	if err != nil {
		return nil, fmt.Errorf("AddItemToBoard: ошибка получения позиции для доски %d: %w", boardID, err)
	}

	now := time.Now()
	item := &models.BoardItem{
		BoardId:   boardID,
		ItemType:  ref.Type,
		ItemId:    ref.Id,
		Position:  maxPos + 1,
		CreatedAt: now,
	}
	query := `INSERT INTO BoardItems (BoardId, ItemType, ItemId, Position, CreatedAt)
	          VALUES (:BoardId, :ItemType, :ItemId, :Position, :CreatedAt)`
	result, err := tx.NamedExec(query, item)
	if err != nil {
		// Параллельное добавление того же элемента перехватывается UNIQUE-ограничением
		if isUniqueConstraintErr(err) {
			return nil, ErrItemAlreadyOnBoard
		}
		return nil, fmt.Errorf("AddItemToBoard: ошибка вставки элемента на доску %d: %w", boardID, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("AddItemToBoard: ошибка получения LastInsertId: %w", err)
	}
	item.Id = id

	if err = TouchBoardWithTx(tx, boardID, now); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("AddItemToBoard: failed to commit transaction: %w", err)
	}
	log.Printf("Элемент %s/%d добавлен на доску %d для пользователя %d", ref.Type, ref.Id, boardID, userID)
	return item, nil
}

// RemoveItemFromBoard удаляет связь элемента с доской и обновляет UpdatedAt доски.
// Возвращает sql.ErrNoRows если доска не найдена (или чужая) либо элемент не на доске.
func RemoveItemFromBoard(boardID int64, ref models.ItemRef, userID int64) error {
	board, err := GetBoardByID(boardID, userID)
	if err != nil {
		return err
	}
	if board == nil {
		return sql.ErrNoRows // Доска не найдена
	}

	tx, err := MainDB.Beginx()
	if err != nil {
		return fmt.Errorf("RemoveItemFromBoard: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM BoardItems WHERE BoardId = ? AND ItemType = ? AND ItemId = ?`,
		boardID, ref.Type, ref.Id)
	if err != nil {
		return fmt.Errorf("RemoveItemFromBoard: ошибка удаления элемента %s/%d с доски %d: %w", ref.Type, ref.Id, boardID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows // Элемент не на доске
	}

	if err = TouchBoardWithTx(tx, boardID, time.Now()); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("RemoveItemFromBoard: failed to commit transaction: %w", err)
	}
	log.Printf("Элемент %s/%d удален с доски %d для пользователя %d", ref.Type, ref.Id, boardID, userID)
	return nil
}

// GetBoardItems извлекает связи доски, отсортированные по позиции.
func GetBoardItems(boardID int64) ([]models.BoardItem, error) {
	var items []models.BoardItem
	query := `SELECT Id, BoardId, ItemType, ItemId, Position, CreatedAt
	          FROM BoardItems WHERE BoardId = ? ORDER BY Position ASC`
	err := MainDB.Select(&items, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("GetBoardItems: ошибка получения элементов доски %d: %w", boardID, err)
	}
	return items, nil
}

// GetBoardWithItems извлекает доску и ее элементы с разрешенным содержимым.
// Элементы, чье содержимое уже удалено из своего хранилища (осиротевшие ссылки),
// из результата исключаются; сами строки BoardItems при этом не чистятся.
// Возвращает (nil, nil, nil) если доска не найдена или чужая.
func GetBoardWithItems(boardID int64, userID int64) (*models.Board, []models.BoardItemWithContent, error) {
	board, err := GetBoardByID(boardID, userID)
	if err != nil {
		return nil, nil, err
	}
	if board == nil {
		return nil, nil, nil // Не найдено
	}

	items, err := GetBoardItems(boardID)
	if err != nil {
		return nil, nil, err
	}

	withContent := make([]models.BoardItemWithContent, 0, len(items))
	for _, item := range items {
		content, err := ResolveItemRef(models.ItemRef{Type: item.ItemType, Id: item.ItemId}, userID)
		if err != nil {
			return nil, nil, err
		}
		if content == nil {
			continue // Осиротевшая ссылка
		}
		withContent = append(withContent, models.BoardItemWithContent{
			Id:       item.Id,
			ItemType: item.ItemType,
			ItemId:   item.ItemId,
			Position: item.Position,
			Content:  content,
		})
	}
	return board, withContent, nil
}

// GetBoardsForItem извлекает доски пользователя, содержащие указанный элемент,
// отсортированные по имени. Существование самого элемента проверяет вызывающая сторона.
func GetBoardsForItem(ref models.ItemRef, userID int64) ([]models.Board, error) {
	var boards []models.Board
	query := `SELECT b.Id, b.Name, b.Slug, b.Description, b.UserId, b.Position, b.Archived, b.Completed, b.CreatedAt, b.UpdatedAt
	          FROM Boards b
	          INNER JOIN BoardItems bi ON b.Id = bi.BoardId
	          WHERE bi.ItemType = ? AND bi.ItemId = ? AND b.UserId = ?
	          ORDER BY b.Name`
	err := MainDB.Select(&boards, query, ref.Type, ref.Id, userID)
	if err != nil {
		return nil, fmt.Errorf("GetBoardsForItem: ошибка получения досок для элемента %s/%d: %w", ref.Type, ref.Id, err)
	}
	return boards, nil
}
