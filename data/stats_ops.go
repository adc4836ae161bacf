package data

import (
	"fmt"

	"organizer_server_go/models"
)

// GetBoardsWithStats извлекает активные доски пользователя со статистикой живых элементов.
// Выбираются доски с Archived = 0 и запрошенным значением Completed, в порядке
// (Position, CreatedAt). Для каждой доски считаются только те элементы, чье содержимое
// удалось разрешить в хранилище заметок/задач с проверкой владельца: осиротевшие
// ссылки в счетчики не попадают. Поле UpdatedAt в результате заменяется вычисленным
// временем последней активности - максимумом из UpdatedAt доски и UpdatedAt каждого
// разрешенного элемента (намеренное расхождение хранимого и отдаваемого значения).
func GetBoardsWithStats(userID int64, completed bool) ([]models.BoardWithStats, error) {
	var boards []models.Board
	query := `SELECT Id, Name, Slug, Description, UserId, Position, Archived, Completed, CreatedAt, UpdatedAt
	          FROM Boards WHERE UserId = ? AND Archived = 0 AND Completed = ?
	          ORDER BY Position, CreatedAt`
	err := MainDB.Select(&boards, query, userID, completed)
	if err != nil {
		return nil, fmt.Errorf("GetBoardsWithStats: ошибка получения досок для пользователя %d: %w", userID, err)
	}

	result := make([]models.BoardWithStats, 0, len(boards))
	for _, board := range boards {
		items, err := GetBoardItems(board.Id)
		if err != nil {
			return nil, err
		}

		memoCount := 0
		taskCount := 0
		lastActivityAt := board.UpdatedAt

		for _, item := range items {
			switch item.ItemType {
			case models.ItemTypeMemo:
				memo, err := GetMemoByID(item.ItemId, userID)
				if err != nil {
					return nil, err
				}
				if memo != nil {
					memoCount++
					if memo.UpdatedAt.After(lastActivityAt) {
						lastActivityAt = memo.UpdatedAt
					}
				}
			case models.ItemTypeTask:
				task, err := GetTaskByID(item.ItemId, userID)
				if err != nil {
					return nil, err
				}
				if task != nil {
					taskCount++
					if task.UpdatedAt.After(lastActivityAt) {
						lastActivityAt = task.UpdatedAt
					}
				}
			}
		}

		board.UpdatedAt = lastActivityAt
		result = append(result, models.BoardWithStats{
			Board:     board,
			MemoCount: memoCount,
			TaskCount: taskCount,
		})
	}
	return result, nil
}
