package data

import (
	"database/sql"
	"fmt"
	"time"

	"organizer_server_go/models"

	log "github.com/sirupsen/logrus"
)

// CreateTask создает новую задачу пользователя.
// Пустые Status/Priority заменяются значениями по умолчанию.
func CreateTask(task *models.Task) (int64, error) {
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	query := `INSERT INTO Tasks (UserId, Title, Description, Status, Priority, DueDate, CategoryId, CreatedAt, UpdatedAt)
	          VALUES (:UserId, :Title, :Description, :Status, :Priority, :DueDate, :CategoryId, :CreatedAt, :UpdatedAt)`
	result, err := MainDB.NamedExec(query, task)
	if err != nil {
		return 0, fmt.Errorf("CreateTask: ошибка вставки задачи: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateTask: ошибка получения LastInsertId: %w", err)
	}
	task.Id = id
	log.Printf("Создана задача с ID: %d для пользователя %d", id, task.UserId)
	return id, nil
}

// GetTaskByID извлекает задачу по ID с проверкой владельца.
// Возвращает (nil, nil) если задача не найдена или чужая.
func GetTaskByID(id int64, userID int64) (*models.Task, error) {
	task := &models.Task{}
	query := `SELECT Id, UserId, Title, Description, Status, Priority, DueDate, CategoryId, CreatedAt, UpdatedAt
	          FROM Tasks WHERE Id = ? AND UserId = ?`
	err := MainDB.Get(task, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Не найдено
		}
		return nil, fmt.Errorf("GetTaskByID: ошибка получения задачи ID %d: %w", id, err)
	}
	return task, nil
}

// GetTasksForUser извлекает все задачи пользователя, новые первыми.
func GetTasksForUser(userID int64) ([]models.Task, error) {
	var tasks []models.Task
	query := `SELECT Id, UserId, Title, Description, Status, Priority, DueDate, CategoryId, CreatedAt, UpdatedAt
	          FROM Tasks WHERE UserId = ? ORDER BY UpdatedAt DESC`
	err := MainDB.Select(&tasks, query, userID)
	if err != nil {
		return nil, fmt.Errorf("GetTasksForUser: ошибка получения задач для пользователя %d: %w", userID, err)
	}
	return tasks, nil
}

// UpdateTask обновляет существующую задачу.
// Поля task.Id и task.UserId должны быть установлены.
func UpdateTask(task *models.Task) error {
	task.UpdatedAt = time.Now()

	query := `UPDATE Tasks SET Title = :Title, Description = :Description, Status = :Status,
	            Priority = :Priority, DueDate = :DueDate, CategoryId = :CategoryId, UpdatedAt = :UpdatedAt
	          WHERE Id = :Id AND UserId = :UserId`
	result, err := MainDB.NamedExec(query, task)
	if err != nil {
		return fmt.Errorf("UpdateTask: ошибка обновления задачи ID %d: %w", task.Id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows // Не найдено для обновления
	}
	return nil
}

// SoftDeleteTask переносит задачу в теневую таблицу DeletedTasks одной транзакцией.
// Возвращает sql.ErrNoRows если задача не найдена или чужая.
func SoftDeleteTask(id int64, userID int64) error {
	tx, err := MainDB.Beginx()
	if err != nil {
		return fmt.Errorf("SoftDeleteTask: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	task := &models.Task{}
	query := `SELECT Id, UserId, Title, Description, Status, Priority, DueDate, CategoryId, CreatedAt, UpdatedAt
	          FROM Tasks WHERE Id = ? AND UserId = ?`
	err = tx.Get(task, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return sql.ErrNoRows // Не найдено
		}
		return fmt.Errorf("SoftDeleteTask: ошибка получения задачи ID %d: %w", id, err)
	}

	deleted := &models.DeletedTask{
		UserId:      task.UserId,
		OriginalId:  task.Id,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		CategoryId:  task.CategoryId,
		CreatedAt:   task.CreatedAt.Unix(),
		UpdatedAt:   task.UpdatedAt.Unix(),
		DeletedAt:   time.Now().Unix(),
	}
	insertQuery := `INSERT INTO DeletedTasks (UserId, OriginalId, Title, Description, Status, Priority, DueDate, CategoryId, CreatedAt, UpdatedAt, DeletedAt)
	                VALUES (:UserId, :OriginalId, :Title, :Description, :Status, :Priority, :DueDate, :CategoryId, :CreatedAt, :UpdatedAt, :DeletedAt)`
	if _, err = tx.NamedExec(insertQuery, deleted); err != nil {
		return fmt.Errorf("SoftDeleteTask: ошибка вставки в DeletedTasks для задачи %d: %w", id, err)
	}

	if _, err = tx.Exec(`DELETE FROM Tasks WHERE Id = ?`, task.Id); err != nil {
		return fmt.Errorf("SoftDeleteTask: ошибка удаления задачи %d из Tasks: %w", id, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("SoftDeleteTask: failed to commit transaction: %w", err)
	}
	log.Printf("Задача %d перенесена в DeletedTasks для пользователя %d", id, userID)
	return nil
}

// GetDeletedTasksForUser извлекает удаленные задачи пользователя, новые первыми.
func GetDeletedTasksForUser(userID int64) ([]models.DeletedTask, error) {
	var tasks []models.DeletedTask
	query := `SELECT Id, UserId, OriginalId, Title, Description, Status, Priority, DueDate, CategoryId, CreatedAt, UpdatedAt, DeletedAt
	          FROM DeletedTasks WHERE UserId = ? ORDER BY DeletedAt DESC`
	err := MainDB.Select(&tasks, query, userID)
	if err != nil {
		return nil, fmt.Errorf("GetDeletedTasksForUser: ошибка получения удаленных задач для пользователя %d: %w", userID, err)
	}
	return tasks, nil
}

// RestoreTask восстанавливает удаленную задачу из теневой таблицы.
// Возвращает (nil, nil) если запись не найдена или чужая.
func RestoreTask(originalID int64, userID int64) (*models.Task, error) {
	tx, err := MainDB.Beginx()
	if err != nil {
		return nil, fmt.Errorf("RestoreTask: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	deleted := &models.DeletedTask{}
	query := `SELECT Id, UserId, OriginalId, Title, Description, Status, Priority, DueDate, CategoryId, CreatedAt, UpdatedAt, DeletedAt
	          FROM DeletedTasks WHERE OriginalId = ? AND UserId = ?`
	err = tx.Get(deleted, query, originalID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Не найдено
		}
		return nil, fmt.Errorf("RestoreTask: ошибка получения удаленной задачи %d: %w", originalID, err)
	}

	task := &models.Task{
		UserId:      deleted.UserId,
		Title:       deleted.Title,
		Description: deleted.Description,
		Status:      deleted.Status,
		Priority:    deleted.Priority,
		DueDate:     deleted.DueDate,
		CategoryId:  deleted.CategoryId,
		CreatedAt:   time.Unix(deleted.CreatedAt, 0),
		UpdatedAt:   time.Now(),
	}
	insertQuery := `INSERT INTO Tasks (UserId, Title, Description, Status, Priority, DueDate, CategoryId, CreatedAt, UpdatedAt)
	                VALUES (:UserId, :Title, :Description, :Status, :Priority, :DueDate, :CategoryId, :CreatedAt, :UpdatedAt)`
	result, err := tx.NamedExec(insertQuery, task)
	if err != nil {
		return nil, fmt.Errorf("RestoreTask: ошибка вставки восстановленной задачи %d: %w", originalID, err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("RestoreTask: ошибка получения LastInsertId: %w", err)
	}
	task.Id = newID

	if _, err = tx.Exec(`DELETE FROM DeletedTasks WHERE OriginalId = ? AND UserId = ?`, originalID, userID); err != nil {
		return nil, fmt.Errorf("RestoreTask: ошибка удаления записи из DeletedTasks для задачи %d: %w", originalID, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("RestoreTask: failed to commit transaction: %w", err)
	}
	log.Printf("Задача %d восстановлена как %d для пользователя %d", originalID, newID, userID)
	return task, nil
}
