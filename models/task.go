package models

import "time"

// Статусы задач.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// Приоритеты задач.
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task представляет собой задачу пользователя.
type Task struct {
	Id          int64     `json:"id" db:"Id"`
	UserId      int64     `json:"userId" db:"UserId"`
	Title       string    `json:"title" db:"Title"`
	Description *string   `json:"description,omitempty" db:"Description"`
	Status      string    `json:"status" db:"Status"`
	Priority    string    `json:"priority" db:"Priority"`
	DueDate     *int64    `json:"dueDate,omitempty" db:"DueDate"` // unix-секунды
	CategoryId  *int64    `json:"categoryId,omitempty" db:"CategoryId"`
	CreatedAt   time.Time `json:"createdAt" db:"CreatedAt"`
	UpdatedAt   time.Time `json:"updatedAt" db:"UpdatedAt"`
}

// CreateTaskRequest представляет данные для создания задачи.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *int64  `json:"dueDate"`
	CategoryId  *int64  `json:"categoryId"`
}

// UpdateTaskRequest представляет данные для обновления задачи.
// Поля-указатели: nil означает "не менять".
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *int64  `json:"dueDate"`
	CategoryId  *int64  `json:"categoryId"`
}

// DeletedTask - снимок задачи на момент удаления (теневая таблица, unix-секунды).
type DeletedTask struct {
	Id          int64   `json:"id" db:"Id"`
	UserId      int64   `json:"userId" db:"UserId"`
	OriginalId  int64   `json:"originalId" db:"OriginalId"`
	Title       string  `json:"title" db:"Title"`
	Description *string `json:"description,omitempty" db:"Description"`
	Status      string  `json:"status" db:"Status"`
	Priority    string  `json:"priority" db:"Priority"`
	DueDate     *int64  `json:"dueDate,omitempty" db:"DueDate"`
	CategoryId  *int64  `json:"categoryId,omitempty" db:"CategoryId"`
	CreatedAt   int64   `json:"createdAt" db:"CreatedAt"`
	UpdatedAt   int64   `json:"updatedAt" db:"UpdatedAt"`
	DeletedAt   int64   `json:"deletedAt" db:"DeletedAt"`
}
