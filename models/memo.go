package models

import "time"

// Memo представляет собой заметку пользователя.
type Memo struct {
	Id        int64     `json:"id" db:"Id"`
	UserId    int64     `json:"userId" db:"UserId"`
	Title     string    `json:"title" db:"Title"`
	Content   *string   `json:"content,omitempty" db:"Content"`
	CreatedAt time.Time `json:"createdAt" db:"CreatedAt"`
	UpdatedAt time.Time `json:"updatedAt" db:"UpdatedAt"`
}

// CreateMemoRequest представляет данные для создания заметки.
type CreateMemoRequest struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

// UpdateMemoRequest представляет данные для обновления заметки.
// Поля-указатели: nil означает "не менять".
type UpdateMemoRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// DeletedMemo - снимок заметки на момент удаления (теневая таблица, unix-секунды).
type DeletedMemo struct {
	Id         int64   `json:"id" db:"Id"`
	UserId     int64   `json:"userId" db:"UserId"`
	OriginalId int64   `json:"originalId" db:"OriginalId"`
	Title      string  `json:"title" db:"Title"`
	Content    *string `json:"content,omitempty" db:"Content"`
	CreatedAt  int64   `json:"createdAt" db:"CreatedAt"`
	UpdatedAt  int64   `json:"updatedAt" db:"UpdatedAt"`
	DeletedAt  int64   `json:"deletedAt" db:"DeletedAt"`
}
