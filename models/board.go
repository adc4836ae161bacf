package models

import "time"

// ItemType определяет тип элемента, прикрепляемого к доске.
type ItemType string

const (
	ItemTypeMemo ItemType = "memo"
	ItemTypeTask ItemType = "task"
)

// Valid проверяет, что тип элемента является одним из поддерживаемых.
func (t ItemType) Valid() bool {
	return t == ItemTypeMemo || t == ItemTypeTask
}

// ItemRef - типизированная ссылка на внешний элемент (заметку или задачу).
// Пара (Type, Id) указывает на строку в хранилище заметок или задач.
type ItemRef struct {
	Type ItemType `json:"itemType"`
	Id   int64    `json:"itemId"`
}

// Board представляет доску - именованную коллекцию заметок и задач пользователя.
type Board struct {
	Id          int64       `json:"id" db:"Id"`
	Name        string      `json:"name" db:"Name"`
	Slug        string      `json:"slug" db:"Slug"`
	Description *string     `json:"description" db:"Description"`
	UserId      int64       `json:"userId" db:"UserId"`
	Position    int64       `json:"position" db:"Position"`
	Archived    BoolFromInt `json:"archived" db:"Archived"`
	Completed   BoolFromInt `json:"completed" db:"Completed"`
	CreatedAt   time.Time   `json:"createdAt" db:"CreatedAt"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"UpdatedAt"`
}

// DeletedBoard - снимок доски на момент удаления (теневая таблица).
// Временные метки хранятся в unix-секундах, как и в остальных теневых таблицах.
type DeletedBoard struct {
	Id          int64       `json:"id" db:"Id"`
	UserId      int64       `json:"userId" db:"UserId"`
	OriginalId  int64       `json:"originalId" db:"OriginalId"`
	Name        string      `json:"name" db:"Name"`
	Slug        string      `json:"slug" db:"Slug"`
	Description *string     `json:"description" db:"Description"`
	Position    int64       `json:"position" db:"Position"`
	Archived    BoolFromInt `json:"archived" db:"Archived"`
	CreatedAt   int64       `json:"createdAt" db:"CreatedAt"`
	UpdatedAt   int64       `json:"updatedAt" db:"UpdatedAt"`
	DeletedAt   int64       `json:"deletedAt" db:"DeletedAt"`
}

// BoardItem - связь доски с внешним элементом (заметкой или задачей).
// Пара (BoardId, ItemType, ItemId) уникальна: элемент попадает на доску не более одного раза.
type BoardItem struct {
	Id        int64     `json:"id" db:"Id"`
	BoardId   int64     `json:"boardId" db:"BoardId"`
	ItemType  ItemType  `json:"itemType" db:"ItemType"`
	ItemId    int64     `json:"itemId" db:"ItemId"`
	Position  int64     `json:"position" db:"Position"`
	CreatedAt time.Time `json:"createdAt" db:"CreatedAt"`
}

// BoardWithStats - доска вместе с количеством живых элементов.
// Поле UpdatedAt встроенной доски заменяется на вычисленное время последней активности.
type BoardWithStats struct {
	Board
	MemoCount int `json:"memoCount"`
	TaskCount int `json:"taskCount"`
}

// BoardItemWithContent - элемент доски вместе с разрешенным содержимым.
// Content - это *Memo или *Task в зависимости от ItemType.
type BoardItemWithContent struct {
	Id       int64       `json:"id"`
	ItemType ItemType    `json:"itemType"`
	ItemId   int64       `json:"itemId"`
	Position int64       `json:"position"`
	Content  interface{} `json:"content"`
}

// BoardWithItems - ответ для запроса содержимого доски.
type BoardWithItems struct {
	Board *Board                 `json:"board"`
	Items []BoardItemWithContent `json:"items"`
}

// CreateBoardRequest представляет данные для создания доски.
type CreateBoardRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UpdateBoardRequest представляет данные для обновления доски.
// Поля-указатели: nil означает "не менять".
type UpdateBoardRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AddItemToBoardRequest представляет данные для добавления элемента на доску.
type AddItemToBoardRequest struct {
	ItemType ItemType `json:"itemType"`
	ItemId   int64    `json:"itemId"`
}
