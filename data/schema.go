package data

const usersSchema = `
CREATE TABLE IF NOT EXISTS Users (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    Username TEXT NOT NULL UNIQUE,
    Email TEXT NOT NULL UNIQUE,
    DisplayName TEXT NOT NULL,
    PhotoUrl TEXT,
    PasswordHash TEXT NOT NULL,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL
);
`

// GetAuthSchema возвращает SQL-схему для базы данных аутентификации (только таблица Users).
func GetAuthSchema() string {
	return usersSchema
}

// GetMainSchema возвращает SQL-схему для основной базы данных.
// Таблицы перечислены в порядке, удовлетворяющем внешним ключам.
func GetMainSchema() string {
	return BoardsTable() + DeletedBoardsTable() + BoardItemsTable() +
		MemosTable() + DeletedMemosTable() + TasksTable() + DeletedTasksTable()
}

func UsersTable() string { // Эта таблица в AuthDB
	return usersSchema
}

func BoardsTable() string {
	return `
CREATE TABLE IF NOT EXISTS Boards (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    Name TEXT NOT NULL,
    Slug TEXT NOT NULL,
    Description TEXT,
    UserId INTEGER NOT NULL,
    Position INTEGER NOT NULL,
    Archived BOOLEAN NOT NULL DEFAULT 0,
    Completed BOOLEAN NOT NULL DEFAULT 0,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL
);

-- Слаг уникален среди всех активных досок (не только в пределах пользователя).
-- Индекс закрывает гонку check-then-insert при одновременном создании.
CREATE UNIQUE INDEX IF NOT EXISTS IX_Boards_Slug ON Boards(Slug);
`
}

func DeletedBoardsTable() string {
	return `
CREATE TABLE IF NOT EXISTS DeletedBoards (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    UserId INTEGER NOT NULL,
    OriginalId INTEGER NOT NULL,
    Name TEXT NOT NULL,
    Slug TEXT NOT NULL,
    Description TEXT,
    Position INTEGER NOT NULL,
    Archived BOOLEAN NOT NULL DEFAULT 0,
    CreatedAt INTEGER NOT NULL,
    UpdatedAt INTEGER NOT NULL,
    DeletedAt INTEGER NOT NULL
);
`
}

func BoardItemsTable() string {
	return `
CREATE TABLE IF NOT EXISTS BoardItems (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    BoardId INTEGER NOT NULL,
    ItemType TEXT NOT NULL,
    ItemId INTEGER NOT NULL,
    Position INTEGER NOT NULL,
    CreatedAt DATETIME NOT NULL,
    UNIQUE (BoardId, ItemType, ItemId),
    FOREIGN KEY (BoardId) REFERENCES Boards(Id) ON DELETE CASCADE
);
`
}

func MemosTable() string {
	return `
CREATE TABLE IF NOT EXISTS Memos (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    UserId INTEGER NOT NULL,
    Title TEXT NOT NULL,
    Content TEXT,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL
);
`
}

func DeletedMemosTable() string {
	return `
CREATE TABLE IF NOT EXISTS DeletedMemos (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    UserId INTEGER NOT NULL,
    OriginalId INTEGER NOT NULL,
    Title TEXT NOT NULL,
    Content TEXT,
    CreatedAt INTEGER NOT NULL,
    UpdatedAt INTEGER NOT NULL,
    DeletedAt INTEGER NOT NULL
);
`
}

func TasksTable() string {
	return `
CREATE TABLE IF NOT EXISTS Tasks (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    UserId INTEGER NOT NULL,
    Title TEXT NOT NULL,
    Description TEXT,
    Status TEXT NOT NULL DEFAULT 'todo',
    Priority TEXT NOT NULL DEFAULT 'medium',
    DueDate INTEGER,
    CategoryId INTEGER,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL
);
`
}

func DeletedTasksTable() string {
	return `
CREATE TABLE IF NOT EXISTS DeletedTasks (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    UserId INTEGER NOT NULL,
    OriginalId INTEGER NOT NULL,
    Title TEXT NOT NULL,
    Description TEXT,
    Status TEXT NOT NULL,
    Priority TEXT NOT NULL,
    DueDate INTEGER,
    CategoryId INTEGER,
    CreatedAt INTEGER NOT NULL,
    UpdatedAt INTEGER NOT NULL,
    DeletedAt INTEGER NOT NULL
);
`
}
