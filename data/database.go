package data

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // Драйвер SQLite, импортируется для регистрации
	log "github.com/sirupsen/logrus"
)

var MainDB *sqlx.DB // Глобальная переменная для основного пула подключений к БД
var AuthDB *sqlx.DB // Глобальная переменная для пула подключений к БД аутентификации

const defaultMainDbName = "OrganizerServer.db"
const defaultAuthDbName = "AuthServer.db"

// getDbPath определяет путь к файлу БД.
// Путь можно переопределить переменной окружения, иначе файл лежит в текущей рабочей директории.
func getDbPath(envVar, defaultDbName string) (string, error) {
	if p := os.Getenv(envVar); p != "" {
		return p, nil
	}
	currentWorkDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	dataSourceName := filepath.Join(currentWorkDir, defaultDbName)

	log.Printf("Using database file at: %s", dataSourceName)
	return dataSourceName, nil
}

// InitMainDB инициализирует подключение к основной базе данных SQLite (OrganizerServer.db).
func InitMainDB() error {
	dataSourceName, err := getDbPath("ORGANIZER_DB", defaultMainDbName)
	if err != nil {
		return err
	}

	MainDB, err = sqlx.Connect("sqlite3", dataSourceName+"?_foreign_keys=on") // Включаем поддержку внешних ключей
	if err != nil {
		return fmt.Errorf("failed to connect to main database: %w", err)
	}

	if err = MainDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping main database: %w", err)
	}
	log.Println("Successfully connected to the main database (OrganizerServer.db).")

	// Создание таблиц для основной БД (все, кроме Users)
	schema := GetMainSchema()
	if _, err = MainDB.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute main schema: %w", err)
	}
	log.Println("Main database schema applied successfully.")

	// Обновляем схему для добавления недостающих полей
	if err = EnsureBoardSchemaUpgrade(); err != nil {
		return fmt.Errorf("failed to upgrade board schema: %w", err)
	}

	return nil
}

// InitAuthDB инициализирует подключение к базе данных аутентификации (AuthServer.db).
func InitAuthDB(filePath string) error {
	log.Printf("Using database file at: %s", filePath)
	var err error
	// Добавляем ?_loc=auto для автоматического определения формата времени
	AuthDB, err = sqlx.Connect("sqlite3", filePath+"?_loc=auto")
	if err != nil {
		return fmt.Errorf("failed to connect to auth database: %w", err)
	}

	if err = AuthDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping auth database: %w", err)
	}
	log.Println("Successfully connected to the auth database (AuthServer.db).")

	// Создание таблицы Users для БД аутентификации
	schema := GetAuthSchema()
	if _, err = AuthDB.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute auth schema: %w", err)
	}
	log.Println("Auth database schema (Users table) applied successfully.")
	return nil
}

// GetMainDB возвращает текущее подключение к основной базе данных.
func GetMainDB() *sqlx.DB {
	return MainDB
}

// GetAuthDB возвращает текущее подключение к базе данных аутентификации.
func GetAuthDB() *sqlx.DB {
	return AuthDB
}

// InitDB инициализирует обе базы данных.
func InitDB() error {
	log.Println("Initializing databases...")
	authPath, err := getDbPath("ORGANIZER_AUTH_DB", defaultAuthDbName)
	if err != nil {
		return err
	}
	if err := InitAuthDB(authPath); err != nil {
		return fmt.Errorf("failed to initialize AuthDB: %w", err)
	}
	if err := InitMainDB(); err != nil {
		return fmt.Errorf("failed to initialize MainDB: %w", err)
	}
	log.Println("All databases initialized successfully.")
	return nil
}

// EnsureBoardSchemaUpgrade добавляет недостающие поля в таблицу Boards.
// Базы, созданные до появления флагов Archived/Completed, дополняются на месте.
func EnsureBoardSchemaUpgrade() error {
	// Проверяем, есть ли поле Archived
	var archivedColumnExists bool
	err := MainDB.Get(&archivedColumnExists, `
		SELECT COUNT(*) > 0
		FROM pragma_table_info('Boards')
		WHERE name = 'Archived'
	`)
	if err != nil {
		log.Printf("Ошибка проверки колонки Archived: %v", err)
	} else if !archivedColumnExists {
		_, err = MainDB.Exec(`ALTER TABLE Boards ADD COLUMN Archived BOOLEAN NOT NULL DEFAULT 0`)
		if err != nil {
			return fmt.Errorf("failed to add Archived column: %w", err)
		}
		log.Printf("Добавлена колонка Archived в таблицу Boards")
	}

	// Проверяем, есть ли поле Completed
	var completedColumnExists bool
	err = MainDB.Get(&completedColumnExists, `
		SELECT COUNT(*) > 0
		FROM pragma_table_info('Boards')
		WHERE name = 'Completed'
	`)
	if err != nil {
		log.Printf("Ошибка проверки колонки Completed: %v", err)
	} else if !completedColumnExists {
		_, err = MainDB.Exec(`ALTER TABLE Boards ADD COLUMN Completed BOOLEAN NOT NULL DEFAULT 0`)
		if err != nil {
			return fmt.Errorf("failed to add Completed column: %w", err)
		}
		log.Printf("Добавлена колонка Completed в таблицу Boards")
	}

	return nil
}
