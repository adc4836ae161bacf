package data

import (
	"database/sql"
	"fmt"
	"time"

	"organizer_server_go/models"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword генерирует хеш bcrypt для пароля.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash сравнивает пароль с хешем.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateUser создает нового пользователя в базе данных аутентификации.
func CreateUser(user *models.User) (int64, error) {
	hashedPassword, err := HashPassword(user.PasswordHash) // В модели PasswordHash это исходный пароль
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	query := `INSERT INTO Users (Username, Email, DisplayName, PhotoUrl, PasswordHash, CreatedAt, UpdatedAt)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := AuthDB.Exec(query, user.Username, user.Email, user.DisplayName, user.PhotoUrl, hashedPassword, now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for user: %w", err)
	}
	return id, nil
}

// GetUserByEmail извлекает пользователя по email.
func GetUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT Id, Username, Email, DisplayName, PhotoUrl, PasswordHash, CreatedAt, UpdatedAt
	          FROM Users WHERE Email = ?`
	err := AuthDB.Get(user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return user, nil
}

// GetUserByID извлекает пользователя по ID.
func GetUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `SELECT Id, Username, Email, DisplayName, PhotoUrl, PasswordHash, CreatedAt, UpdatedAt
              FROM Users WHERE Id = ?`
	err := AuthDB.Get(user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return user, nil
}

// UpdateUserProfile обновляет отображаемое имя и/или фото профиля пользователя.
// Пустые значения не изменяются.
func UpdateUserProfile(userID int64, displayName, photoUrl string) error {
	if displayName == "" && photoUrl == "" {
		return nil // Нечего обновлять
	}

	query := `UPDATE Users SET UpdatedAt = ?`
	args := []interface{}{time.Now()}
	if displayName != "" {
		query += `, DisplayName = ?`
		args = append(args, displayName)
	}
	if photoUrl != "" {
		query += `, PhotoUrl = ?`
		args = append(args, photoUrl)
	}
	query += ` WHERE Id = ?`
	args = append(args, userID)

	result, err := AuthDB.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user profile for ID %d: %w", userID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows // Пользователь не найден
	}
	return nil
}
