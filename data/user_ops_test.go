package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organizer_server_go/models"
)

func TestCreateUserAndLoginFlow(t *testing.T) {
	testDB(t)

	user := &models.User{
		Username:     "ivan@example.com",
		Email:        "ivan@example.com",
		PasswordHash: "secret123",
		DisplayName:  "Иван",
	}
	id, err := CreateUser(user)
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := GetUserByEmail("ivan@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Иван", got.DisplayName)

	// Пароль хранится только в виде bcrypt-хеша
	assert.NotEqual(t, "secret123", got.PasswordHash)
	assert.True(t, CheckPasswordHash("secret123", got.PasswordHash))
	assert.False(t, CheckPasswordHash("wrong", got.PasswordHash))

	missing, err := GetUserByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateUserProfile(t *testing.T) {
	testDB(t)

	user := &models.User{
		Username:     "ivan@example.com",
		Email:        "ivan@example.com",
		PasswordHash: "secret123",
		DisplayName:  "Иван",
	}
	id, err := CreateUser(user)
	require.NoError(t, err)

	require.NoError(t, UpdateUserProfile(id, "Иван Петров", "https://example.com/photo.jpg"))

	got, err := GetUserByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Иван Петров", got.DisplayName)
	assert.Equal(t, "https://example.com/photo.jpg", got.PhotoUrl)

	// Пустые значения не затирают существующие поля
	require.NoError(t, UpdateUserProfile(id, "", ""))
	got, err = GetUserByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Иван Петров", got.DisplayName)
}
