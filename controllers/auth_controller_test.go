package controllers

import (
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organizer_server_go/models"
)

func authTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	// testRouter инициализирует базы и защищенные маршруты
	router, _ := testRouter(t)
	authRouter := router.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/register", RegisterHandler).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", LoginHandler).Methods(http.MethodPost)
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	router := authTestRouter(t)

	rec := doRequest(t, router, "", http.MethodPost, "/api/auth/register", models.RegisterRequest{
		Email:       "new@example.com",
		Password:    "secret123",
		DisplayName: "Новый",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.AuthResponse
	decodeBody(t, rec, &created)
	assert.NotEmpty(t, created.Token)
	assert.Equal(t, "new@example.com", created.User.Email)

	// Повторная регистрация с тем же email
	rec = doRequest(t, router, "", http.MethodPost, "/api/auth/register", models.RegisterRequest{
		Email:       "new@example.com",
		Password:    "another",
		DisplayName: "Дубль",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Вход с верным паролем
	rec = doRequest(t, router, "", http.MethodPost, "/api/auth/login", models.LoginRequest{
		Email:    "new@example.com",
		Password: "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var logged models.AuthResponse
	decodeBody(t, rec, &logged)
	assert.NotEmpty(t, logged.Token)

	// Вход с неверным паролем
	rec = doRequest(t, router, "", http.MethodPost, "/api/auth/login", models.LoginRequest{
		Email:    "new@example.com",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Токен открывает защищенные маршруты
	rec = doRequest(t, router, logged.Token, http.MethodGet, "/api/boards", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	router := authTestRouter(t)

	rec := doRequest(t, router, "", http.MethodPost, "/api/auth/register", models.RegisterRequest{
		Email: "incomplete@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
