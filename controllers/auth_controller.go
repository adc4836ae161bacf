package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"organizer_server_go/auth"
	"organizer_server_go/data"
	"organizer_server_go/middleware"
	"organizer_server_go/models"
)

// getUserIDFromContext извлекает ID пользователя, установленный JWTMiddleware.
func getUserIDFromContext(r *http.Request) (int64, bool) {
	userIDCtx := r.Context().Value(middleware.UserIDKey)
	if userIDCtx == nil {
		return 0, false
	}
	userID, ok := userIDCtx.(int64)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}

// RegisterHandler обрабатывает запросы на регистрацию новых пользователей.
// Ожидает POST-запрос с JSON-телом, содержащим email, password и displayName.
// Пример URL: POST /api/auth/register
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	// Валидация входных данных
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" || strings.TrimSpace(req.DisplayName) == "" {
		respondError(w, http.StatusBadRequest, "Email, пароль и отображаемое имя не могут быть пустыми.")
		return
	}

	// Проверка, существует ли пользователь с таким email
	existingUser, err := data.GetUserByEmail(req.Email)
	if err != nil {
		log.Errorf("Ошибка при проверке email %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при проверке email.")
		return
	}
	if existingUser != nil {
		respondError(w, http.StatusConflict, "Пользователь с таким email уже существует.")
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: req.Password, // В CreateUser пароль будет хеширован
		DisplayName:  req.DisplayName,
		Username:     req.Email,
	}

	userID, err := data.CreateUser(user)
	if err != nil {
		log.Errorf("Ошибка при создании пользователя %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "Не удалось создать пользователя: "+err.Error())
		return
	}
	user.ID = userID

	tokenString, _, err := auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		log.Errorf("Ошибка при генерации токена для пользователя %s: %v", user.Email, err)
		respondError(w, http.StatusInternalServerError, "Пользователь создан, но не удалось сгенерировать токен доступа.")
		return
	}

	authResponse := models.AuthResponse{
		Token: tokenString,
		User: models.UserPublicInfo{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			PhotoUrl:    user.PhotoUrl,
		},
	}
	respondJSON(w, http.StatusCreated, authResponse)
}

// LoginHandler обрабатывает запросы на вход пользователей.
// Ожидает POST-запрос с JSON-телом, содержащим email и password.
// Пример URL: POST /api/auth/login
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		respondError(w, http.StatusBadRequest, "Email и пароль не могут быть пустыми.")
		return
	}

	user, err := data.GetUserByEmail(req.Email)
	if err != nil {
		log.Errorf("Ошибка при поиске пользователя по email %s: %v", req.Email, err)
		respondError(w, http.StatusInternalServerError, "Ошибка сервера при поиске пользователя.")
		return
	}

	if user == nil {
		respondError(w, http.StatusUnauthorized, "Неверный email или пароль.")
		return
	}

	if !data.CheckPasswordHash(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "Неверный email или пароль.")
		return
	}

	tokenString, _, err := auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		log.Errorf("Ошибка при генерации токена для пользователя %s: %v", user.Email, err)
		respondError(w, http.StatusInternalServerError, "Не удалось сгенерировать токен доступа.")
		return
	}

	authResponse := models.AuthResponse{
		Token: tokenString,
		User: models.UserPublicInfo{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			PhotoUrl:    user.PhotoUrl,
		},
	}
	respondJSON(w, http.StatusOK, authResponse)
}

// UpdateProfileHandler обрабатывает запросы на обновление профиля пользователя.
// Ожидает PUT-запрос с JSON-телом, содержащим displayName и/или photoUrl.
// Пример URL: PUT /api/auth/profile (требует авторизации)
func UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	err := data.UpdateUserProfile(userID, req.DisplayName, req.PhotoUrl)
	if err != nil {
		log.Errorf("Ошибка при обновлении профиля пользователя %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось обновить профиль пользователя: "+err.Error())
		return
	}

	updatedUser, err := data.GetUserByID(userID)
	if err != nil {
		log.Errorf("Ошибка при получении обновленного пользователя %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось получить обновленные данные пользователя.")
		return
	}
	if updatedUser == nil {
		respondError(w, http.StatusNotFound, "Обновленный пользователь не найден.")
		return
	}

	userPublicInfo := models.UserPublicInfo{
		ID:          updatedUser.ID,
		Email:       updatedUser.Email,
		DisplayName: updatedUser.DisplayName,
		PhotoUrl:    updatedUser.PhotoUrl,
	}

	respondJSON(w, http.StatusOK, userPublicInfo)
}
