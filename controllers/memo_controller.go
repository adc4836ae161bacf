package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"organizer_server_go/data"
	"organizer_server_go/models"
)

// GetMemosHandler возвращает список заметок пользователя.
// Параметр ?status=deleted возвращает снимки из корзины.
// Пример URL: GET /api/memos
func GetMemosHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	if r.URL.Query().Get("status") == "deleted" {
		deleted, err := data.GetDeletedMemosForUser(userID)
		if err != nil {
			respondBoardError(w, err, "GetMemosHandler (deleted)")
			return
		}
		respondJSON(w, http.StatusOK, deleted)
		return
	}

	memos, err := data.GetMemosForUser(userID)
	if err != nil {
		respondBoardError(w, err, "GetMemosHandler")
		return
	}
	respondJSON(w, http.StatusOK, memos)
}

// GetMemoHandler возвращает одну заметку пользователя.
// Пример URL: GET /api/memos/{id}
func GetMemoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	memoID, err := parseIDVar(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный ID заметки.")
		return
	}

	memo, err := data.GetMemoByID(memoID, userID)
	if err != nil {
		respondBoardError(w, err, "GetMemoHandler")
		return
	}
	if memo == nil {
		respondError(w, http.StatusNotFound, "Ресурс не найден.")
		return
	}

	respondJSON(w, http.StatusOK, memo)
}

// CreateMemoHandler создает новую заметку.
// Пример URL: POST /api/memos
func CreateMemoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	var req models.CreateMemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "Заголовок заметки не может быть пустым.")
		return
	}

	memo := &models.Memo{
		UserId:  userID,
		Title:   req.Title,
		Content: req.Content,
	}
	if _, err := data.CreateMemo(memo); err != nil {
		respondBoardError(w, err, "CreateMemoHandler")
		return
	}

	respondJSON(w, http.StatusCreated, memo)
}

// UpdateMemoHandler обновляет заметку. Поля, отсутствующие в теле
// запроса, не изменяются.
// Пример URL: PUT /api/memos/{id}
func UpdateMemoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	memoID, err := parseIDVar(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный ID заметки.")
		return
	}

	var req models.UpdateMemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	memo, err := data.GetMemoByID(memoID, userID)
	if err != nil {
		respondBoardError(w, err, "UpdateMemoHandler")
		return
	}
	if memo == nil {
		respondError(w, http.StatusNotFound, "Ресурс не найден.")
		return
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			respondError(w, http.StatusBadRequest, "Заголовок заметки не может быть пустым.")
			return
		}
		memo.Title = *req.Title
	}
	if req.Content != nil {
		memo.Content = req.Content
	}

	if err := data.UpdateMemo(memo); err != nil {
		respondBoardError(w, err, "UpdateMemoHandler")
		return
	}

	respondJSON(w, http.StatusOK, memo)
}

// DeleteMemoHandler переносит заметку в корзину.
// Пример URL: DELETE /api/memos/{id}
func DeleteMemoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	memoID, err := parseIDVar(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный ID заметки.")
		return
	}

	if err := data.SoftDeleteMemo(memoID, userID); err != nil {
		respondBoardError(w, err, "DeleteMemoHandler")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RestoreMemoHandler восстанавливает заметку из корзины по исходному ID.
// Пример URL: POST /api/memos/restore/{id}
func RestoreMemoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	originalID, err := parseIDVar(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный ID заметки.")
		return
	}

	memo, err := data.RestoreMemo(originalID, userID)
	if err != nil {
		respondBoardError(w, err, "RestoreMemoHandler")
		return
	}
	if memo == nil {
		respondError(w, http.StatusNotFound, "Ресурс не найден.")
		return
	}

	respondJSON(w, http.StatusOK, memo)
}
