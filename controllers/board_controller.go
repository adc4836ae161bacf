package controllers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"organizer_server_go/data"
	"organizer_server_go/models"
)

const boardNameMaxLength = 100

// parseIDVar извлекает числовой параметр пути из маршрута mux.
func parseIDVar(r *http.Request, name string) (int64, error) {
	idStr := mux.Vars(r)[name]
	return strconv.ParseInt(idStr, 10, 64)
}

// respondBoardError преобразует ошибки слоя данных в HTTP-ответы.
// sql.ErrNoRows означает, что ресурс не существует или принадлежит другому
// пользователю - клиент в обоих случаях получает одинаковый 404.
func respondBoardError(w http.ResponseWriter, err error, context string) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		respondError(w, http.StatusNotFound, "Ресурс не найден.")
	case errors.Is(err, data.ErrItemAlreadyOnBoard):
		respondError(w, http.StatusConflict, "Элемент уже добавлен на доску.")
	default:
		log.Errorf("%s: %v", context, err)
		respondError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера.")
	}
}

// GetBoardsHandler возвращает список досок пользователя.
// Параметр ?status=normal|completed|deleted выбирает срез:
// normal - активные доски со статистикой, completed - завершенные,
// deleted - снимки из корзины.
// Пример URL: GET /api/boards?status=normal
func GetBoardsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	status := r.URL.Query().Get("status")
	if status == "" {
		status = "normal"
	}

	switch status {
	case "deleted":
		deleted, err := data.GetDeletedBoardsForUser(userID)
		if err != nil {
			respondBoardError(w, err, "GetBoardsHandler (deleted)")
			return
		}
		respondJSON(w, http.StatusOK, deleted)
	case "normal", "completed":
		boards, err := data.GetBoardsWithStats(userID, status == "completed")
		if err != nil {
			respondBoardError(w, err, "GetBoardsHandler")
			return
		}
		respondJSON(w, http.StatusOK, boards)
	default:
		respondError(w, http.StatusBadRequest, "Неверное значение параметра status. Допустимы: normal, completed, deleted.")
	}
}

// CreateBoardHandler создает новую доску.
// Ожидает POST-запрос с JSON-телом, содержащим name и опционально description.
// Пример URL: POST /api/boards
func CreateBoardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	var req models.CreateBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > boardNameMaxLength {
		respondError(w, http.StatusBadRequest, "Название доски должно содержать от 1 до 100 символов.")
		return
	}

	board, err := data.CreateBoard(userID, name, req.Description)
	if err != nil {
		respondBoardError(w, err, "CreateBoardHandler")
		return
	}

	respondJSON(w, http.StatusCreated, board)
}

// GetBoardBySlugHandler возвращает доску по ее slug.
// Пример URL: GET /api/boards/slug/{slug}
func GetBoardBySlugHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	slug := mux.Vars(r)["slug"]
	board, err := data.GetBoardBySlug(slug, userID)
	if err != nil {
		respondBoardError(w, err, "GetBoardBySlugHandler")
		return
	}
	if board == nil {
		respondError(w, http.StatusNotFound, "Ресурс не найден.")
		return
	}

	respondJSON(w, http.StatusOK, board)
}

// UpdateBoardHandler обновляет название и/или описание доски.
// Поля, отсутствующие в теле запроса, не изменяются.
// Пример URL: PUT /api/boards/{id}
func UpdateBoardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	boardID, err := parseIDVar(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный ID доски.")
		return
	}

	var req models.UpdateBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > boardNameMaxLength {
			respondError(w, http.StatusBadRequest, "Название доски должно содержать от 1 до 100 символов.")
			return
		}
		req.Name = &name
	}

	board, err := data.UpdateBoard(boardID, userID, req.Name, req.Description)
	if err != nil {
		respondBoardError(w, err, "UpdateBoardHandler")
		return
	}
	if board == nil {
		respondError(w, http.StatusNotFound, "Ресурс не найден.")
		return
	}

	respondJSON(w, http.StatusOK, board)
}

// ToggleBoardCompletionHandler переключает признак завершенности доски.
// Пример URL: PATCH /api/boards/{id}/toggle-completion
func ToggleBoardCompletionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	boardID, err := parseIDVar(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный ID доски.")
		return
	}

	board, err := data.ToggleBoardCompletion(boardID, userID)
	if err != nil {
		respondBoardError(w, err, "ToggleBoardCompletionHandler")
		return
	}
	if board == nil {
		respondError(w, http.StatusNotFound, "Ресурс не найден.")
		return
	}

	respondJSON(w, http.StatusOK, board)
}

// DeleteBoardHandler переносит доску в корзину.
// Пример URL: DELETE /api/boards/{id}
func DeleteBoardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	boardID, err := parseIDVar(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный ID доски.")
		return
	}

	if err := data.SoftDeleteBoard(boardID, userID); err != nil {
		respondBoardError(w, err, "DeleteBoardHandler")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RestoreBoardHandler восстанавливает доску из корзины.
// ID в пути - это исходный ID удаленной доски; восстановленная доска
// получает новый ID и новый slug.
// Пример URL: POST /api/boards/restore/{id}
func RestoreBoardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	originalID, err := parseIDVar(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный ID доски.")
		return
	}

	board, err := data.RestoreBoard(originalID, userID)
	if err != nil {
		respondBoardError(w, err, "RestoreBoardHandler")
		return
	}
	if board == nil {
		respondError(w, http.StatusNotFound, "Ресурс не найден.")
		return
	}

	respondJSON(w, http.StatusOK, board)
}

// GetBoardItemsHandler возвращает доску вместе с ее элементами и их содержимым.
// Ссылки на удаленные заметки и задачи пропускаются.
// Пример URL: GET /api/boards/{id}/items
func GetBoardItemsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	boardID, err := parseIDVar(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный ID доски.")
		return
	}

	board, items, err := data.GetBoardWithItems(boardID, userID)
	if err != nil {
		respondBoardError(w, err, "GetBoardItemsHandler")
		return
	}
	if board == nil {
		respondError(w, http.StatusNotFound, "Ресурс не найден.")
		return
	}

	respondJSON(w, http.StatusOK, models.BoardWithItems{Board: board, Items: items})
}

// AddItemToBoardHandler добавляет заметку или задачу на доску.
// Ожидает POST-запрос с JSON-телом, содержащим itemType и itemId.
// Пример URL: POST /api/boards/{id}/items
func AddItemToBoardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	boardID, err := parseIDVar(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный ID доски.")
		return
	}

	var req models.AddItemToBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if !req.ItemType.Valid() {
		respondError(w, http.StatusBadRequest, "Неверный тип элемента. Допустимы: memo, task.")
		return
	}
	if req.ItemId <= 0 {
		respondError(w, http.StatusBadRequest, "Неверный ID элемента.")
		return
	}

	item, err := data.AddItemToBoard(boardID, models.ItemRef{Type: req.ItemType, Id: req.ItemId}, userID)
	if err != nil {
		respondBoardError(w, err, "AddItemToBoardHandler")
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// RemoveItemFromBoardHandler убирает элемент с доски. Сама заметка или
// задача при этом не удаляется.
// Пример URL: DELETE /api/boards/{id}/items/{itemId}?itemType=memo
func RemoveItemFromBoardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	boardID, err := parseIDVar(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный ID доски.")
		return
	}

	itemID, err := parseIDVar(r, "itemId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный ID элемента.")
		return
	}

	itemType := models.ItemType(r.URL.Query().Get("itemType"))
	if !itemType.Valid() {
		respondError(w, http.StatusBadRequest, "Неверный тип элемента. Допустимы: memo, task.")
		return
	}

	if err := data.RemoveItemFromBoard(boardID, models.ItemRef{Type: itemType, Id: itemID}, userID); err != nil {
		respondBoardError(w, err, "RemoveItemFromBoardHandler")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetItemBoardsHandler возвращает список досок, на которых находится элемент.
// Пример URL: GET /api/boards/items/{itemType}/{itemId}/boards
func GetItemBoardsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	itemType := models.ItemType(mux.Vars(r)["itemType"])
	if !itemType.Valid() {
		respondError(w, http.StatusBadRequest, "Неверный тип элемента. Допустимы: memo, task.")
		return
	}

	itemID, err := parseIDVar(r, "itemId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный ID элемента.")
		return
	}

	ref := models.ItemRef{Type: itemType, Id: itemID}

	// Сначала убеждаемся, что элемент существует и принадлежит пользователю.
	content, err := data.ResolveItemRef(ref, userID)
	if err != nil {
		respondBoardError(w, err, "GetItemBoardsHandler")
		return
	}
	if content == nil {
		respondError(w, http.StatusNotFound, "Ресурс не найден.")
		return
	}

	boards, err := data.GetBoardsForItem(ref, userID)
	if err != nil {
		respondBoardError(w, err, "GetItemBoardsHandler")
		return
	}

	respondJSON(w, http.StatusOK, boards)
}
