package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"organizer_server_go/data"
	"organizer_server_go/models"
)

func validTaskStatus(status string) bool {
	switch status {
	case models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusCompleted:
		return true
	}
	return false
}

func validTaskPriority(priority string) bool {
	switch priority {
	case models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh:
		return true
	}
	return false
}

// GetTasksHandler возвращает список задач пользователя.
// Параметр ?status=deleted возвращает снимки из корзины.
// Пример URL: GET /api/tasks
func GetTasksHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	if r.URL.Query().Get("status") == "deleted" {
		deleted, err := data.GetDeletedTasksForUser(userID)
		if err != nil {
			respondBoardError(w, err, "GetTasksHandler (deleted)")
			return
		}
		respondJSON(w, http.StatusOK, deleted)
		return
	}

	tasks, err := data.GetTasksForUser(userID)
	if err != nil {
		respondBoardError(w, err, "GetTasksHandler")
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// GetTaskHandler возвращает одну задачу пользователя.
// Пример URL: GET /api/tasks/{id}
func GetTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	taskID, err := parseIDVar(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный ID задачи.")
		return
	}

	task, err := data.GetTaskByID(taskID, userID)
	if err != nil {
		respondBoardError(w, err, "GetTaskHandler")
		return
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "Ресурс не найден.")
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// CreateTaskHandler создает новую задачу.
// Статус и приоритет по умолчанию: todo, medium.
// Пример URL: POST /api/tasks
func CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "Заголовок задачи не может быть пустым.")
		return
	}
	if req.Status != "" && !validTaskStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "Неверный статус задачи. Допустимы: todo, in_progress, completed.")
		return
	}
	if req.Priority != "" && !validTaskPriority(req.Priority) {
		respondError(w, http.StatusBadRequest, "Неверный приоритет задачи. Допустимы: low, medium, high.")
		return
	}

	task := &models.Task{
		UserId:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		CategoryId:  req.CategoryId,
	}
	if _, err := data.CreateTask(task); err != nil {
		respondBoardError(w, err, "CreateTaskHandler")
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// UpdateTaskHandler обновляет задачу. Поля, отсутствующие в теле
// запроса, не изменяются.
// Пример URL: PUT /api/tasks/{id}
func UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	taskID, err := parseIDVar(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный ID задачи.")
		return
	}

	var req models.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	task, err := data.GetTaskByID(taskID, userID)
	if err != nil {
		respondBoardError(w, err, "UpdateTaskHandler")
		return
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "Ресурс не найден.")
		return
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			respondError(w, http.StatusBadRequest, "Заголовок задачи не может быть пустым.")
			return
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Status != nil {
		if !validTaskStatus(*req.Status) {
			respondError(w, http.StatusBadRequest, "Неверный статус задачи. Допустимы: todo, in_progress, completed.")
			return
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		if !validTaskPriority(*req.Priority) {
			respondError(w, http.StatusBadRequest, "Неверный приоритет задачи. Допустимы: low, medium, high.")
			return
		}
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.CategoryId != nil {
		task.CategoryId = req.CategoryId
	}

	if err := data.UpdateTask(task); err != nil {
		respondBoardError(w, err, "UpdateTaskHandler")
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// DeleteTaskHandler переносит задачу в корзину.
// Пример URL: DELETE /api/tasks/{id}
func DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	taskID, err := parseIDVar(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный ID задачи.")
		return
	}

	if err := data.SoftDeleteTask(taskID, userID); err != nil {
		respondBoardError(w, err, "DeleteTaskHandler")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RestoreTaskHandler восстанавливает задачу из корзины по исходному ID.
// Пример URL: POST /api/tasks/restore/{id}
func RestoreTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Пользователь не авторизован.")
		return
	}

	originalID, err := parseIDVar(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный ID задачи.")
		return
	}

	task, err := data.RestoreTask(originalID, userID)
	if err != nil {
		respondBoardError(w, err, "RestoreTaskHandler")
		return
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "Ресурс не найден.")
		return
	}

	respondJSON(w, http.StatusOK, task)
}
