package controllers

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// respondJSON сериализует payload в JSON и отправляет его с указанным статусом.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Errorf("Error encoding JSON response: %v", err)
			// Не отправляем http.Error здесь, так как заголовки уже могли быть отправлены
		}
	}
}

// respondError отправляет JSON с полем "error" и указанным статусом.
func respondError(w http.ResponseWriter, statusCode int, message string) {
	log.Warnf("HTTP Error %d: %s", statusCode, message)
	response := map[string]string{"error": message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Errorf("Error encoding error JSON response: %v", err)
	}
}
