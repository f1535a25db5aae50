package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/filmvault/pkg/api"
)

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendRawJSON отправляет уже сериализованный JSON (из кеша)
func sendRawJSON(logger *slog.Logger, w http.ResponseWriter, body []byte, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		logger.Error("failed to write JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	sendJSON(logger, w, api.ErrorResponse{Success: false, Error: message}, statusCode)
}

func toAPIUser(id, name, email string) api.UserInfo {
	return api.UserInfo{ID: id, Name: name, Email: email}
}
