package apiresponse

import (
	"encoding/json"
	"net/http"
)

// SuccessResponse — единый конверт успешного ответа
// swagger:model
type SuccessResponse struct {
	Status  int    `json:"status"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	// Data присутствует всегда, даже если равно null (например при logout)
	Data interface{} `json:"data"`
}

// ErrorResponse — единый конверт ответа с ошибкой
// swagger:model
type ErrorResponse struct {
	Status  int         `json:"status"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors,omitempty"`
}

func WriteSuccess(writer http.ResponseWriter, status int, message string, data interface{}) {
	response := &SuccessResponse{
		Status:  status,
		Success: true,
		Message: message,
		Data:    data,
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	json.NewEncoder(writer).Encode(response)
}

func WriteError(writer http.ResponseWriter, status int, message string, errs interface{}) {
	response := &ErrorResponse{
		Status:  status,
		Success: false,
		Message: message,
		Errors:  errs,
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	json.NewEncoder(writer).Encode(response)
}

func WriteUnauthorized(writer http.ResponseWriter, message string) {
	WriteError(writer, http.StatusUnauthorized, message, nil)
}

func WriteNotFound(writer http.ResponseWriter, message string) {
	WriteError(writer, http.StatusNotFound, message, nil)
}

func WriteValidationError(writer http.ResponseWriter, errs interface{}) {
	WriteError(writer, http.StatusUnprocessableEntity, "ошибка валидации запроса", errs)
}

func WriteServerError(writer http.ResponseWriter) {
	// детали внутренней ошибки наружу не отдаются
	WriteError(writer, http.StatusInternalServerError, "внутренняя ошибка сервера", nil)
}
