package utils

import (
	"encoding/json"
	"net/http"
)

const (
	ErrCodeInvalidPayload     = "invalid_payload"
	ErrCodeValidation         = "validation_error"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeLockedAccount      = "locked_account"
	ErrCodeNotFound           = "not_found"
	ErrCodePersistence        = "persistence_failed"
	ErrCodeInternal           = "internal_server_error"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondError writes a JSON error body and logs the optional developer error.
func RespondError(w http.ResponseWriter, status int, code, publicMessage string, devErrs ...error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Code: code, Message: publicMessage})

	entry := Logger.WithField("status", status)
	if len(devErrs) > 0 && devErrs[0] != nil {
		entry = entry.WithField("error", devErrs[0].Error())
	}
	if status >= http.StatusInternalServerError {
		entry.Error(publicMessage)
	} else {
		entry.Warn(publicMessage)
	}
}

func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
