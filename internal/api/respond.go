package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"heartrisk/internal/domain"
)

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondError maps a domain error to its status. Unauthorized reasons and
// internal faults are masked; everything else carries its message through.
func respondError(w http.ResponseWriter, err error) {
	status := httpStatusFromDomainError(err)
	message := err.Error()

	switch status {
	case http.StatusUnauthorized:
		message = "unauthorized"
	case http.StatusInternalServerError:
		message = "internal server error"
	case http.StatusServiceUnavailable:
		var unavailable *domain.UnavailableError
		if errors.As(err, &unavailable) && unavailable.Source != "" {
			message = string(unavailable.Source) + " prediction source unavailable"
		}
	}

	respondJSON(w, status, errorBody{Code: status, Message: message})
}
