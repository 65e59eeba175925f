package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"mosque/internal/locate"
	"mosque/internal/presentation"
)

type errorResponse struct {
	Error string                     `json:"error"`
	State *presentation.SessionState `json:"state,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithError(w http.ResponseWriter, err error, state *presentation.SessionState) {
	code := statusFor(err)
	msg := locate.Message(err)
	if msg == "" {
		msg = err.Error()
	}
	if code >= 500 {
		log.Printf("HTTP %d: %v", code, err)
	}
	respondWithJSON(w, code, errorResponse{Error: msg, State: state})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, locate.ErrEmptyQuery),
		errors.Is(err, presentation.ErrInvalidRadius),
		errors.Is(err, presentation.ErrInvalidReference),
		errors.Is(err, presentation.ErrUnknownEvent):
		return http.StatusBadRequest
	case errors.Is(err, locate.ErrNotFound),
		errors.Is(err, presentation.ErrUnknownMosque):
		return http.StatusNotFound
	case errors.Is(err, locate.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, locate.ErrPermissionDenied),
		errors.Is(err, locate.ErrPositionUnavailable),
		errors.Is(err, locate.ErrTimeout),
		errors.Is(err, locate.ErrUnknown):
		return http.StatusUnprocessableEntity
	case errors.Is(err, locate.ErrNetwork):
		return http.StatusBadGateway
	case errors.Is(err, presentation.ErrMapNotReady):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
