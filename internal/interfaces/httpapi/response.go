package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/ortan-league/internal/domain/leaderboard"
	"github.com/riskibarqy/ortan-league/internal/usecase"
)

const (
	msgMissingFields   = "Missing required fields"
	msgInvalidGoals    = "Invalid goal count"
	msgInvalidDivision = "Invalid division"
	msgTeamNotFound    = "Team not found in division"
	msgInvalidBody     = "Invalid request body"
	msgInvalidRequest  = "Invalid request"
	msgUnauthorized    = "Unauthorized"
	msgInternal        = "Internal server error"
)

var errInvalidBody = errors.New("invalid request body")

type errorResponse struct {
	Error string `json:"error"`
}

type mappedError struct {
	HTTPStatus int
	Message    string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

// writeError maps err to a status and public message. Server-side failures
// answer with internalMessage so storage details never reach the client.
func writeError(ctx context.Context, w http.ResponseWriter, err error, internalMessage string) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	if mapped.HTTPStatus >= http.StatusInternalServerError && internalMessage != "" {
		mapped.Message = internalMessage
	}

	writeJSON(ctx, w, mapped.HTTPStatus, errorResponse{Error: mapped.Message})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: msgInternal})
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Message: msgUnauthorized}
	case errors.Is(err, errInvalidBody):
		return mappedError{HTTPStatus: http.StatusBadRequest, Message: msgInvalidBody}
	case errors.Is(err, leaderboard.ErrMissingFields):
		return mappedError{HTTPStatus: http.StatusBadRequest, Message: msgMissingFields}
	case errors.Is(err, leaderboard.ErrInvalidGoals):
		return mappedError{HTTPStatus: http.StatusBadRequest, Message: msgInvalidGoals}
	case errors.Is(err, leaderboard.ErrInvalidDivision):
		return mappedError{HTTPStatus: http.StatusBadRequest, Message: msgInvalidDivision}
	case errors.Is(err, leaderboard.ErrTeamNotFound):
		return mappedError{HTTPStatus: http.StatusBadRequest, Message: msgTeamNotFound}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Message: msgInvalidRequest}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Message: msgInternal}
	}
}
