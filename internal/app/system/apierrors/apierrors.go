// Package apierrors centralizes the translation of domain errors into JSON
// API responses, so handlers can return store sentinels untouched and the
// HTTP taxonomy lives in one place.
//
// Taxonomy: not-found → 404, membership/role violations → 403, duplicates
// and already-member conflicts → 409, invalid assignees → 400 with the
// offending ids, anything unrecognized → 500 with an opaque body (the
// underlying error is logged, never leaked).
package apierrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/crackenhq/cracken/internal/app/policy/grouppolicy"
	assignmentstore "github.com/crackenhq/cracken/internal/app/store/assignments"
	completionstore "github.com/crackenhq/cracken/internal/app/store/completions"
	groupstore "github.com/crackenhq/cracken/internal/app/store/groups"
	membershipstore "github.com/crackenhq/cracken/internal/app/store/memberships"
	taskstore "github.com/crackenhq/cracken/internal/app/store/tasks"
	userstore "github.com/crackenhq/cracken/internal/app/store/users"
	"github.com/crackenhq/cracken/internal/app/system/invitecode"
)

// errorResponse is the JSON error body shape.
type errorResponse struct {
	Detail string `json:"detail"`
}

// JSON writes an error body with the given status and detail.
func JSON(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Detail: detail})
}

// BadRequest writes a 400 with the given detail.
func BadRequest(w http.ResponseWriter, detail string) {
	JSON(w, http.StatusBadRequest, detail)
}

// Unauthorized writes a 401 with a bearer challenge.
func Unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	JSON(w, http.StatusUnauthorized, detail)
}

// ErrorLogger maps domain errors to responses and logs server errors.
type ErrorLogger struct {
	log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// Write maps err to the appropriate JSON response. msg names the failed
// operation for the server-error log line.
func (e *ErrorLogger) Write(w http.ResponseWriter, msg string, err error) {
	var invalid *assignmentstore.InvalidAssigneesError

	switch {
	case errors.Is(err, groupstore.ErrGroupNotFound),
		errors.Is(err, membershipstore.ErrGroupNotFound),
		errors.Is(err, taskstore.ErrTaskNotFound),
		errors.Is(err, completionstore.ErrTaskNotFound),
		errors.Is(err, membershipstore.ErrMembershipNotFound),
		errors.Is(err, userstore.ErrUserNotFound):
		JSON(w, http.StatusNotFound, err.Error())

	case errors.Is(err, grouppolicy.ErrNotMember),
		errors.Is(err, grouppolicy.ErrNotAdmin),
		errors.Is(err, grouppolicy.ErrNotCreator):
		JSON(w, http.StatusForbidden, err.Error())

	case errors.Is(err, membershipstore.ErrDuplicateMembership),
		errors.Is(err, userstore.ErrDuplicateEmail):
		JSON(w, http.StatusConflict, err.Error())

	case errors.As(err, &invalid),
		errors.Is(err, completionstore.ErrTaskInactive):
		JSON(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, invitecode.ErrCodeSpaceExhausted):
		// Surfaced as a server fault: the retry bound only trips when the
		// random source is broken, and the caller can do nothing about it.
		e.log.Error(msg, zap.Error(err))
		JSON(w, http.StatusInternalServerError, err.Error())

	default:
		e.log.Error(msg, zap.Error(err))
		JSON(w, http.StatusInternalServerError, "internal server error")
	}
}
