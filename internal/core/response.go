// AngelaMos | 2026
// response.go

package core

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, Response{Success: true, Data: data})
}

func OK(w http.ResponseWriter, r *http.Request, data any) {
	JSON(w, r, http.StatusOK, data)
}

func Created(w http.ResponseWriter, r *http.Request, data any) {
	JSON(w, r, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func JSONError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = InternalError(err)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path,
			"error", appErr.Err,
		)
	}

	render.Status(r, appErr.StatusCode)
	render.JSON(w, r, Response{
		Success: false,
		Error: &ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
		},
	})
}

func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	JSONError(w, r, NewAppError(
		ErrInvalidInput,
		message,
		http.StatusBadRequest,
		"BAD_REQUEST",
	))
}

func NotFound(w http.ResponseWriter, r *http.Request, resource string) {
	JSONError(w, r, NotFoundError(resource))
}

func Unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	JSONError(w, r, UnauthorizedError(message))
}

func Forbidden(w http.ResponseWriter, r *http.Request, message string) {
	JSONError(w, r, ForbiddenError(message))
}

func InternalServerError(w http.ResponseWriter, r *http.Request, err error) {
	JSONError(w, r, InternalError(err))
}
