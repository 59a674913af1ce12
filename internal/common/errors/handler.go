package errors

import (
	"encoding/json"
	stderrors "errors"
)

// ErrorHandler turns pipeline errors into caller-safe payloads and logs the details.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle normalizes err, logs it and returns the status and JSON body for the caller.
func (h *ErrorHandler) Handle(err error, fields map[string]interface{}) (int, string) {
	stdErr := Normalize(err)
	h.logError(stdErr, fields)
	return stdErr.StatusCode(), Body(stdErr)
}

// Normalize converts any error into a StandardError. Unknown errors become INTERNAL_ERROR.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// Body renders the {"error": message} payload.
func Body(stdErr *StandardError) string {
	payload, _ := json.Marshal(map[string]string{"error": stdErr.Message})
	return string(payload)
}

func (h *ErrorHandler) logError(stdErr *StandardError, fields map[string]interface{}) {
	logFields := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"errorCategory": GetErrorCategory(stdErr.Code),
		"status":        stdErr.StatusCode(),
	}
	for k, v := range fields {
		logFields[k] = v
	}

	if IsClientError(stdErr.Code) {
		h.logger.Warn("Request rejected", logFields)
		return
	}
	h.logger.Error("Request failed", logFields)
}
