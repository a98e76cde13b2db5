package utils

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// PrintLogInfo records a request outcome. Internal error detail stays
// server-side; handlers only ever emit sanitized messages to clients.
func PrintLogInfo(email *string, statusCode int, operation string, err *error) {
	user := "Unknown"
	if email != nil {
		user = *email
	}

	event := log.Info()
	switch {
	case statusCode >= http.StatusInternalServerError:
		event = log.Error()
	case statusCode >= http.StatusBadRequest:
		event = log.Warn()
	}

	if err != nil && *err != nil {
		event = event.Err(*err)
	}

	event.
		Str("user", user).
		Str("status", ColorStatus(statusCode)).
		Str("operation", operation).
		Send()
}
