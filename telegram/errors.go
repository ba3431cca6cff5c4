package telegram

import "fmt"

// APIError is an error response from the Bot API.
type APIError struct {
	// Code is the Bot API error_code, or the HTTP status when the
	// response carried no envelope.
	Code int
	// Description is the Bot API description, when present.
	Description string
}

// Error returns a string representation of the API error. It never
// includes the bot token.
func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("telegram: api error %d: %s", e.Code, e.Description)
	}
	return fmt.Sprintf("telegram: api error %d", e.Code)
}
