package errors

import "net/http"

// Human-readable messages for each status the API reports.
const (
	MessageBadRequest       = "Bad Request"
	MessageNotFound         = "Not Found"
	MessageMethodNotAllowed = "Method not allowed"
	MessageUnprocessable    = "Unprocessable"
	MessageInternalError    = "Internal Server Error"
)

var messages = map[int]string{
	http.StatusBadRequest:          MessageBadRequest,
	http.StatusNotFound:            MessageNotFound,
	http.StatusMethodNotAllowed:    MessageMethodNotAllowed,
	http.StatusUnprocessableEntity: MessageUnprocessable,
	http.StatusInternalServerError: MessageInternalError,
}

// Message returns the fixed message for status, falling back to the
// standard status text for codes the API does not use itself.
func Message(status int) string {
	if msg, ok := messages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}
