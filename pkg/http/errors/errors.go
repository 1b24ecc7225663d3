package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform failure envelope. The status code is carried
// under "error", except for 405 which has always used "status".
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error,omitempty"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
}

// New builds the envelope for an HTTP status.
func New(status int) ErrorResponse {
	resp := ErrorResponse{Message: Message(status)}
	if status == http.StatusMethodNotAllowed {
		resp.Status = status
	} else {
		resp.Error = status
	}
	return resp
}

// Abort writes the envelope through gin and stops the handler chain.
func Abort(c *gin.Context, status int) {
	c.AbortWithStatusJSON(status, New(status))
}
