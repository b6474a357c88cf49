// Package response carries the JSON envelope every seatboard handler
// answers with, success and error alike.
package response

import "github.com/gin-gonic/gin"

// StandardApiResponse is the wire envelope. Data holds the payload on
// success (a seat, a grid, an editor state); Errors holds validation or
// backend detail on failure. Both are omitted when empty.
type StandardApiResponse struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
}

// RespondJSON writes the envelope with the given HTTP status code.
func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}
