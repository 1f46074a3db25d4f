package response

import (
	"github.com/akozlenko/kasa-api/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body returned by every endpoint: the mapped
// status code plus a short human-readable detail message.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Error sends an error response, mapping the error to its HTTP status code
func Error(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	c.JSON(appErr.Code, ErrorResponse{Detail: appErr.Message})
}

// Detail sends an error response with a specific status code
func Detail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Detail: message})
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	Detail(c, 400, message)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *gin.Context, message string) {
	Detail(c, 401, message)
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, message string) {
	Detail(c, 404, message)
}
