package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the body of every error response.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Success sends data as the JSON body with the given status code.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Fail sends an error response for code and records the code on the context
// so the request logger can report it.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.Set(ContextKeyErrCode, code)
	c.JSON(statusCode, ErrorBody{Error: GetMessage(code)})
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.Set(ContextKeyErrCode, code)
	c.JSON(statusCode, ErrorBody{Error: GetMessage(code), Fields: fields})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.Set(ContextKeyErrCode, code)
	c.AbortWithStatusJSON(statusCode, ErrorBody{Error: GetMessage(code)})
}
