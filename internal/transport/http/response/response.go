package response

import "github.com/gin-gonic/gin"

type ErrorBody struct {
	Detail string `json:"detail"`
}

// Error writes a client-facing error body. Internal detail never goes here;
// handlers pass pre-sanitized messages.
func Error(c *gin.Context, httpStatus int, detail string) {
	c.JSON(httpStatus, ErrorBody{Detail: detail})
}
