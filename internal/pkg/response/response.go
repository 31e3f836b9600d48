package response

import "github.com/gin-gonic/gin"

// envelope is the wire shape every JSON endpoint replies with. Data and
// Error are mutually exclusive.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *errorBody  `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, envelope{Success: true, Data: data})
}

func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, envelope{
		Success: false,
		Error:   &errorBody{Code: code, Message: message},
	})
}
