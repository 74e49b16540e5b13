// Package httperr shapes the JSON error body the checkout endpoints return.
// The webhook never uses it past request binding; routing failures are
// answered 200 so the messaging platform does not retry.
package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the error body. Status stays out of the JSON; the error
// middleware reads it from the gin error's Meta.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError records err on the context for the log line and aborts with
// the public message. msg is user-facing; err is not.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
