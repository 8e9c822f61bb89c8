package middleware

import (
	"fmt"
	"net/http"

	"github.com/dhis2-sre/im-events/internal/errdef"
	"github.com/gin-gonic/gin"
)

// ErrorHandler responds with a status matching the last error added to the context. Handlers
// rendering their own error pages don't add errors and are left alone.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		err := c.Errors.Last()
		if err == nil {
			return
		}
		if c.Writer.Written() {
			return
		}
		if c.Writer.Status() != http.StatusOK {
			c.String(c.Writer.Status(), err.Error())
			return
		}

		switch {
		case errdef.IsBadRequest(err):
			c.String(http.StatusBadRequest, err.Error())
		case errdef.IsNotFound(err):
			c.String(http.StatusNotFound, err.Error())
		case errdef.IsConflict(err):
			c.String(http.StatusConflict, err.Error())
		case errdef.IsUnsupportedMediaType(err):
			c.String(http.StatusUnsupportedMediaType, err.Error())
		case errdef.IsNetwork(err), errdef.IsRequestFailed(err):
			c.String(http.StatusBadGateway, err.Error())
		default:
			id, _ := GetCorrelationID(c.Request.Context())
			err := fmt.Errorf("something went wrong. We'll look into it if you send us the id %q :)", id)
			c.String(http.StatusInternalServerError, err.Error())
		}
	}
}
