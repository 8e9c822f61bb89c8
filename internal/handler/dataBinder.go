package handler

import (
	"github.com/dhis2-sre/im-events/internal/errdef"

	"github.com/gin-gonic/gin"
)

func DataBinder(c *gin.Context, req any) error {
	switch c.ContentType() {
	case gin.MIMEJSON, gin.MIMEPOSTForm, gin.MIMEMultipartPOSTForm:
	default:
		return errdef.NewUnsupportedMediaType("%s only accepts content of type %s, %s or %s", c.FullPath(), gin.MIMEJSON, gin.MIMEPOSTForm, gin.MIMEMultipartPOSTForm)
	}

	if err := c.ShouldBind(req); err != nil {
		return errdef.NewBadRequest("error binding data: %v", err)
	}

	return nil
}
