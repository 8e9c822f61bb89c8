package handler

import (
	"strconv"

	"github.com/dhis2-sre/im-events/internal/errdef"
	"github.com/gin-gonic/gin"
)

func GetPathParameter(c *gin.Context, parameter string) (uint, error) {
	idParam := c.Param(parameter)
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		return 0, errdef.NewBadRequest("error parsing %q: %v", parameter, err)
	}
	return uint(id), nil
}
