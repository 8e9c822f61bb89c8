package event

import (
	"github.com/gin-gonic/gin"
)

func Routes(r gin.IRouter, handler Handler) {
	r.GET("/", handler.List)
	r.GET("/event/:id", handler.Find)
	r.GET("/event/:id/edit", handler.EditForm)
	r.POST("/event/:id/edit", handler.Update)
	r.POST("/event/:id/cancel", handler.Cancel)
	r.GET("/event/:id/delete", handler.DeleteForm)
	r.POST("/event/:id/delete", handler.Delete)
	r.GET("/add-event", handler.AddForm)
	r.POST("/add-event", handler.Create)
}
