package v1

import (
	"github.com/gin-gonic/gin"

	"promptkeep/services/message-api/internal/interfaces/httpserver/handlers"
)

func registerMessageRoutes(router gin.IRoutes, handler *handlers.MessageHandler) {
	router.POST("/messages", handler.Create)
	router.GET("/messages", handler.List)
	router.GET("/messages/:id", handler.Get)
	router.GET("/messages/:id/history", handler.GetHistory)
	router.PATCH("/messages/:id", handler.Update)
	router.DELETE("/messages/:id", handler.Delete)
}
