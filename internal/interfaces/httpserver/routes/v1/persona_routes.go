package v1

import (
	"github.com/gin-gonic/gin"

	"promptkeep/services/message-api/internal/interfaces/httpserver/handlers"
)

func registerPersonaRoutes(router gin.IRoutes, handler *handlers.PersonaHandler) {
	router.POST("/personas", handler.Create)
	router.GET("/personas", handler.List)
	router.GET("/personas/:id", handler.Get)
	router.PATCH("/personas/:id", handler.Update)
	router.DELETE("/personas/:id", handler.Delete)
}
