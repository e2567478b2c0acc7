package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"exmplr-agent/internal/api/handler"
)

// RegisterRoutes wires the session API onto the gin engine.
func RegisterRoutes(r *gin.Engine, sessionH *handler.SessionHandler) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	{
		sessions := api.Group("/sessions")
		{
			sessions.POST("", sessionH.CreateSession)
			sessions.GET("/:id", sessionH.GetSession)
			sessions.POST("/:id/messages", sessionH.PostMessage)

			refine := sessions.Group("/:id/refine")
			{
				refine.POST("/phase", sessionH.ApplyPhaseFilter)
				refine.POST("/more", sessionH.MoreResults)
				refine.POST("/location", sessionH.ApplyLocationFilter)
			}
		}
	}
}
