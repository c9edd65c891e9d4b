package mockapi

import "github.com/gin-gonic/gin"

// Router builds the gin engine serving the backend contract under /api.
func Router(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		events := api.Group("/events")
		{
			events.GET("", s.listEvents)
			events.POST("", s.createEvent)
			events.GET("/my-events", s.listMyEvents)
			events.GET("/my-created-events", s.listCreatedEvents)
			events.POST("/join", s.joinEvent)
			events.POST("/leave", s.leaveEvent)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/signup", s.signup)
			auth.POST("/login", s.login)
		}

		clients := api.Group("/clients")
		{
			clients.GET("/:id", s.getClient)
			clients.PUT("/:id", s.updateClient)
			clients.GET("/:id/stats", s.getClientStats)
		}
	}

	return r
}
