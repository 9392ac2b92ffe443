package router

import (
	"net/http"

	"levelup/config"
	"levelup/handlers"
	"levelup/middleware"
	"levelup/monitoring"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Setup builds the engine with the middleware stack and every route.
func Setup(cfg config.Config) *gin.Engine {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		middleware.RemovePoweredBy(),
		middleware.SecurityHeaders(),
		middleware.RequestLogger(),
		middleware.ErrorLogger(),
		monitoring.PrometheusMiddleware(),
	)

	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)
	r.GET("/games", handlers.GetGames)
	r.GET("/games/:id", handlers.GetGameByID)
	r.GET("/events", handlers.GetEvents)
	r.GET("/events/:id", handlers.GetEventByID)
	r.GET("/events/:id/attendees", handlers.GetEventAttendees)
	r.GET("/gametypes", handlers.GetGameTypes)
	r.GET("/gametypes/:id", handlers.GetGameTypeByID)
	r.GET("/gamers", handlers.GetGamers)
	r.GET("/gamers/:id", handlers.GetGamerByID)

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(), middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))
	{
		protected.POST("/games", handlers.CreateGame)
		protected.PUT("/games/:id", handlers.UpdateGame)
		protected.DELETE("/games/:id", handlers.DeleteGame)
		protected.POST("/events", handlers.CreateEvent)
		protected.PUT("/events/:id", handlers.UpdateEvent)
		protected.DELETE("/events/:id", handlers.DeleteEvent)
		protected.POST("/events/:id/signup", handlers.SignupForEvent)
		protected.DELETE("/events/:id/signup", handlers.LeaveEvent)
		protected.POST("/gametypes", handlers.CreateGameType)
		protected.DELETE("/gamers/:id", handlers.DeleteGamer)
	}

	return r
}

// corsConfig allows the listed origins; "*" allows any origin without credentials.
func corsConfig(origins []string) cors.Config {
	conf := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}
	for _, origin := range origins {
		if origin == "*" {
			conf.AllowAllOrigins = true
			return conf
		}
	}
	conf.AllowOrigins = origins
	conf.AllowCredentials = true
	return conf
}
