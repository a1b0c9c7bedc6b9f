package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"dineflow/handlers"
	"dineflow/middleware"
)

// RegisterChatRoutes registers the conversational endpoints. Everything
// except opening a conversation requires the conversation token.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.POST("/start", hb.StartConversation)

		api.Use(middleware.JWTAuthConversationMiddleware())
		api.POST("", hb.Chat)
		api.POST("/reset", hb.ResetConversation)
		api.GET("/status", hb.BookingStatus)
	}
}

// RegisterBookingRoutes registers the catalog, availability and reservation
// endpoints. These are also what a remote agent deployment points its
// booking client at.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/restaurants", hb.ListRestaurants)
		api.POST("/check_availability", hb.CheckAvailability)
		api.POST("/make_reservation", hb.MakeReservation)
		api.GET("/reservations/:id", hb.GetReservation)
		api.DELETE("/reservations/:id", hb.CancelReservation)
	}
}

// RegisterRecommendationRoutes registers the recommendation endpoint.
func RegisterRecommendationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/recommendations", hb.Recommendations)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Dineflow"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterChatRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterRecommendationRoutes(r, hb)
	RegisterHealthRoute(r)
}
