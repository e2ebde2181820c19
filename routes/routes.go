package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"barberbook/handlers"
	"barberbook/utils"
)

// HandlerBundle groups the handlers the router needs.
type HandlerBundle struct {
	Checkout *handlers.CheckoutHandler
	Webhook  *handlers.WebhookHandler
	Booking  *handlers.BookingHandler
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Paths match what the booking frontend and the Stripe dashboard are
	// configured against, so they live at the root rather than under /api.
	r.POST("/create-checkout-session", hb.Checkout.CreateCheckoutSession)
	r.POST("/webhook", hb.Webhook.HandleWebhook)
	r.POST("/bookings", hb.Booking.CreateCashBooking)
	r.GET("/slots", hb.Booking.ListSlots)

	RegisterHealthRoute(r)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}
