package routes

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"stayhub-backend/controllers"
	"stayhub-backend/middleware"
	"stayhub-backend/utils"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("dateformat", func(fl validator.FieldLevel) bool {
			_, err := utils.ParseDate(fl.Field().String())
			return err == nil
		})
	}
}

// SetupRouter wires the controller instances onto the route tree.
func SetupRouter(
	logger *slog.Logger,
	bc *controllers.BranchController,
	cc *controllers.RoomCategoryController,
	rtc *controllers.RoomTypeController,
	rc *controllers.RoomController,
	ec *controllers.EventController,
	pc *controllers.PricingController,
	ac *controllers.AvailabilityController,
	bkc *controllers.BookingController,
	ctc *controllers.CustomerController,
) *gin.Engine {
	registerValidations()

	r := gin.New()
	r.Use(middleware.Logger(logger), gin.Recovery())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		branches := api.Group("/branches")
		{
			branches.GET("", bc.GetBranches)
			branches.POST("", bc.CreateBranch)
			branches.PUT("/:id", bc.UpdateBranch)
			branches.DELETE("/:id", bc.DeleteBranch)
		}

		categories := api.Group("/room-categories")
		{
			categories.GET("", cc.GetCategories)
			categories.POST("", cc.CreateCategory)
			categories.DELETE("/:id", cc.DeleteCategory)
		}

		roomTypes := api.Group("/room-types")
		{
			roomTypes.GET("", rtc.GetRoomTypes)
			roomTypes.POST("", rtc.CreateRoomType)
			roomTypes.DELETE("/:id", rtc.DeleteRoomType)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.POST("", rc.CreateRoom)
			rooms.GET("/:id", rc.GetRoom)
			rooms.GET("/:id/price", rc.GetPrice)
			rooms.PATCH("/:id", rc.UpdateRoom)
			rooms.PUT("/:id", rc.UpdateRoom)
			rooms.DELETE("/:id", rc.DeleteRoom)
			rooms.POST("/:id/reconcile", rc.ReconcileRoom)
		}

		events := api.Group("/events")
		{
			// /due must come before /:id
			events.GET("/due", ec.DueEvents)
			events.GET("", ec.ListEvents)
			events.POST("", ec.CreateEvent)
			events.GET("/:id", ec.GetEvent)
			events.PUT("/:id", ec.UpdateEvent)
			events.DELETE("/:id", ec.DeleteEvent)
			events.POST("/:id/activate", ec.ActivateEvent)
			events.POST("/:id/complete", ec.CompleteEvent)
			events.POST("/:id/cancel", ec.CancelEvent)
		}

		api.POST("/pricing/reconcile", pc.Reconcile)

		availability := api.Group("/availability")
		{
			availability.GET("/check", ac.Check)
			availability.GET("/rooms", ac.FindRooms)
			availability.GET("/rooms/count", ac.CountRooms)
			availability.GET("/calendar", ac.Calendar)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bkc.GetBookings)
			bookings.POST("", bkc.CreateBooking)
			bookings.GET("/:id", bkc.GetBookingDetails)
			bookings.DELETE("/:id", bkc.DeleteBooking)
			bookings.POST("/:id/checkin", bkc.CheckIn)
			bookings.POST("/:id/checkout", bkc.Checkout)
			bookings.POST("/:id/cancel", bkc.Cancel)
			bookings.POST("/:id/close", bkc.Close)
			bookings.POST("/:id/no-show", bkc.MarkNoShow)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", ctc.GetCustomers)
			customers.POST("", ctc.CreateCustomer)
		}
	}

	return r
}
