package routes

import (
	"os"
	"strings"

	"homecare-backend/config"
	"homecare-backend/controllers"
	"homecare-backend/services"
	"homecare-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(contractService *services.ContractService) *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("FRONTEND_ORIGIN"); env != "" {
		origins = append(origins, strings.TrimRight(env, "/"))
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	contractController := controllers.ContractController{Service: contractService}

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Public marketing site and booking/signing flow
	public := r.Group("/api/public")
	{
		public.GET("/services", controllers.GetPublicServices)
		public.GET("/testimonials", controllers.GetPublicTestimonials)
		public.GET("/settings", controllers.GetSettings)
		public.POST("/bookings", controllers.CreateBooking)

		// Client signature page
		public.GET("/contracts/:id", contractController.GetContract)
		public.POST("/contracts/:id/sign", contractController.ClientSign)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(), utils.AdminOnly())
	{
		// Booking routes
		bookings := api.Group("/bookings")
		{
			bookings.GET("", controllers.GetBookings)
			bookings.GET("/:id", controllers.GetBooking)
			bookings.PUT("/:id/status", controllers.UpdateBookingStatus)
		}

		// Contract lifecycle routes
		contracts := api.Group("/contracts")
		{
			contracts.GET("", contractController.ListContracts)
			contracts.POST("/issue", contractController.IssueContract)
			contracts.POST("/:id/sign", contractController.AdminSign)
			contracts.POST("/:id/finalize", contractController.FinalizeContract)
		}

		// Service routes
		servicesGroup := api.Group("/services")
		{
			servicesGroup.POST("", controllers.CreateService)
			servicesGroup.GET("", controllers.GetServices)
			servicesGroup.GET("/:id", controllers.GetService)
			servicesGroup.PUT("/:id", controllers.UpdateService)
			servicesGroup.DELETE("/:id", controllers.DeleteService)
		}

		// Payment method routes
		paymentMethods := api.Group("/payment-methods")
		{
			paymentMethods.POST("", controllers.CreatePaymentMethod)
			paymentMethods.GET("", controllers.GetPaymentMethods)
			paymentMethods.PUT("/:id", controllers.UpdatePaymentMethod)
			paymentMethods.DELETE("/:id", controllers.DeletePaymentMethod)
		}

		// Testimonial routes
		testimonials := api.Group("/testimonials")
		{
			testimonials.POST("", controllers.CreateTestimonial)
			testimonials.GET("", controllers.GetTestimonials)
			testimonials.PUT("/:id", controllers.UpdateTestimonial)
			testimonials.DELETE("/:id", controllers.DeleteTestimonial)
		}

		// Settings routes
		api.PUT("/settings", controllers.UpdateSettings)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
		api.GET("/email-jobs", controllers.GetEmailJobs)
	}

	return r
}
