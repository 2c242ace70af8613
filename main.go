package main

import (
	"fmt"
	"log"
	"os"

	"homecare-backend/config"
	"homecare-backend/models"
	"homecare-backend/routes"
	"homecare-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Booking{},
		&models.Contract{},
		&models.PaymentMethod{},
		&models.Testimonial{},
		&models.SiteSettings{},
		&models.EmailJob{},
	)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	sender, err := services.NewSendGridSender()
	if err != nil {
		log.Fatalf("Mail provider not configured: %v", err)
	}

	contractService := services.NewContractService(config.DB)

	outbox := services.NewOutboxService(config.DB, sender)
	outbox.StartScheduler()

	reminders := services.NewReminderService(config.DB)
	reminders.StartScheduler()

	r := routes.SetupRouter(contractService)
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
