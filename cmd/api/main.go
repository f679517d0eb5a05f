package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	_ "vendordocs/api/swagger" // swagger docs
	"vendordocs/internal/database"
	"vendordocs/internal/handler"
	"vendordocs/internal/middleware"
	"vendordocs/internal/repository"
	"vendordocs/internal/service"
	"vendordocs/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Vendor Document Compliance API
// @version         1.0
// @description     Vendor document submission, multi-stage review and compliance tracking.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	txManager := repository.NewTransactionManager(db)

	loginApprovalService := service.NewLoginApprovalService(db, wsHub)
	userService := service.NewUserService(userRepo, loginApprovalService)
	vendorService := service.NewVendorService(db, vendorRepo, userRepo, txManager)
	docTypeService := service.NewDocumentTypeService(db)
	documentService := service.NewDocumentService(db, wsHub)
	auditService := service.NewAuditService(db)
	complianceService := service.NewComplianceService(db)

	// Seed the document type catalog so required-type aging works out of the box
	if err := docTypeService.SeedDefaultTypes(context.Background()); err != nil {
		log.Println("WARNING: Failed to seed document types:", err)
	}

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	vendorHandler := handler.NewVendorHandler(vendorService)
	docTypeHandler := handler.NewDocumentTypeHandler(docTypeService)
	documentHandler := handler.NewDocumentHandler(documentService)
	auditHandler := handler.NewAuditHandler(auditService)
	complianceHandler := handler.NewComplianceHandler(complianceService)
	loginApprovalHandler := handler.NewLoginApprovalHandler(loginApprovalService)

	// Periodic compliance sweep, broadcast to connected dashboards
	sweepSpec := os.Getenv("COMPLIANCE_SWEEP_CRON")
	if sweepSpec == "" {
		sweepSpec = "0 * * * *" // hourly
	}
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(sweepSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		report, err := complianceService.ComputeFleetReport(ctx, time.Now().UTC())
		if err != nil {
			log.Println("Compliance sweep failed:", err)
			return
		}
		payload, err := json.Marshal(map[string]interface{}{
			"event":  "compliance_sweep",
			"report": report,
		})
		if err != nil {
			return
		}
		select {
		case wsHub.GetBroadcast() <- payload:
		default:
		}
	}); err != nil {
		log.Println("WARNING: Invalid COMPLIANCE_SWEEP_CRON, sweep disabled:", err)
	} else {
		scheduler.Start()
	}

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	vendorHandler.RegisterRoutes(router.Group(""))
	docTypeHandler.RegisterRoutes(router.Group(""))
	documentHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))
	complianceHandler.RegisterRoutes(router.Group(""))
	loginApprovalHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
