package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/VanMinhNguyen21/api-web/internal/command"
	"github.com/VanMinhNguyen21/api-web/internal/config"
	"github.com/VanMinhNguyen21/api-web/internal/events"
	"github.com/VanMinhNguyen21/api-web/internal/handler"
	"github.com/VanMinhNguyen21/api-web/internal/middleware"
	"github.com/VanMinhNguyen21/api-web/internal/migrate"
	"github.com/VanMinhNguyen21/api-web/internal/query"
	"github.com/VanMinhNguyen21/api-web/internal/redisstore"
	"github.com/VanMinhNguyen21/api-web/internal/repository"
)

func main() {
	godotenv.Load()

	middleware.MustInitJWTSecret()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Database connection (write store)
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	if err := migrate.Up(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis connection (read model store + event streaming)
	redis, err := redisstore.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	// --- CQRS wiring ---
	publisher := events.NewPublisher(redis.Client)

	userWriteRepo := repository.NewUserWriteRepository(db)
	userReadRepo := repository.NewUserReadRepository(db, redis.Client)
	supplierRepo := repository.NewSupplierRepository(db)
	productRepo := repository.NewProductRepository(db)
	wardRepo := repository.NewWardRepository(db)
	shapeRepo := repository.NewShapeRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	userCommands := command.NewUserCommandService(userWriteRepo, userReadRepo, publisher)
	supplierCommands := command.NewSupplierCommandService(supplierRepo, publisher)
	productCommands := command.NewProductCommandService(productRepo, supplierRepo, publisher)
	auditSvc := command.NewAuditService(auditRepo)

	userQueries := query.NewUserQueryService(userReadRepo, userWriteRepo)
	authQueries := query.NewAuthQueryService(userWriteRepo, cfg.JWTExpiry)
	supplierQueries := query.NewSupplierQueryService(supplierRepo)
	productQueries := query.NewProductQueryService(productRepo)
	referenceQueries := query.NewReferenceQueryService(wardRepo, shapeRepo)

	userHandler := handler.NewUserHandler(userCommands, userQueries)
	authHandler := handler.NewAuthHandler(authQueries)
	supplierHandler := handler.NewSupplierHandler(supplierCommands, supplierQueries)
	productHandler := handler.NewProductHandler(productCommands, productQueries)
	referenceHandler := handler.NewReferenceHandler(referenceQueries)

	// Setup router
	router := gin.Default()
	router.Use(middleware.LoggingMiddleware())

	auth := router.Group("/v1/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	users := router.Group("/v1/users", middleware.AuthMiddleware())
	{
		users.GET("", userHandler.ListUsers)
		users.POST("", middleware.RequireAdmin(), userHandler.CreateUser)
		users.POST("/password", userHandler.ChangePassword)
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.PATCH("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", middleware.RequireAdmin(), userHandler.DeleteUser)
		users.GET("/:id/profile", middleware.RequireAdmin(), userHandler.GetProfile)
	}

	suppliers := router.Group("/v1/suppliers", middleware.AuthMiddleware())
	{
		suppliers.GET("", supplierHandler.ListSuppliers)
		suppliers.POST("", supplierHandler.CreateSupplier)
		suppliers.GET("/:id", supplierHandler.GetSupplier)
		suppliers.PUT("/:id", supplierHandler.UpdateSupplier)
		suppliers.DELETE("/:id", supplierHandler.DeleteSupplier)
	}

	products := router.Group("/v1/products", middleware.AuthMiddleware())
	{
		products.GET("", productHandler.ListProducts)
		products.POST("", productHandler.CreateProduct)
		products.GET("/:id", productHandler.GetProduct)
		products.PUT("/:id", productHandler.UpdateProduct)
		products.DELETE("/:id", productHandler.DeleteProduct)
	}

	reference := router.Group("/v1")
	{
		reference.GET("/wards", referenceHandler.ListWards)
		reference.GET("/wards/:id", referenceHandler.GetWard)
		reference.GET("/shapes", referenceHandler.ListShapes)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Start event subscribers — events land in the audit log
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, stream := range []string{events.UserEventsStream, events.CatalogEventsStream} {
		stream := stream
		go func() {
			subscriber := events.NewSubscriber(redis.Client, stream, auditSvc.HandleEvent)
			if err := subscriber.Start(ctx); err != nil {
				log.Printf("Subscriber stopped (%s): %v", stream, err)
			}
		}()
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	log.Printf("API server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
