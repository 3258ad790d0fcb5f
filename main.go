package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/Sudheer2002-ui/employeedirbackend/config"
	"github.com/Sudheer2002-ui/employeedirbackend/database"
	"github.com/Sudheer2002-ui/employeedirbackend/handlers"
	"github.com/Sudheer2002-ui/employeedirbackend/media"
	"github.com/Sudheer2002-ui/employeedirbackend/repository"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	uploadStore, err := media.NewUploadStore(cfg.UploadsPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize upload store: %v", err)
	}

	var (
		employeeRepo repository.EmployeeRepository
		userRepo     repository.UserRepository
	)

	switch cfg.StoreBackend {
	case config.StoreBackendMongo:
		client, db, err := database.InitMongo(cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize MongoDB: %v", err)
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Printf("Error disconnecting from MongoDB: %v", err)
			}
		}()

		bootCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		allocator := repository.NewSequenceAllocator(db, repository.EmployeeIDCounter)
		mongoEmployees := repository.NewMongoEmployeeRepository(db, allocator)
		mongoUsers := repository.NewMongoUserRepository(db)

		if err := mongoEmployees.EnsureIndexes(bootCtx); err != nil {
			log.Fatalf("FATAL: Failed to create MongoDB indexes: %v", err)
		}
		if err := mongoUsers.EnsureIndexes(bootCtx); err != nil {
			log.Fatalf("FATAL: Failed to create MongoDB indexes: %v", err)
		}
		if err := allocator.Ensure(bootCtx); err != nil {
			log.Fatalf("FATAL: Failed to seed employee id counter: %v", err)
		}

		employeeRepo = mongoEmployees
		userRepo = mongoUsers
	default:
		db, err := database.InitGormDB(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize database: %v", err)
		}
		if err := database.AutoMigrateModels(db); err != nil {
			log.Fatalf("FATAL: Failed to migrate database schema: %v", err)
		}

		employeeRepo = repository.NewGormEmployeeRepository(db)
		userRepo = repository.NewGormUserRepository(db)
	}

	log.Printf("Using %s backend", cfg.StoreBackend)
	log.Printf("Storing uploads in: %s", cfg.UploadsPath)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3001"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, cfg.TokenTTLMinutes, cfg.BcryptCost)
	employeeHandler := handlers.NewEmployeeHandler(employeeRepo, uploadStore)

	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(handlers.RequireAuth([]byte(cfg.JWTSecret)))

		r.Post("/employees", employeeHandler.CreateEmployee)
		r.Get("/employees", employeeHandler.ListEmployees)
		r.Get("/employees/{id}", employeeHandler.GetEmployee)
		r.Put("/edit-employees/{id}", employeeHandler.UpdateEmployee)
		r.Delete("/employees/{id}", employeeHandler.DeleteEmployee)
	})

	prefix := uploadStore.PublicPrefix()
	r.Get(fmt.Sprintf("/%s/*", prefix), handlers.AssetServer(uploadStore.BasePath(), prefix))
	log.Printf("Registered upload server at /%s/*", prefix)

	serverAddr := ":" + cfg.Port
	fmt.Printf("Server is running on http://localhost:%s\n", cfg.Port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
