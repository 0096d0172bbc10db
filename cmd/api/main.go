package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Tomlord1122/todo-auth-backend/internal/auth"
	"github.com/Tomlord1122/todo-auth-backend/internal/cache"
	"github.com/Tomlord1122/todo-auth-backend/internal/config"
	"github.com/Tomlord1122/todo-auth-backend/internal/database"
	"github.com/Tomlord1122/todo-auth-backend/internal/repository"
	"github.com/Tomlord1122/todo-auth-backend/internal/server"
	"github.com/Tomlord1122/todo-auth-backend/internal/service"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, rdb *redis.Client, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	// The server has 5 seconds to finish the requests it is currently handling.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Printf("Error closing redis client: %v", err)
		}
	}

	log.Println("Closing database connection...")
	if err := dbService.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed.")
	}

	log.Println("Server exiting")
	done <- true
}

// openStores connects to the configured backend and returns the repositories on top of it.
func openStores(ctx context.Context, cfg config.Database) (database.Service, repository.UserRepository, repository.TodoRepository, error) {
	if cfg.Driver == config.DriverMongo {
		mongoService, err := database.NewMongo(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := repository.EnsureMongoIndexes(ctx, mongoService.Database()); err != nil {
			_ = mongoService.Close()
			return nil, nil, nil, err
		}
		log.Println("Mongo indexes ensured.")
		return mongoService,
			repository.NewMongoUserRepository(mongoService.Database()),
			repository.NewMongoTodoRepository(mongoService.Database()),
			nil
	}

	sqlService, err := database.New(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Println("Running database auto-migration...")
	if err := repository.AutoMigrate(sqlService.GetDB()); err != nil {
		_ = sqlService.Close()
		return nil, nil, nil, err
	}
	log.Println("Database auto-migration complete.")
	return sqlService,
		repository.NewGormUserRepository(sqlService.GetDB()),
		repository.NewGormTodoRepository(sqlService.GetDB()),
		nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 1. Datastore and repositories
	dbService, userRepo, todoRepo, err := openStores(context.Background(), cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open %s datastore: %v", cfg.Database.Driver, err)
	}

	// 2. Optional profile cache
	var (
		rdb      *redis.Client
		profiles service.ProfileCache
	)
	if cfg.Cache.RedisAddr != "" {
		rdb, err = cache.Connect(context.Background(), cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		profiles = cache.NewProfileCache(rdb, cfg.Cache.ProfileTTL)
		log.Printf("Profile cache enabled at %s", cfg.Cache.RedisAddr)
	}

	// 3. Auth components
	tokens, err := auth.NewTokenService(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}
	log.Printf("Access tokens expire after %s", tokens.TTL())
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	guard := auth.NewGuard(tokens)

	// 4. Services
	userService := service.NewUserService(userRepo, hasher, tokens, profiles)
	todoService := service.NewTodoService(todoRepo)

	// 5. Server
	apiServer := server.NewServer(cfg, userService, todoService, guard, dbService)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, rdb, done)

	log.Printf("Starting server on %s (datastore: %s)", apiServer.Addr, cfg.Database.Driver)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server ListenAndServe error: %v", err)
	}

	<-done
	log.Println("Graceful shutdown complete.")
}
