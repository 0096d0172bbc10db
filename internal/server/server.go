package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Tomlord1122/todo-auth-backend/internal/auth"
	"github.com/Tomlord1122/todo-auth-backend/internal/config"
	"github.com/Tomlord1122/todo-auth-backend/internal/service"
)

// HealthChecker reports datastore status for the /health endpoint.
type HealthChecker interface {
	Health() map[string]string
}

type Server struct {
	port           int
	allowedOrigins []string
	userService    service.UserService
	todoService    service.TodoService
	guard          *auth.Guard
	db             HealthChecker
}

// NewServer builds the HTTP server with every dependency injected.
func NewServer(cfg *config.Config, userService service.UserService, todoService service.TodoService, guard *auth.Guard, db HealthChecker) *http.Server {
	appServer := &Server{
		port:           cfg.Port,
		allowedOrigins: cfg.CORS.AllowedOrigins,
		userService:    userService,
		todoService:    todoService,
		guard:          guard,
		db:             db,
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", appServer.port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
