package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tomlord1122/todo-auth-backend/internal/auth"
	"github.com/Tomlord1122/todo-auth-backend/internal/service"
)

// requireOwner returns the authenticated username set by the guard.
func requireOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
	}
	return owner, ok
}

func (s *Server) createTodoHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req service.CreateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	todo, err := s.todoService.CreateTodo(r.Context(), owner, req)
	if err != nil {
		respondWithServiceError(w, err, "CreateTodo", "Failed to create todo")
		return
	}
	respondWithJSON(w, http.StatusCreated, todo)
}

func (s *Server) getTodosHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	todos, err := s.todoService.ListTodos(r.Context(), owner, r.URL.Query().Get("category"))
	if err != nil {
		respondWithServiceError(w, err, "ListTodos", "Failed to retrieve todos")
		return
	}
	respondWithJSON(w, http.StatusOK, todos)
}

func (s *Server) getTodoByIDHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	todo, err := s.todoService.GetTodo(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, err, "GetTodo", "Failed to retrieve todo")
		return
	}
	respondWithJSON(w, http.StatusOK, todo)
}

func (s *Server) updateTodoHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req service.UpdateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	todo, err := s.todoService.UpdateTodo(r.Context(), owner, chi.URLParam(r, "id"), req)
	if err != nil {
		respondWithServiceError(w, err, "UpdateTodo", "Failed to update todo")
		return
	}
	respondWithJSON(w, http.StatusOK, todo)
}

func (s *Server) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	if err := s.todoService.DeleteTodo(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		respondWithServiceError(w, err, "DeleteTodo", "Failed to delete todo")
		return
	}
	respondWithMessage(w, http.StatusOK, "Todo deleted successfully")
}

func (s *Server) completeTodoHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	if err := s.todoService.MarkComplete(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		respondWithServiceError(w, err, "MarkComplete", "Failed to complete todo")
		return
	}
	respondWithMessage(w, http.StatusOK, "Todo marked as complete")
}
