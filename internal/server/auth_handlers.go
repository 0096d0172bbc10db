package server

import (
	"errors"
	"net/http"

	"github.com/Tomlord1122/todo-auth-backend/internal/auth"
	"github.com/Tomlord1122/todo-auth-backend/internal/domain"
	"github.com/Tomlord1122/todo-auth-backend/internal/service"
)

func (s *Server) signupHandler(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := s.userService.Signup(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, err, "Signup", "Failed to create account")
		return
	}
	respondWithJSON(w, http.StatusOK, token)
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := s.userService.Login(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, err, "Login", "Failed to log in")
		return
	}
	respondWithJSON(w, http.StatusOK, token)
}

func (s *Server) profileHandler(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := s.userService.Profile(r.Context(), username)
	if errors.Is(err, domain.ErrNotFound) {
		// A valid token whose user no longer exists identifies nobody.
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err != nil {
		respondWithServiceError(w, err, "Profile", "Failed to retrieve profile")
		return
	}
	respondWithJSON(w, http.StatusOK, profile)
}
