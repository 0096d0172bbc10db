package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Tomlord1122/todo-auth-backend/internal/auth"
	"github.com/Tomlord1122/todo-auth-backend/internal/cache"
	"github.com/Tomlord1122/todo-auth-backend/internal/domain"
	"github.com/Tomlord1122/todo-auth-backend/internal/repository"
)

// SignupRequest holds the data needed to register a new user.
type SignupRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by signup and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ProfileResponse is the public view of a user.
type ProfileResponse = cache.Profile

// ProfileCache is the optional read-through cache consulted by Profile.
type ProfileCache interface {
	Get(ctx context.Context, username string) (*cache.Profile, bool)
	Set(ctx context.Context, p *cache.Profile)
}

// UserService covers account registration, login and profile reads.
type UserService interface {
	// Signup fails with domain.ErrDuplicateIdentity if the username is taken.
	Signup(ctx context.Context, req SignupRequest) (*TokenResponse, error)
	// Login fails with domain.ErrInvalidCredentials for unknown users and wrong
	// passwords alike, and issues no token in that case.
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Profile(ctx context.Context, username string) (*ProfileResponse, error)
}

type userService struct {
	users  repository.UserRepository
	hasher *auth.Hasher
	tokens *auth.TokenService
	cache  ProfileCache
}

// NewUserService wires the identity store, hasher and token service. profiles may be nil.
func NewUserService(users repository.UserRepository, hasher *auth.Hasher, tokens *auth.TokenService, profiles ProfileCache) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		cache:  profiles,
	}
}

func (s *userService) Signup(ctx context.Context, req SignupRequest) (*TokenResponse, error) {
	// 1. Validate input
	if err := requireText("username", req.Username); err != nil {
		return nil, err
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	// 2. Hash the password; the plaintext is never stored
	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:       req.Username,
		Email:          req.Email,
		FullName:       req.FullName,
		HashedPassword: digest,
	}
	// 3. Persist; a taken username surfaces as domain.ErrDuplicateIdentity
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// 4. Sign the user in straight away
	return s.issue(user.Username)
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	// 1. Look up the user; an unknown name looks like a wrong password
	user, err := s.users.FindByUsername(ctx, req.Username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	// 2. Check the password against the stored digest
	if !s.hasher.Verify(req.Password, user.HashedPassword) {
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Issue the access token
	return s.issue(user.Username)
}

func (s *userService) Profile(ctx context.Context, username string) (*ProfileResponse, error) {
	// 1. Try the cache first
	if s.cache != nil {
		if p, ok := s.cache.Get(ctx, username); ok {
			return p, nil
		}
	}

	// 2. Fall back to the identity store
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	// 3. Build the public view and remember it
	profile := &ProfileResponse{
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
	}
	if s.cache != nil {
		s.cache.Set(ctx, profile)
	}
	return profile, nil
}

func (s *userService) issue(username string) (*TokenResponse, error) {
	token, err := s.tokens.Issue(username)
	if err != nil {
		log.Printf("Error issuing token: %v", err)
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}
