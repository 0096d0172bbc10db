package repository

import (
	"context"

	"github.com/Tomlord1122/todo-auth-backend/internal/domain"
)

// UserRepository persists user records keyed by unique, case-sensitive username.
type UserRepository interface {
	// Create fails with domain.ErrDuplicateIdentity when the username is taken.
	Create(ctx context.Context, user *domain.User) error
	// FindByUsername returns domain.ErrNotFound when no exact match exists.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// TodoRepository persists todos. Every lookup filters on (id, owner) so a todo
// owned by someone else reports domain.ErrNotFound exactly like a missing one.
type TodoRepository interface {
	// Create assigns todo.ID and the timestamps.
	Create(ctx context.Context, todo *domain.Todo) error
	FindByID(ctx context.Context, id, owner string) (*domain.Todo, error)
	// ListByOwner returns the owner's todos in creation order; an empty category matches all.
	ListByOwner(ctx context.Context, owner, category string) ([]domain.Todo, error)
	Update(ctx context.Context, id, owner string, patch domain.TodoPatch) (*domain.Todo, error)
	MarkComplete(ctx context.Context, id, owner string) error
	Delete(ctx context.Context, id, owner string) error
}
