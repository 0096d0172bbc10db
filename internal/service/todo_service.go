package service

import (
	"context"
	"strings"
	"time"

	"github.com/Tomlord1122/todo-auth-backend/internal/domain"
	"github.com/Tomlord1122/todo-auth-backend/internal/repository"
)

// CreateTodoRequest holds the data needed to create a new todo. Optional
// fields are pointers so omitted values pick up the defaults.
type CreateTodoRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	DueDate     *Timestamp `json:"due_date"`
	Priority    *int       `json:"priority"`
	IsComplete  *bool      `json:"is_complete"`
}

// UpdateTodoRequest holds the data for updating an existing todo.
// Optional tells an omitted field apart from an explicit null, so
// description and due_date can be cleared while the other fields reject null.
type UpdateTodoRequest struct {
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	Category    Optional[string]    `json:"category"`
	DueDate     Optional[Timestamp] `json:"due_date"`
	Priority    Optional[int]       `json:"priority"`
	IsComplete  Optional[bool]      `json:"is_complete"`
}

// TodoResponse is the standard representation of a Todo returned by the service.
type TodoResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Category    string     `json:"category"`
	DueDate     *time.Time `json:"due_date"`
	Priority    int        `json:"priority"`
	IsComplete  bool       `json:"is_complete"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
}

// TodoService defines the operations for managing todos. Every operation is
// scoped to owner, the authenticated username.
type TodoService interface {
	// CreateTodo validates req, applies defaults and stores the todo under owner.
	CreateTodo(ctx context.Context, owner string, req CreateTodoRequest) (*TodoResponse, error)

	// GetTodo returns domain.ErrNotFound for missing ids and for other owners' todos.
	GetTodo(ctx context.Context, owner, id string) (*TodoResponse, error)

	// ListTodos returns the owner's todos, optionally restricted to one category.
	ListTodos(ctx context.Context, owner, category string) ([]TodoResponse, error)

	// UpdateTodo applies only the fields present in req.
	UpdateTodo(ctx context.Context, owner, id string, req UpdateTodoRequest) (*TodoResponse, error)

	// MarkComplete is idempotent.
	MarkComplete(ctx context.Context, owner, id string) error

	DeleteTodo(ctx context.Context, owner, id string) error
}

type todoService struct {
	repo repository.TodoRepository
}

// NewTodoService creates a TodoService on top of a TodoRepository.
func NewTodoService(repo repository.TodoRepository) TodoService {
	return &todoService{repo: repo}
}

func (s *todoService) CreateTodo(ctx context.Context, owner string, req CreateTodoRequest) (*TodoResponse, error) {
	// 1. Validate input before touching the store
	if err := requireText("title", req.Title); err != nil {
		return nil, err
	}
	if err := validatePriority(req.Priority); err != nil {
		return nil, err
	}

	// 2. Map DTO to domain model, filling in defaults for omitted fields
	todo := &domain.Todo{
		Owner:       owner,
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.DefaultCategory,
		DueDate:     req.DueDate.timePtr(),
		Priority:    domain.DefaultPriority,
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) != "" {
		todo.Category = *req.Category
	}
	if req.Priority != nil {
		todo.Priority = *req.Priority
	}
	if req.IsComplete != nil {
		todo.IsComplete = *req.IsComplete
	}

	// 3. Persist; the repository assigns the id and timestamps
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, err
	}

	// 4. Map back to the response DTO
	return toTodoResponse(todo), nil
}

func (s *todoService) GetTodo(ctx context.Context, owner, id string) (*TodoResponse, error) {
	todo, err := s.repo.FindByID(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	return toTodoResponse(todo), nil
}

func (s *todoService) ListTodos(ctx context.Context, owner, category string) ([]TodoResponse, error) {
	todos, err := s.repo.ListByOwner(ctx, owner, category)
	if err != nil {
		return nil, err
	}

	responses := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		responses = append(responses, *toTodoResponse(&todos[i]))
	}
	return responses, nil
}

func (s *todoService) UpdateTodo(ctx context.Context, owner, id string, req UpdateTodoRequest) (*TodoResponse, error) {
	// 1. Reject null for fields that cannot be cleared
	for _, f := range []struct {
		name string
		null bool
	}{
		{"title", req.Title.Null},
		{"category", req.Category.Null},
		{"priority", req.Priority.Null},
		{"is_complete", req.IsComplete.Null},
	} {
		if f.null {
			return nil, domain.NewValidationError(f.name, "must not be null")
		}
	}

	// 2. Validate the fields that were supplied
	if req.Title.Set {
		if err := requireText("title", req.Title.Value); err != nil {
			return nil, err
		}
	}
	if req.Category.Set {
		if err := requireText("category", req.Category.Value); err != nil {
			return nil, err
		}
	}
	if err := validatePriority(req.Priority.ptr()); err != nil {
		return nil, err
	}

	// 3. Build the patch; an explicit null clears description and due_date
	patch := domain.TodoPatch{
		Title:            req.Title.ptr(),
		Description:      req.Description.ptr(),
		ClearDescription: req.Description.Null,
		Category:         req.Category.ptr(),
		ClearDueDate:     req.DueDate.Null,
		Priority:         req.Priority.ptr(),
		IsComplete:       req.IsComplete.ptr(),
	}
	if due := req.DueDate.ptr(); due != nil {
		patch.DueDate = due.timePtr()
	}

	// 4. Apply it to the owner's todo only
	todo, err := s.repo.Update(ctx, id, owner, patch)
	if err != nil {
		return nil, err
	}
	return toTodoResponse(todo), nil
}

func (s *todoService) MarkComplete(ctx context.Context, owner, id string) error {
	return s.repo.MarkComplete(ctx, id, owner)
}

func (s *todoService) DeleteTodo(ctx context.Context, owner, id string) error {
	return s.repo.Delete(ctx, id, owner)
}

func toTodoResponse(todo *domain.Todo) *TodoResponse {
	return &TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Category:    todo.Category,
		DueDate:     todo.DueDate,
		Priority:    todo.Priority,
		IsComplete:  todo.IsComplete,
		CreatedAt:   todo.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   todo.UpdatedAt.Format(time.RFC3339),
	}
}
