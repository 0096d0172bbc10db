package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Tomlord1122/todo-auth-backend/internal/domain"
)

// gormTodoRepository implements TodoRepository using GORM.
type gormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a new GORM todo repository.
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

func (r *gormTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	model := todoModel{
		ID:          uuid.NewString(),
		Owner:       todo.Owner,
		Title:       todo.Title,
		Description: todo.Description,
		Category:    todo.Category,
		DueDate:     todo.DueDate,
		Priority:    todo.Priority,
		IsComplete:  todo.IsComplete,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	*todo = *model.toDomain()
	return nil
}

func (r *gormTodoRepository) FindByID(ctx context.Context, id, owner string) (*domain.Todo, error) {
	return findOwned(r.db.WithContext(ctx), id, owner)
}

func (r *gormTodoRepository) ListByOwner(ctx context.Context, owner, category string) ([]domain.Todo, error) {
	query := r.db.WithContext(ctx).Where("owner = ?", owner)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var models []todoModel
	if err := query.Order("created_at ASC").Order("id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	todos := make([]domain.Todo, 0, len(models))
	for i := range models {
		todos = append(todos, *models[i].toDomain())
	}
	return todos, nil
}

func (r *gormTodoRepository) Update(ctx context.Context, id, owner string, patch domain.TodoPatch) (*domain.Todo, error) {
	var updated *domain.Todo
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model todoModel
		if err := tx.Where("id = ? AND owner = ?", id, owner).First(&model).Error; err != nil {
			return err
		}
		if !patch.IsEmpty() {
			if err := tx.Model(&model).Updates(patchColumns(patch)).Error; err != nil {
				return err
			}
		}
		current, err := findOwned(tx, id, owner)
		if err != nil {
			return err
		}
		updated = current
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return updated, nil
}

func (r *gormTodoRepository) MarkComplete(ctx context.Context, id, owner string) error {
	result := r.db.WithContext(ctx).Model(&todoModel{}).
		Where("id = ? AND owner = ?", id, owner).
		Update("is_complete", true)
	if result.Error != nil {
		return fmt.Errorf("complete todo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *gormTodoRepository) Delete(ctx context.Context, id, owner string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND owner = ?", id, owner).Delete(&todoModel{})
	if result.Error != nil {
		return fmt.Errorf("delete todo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func findOwned(db *gorm.DB, id, owner string) (*domain.Todo, error) {
	var model todoModel
	err := db.Where("id = ? AND owner = ?", id, owner).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return model.toDomain(), nil
}
