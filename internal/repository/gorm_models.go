package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/Tomlord1122/todo-auth-backend/internal/domain"
)

type userModel struct {
	ID             string `gorm:"primaryKey;size:36"`
	Username       string `gorm:"uniqueIndex;not null"`
	Email          string `gorm:"not null"`
	FullName       *string
	HashedPassword string `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (userModel) TableName() string { return "users" }

type todoModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	Owner       string `gorm:"not null;index:idx_todos_owner_created,priority:1"`
	Title       string `gorm:"not null"`
	Description *string
	Category    string `gorm:"not null;index"`
	DueDate     *time.Time
	Priority    int       `gorm:"not null"`
	IsComplete  bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"index:idx_todos_owner_created,priority:2"`
	UpdatedAt   time.Time
}

func (todoModel) TableName() string { return "todos" }

// AutoMigrate creates or updates the users and todos tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&userModel{}, &todoModel{})
}

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		Username:       m.Username,
		Email:          m.Email,
		FullName:       m.FullName,
		HashedPassword: m.HashedPassword,
	}
}

func (m *todoModel) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:          m.ID,
		Owner:       m.Owner,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		DueDate:     m.DueDate,
		Priority:    m.Priority,
		IsComplete:  m.IsComplete,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func patchColumns(p domain.TodoPatch) map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.ClearDescription {
		updates["description"] = nil
	} else if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Category != nil {
		updates["category"] = *p.Category
	}
	if p.ClearDueDate {
		updates["due_date"] = nil
	} else if p.DueDate != nil {
		updates["due_date"] = *p.DueDate
	}
	if p.Priority != nil {
		updates["priority"] = *p.Priority
	}
	if p.IsComplete != nil {
		updates["is_complete"] = *p.IsComplete
	}
	return updates
}
