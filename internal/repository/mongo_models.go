package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tomlord1122/todo-auth-backend/internal/domain"
)

const (
	usersCollection = "users"
	todosCollection = "todos"
)

type userDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	Email          string             `bson:"email"`
	FullName       *string            `bson:"full_name,omitempty"`
	HashedPassword string             `bson:"hashed_password"`
	CreatedAt      time.Time          `bson:"created_at"`
}

type todoDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Owner       string             `bson:"user"`
	Title       string             `bson:"title"`
	Description *string            `bson:"description,omitempty"`
	Category    string             `bson:"category"`
	DueDate     *time.Time         `bson:"due_date,omitempty"`
	Priority    int                `bson:"priority"`
	IsComplete  bool               `bson:"is_complete"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// EnsureMongoIndexes creates the unique username index and the (owner, _id)
// index used by ownership-filtered todo lookups.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	_, err = db.Collection(todosCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "_id", Value: 1}}, Options: options.Index().SetName("owner_id")},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "category", Value: 1}}, Options: options.Index().SetName("owner_category")},
	})
	if err != nil {
		return fmt.Errorf("create todos indexes: %w", err)
	}
	return nil
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		Username:       d.Username,
		Email:          d.Email,
		FullName:       d.FullName,
		HashedPassword: d.HashedPassword,
	}
}

func (d *todoDocument) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:          d.ID.Hex(),
		Owner:       d.Owner,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		DueDate:     d.DueDate,
		Priority:    d.Priority,
		IsComplete:  d.IsComplete,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// patchFields splits a patch into $set and $unset documents.
func patchFields(p domain.TodoPatch) (set, unset bson.M) {
	set, unset = bson.M{}, bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.ClearDescription {
		unset["description"] = ""
	} else if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.ClearDueDate {
		unset["due_date"] = ""
	} else if p.DueDate != nil {
		set["due_date"] = *p.DueDate
	}
	if p.Priority != nil {
		set["priority"] = *p.Priority
	}
	if p.IsComplete != nil {
		set["is_complete"] = *p.IsComplete
	}
	return set, unset
}
