package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tomlord1122/todo-auth-backend/internal/domain"
)

type mongoTodoRepository struct {
	todos *mongo.Collection
}

// NewMongoTodoRepository stores todos in the "todos" collection. Each mutation
// is a single-document operation filtered on {_id, user}.
func NewMongoTodoRepository(db *mongo.Database) TodoRepository {
	return &mongoTodoRepository{todos: db.Collection(todosCollection)}
}

func (r *mongoTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := todoDocument{
		ID:          primitive.NewObjectID(),
		Owner:       todo.Owner,
		Title:       todo.Title,
		Description: todo.Description,
		Category:    todo.Category,
		DueDate:     todo.DueDate,
		Priority:    todo.Priority,
		IsComplete:  todo.IsComplete,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.todos.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	*todo = *doc.toDomain()
	return nil
}

func (r *mongoTodoRepository) FindByID(ctx context.Context, id, owner string) (*domain.Todo, error) {
	filter, ok := ownedFilter(id, owner)
	if !ok {
		return nil, domain.ErrNotFound
	}
	var doc todoDocument
	err := r.todos.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *mongoTodoRepository) ListByOwner(ctx context.Context, owner, category string) ([]domain.Todo, error) {
	filter := bson.M{"user": owner}
	if category != "" {
		filter["category"] = category
	}

	cursor, err := r.todos.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer cursor.Close(ctx)

	todos := make([]domain.Todo, 0)
	for cursor.Next(ctx) {
		var doc todoDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode todo: %w", err)
		}
		todos = append(todos, *doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

func (r *mongoTodoRepository) Update(ctx context.Context, id, owner string, patch domain.TodoPatch) (*domain.Todo, error) {
	filter, ok := ownedFilter(id, owner)
	if !ok {
		return nil, domain.ErrNotFound
	}

	if patch.IsEmpty() {
		return r.FindByID(ctx, id, owner)
	}
	set, unset := patchFields(patch)
	set["updated_at"] = time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var doc todoDocument
	err := r.todos.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *mongoTodoRepository) MarkComplete(ctx context.Context, id, owner string) error {
	filter, ok := ownedFilter(id, owner)
	if !ok {
		return domain.ErrNotFound
	}
	result, err := r.todos.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"is_complete": true,
		"updated_at":  time.Now().UTC().Truncate(time.Millisecond),
	}})
	if err != nil {
		return fmt.Errorf("complete todo: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *mongoTodoRepository) Delete(ctx context.Context, id, owner string) error {
	filter, ok := ownedFilter(id, owner)
	if !ok {
		return domain.ErrNotFound
	}
	result, err := r.todos.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ownedFilter reports false for ids that cannot name any document, which callers
// treat the same as a miss.
func ownedFilter(id, owner string) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid, "user": owner}, true
}
