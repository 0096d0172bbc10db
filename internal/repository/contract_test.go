package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/todo-auth-backend/internal/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func newTodo(owner, title, category string) *domain.Todo {
	return &domain.Todo{
		Owner:    owner,
		Title:    title,
		Category: category,
		Priority: domain.DefaultPriority,
	}
}

// runUserRepositoryContract checks behaviour every UserRepository must share.
func runUserRepositoryContract(t *testing.T, newRepo func(t *testing.T) UserRepository) {
	t.Run("create and find", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Create(ctx, &domain.User{
			Username:       "alice",
			Email:          "a@x.com",
			FullName:       strPtr("Alice A"),
			HashedPassword: "digest",
		})
		require.NoError(t, err)

		got, err := repo.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, "a@x.com", got.Email)
		require.NotNil(t, got.FullName)
		assert.Equal(t, "Alice A", *got.FullName)
		assert.Equal(t, "digest", got.HashedPassword)
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		require.NoError(t, repo.Create(ctx, &domain.User{Username: "bob", Email: "b@x.com", HashedPassword: "d1"}))
		err := repo.Create(ctx, &domain.User{Username: "bob", Email: "other@x.com", HashedPassword: "d2"})
		assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)

		got, err := repo.FindByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, "b@x.com", got.Email)
	})

	t.Run("username is case sensitive", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		require.NoError(t, repo.Create(ctx, &domain.User{Username: "carol", Email: "c@x.com", HashedPassword: "d"}))
		require.NoError(t, repo.Create(ctx, &domain.User{Username: "Carol", Email: "C@x.com", HashedPassword: "d"}))

		_, err := repo.FindByUsername(ctx, "CAROL")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("missing user", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.FindByUsername(context.Background(), "nobody")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// runTodoRepositoryContract checks owner scoping and partial-update semantics.
func runTodoRepositoryContract(t *testing.T, newRepo func(t *testing.T) TodoRepository) {
	t.Run("create assigns id and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		todo := newTodo("alice", "buy milk", domain.DefaultCategory)

		require.NoError(t, repo.Create(context.Background(), todo))
		assert.NotEmpty(t, todo.ID)
		assert.False(t, todo.CreatedAt.IsZero())
		assert.Equal(t, "alice", todo.Owner)

		other := newTodo("alice", "buy eggs", domain.DefaultCategory)
		require.NoError(t, repo.Create(context.Background(), other))
		assert.NotEqual(t, todo.ID, other.ID)
	})

	t.Run("list scoped by owner and category in insertion order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first := newTodo("alice", "one", "Work")
		second := newTodo("alice", "two", domain.DefaultCategory)
		third := newTodo("alice", "three", "Work")
		foreign := newTodo("bob", "bob's", "Work")
		for _, todo := range []*domain.Todo{first, second, third, foreign} {
			require.NoError(t, repo.Create(ctx, todo))
		}

		all, err := repo.ListByOwner(ctx, "alice", "")
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"one", "two", "three"}, []string{all[0].Title, all[1].Title, all[2].Title})

		work, err := repo.ListByOwner(ctx, "alice", "Work")
		require.NoError(t, err)
		require.Len(t, work, 2)
		assert.Equal(t, first.ID, work[0].ID)
		assert.Equal(t, third.ID, work[1].ID)

		none, err := repo.ListByOwner(ctx, "carol", "")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("foreign owner sees not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		todo := newTodo("alice", "secret", domain.DefaultCategory)
		require.NoError(t, repo.Create(ctx, todo))

		_, err := repo.FindByID(ctx, todo.ID, "bob")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = repo.Update(ctx, todo.ID, "bob", domain.TodoPatch{Title: strPtr("pwned")})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, repo.MarkComplete(ctx, todo.ID, "bob"), domain.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, todo.ID, "bob"), domain.ErrNotFound)

		got, err := repo.FindByID(ctx, todo.ID, "alice")
		require.NoError(t, err)
		assert.Equal(t, "secret", got.Title)
		assert.False(t, got.IsComplete)
	})

	t.Run("unknown and malformed ids", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, id := range []string{"", "does-not-exist", "0123456789abcdef01234567"} {
			_, err := repo.FindByID(ctx, id, "alice")
			assert.ErrorIs(t, err, domain.ErrNotFound, "id %q", id)
			assert.ErrorIs(t, repo.Delete(ctx, id, "alice"), domain.ErrNotFound, "id %q", id)
		}
	})

	t.Run("update applies only supplied fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		todo := newTodo("alice", "draft", "Work")
		todo.Description = strPtr("keep me")
		require.NoError(t, repo.Create(ctx, todo))

		due := time.Date(2030, 1, 2, 15, 4, 5, 0, time.UTC)
		updated, err := repo.Update(ctx, todo.ID, "alice", domain.TodoPatch{
			Title:    strPtr("final"),
			Priority: intPtr(4),
			DueDate:  &due,
		})
		require.NoError(t, err)
		assert.Equal(t, todo.ID, updated.ID)
		assert.Equal(t, "final", updated.Title)
		assert.Equal(t, 4, updated.Priority)
		assert.Equal(t, "Work", updated.Category)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "keep me", *updated.Description)
		require.NotNil(t, updated.DueDate)
		assert.True(t, due.Equal(*updated.DueDate))
		assert.False(t, updated.IsComplete)

		unchanged, err := repo.Update(ctx, todo.ID, "alice", domain.TodoPatch{})
		require.NoError(t, err)
		assert.Equal(t, "final", unchanged.Title)

		reopened, err := repo.Update(ctx, todo.ID, "alice", domain.TodoPatch{IsComplete: boolPtr(true)})
		require.NoError(t, err)
		assert.True(t, reopened.IsComplete)
	})

	t.Run("update clears optional fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		due := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
		todo := newTodo("alice", "dentist", domain.DefaultCategory)
		todo.Description = strPtr("old")
		todo.DueDate = &due
		require.NoError(t, repo.Create(ctx, todo))

		updated, err := repo.Update(ctx, todo.ID, "alice", domain.TodoPatch{
			ClearDescription: true,
			ClearDueDate:     true,
		})
		require.NoError(t, err)
		assert.Nil(t, updated.Description)
		assert.Nil(t, updated.DueDate)
		assert.Equal(t, "dentist", updated.Title)

		got, err := repo.FindByID(ctx, todo.ID, "alice")
		require.NoError(t, err)
		assert.Nil(t, got.Description)
		assert.Nil(t, got.DueDate)

		restored, err := repo.Update(ctx, todo.ID, "alice", domain.TodoPatch{Description: strPtr("new")})
		require.NoError(t, err)
		require.NotNil(t, restored.Description)
		assert.Equal(t, "new", *restored.Description)
		assert.Nil(t, restored.DueDate)
	})

	t.Run("mark complete is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		todo := newTodo("alice", "finish", domain.DefaultCategory)
		require.NoError(t, repo.Create(ctx, todo))

		require.NoError(t, repo.MarkComplete(ctx, todo.ID, "alice"))
		require.NoError(t, repo.MarkComplete(ctx, todo.ID, "alice"))

		got, err := repo.FindByID(ctx, todo.ID, "alice")
		require.NoError(t, err)
		assert.True(t, got.IsComplete)
	})

	t.Run("delete removes the record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		todo := newTodo("alice", "remove me", domain.DefaultCategory)
		require.NoError(t, repo.Create(ctx, todo))

		require.NoError(t, repo.Delete(ctx, todo.ID, "alice"))
		assert.ErrorIs(t, repo.Delete(ctx, todo.ID, "alice"), domain.ErrNotFound)
		_, err := repo.FindByID(ctx, todo.ID, "alice")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
