package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Tomlord1122/todo-auth-backend/internal/auth"
	"github.com/Tomlord1122/todo-auth-backend/internal/config"
	"github.com/Tomlord1122/todo-auth-backend/internal/database"
	"github.com/Tomlord1122/todo-auth-backend/internal/repository"
)

type testEnv struct {
	users  repository.UserRepository
	todos  repository.TodoRepository
	hasher *auth.Hasher
	tokens *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	svc, err := database.New(config.Database{Driver: config.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	require.NoError(t, repository.AutoMigrate(svc.GetDB()))

	tokens, err := auth.NewTokenService([]byte("service-test-secret"), time.Hour, "todo-test")
	require.NoError(t, err)

	return &testEnv{
		users:  repository.NewGormUserRepository(svc.GetDB()),
		todos:  repository.NewGormTodoRepository(svc.GetDB()),
		hasher: auth.NewHasher(bcrypt.MinCost),
		tokens: tokens,
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }
