package service

import (
	"net/mail"
	"strings"

	"github.com/Tomlord1122/todo-auth-backend/internal/auth"
	"github.com/Tomlord1122/todo-auth-backend/internal/domain"
)

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(field, "is required")
	}
	return nil
}

func validateEmail(email string) error {
	if err := requireText("email", email); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return domain.NewValidationError("email", "is not a valid address")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return domain.NewValidationError("password", "is required")
	}
	if len(password) > auth.MaxPasswordBytes {
		return domain.NewValidationError("password", "must be at most 72 bytes")
	}
	return nil
}

func validatePriority(priority *int) error {
	if priority != nil && (*priority < domain.MinPriority || *priority > domain.MaxPriority) {
		return domain.NewValidationError("priority", "must be between 1 and 5")
	}
	return nil
}
