package domain

import "time"

// DefaultCategory is applied to todos created without a category.
const DefaultCategory = "General"

const (
	MinPriority     = 1
	MaxPriority     = 5
	DefaultPriority = MinPriority
)

// Todo is a task owned by exactly one user. Owner is set at creation and never changes.
type Todo struct {
	ID          string
	Owner       string
	Title       string
	Description *string
	Category    string
	DueDate     *time.Time
	Priority    int
	IsComplete  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoPatch carries a partial update. Nil fields are left untouched.
// ClearDescription and ClearDueDate reset the optional fields to null and
// win over a value set in the same patch.
type TodoPatch struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Category         *string
	DueDate          *time.Time
	ClearDueDate     bool
	Priority         *int
	IsComplete       *bool
}

// IsEmpty reports whether the patch would change nothing.
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && !p.ClearDescription &&
		p.Category == nil && p.DueDate == nil && !p.ClearDueDate &&
		p.Priority == nil && p.IsComplete == nil
}
