package repository

import (
	"context"
	"errors"

	"github.com/Sudheer2002-ui/employeedirbackend/models"
)

var (
	// ErrNotFound is returned when the targeted record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a unique constraint (employee id,
	// employee email or username) is violated.
	ErrDuplicateKey = errors.New("duplicate key")
)

// EmployeeRepository defines persistence operations for employee records.
// Both backends implement it; the variant is chosen once at startup.
type EmployeeRepository interface {
	// Create persists a new employee. The backend assigns the identifier
	// and sets emp.ID and emp.CreatedAt before returning.
	Create(ctx context.Context, emp *models.Employee) error
	GetByID(ctx context.Context, id int64) (*models.Employee, error)
	// ListAll returns every employee in insertion order.
	ListAll(ctx context.Context) ([]models.Employee, error)
	// Update replaces all updatable fields of the employee with the given
	// id. Zero matched rows signal ErrNotFound.
	Update(ctx context.Context, id int64, upd models.EmployeeUpdate) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository defines persistence operations for login credentials.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
