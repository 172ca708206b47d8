package repository

import (
	"github.com/taskdeck/taskdeck-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// TaskRepository defines the interface for task data access. Every operation
// takes the owner's user ID and filters on it; there is no way to reach
// another user's rows through this interface.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// ListByOwner retrieves the owner's tasks, optionally filtered by a
	// case-insensitive search over title and description
	ListByOwner(ownerID uint64, search string) ([]models.Task, error)

	// FindOwned finds a task by ID scoped to the owner
	FindOwned(ownerID, taskID uint64) (*models.Task, error)

	// UpdateOwned applies the given column updates in a single statement
	// whose predicate matches both task ID and owner ID. Returns the number
	// of rows matched: zero means absent-or-not-yours.
	UpdateOwned(ownerID, taskID uint64, updates map[string]interface{}) (int64, error)

	// DeleteOwned deletes with the same atomic id+owner predicate.
	// Returns the number of rows matched.
	DeleteOwned(ownerID, taskID uint64) (int64, error)
}
