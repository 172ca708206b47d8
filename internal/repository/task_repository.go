package repository

import (
	"strings"

	"github.com/taskdeck/taskdeck-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// likeEscaper neutralizes LIKE wildcards so search terms match literally.
// '!' is the escape character because a backslash is not portable across the
// supported drivers.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// ListByOwner retrieves the owner's tasks. Incomplete tasks come first,
// newest first within each group; id breaks created_at ties so the order is
// deterministic.
func (r *GormTaskRepository) ListByOwner(ownerID uint64, search string) ([]models.Task, error) {
	query := r.db.Where("owner_id = ?", ownerID)

	if search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		query = query.Where("LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!'", pattern, pattern)
	}

	var tasks []models.Task
	if err := query.
		Order("is_completed ASC, created_at DESC, id DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// FindOwned finds a task by ID scoped to the owner
func (r *GormTaskRepository) FindOwned(ownerID, taskID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND owner_id = ?", taskID, ownerID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateOwned runs a single conditional UPDATE matching both task ID and
// owner ID. A non-owner's attempt matches zero rows; the caller maps that to
// not-found so ownership is never leaked through a distinct error.
func (r *GormTaskRepository) UpdateOwned(ownerID, taskID uint64, updates map[string]interface{}) (int64, error) {
	res := r.db.Model(&models.Task{}).
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// DeleteOwned soft deletes with the same atomic id+owner predicate
func (r *GormTaskRepository) DeleteOwned(ownerID, taskID uint64) (int64, error) {
	res := r.db.
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		Delete(&models.Task{})
	return res.RowsAffected, res.Error
}
