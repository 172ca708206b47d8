package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taskdeck/taskdeck-api/internal/constants"
	"github.com/taskdeck/taskdeck-api/internal/models"
	"github.com/taskdeck/taskdeck-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound            = errors.New("task not found")
	ErrTitleTooShort           = errors.New("title too short")
	ErrEmptyUpdate             = errors.New("no fields to update")
	ErrInvalidPriority         = errors.New("invalid priority")
	ErrInvalidFrequency        = errors.New("invalid frequency")
	ErrSuggestionsNotAvailable = errors.New("suggestion service is not configured")
)

// TaskService handles task business logic. Every operation is scoped to the
// owner resolved by the session boundary; a task ID belonging to another user
// behaves exactly like a missing one.
type TaskService struct {
	taskRepo  repository.TaskRepository
	aiService *AIService
}

// NewTaskService creates a new TaskService. aiService may be nil, in which
// case Suggest reports the service as unavailable.
func NewTaskService(taskRepo repository.TaskRepository, aiService *AIService) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		aiService: aiService,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    *models.TaskPriority
	Frequency   *models.TaskFrequency
}

// UpdateTaskInput represents a partial update. Nil pointers mean "leave
// unchanged"; ClearDueDate distinguishes "set null" from "not sent".
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	IsCompleted  *bool
	DueDate      *time.Time
	ClearDueDate bool
	Priority     *models.TaskPriority
	Frequency    *models.TaskFrequency
}

// ListTasks returns the owner's tasks, optionally filtered by a
// case-insensitive search over title and description.
func (s *TaskService) ListTasks(ownerID uint64, search string) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ownerID, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask creates a new task owned by ownerID. The owner always comes
// from the authenticated session, never from the request payload.
func (s *TaskService) CreateTask(ownerID uint64, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if utf8.RuneCountInString(title) < constants.MinTitleLength {
		return nil, ErrTitleTooShort
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if input.Frequency != nil && !input.Frequency.Valid() {
		return nil, ErrInvalidFrequency
	}

	task := &models.Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: input.Description,
		IsCompleted: false,
		DueDate:     input.DueDate,
		Priority:    input.Priority,
		Frequency:   input.Frequency,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask applies a partial update through a single conditional UPDATE
// keyed on both task ID and owner ID. Zero matched rows means the task is
// absent or owned by someone else; both surface as ErrTaskNotFound.
func (s *TaskService) UpdateTask(ownerID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	updates := make(map[string]interface{})

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if utf8.RuneCountInString(title) < constants.MinTitleLength {
			return nil, ErrTitleTooShort
		}
		updates["title"] = title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.IsCompleted != nil {
		// Completion is set to the explicit value, never flipped here, so
		// repeating the same request is idempotent.
		updates["is_completed"] = *input.IsCompleted
	}
	if input.ClearDueDate {
		updates["due_date"] = nil
	} else if input.DueDate != nil {
		updates["due_date"] = *input.DueDate
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		updates["priority"] = *input.Priority
	}
	if input.Frequency != nil {
		if !input.Frequency.Valid() {
			return nil, ErrInvalidFrequency
		}
		updates["frequency"] = *input.Frequency
	}

	if len(updates) == 0 {
		return nil, ErrEmptyUpdate
	}

	rows, err := s.taskRepo.UpdateOwned(ownerID, taskID, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if rows == 0 {
		return nil, ErrTaskNotFound
	}

	task, err := s.taskRepo.FindOwned(ownerID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes with the same atomic id+owner predicate.
func (s *TaskService) DeleteTask(ownerID, taskID uint64) error {
	rows, err := s.taskRepo.DeleteOwned(ownerID, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if rows == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// SuggestTasks extracts task candidates from free text. Suggestions are never
// persisted; the client creates tasks from them through CreateTask.
func (s *TaskService) SuggestTasks(ctx context.Context, text string) ([]SuggestedTask, error) {
	if s.aiService == nil {
		return nil, ErrSuggestionsNotAvailable
	}

	suggestions, err := s.aiService.SuggestTasksFromText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest tasks: %w", err)
	}

	if len(suggestions) > constants.MaxSuggestedTasks {
		suggestions = suggestions[:constants.MaxSuggestedTasks]
	}

	valid := make([]SuggestedTask, 0, len(suggestions))
	for _, suggestion := range suggestions {
		if utf8.RuneCountInString(strings.TrimSpace(suggestion.Title)) < constants.MinTitleLength {
			continue
		}
		valid = append(valid, suggestion)
	}

	return valid, nil
}
