package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck/taskdeck-api/internal/dto"
	apierrors "github.com/taskdeck/taskdeck-api/internal/errors"
	"github.com/taskdeck/taskdeck-api/internal/middleware"
	"github.com/taskdeck/taskdeck-api/internal/models"
	"github.com/taskdeck/taskdeck-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the current user's tasks, optionally filtered by ?search=
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListTasks(userID, c.Query("search"))
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a new task owned by the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string                `json:"title"`
		Task        string                `json:"task"` // legacy field name for the title
		Description string                `json:"description"`
		DueDate     *time.Time            `json:"dueDate"`
		Priority    *models.TaskPriority  `json:"priority"`
		Frequency   *models.TaskFrequency `json:"frequency"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	title := req.Title
	if title == "" {
		title = req.Task
	}

	task, err := h.taskService.CreateTask(userID, services.CreateTaskInput{
		Title:       title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Frequency:   req.Frequency,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to one of the current user's tasks.
// The body is parsed as raw JSON to tell "field absent" from "field null".
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, err := buildUpdateInput(rawReq)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.UpdateTask(userID, taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes one of the current user's tasks
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(userID, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// SuggestTasks extracts task suggestions from free text
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SuggestRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	suggestions, err := h.taskService.SuggestTasks(c.Request.Context(), req.Text)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
	})
}

func taskIDParam(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return taskID, true
}

// buildUpdateInput maps the raw partial payload onto UpdateTaskInput.
// Unknown fields are ignored; wrongly typed known fields are rejected.
func buildUpdateInput(rawReq map[string]any) (services.UpdateTaskInput, error) {
	var input services.UpdateTaskInput

	if title, ok := fieldValue(rawReq, "title", "task"); ok {
		titleStr, ok := title.(string)
		if !ok {
			return input, errors.New("title must be a string")
		}
		input.Title = &titleStr
	}
	if description, ok := rawReq["description"]; ok {
		descStr, ok := description.(string)
		if !ok {
			return input, errors.New("description must be a string")
		}
		input.Description = &descStr
	}
	if isCompleted, ok := rawReq["isCompleted"]; ok {
		completed, ok := isCompleted.(bool)
		if !ok {
			return input, errors.New("isCompleted must be a boolean")
		}
		input.IsCompleted = &completed
	}
	if dueDate, ok := rawReq["dueDate"]; ok {
		if dueDate == nil {
			input.ClearDueDate = true
		} else {
			dueDateStr, ok := dueDate.(string)
			if !ok {
				return input, errors.New("dueDate must be an ISO8601 string or null")
			}
			parsed, err := time.Parse(time.RFC3339, dueDateStr)
			if err != nil {
				return input, errors.New("dueDate must be an ISO8601 string or null")
			}
			input.DueDate = &parsed
		}
	}
	if priority, ok := rawReq["priority"]; ok {
		priorityStr, ok := priority.(string)
		if !ok {
			return input, errors.New("priority must be a string")
		}
		p := models.TaskPriority(priorityStr)
		input.Priority = &p
	}
	if frequency, ok := rawReq["frequency"]; ok {
		frequencyStr, ok := frequency.(string)
		if !ok {
			return input, errors.New("frequency must be a string")
		}
		f := models.TaskFrequency(frequencyStr)
		input.Frequency = &f
	}

	return input, nil
}

func fieldValue(rawReq map[string]any, names ...string) (any, bool) {
	for _, name := range names {
		if v, ok := rawReq[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleTooShort),
		errors.Is(err, services.ErrEmptyUpdate),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidFrequency):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrSuggestionsNotAvailable):
		apierrors.ServiceUnavailable(c, "Suggestions are not configured. Set OPENAI_API_KEY to enable them.")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
