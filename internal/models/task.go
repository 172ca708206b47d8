package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// Valid reports whether p is one of the known priority values.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type TaskFrequency string

const (
	FrequencyDaily   TaskFrequency = "DAILY"
	FrequencyWeekly  TaskFrequency = "WEEKLY"
	FrequencyMonthly TaskFrequency = "MONTHLY"
)

// Valid reports whether f is one of the known frequency values.
func (f TaskFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Task is a single owner-scoped todo item. OwnerID is set from the
// authenticated session at creation and never reassigned.
type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	OwnerID     uint64         `gorm:"not null;index" json:"ownerId"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	IsCompleted bool           `gorm:"not null;default:false" json:"isCompleted"`
	DueDate     *time.Time     `json:"dueDate"`
	Priority    *TaskPriority  `gorm:"type:varchar(10)" json:"priority"`
	Frequency   *TaskFrequency `gorm:"type:varchar(10)" json:"frequency"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}
