package models

import (
	"time"
)

type Student struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID string    `json:"student_id" gorm:"uniqueIndex;not null"` // external identifier
	Name      string    `json:"name" gorm:"not null"`
	ClassName string    `json:"class_name"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Results []TestResult `json:"results,omitempty" gorm:"foreignKey:StudentID"`
}
