package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// TestResult is one completed sitting. Rows are written once and never
// updated afterwards.
type TestResult struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	StudentID      uint           `json:"student_id" gorm:"not null;index"`
	Score          float64        `json:"score" gorm:"not null"`
	TotalQuestions int            `json:"total_questions" gorm:"not null"`
	CorrectAnswers int            `json:"correct_answers" gorm:"not null"`
	TimeTaken      int            `json:"time_taken"` // seconds
	CompletedAt    time.Time      `json:"completed_at" gorm:"index"`
	Responses      datatypes.JSON `json:"responses"`

	// Relationships
	Student Student `json:"student,omitempty"`
}

// Response is a single submitted answer within a sitting.
type Response struct {
	QuestionID     int    `json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
}

// ParsedResponses decodes the stored responses blob. A malformed blob yields
// an empty slice rather than an error; nothing downstream can act on it.
func (r *TestResult) ParsedResponses() []Response {
	var responses []Response
	if err := json.Unmarshal(r.Responses, &responses); err != nil {
		return nil
	}
	return responses
}
