package services

import (
	"encoding/json"
	"fmt"
	"time"

	"wordcat/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ResultService struct {
	db *gorm.DB
}

func NewResultService(db *gorm.DB) *ResultService {
	return &ResultService{db: db}
}

type SubmitTestRequest struct {
	SittingToken string            `json:"sitting_token"`
	Responses    []models.Response `json:"responses"`
	TimeTaken    int               `json:"time_taken"`
}

// Save appends one immutable result row for a completed sitting.
func (s *ResultService) Save(studentID uint, scorePercent float64, correct, total, timeTaken int, responses []models.Response) (*models.TestResult, error) {
	payload, err := json.Marshal(responses)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal responses: %w", err)
	}

	result := models.TestResult{
		StudentID:      studentID,
		Score:          scorePercent,
		TotalQuestions: total,
		CorrectAnswers: correct,
		TimeTaken:      timeTaken,
		CompletedAt:    time.Now().UTC(),
		Responses:      datatypes.JSON(payload),
	}
	if err := s.db.Create(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *ResultService) GetByID(id uint) (*models.TestResult, error) {
	var result models.TestResult
	if err := s.db.Preload("Student").First(&result, id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// Latest returns the student's most recently completed result.
func (s *ResultService) Latest(studentID uint) (*models.TestResult, error) {
	var result models.TestResult
	err := s.db.Where("student_id = ?", studentID).
		Order("completed_at DESC").
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// History returns every result for the student, newest first.
func (s *ResultService) History(studentID uint) ([]models.TestResult, error) {
	var results []models.TestResult
	err := s.db.Where("student_id = ?", studentID).
		Order("completed_at DESC").
		Find(&results).Error
	return results, err
}

// All returns every stored result with its owning student loaded. Analytics
// and export recompute from this on each call; nothing is cached.
func (s *ResultService) All() ([]models.TestResult, error) {
	var results []models.TestResult
	err := s.db.Preload("Student").Find(&results).Error
	return results, err
}
