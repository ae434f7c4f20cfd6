package services

import (
	"errors"

	"wordcat/models"

	"gorm.io/gorm"
)

type StudentService struct {
	db *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db}
}

type RegisterRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	ClassName string `json:"class_name"`
}

// Register returns the student with the given external identifier, creating
// it on first sight. An existing record is returned unchanged; the submitted
// name and class are not applied to it.
func (s *StudentService) Register(req *RegisterRequest) (*models.Student, error) {
	var existing models.Student
	err := s.db.Where("student_id = ?", req.StudentID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	student := models.Student{
		StudentID: req.StudentID,
		Name:      req.Name,
		ClassName: req.ClassName,
	}
	if err := s.db.Create(&student).Error; err != nil {
		return nil, err
	}

	return &student, nil
}

func (s *StudentService) GetByID(id uint) (*models.Student, error) {
	var student models.Student
	if err := s.db.First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}
