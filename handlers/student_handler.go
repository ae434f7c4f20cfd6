package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"wordcat/models"
	"wordcat/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StudentHandler struct {
	studentService *services.StudentService
	sittingService *services.SittingService
	resultService  *services.ResultService
	authService    *services.AuthService
	bank           *services.QuestionBank
}

func NewStudentHandler(
	studentService *services.StudentService,
	sittingService *services.SittingService,
	resultService *services.ResultService,
	authService *services.AuthService,
	bank *services.QuestionBank,
) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		sittingService: sittingService,
		resultService:  resultService,
		authService:    authService,
		bank:           bank,
	}
}

// Register creates or fetches the student for the submitted external id and
// returns an identity token for the rest of the flow.
func (h *StudentHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := h.studentService.Register(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.GenerateStudentToken(student.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"student": student,
		"token":   token,
	})
}

// GetTest issues a sitting for the current student. Passing ?token= re-fetches
// a previously issued sitting so a refresh does not draw a new question set.
func (h *StudentHandler) GetTest(c *gin.Context) {
	studentID, exists := c.Get("student_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Student not authenticated"})
		return
	}

	if token := c.Query("token"); token != "" {
		if sitting := h.sittingService.GetSitting(token); sitting != nil && sitting.StudentID == studentID.(uint) {
			c.JSON(http.StatusOK, sitting)
			return
		}
	}

	sitting := h.sittingService.CreateSitting(studentID.(uint))
	c.JSON(http.StatusOK, sitting)
}

// SubmitTest grades the submitted responses and records the result.
func (h *StudentHandler) SubmitTest(c *gin.Context) {
	studentID, exists := c.Get("student_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Student not authenticated"})
		return
	}

	var req services.SubmitTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scorePercent, correct, total := services.Score(req.Responses, h.bank)

	result, err := h.resultService.Save(studentID.(uint), scorePercent, correct, total, req.TimeTaken, req.Responses)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"score":           math.Round(scorePercent*100) / 100,
		"correct_answers": correct,
		"total_questions": total,
		"time_taken":      req.TimeTaken,
		"result_id":       result.ID,
	})
}

// GetResult fetches a single result by id.
func (h *StudentHandler) GetResult(c *gin.Context) {
	result, ok := h.resultByParam(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetResultDetail returns a result with every response joined against its
// question: selected answer, correct answer, explanation and whether it was
// correct. Responses for unknown question ids are skipped.
func (h *StudentHandler) GetResultDetail(c *gin.Context) {
	result, ok := h.resultByParam(c)
	if !ok {
		return
	}

	type responseDetail struct {
		Question       string   `json:"question"`
		Options        []string `json:"options"`
		SelectedAnswer string   `json:"selected_answer"`
		CorrectAnswer  string   `json:"correct_answer"`
		Explanation    string   `json:"explanation,omitempty"`
		IsCorrect      bool     `json:"is_correct"`
	}

	details := []responseDetail{}
	for _, resp := range result.ParsedResponses() {
		question, found := h.bank.Find(resp.QuestionID)
		if !found {
			continue
		}
		details = append(details, responseDetail{
			Question:       question.Text,
			Options:        question.Options,
			SelectedAnswer: resp.SelectedAnswer,
			CorrectAnswer:  question.CorrectAnswer,
			Explanation:    question.Explanation,
			IsCorrect:      resp.SelectedAnswer == question.CorrectAnswer,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"result":    result,
		"questions": details,
	})
}

// MyResult returns the latest result for the current student.
func (h *StudentHandler) MyResult(c *gin.Context) {
	studentID, exists := c.Get("student_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Student not authenticated"})
		return
	}

	result, err := h.resultService.Latest(studentID.(uint))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No results yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// MyResults returns the full result history for the current student.
func (h *StudentHandler) MyResults(c *gin.Context) {
	studentID, exists := c.Get("student_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Student not authenticated"})
		return
	}

	results, err := h.resultService.History(studentID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *StudentHandler) resultByParam(c *gin.Context) (*models.TestResult, bool) {
	resultID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid result ID"})
		return nil, false
	}

	result, err := h.resultService.GetByID(uint(resultID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}

	return result, true
}
