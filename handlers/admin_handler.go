package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"wordcat/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	authService      *services.AuthService
	analyticsService *services.AnalyticsService
	resultService    *services.ResultService
}

func NewAdminHandler(
	authService *services.AuthService,
	analyticsService *services.AnalyticsService,
	resultService *services.ResultService,
) *AdminHandler {
	return &AdminHandler{
		authService:      authService,
		analyticsService: analyticsService,
		resultService:    resultService,
	}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req services.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.AdminLogin(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Dashboard returns the overall counters plus every result joined with its
// student, newest first.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	summary, err := h.analyticsService.Dashboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// QuestionAnalysis returns per-question difficulty, hardest first.
func (h *AdminHandler) QuestionAnalysis(c *gin.Context) {
	analysis, err := h.analyticsService.QuestionAnalysis()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// StudentAnalysis returns per-student performance, best average first.
func (h *AdminHandler) StudentAnalysis(c *gin.Context) {
	performance, err := h.analyticsService.StudentAnalysis()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, performance)
}

// CategoryAnalysis returns per-category accuracy, hardest category first.
func (h *AdminHandler) CategoryAnalysis(c *gin.Context) {
	analysis, err := h.analyticsService.CategoryAnalysis()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// QuestionDetail drills into a single question's answer distribution.
func (h *AdminHandler) QuestionDetail(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	detail, err := h.analyticsService.QuestionDetail(questionID)
	if err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ExportData streams every result joined with student identity as CSV.
func (h *AdminHandler) ExportData(c *gin.Context) {
	results, err := h.resultService.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data, err := services.ExportResultsCSV(results)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=test_results.csv")
	c.Data(http.StatusOK, "text/csv", data)
}
