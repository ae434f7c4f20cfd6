package services

import (
	"errors"
	"sort"
	"time"

	"wordcat/models"

	"gorm.io/gorm"
)

var ErrQuestionNotFound = errors.New("question not found")

// AnalyticsService computes the admin aggregation views. Every view is fully
// recomputed from the result store on each call; the aggregation itself is in
// pure functions over ([]TestResult, *QuestionBank) so it can be tested with
// synthetic data.
type AnalyticsService struct {
	db   *gorm.DB
	bank *QuestionBank
}

func NewAnalyticsService(db *gorm.DB, bank *QuestionBank) *AnalyticsService {
	return &AnalyticsService{db: db, bank: bank}
}

type AnswerCount struct {
	Answer string `json:"answer"`
	Count  int    `json:"count"`
}

type QuestionStats struct {
	QuestionID        int           `json:"question_id"`
	QuestionText      string        `json:"question_text"`
	Category          string        `json:"category"`
	CorrectAnswer     string        `json:"correct_answer"`
	Explanation       string        `json:"explanation,omitempty"`
	TotalAttempts     int           `json:"total_attempts"`
	CorrectAttempts   int           `json:"correct_attempts"`
	IncorrectAttempts int           `json:"incorrect_attempts"`
	SuccessRate       float64       `json:"success_rate"`
	FailureRate       float64       `json:"failure_rate"`
	TopWrongAnswers   []AnswerCount `json:"top_wrong_answers"`
}

type QuestionAnalysis struct {
	Questions          []QuestionStats `json:"questions"`
	TotalQuestions     int             `json:"total_questions"`
	QuestionsWithData  int             `json:"questions_with_data"`
	TotalResponses     int             `json:"total_responses"`
	OverallSuccessRate float64         `json:"overall_success_rate"`
}

type CategoryAccuracy struct {
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
}

type StudentPerformance struct {
	Student           models.Student              `json:"student"`
	AverageScore      float64                     `json:"avg_score"`
	BestScore         float64                     `json:"best_score"`
	WorstScore        float64                     `json:"worst_score"`
	TotalTests        int                         `json:"total_tests"`
	CategoryAccuracy  map[string]CategoryAccuracy `json:"category_performance"`
	WeakestCategory   string                      `json:"weakest_category,omitempty"`
	StrongestCategory string                      `json:"strongest_category,omitempty"`
}

type CategoryStats struct {
	Category         string  `json:"category"`
	TotalResponses   int     `json:"total_responses"`
	CorrectAnswers   int     `json:"correct_answers"`
	IncorrectAnswers int     `json:"incorrect_answers"`
	SuccessRate      float64 `json:"success_rate"`
	UniqueQuestions  int     `json:"unique_questions"`
	AvgPerQuestion   float64 `json:"avg_per_question"`
}

type CategoryAnalysis struct {
	Categories         []CategoryStats `json:"categories"`
	TotalAttempts      int             `json:"total_attempts"`
	OverallSuccessRate float64         `json:"overall_success_rate"`
}

type WrongAttempt struct {
	Student        models.Student `json:"student"`
	SelectedAnswer string         `json:"selected_answer"`
	TestDate       time.Time      `json:"test_date"`
	Score          float64        `json:"score"`
}

type QuestionDetail struct {
	Question           models.Question `json:"question"`
	AnswerDistribution map[string]int  `json:"answer_distribution"`
	WrongAnswers       []AnswerCount   `json:"wrong_answers"`
	StudentsWrong      []WrongAttempt  `json:"students_wrong"`
	TotalAttempts      int             `json:"total_attempts"`
	CorrectAttempts    int             `json:"correct_attempts"`
	SuccessRate        float64         `json:"success_rate"`
}

type DashboardSummary struct {
	TotalStudents int64               `json:"total_students"`
	TotalTests    int64               `json:"total_tests"`
	AverageScore  float64             `json:"avg_score"`
	Results       []models.TestResult `json:"results"`
}

func (s *AnalyticsService) QuestionAnalysis() (*QuestionAnalysis, error) {
	results, err := s.allResults()
	if err != nil {
		return nil, err
	}
	return BuildQuestionAnalysis(results, s.bank), nil
}

func (s *AnalyticsService) StudentAnalysis() ([]StudentPerformance, error) {
	var students []models.Student
	if err := s.db.Find(&students).Error; err != nil {
		return nil, err
	}
	results, err := s.allResults()
	if err != nil {
		return nil, err
	}
	return BuildStudentPerformance(students, results, s.bank), nil
}

func (s *AnalyticsService) CategoryAnalysis() (*CategoryAnalysis, error) {
	results, err := s.allResults()
	if err != nil {
		return nil, err
	}
	return BuildCategoryAnalysis(results, s.bank), nil
}

func (s *AnalyticsService) QuestionDetail(questionID int) (*QuestionDetail, error) {
	results, err := s.allResults()
	if err != nil {
		return nil, err
	}
	return BuildQuestionDetail(questionID, results, s.bank)
}

func (s *AnalyticsService) Dashboard() (*DashboardSummary, error) {
	summary := &DashboardSummary{}

	if err := s.db.Model(&models.Student{}).Count(&summary.TotalStudents).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.TestResult{}).Count(&summary.TotalTests).Error; err != nil {
		return nil, err
	}

	err := s.db.Preload("Student").
		Order("completed_at DESC").
		Find(&summary.Results).Error
	if err != nil {
		return nil, err
	}

	if len(summary.Results) > 0 {
		sum := 0.0
		for _, r := range summary.Results {
			sum += r.Score
		}
		summary.AverageScore = sum / float64(len(summary.Results))
	}

	return summary, nil
}

func (s *AnalyticsService) allResults() ([]models.TestResult, error) {
	var results []models.TestResult
	err := s.db.Preload("Student").Find(&results).Error
	return results, err
}

// BuildQuestionAnalysis aggregates every stored response by question.
// Questions are sorted hardest first (failure rate descending, id ascending
// on ties); wrong answers are ranked by count descending with ties broken
// lexicographically so the output is deterministic.
func BuildQuestionAnalysis(results []models.TestResult, bank *QuestionBank) *QuestionAnalysis {
	type counts struct {
		total   int
		correct int
		wrong   map[string]int
	}
	perQuestion := make(map[int]*counts)
	totalResponses := 0

	for _, result := range results {
		responses := result.ParsedResponses()
		totalResponses += len(responses)

		for _, resp := range responses {
			question, ok := bank.Find(resp.QuestionID)
			if !ok {
				continue
			}

			c := perQuestion[question.ID]
			if c == nil {
				c = &counts{wrong: make(map[string]int)}
				perQuestion[question.ID] = c
			}

			c.total++
			if resp.SelectedAnswer == question.CorrectAnswer {
				c.correct++
			} else {
				c.wrong[resp.SelectedAnswer]++
			}
		}
	}

	analysis := &QuestionAnalysis{
		Questions:         make([]QuestionStats, 0, len(perQuestion)),
		TotalQuestions:    bank.Len(),
		QuestionsWithData: len(perQuestion),
		TotalResponses:    totalResponses,
	}

	rateSum := 0.0
	for id, c := range perQuestion {
		question, _ := bank.Find(id)

		stats := QuestionStats{
			QuestionID:        id,
			QuestionText:      question.Text,
			Category:          question.Category,
			CorrectAnswer:     question.CorrectAnswer,
			Explanation:       question.Explanation,
			TotalAttempts:     c.total,
			CorrectAttempts:   c.correct,
			IncorrectAttempts: c.total - c.correct,
			TopWrongAnswers:   topAnswers(c.wrong, 3),
		}
		stats.SuccessRate = float64(c.correct) / float64(c.total) * 100
		stats.FailureRate = 100 - stats.SuccessRate
		rateSum += stats.SuccessRate

		analysis.Questions = append(analysis.Questions, stats)
	}

	sort.Slice(analysis.Questions, func(i, j int) bool {
		a, b := analysis.Questions[i], analysis.Questions[j]
		if a.FailureRate != b.FailureRate {
			return a.FailureRate > b.FailureRate
		}
		return a.QuestionID < b.QuestionID
	})

	if len(analysis.Questions) > 0 {
		analysis.OverallSuccessRate = rateSum / float64(len(analysis.Questions))
	}

	return analysis
}

// BuildStudentPerformance aggregates per-student score statistics and
// per-category accuracy. Students with no results are omitted. Output is
// sorted by average score descending, external id ascending on ties.
func BuildStudentPerformance(students []models.Student, results []models.TestResult, bank *QuestionBank) []StudentPerformance {
	byStudent := make(map[uint][]models.TestResult)
	for _, result := range results {
		byStudent[result.StudentID] = append(byStudent[result.StudentID], result)
	}

	performance := make([]StudentPerformance, 0, len(students))
	for _, student := range students {
		studentResults := byStudent[student.ID]
		if len(studentResults) == 0 {
			continue
		}

		perf := StudentPerformance{
			Student:          student,
			BestScore:        studentResults[0].Score,
			WorstScore:       studentResults[0].Score,
			TotalTests:       len(studentResults),
			CategoryAccuracy: make(map[string]CategoryAccuracy),
		}

		sum := 0.0
		categoryCounts := make(map[string]*CategoryAccuracy)
		for _, result := range studentResults {
			sum += result.Score
			if result.Score > perf.BestScore {
				perf.BestScore = result.Score
			}
			if result.Score < perf.WorstScore {
				perf.WorstScore = result.Score
			}

			for _, resp := range result.ParsedResponses() {
				question, ok := bank.Find(resp.QuestionID)
				if !ok {
					continue
				}
				acc := categoryCounts[question.Category]
				if acc == nil {
					acc = &CategoryAccuracy{}
					categoryCounts[question.Category] = acc
				}
				acc.Total++
				if resp.SelectedAnswer == question.CorrectAnswer {
					acc.Correct++
				}
			}
		}
		perf.AverageScore = sum / float64(len(studentResults))

		for category, acc := range categoryCounts {
			acc.Accuracy = float64(acc.Correct) / float64(acc.Total) * 100
			perf.CategoryAccuracy[category] = *acc
		}
		perf.WeakestCategory, perf.StrongestCategory = extremeCategories(perf.CategoryAccuracy)

		performance = append(performance, perf)
	}

	sort.Slice(performance, func(i, j int) bool {
		a, b := performance[i], performance[j]
		if a.AverageScore != b.AverageScore {
			return a.AverageScore > b.AverageScore
		}
		return a.Student.StudentID < b.Student.StudentID
	})

	return performance
}

// BuildCategoryAnalysis groups every stored response by the category of its
// question. Categories are sorted hardest first (success rate ascending,
// name ascending on ties). The overall figure is the unweighted mean of the
// per-category success rates, so low-volume categories count the same as
// high-volume ones.
func BuildCategoryAnalysis(results []models.TestResult, bank *QuestionBank) *CategoryAnalysis {
	type counts struct {
		total     int
		correct   int
		questions map[int]struct{}
	}
	perCategory := make(map[string]*counts)

	for _, result := range results {
		for _, resp := range result.ParsedResponses() {
			question, ok := bank.Find(resp.QuestionID)
			if !ok {
				continue
			}

			c := perCategory[question.Category]
			if c == nil {
				c = &counts{questions: make(map[int]struct{})}
				perCategory[question.Category] = c
			}

			c.total++
			c.questions[question.ID] = struct{}{}
			if resp.SelectedAnswer == question.CorrectAnswer {
				c.correct++
			}
		}
	}

	analysis := &CategoryAnalysis{
		Categories: make([]CategoryStats, 0, len(perCategory)),
	}

	rateSum := 0.0
	for category, c := range perCategory {
		stats := CategoryStats{
			Category:         category,
			TotalResponses:   c.total,
			CorrectAnswers:   c.correct,
			IncorrectAnswers: c.total - c.correct,
			SuccessRate:      float64(c.correct) / float64(c.total) * 100,
			UniqueQuestions:  len(c.questions),
			AvgPerQuestion:   float64(c.total) / float64(len(c.questions)),
		}
		rateSum += stats.SuccessRate
		analysis.TotalAttempts += c.total
		analysis.Categories = append(analysis.Categories, stats)
	}

	sort.Slice(analysis.Categories, func(i, j int) bool {
		a, b := analysis.Categories[i], analysis.Categories[j]
		if a.SuccessRate != b.SuccessRate {
			return a.SuccessRate < b.SuccessRate
		}
		return a.Category < b.Category
	})

	if len(analysis.Categories) > 0 {
		analysis.OverallSuccessRate = rateSum / float64(len(analysis.Categories))
	}

	return analysis
}

// BuildQuestionDetail drills into one question: how every recorded attempt
// answered it, and which students got it wrong.
func BuildQuestionDetail(questionID int, results []models.TestResult, bank *QuestionBank) (*QuestionDetail, error) {
	question, ok := bank.Find(questionID)
	if !ok {
		return nil, ErrQuestionNotFound
	}

	detail := &QuestionDetail{
		Question:           *question,
		AnswerDistribution: make(map[string]int),
	}

	for _, result := range results {
		for _, resp := range result.ParsedResponses() {
			if resp.QuestionID != questionID {
				continue
			}

			detail.AnswerDistribution[resp.SelectedAnswer]++
			detail.TotalAttempts++
			if resp.SelectedAnswer == question.CorrectAnswer {
				detail.CorrectAttempts++
				continue
			}

			detail.StudentsWrong = append(detail.StudentsWrong, WrongAttempt{
				Student:        result.Student,
				SelectedAnswer: resp.SelectedAnswer,
				TestDate:       result.CompletedAt,
				Score:          result.Score,
			})
		}
	}

	wrong := make(map[string]int, len(detail.AnswerDistribution))
	for answer, count := range detail.AnswerDistribution {
		if answer != question.CorrectAnswer {
			wrong[answer] = count
		}
	}
	detail.WrongAnswers = topAnswers(wrong, len(wrong))

	if detail.TotalAttempts > 0 {
		detail.SuccessRate = float64(detail.CorrectAttempts) / float64(detail.TotalAttempts) * 100
	}

	return detail, nil
}

// topAnswers ranks answers by count descending, value ascending on ties, and
// keeps at most limit entries.
func topAnswers(counts map[string]int, limit int) []AnswerCount {
	ranked := make([]AnswerCount, 0, len(counts))
	for answer, count := range counts {
		ranked = append(ranked, AnswerCount{Answer: answer, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Answer < ranked[j].Answer
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// extremeCategories picks the lowest- and highest-accuracy categories, with
// ties broken lexicographically on the category name.
func extremeCategories(accuracy map[string]CategoryAccuracy) (weakest, strongest string) {
	categories := make([]string, 0, len(accuracy))
	for category := range accuracy {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		acc := accuracy[category]
		if weakest == "" || acc.Accuracy < accuracy[weakest].Accuracy {
			weakest = category
		}
		if strongest == "" || acc.Accuracy > accuracy[strongest].Accuracy {
			strongest = category
		}
	}
	return weakest, strongest
}
