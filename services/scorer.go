package services

import (
	"wordcat/models"
)

// Score grades submitted responses against the bank. A response whose
// question id does not resolve is skipped entirely and does not count toward
// the total. Option comparison is exact and case-sensitive.
//
// The returned percentage is 100*correct/total, or 0 when nothing was
// gradable.
func Score(responses []models.Response, bank *QuestionBank) (scorePercent float64, correct int, total int) {
	for _, resp := range responses {
		question, ok := bank.Find(resp.QuestionID)
		if !ok {
			continue
		}
		total++
		if resp.SelectedAnswer == question.CorrectAnswer {
			correct++
		}
	}

	if total == 0 {
		return 0, correct, total
	}
	return float64(correct) / float64(total) * 100, correct, total
}
