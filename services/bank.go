package services

import (
	"encoding/json"
	"fmt"
	"os"

	"wordcat/models"
)

// QuestionBank holds every question available for tests. It is populated once
// by LoadQuestionBank and read-only afterwards, so lookups need no locking.
type QuestionBank struct {
	questions []models.Question
	byID      map[int]*models.Question
}

// LoadQuestionBank reads and validates the question file. Any failure here is
// treated as fatal by the caller; the server cannot run without a bank.
func LoadQuestionBank(path string) (*QuestionBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question file: %w", err)
	}

	var questions []models.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("failed to parse question file %s: %w", path, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("question file %s contains no questions", path)
	}

	bank := &QuestionBank{
		questions: questions,
		byID:      make(map[int]*models.Question, len(questions)),
	}

	for i := range bank.questions {
		q := &bank.questions[i]
		if _, exists := bank.byID[q.ID]; exists {
			return nil, fmt.Errorf("duplicate question id %d in %s", q.ID, path)
		}
		if len(q.Options) == 0 {
			return nil, fmt.Errorf("question %d has no options", q.ID)
		}
		if !containsOption(q.Options, q.CorrectAnswer) {
			return nil, fmt.Errorf("question %d: correct answer %q is not one of its options", q.ID, q.CorrectAnswer)
		}
		bank.byID[q.ID] = q
	}

	return bank, nil
}

// Find returns the question with the given id, if the bank has it.
func (b *QuestionBank) Find(id int) (*models.Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// All returns the questions in file order.
func (b *QuestionBank) All() []models.Question {
	return b.questions
}

func (b *QuestionBank) Len() int {
	return len(b.questions)
}

func containsOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
