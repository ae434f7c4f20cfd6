package services

import (
	"os"
	"path/filepath"
	"testing"
)

func writeBankFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write question file: %v", err)
	}
	return path
}

const validBank = `[
	{"id": 1, "question": "Capital of France?", "options": ["Paris", "Lyon"], "correct_answer": "Paris", "category": "geography"},
	{"id": 2, "question": "2 + 2?", "options": ["3", "4", "5"], "correct_answer": "4", "category": "math", "explanation": "Basic addition."}
]`

func TestLoadQuestionBank(t *testing.T) {
	bank, err := LoadQuestionBank(writeBankFile(t, validBank))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bank.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", bank.Len())
	}

	q, ok := bank.Find(1)
	if !ok {
		t.Fatal("expected to find question 1")
	}
	if q.CorrectAnswer != "Paris" {
		t.Errorf("expected correct answer %q, got %q", "Paris", q.CorrectAnswer)
	}
	if q.Category != "geography" {
		t.Errorf("expected category %q, got %q", "geography", q.Category)
	}

	if _, ok := bank.Find(999); ok {
		t.Error("expected question 999 to be absent")
	}
}

func TestLoadQuestionBank_AllPreservesFileOrder(t *testing.T) {
	bank, err := LoadQuestionBank(writeBankFile(t, validBank))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := bank.All()
	if all[0].ID != 1 || all[1].ID != 2 {
		t.Errorf("expected file order [1 2], got [%d %d]", all[0].ID, all[1].ID)
	}
}

func TestLoadQuestionBank_MissingFile(t *testing.T) {
	if _, err := LoadQuestionBank(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadQuestionBank_Malformed(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"invalid json", `{"not": "an array"`},
		{"wrong shape", `{"not": "an array"}`},
		{"empty array", `[]`},
		{"duplicate id", `[
			{"id": 1, "question": "a?", "options": ["x", "y"], "correct_answer": "x", "category": "c"},
			{"id": 1, "question": "b?", "options": ["x", "y"], "correct_answer": "y", "category": "c"}
		]`},
		{"no options", `[{"id": 1, "question": "a?", "options": [], "correct_answer": "x", "category": "c"}]`},
		{"correct answer not an option", `[{"id": 1, "question": "a?", "options": ["x", "y"], "correct_answer": "z", "category": "c"}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadQuestionBank(writeBankFile(t, tc.content)); err == nil {
				t.Error("expected load to fail")
			}
		})
	}
}
