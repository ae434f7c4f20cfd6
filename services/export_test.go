package services

import (
	"strings"
	"testing"
	"time"

	"wordcat/models"
)

func TestExportResultsCSV_Empty(t *testing.T) {
	data, err := ExportResultsCSV(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only the header line, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Student ID,Student Name,Class") {
		t.Errorf("unexpected header: %q", lines[0])
	}
}

func TestExportResultsCSV(t *testing.T) {
	completed := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	results := []models.TestResult{
		{
			Student:        models.Student{StudentID: "S1", Name: "Ada Lovelace", ClassName: "7B"},
			Score:          83.33,
			TotalQuestions: 30,
			CorrectAnswers: 25,
			TimeTaken:      540,
			CompletedAt:    completed,
		},
	}

	data, err := ExportResultsCSV(results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}

	want := "S1,Ada Lovelace,7B,2024-05-01T10:30:00Z,83.33,25,30,540"
	if lines[1] != want {
		t.Errorf("expected row %q, got %q", want, lines[1])
	}
}
