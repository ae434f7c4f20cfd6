package services

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"wordcat/models"
)

// ExportResultsCSV renders every result, joined with its owning student, as a
// CSV document. With no results the output is just the header line.
func ExportResultsCSV(results []models.TestResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	_ = w.Write([]string{
		"Student ID", "Student Name", "Class", "Test Date",
		"Score", "Correct Answers", "Total Questions", "Time Taken",
	})

	for _, r := range results {
		rec := []string{
			r.Student.StudentID,
			r.Student.Name,
			r.Student.ClassName,
			r.CompletedAt.Format(time.RFC3339),
			strconv.FormatFloat(r.Score, 'f', 2, 64),
			strconv.Itoa(r.CorrectAnswers),
			strconv.Itoa(r.TotalQuestions),
			strconv.Itoa(r.TimeTaken),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
