package services

import (
	"errors"
	"testing"
	"time"

	"wordcat/models"

	"gorm.io/gorm"
)

func seedStudent(t *testing.T, db *gorm.DB, externalID string) *models.Student {
	t.Helper()
	student, err := NewStudentService(db).Register(&RegisterRequest{StudentID: externalID, Name: "Student " + externalID})
	if err != nil {
		t.Fatalf("failed to seed student: %v", err)
	}
	return student
}

func TestSaveAndGetByID(t *testing.T) {
	db := testDB(t)
	svc := NewResultService(db)
	student := seedStudent(t, db, "S1")

	responses := []models.Response{
		{QuestionID: 1, SelectedAnswer: "Paris"},
		{QuestionID: 2, SelectedAnswer: "5"},
	}

	saved, err := svc.Save(student.ID, 50.0, 1, 2, 120, responses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("expected an assigned result id")
	}

	fetched, err := svc.GetByID(saved.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched.Score != 50.0 || fetched.CorrectAnswers != 1 || fetched.TotalQuestions != 2 || fetched.TimeTaken != 120 {
		t.Errorf("unexpected result: %+v", fetched)
	}
	if fetched.Student.StudentID != "S1" {
		t.Errorf("expected owning student to be loaded, got %+v", fetched.Student)
	}

	parsed := fetched.ParsedResponses()
	if len(parsed) != 2 {
		t.Fatalf("expected 2 stored responses, got %d", len(parsed))
	}
	if parsed[0].QuestionID != 1 || parsed[0].SelectedAnswer != "Paris" {
		t.Errorf("unexpected first response: %+v", parsed[0])
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewResultService(testDB(t))

	_, err := svc.GetByID(12345)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestLatest(t *testing.T) {
	db := testDB(t)
	svc := NewResultService(db)
	student := seedStudent(t, db, "S1")

	// No results yet
	if _, err := svc.Latest(student.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected not-found before any results, got %v", err)
	}

	older, err := svc.Save(student.ID, 40, 2, 5, 60, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Force a clearly earlier timestamp on the first result
	db.Model(older).Update("completed_at", time.Now().UTC().Add(-time.Hour))

	newer, err := svc.Save(student.ID, 80, 4, 5, 45, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	latest, err := svc.Latest(student.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest.ID != newer.ID {
		t.Errorf("expected latest result %d, got %d", newer.ID, latest.ID)
	}
}

func TestHistory_NewestFirst(t *testing.T) {
	db := testDB(t)
	svc := NewResultService(db)
	student := seedStudent(t, db, "S1")
	other := seedStudent(t, db, "S2")

	first, _ := svc.Save(student.ID, 40, 2, 5, 60, nil)
	db.Model(first).Update("completed_at", time.Now().UTC().Add(-time.Hour))
	second, _ := svc.Save(student.ID, 80, 4, 5, 45, nil)
	svc.Save(other.ID, 100, 5, 5, 30, nil)

	history, err := svc.History(student.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 results, got %d", len(history))
	}
	if history[0].ID != second.ID || history[1].ID != first.ID {
		t.Errorf("expected newest first [%d %d], got [%d %d]", second.ID, first.ID, history[0].ID, history[1].ID)
	}
}

func TestAll_LoadsStudents(t *testing.T) {
	db := testDB(t)
	svc := NewResultService(db)

	ada := seedStudent(t, db, "S1")
	ben := seedStudent(t, db, "S2")
	svc.Save(ada.ID, 50, 1, 2, 10, nil)
	svc.Save(ben.ID, 100, 2, 2, 10, nil)

	all, err := svc.All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 results, got %d", len(all))
	}
	for _, r := range all {
		if r.Student.StudentID == "" {
			t.Errorf("expected student preloaded on result %d", r.ID)
		}
	}
}
