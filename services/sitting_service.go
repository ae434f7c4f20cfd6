package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"time"

	"wordcat/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SittingService draws randomized question sets for test sittings and caches
// issued sittings in Redis so a page refresh re-serves the same draw instead
// of a fresh one.
type SittingService struct {
	bank  *QuestionBank
	redis *redis.Client
	size  int
}

func NewSittingService(bank *QuestionBank, redisClient *redis.Client, size int) *SittingService {
	return &SittingService{
		bank:  bank,
		redis: redisClient,
		size:  size,
	}
}

type Sitting struct {
	Token     string            `json:"token"`
	StudentID uint              `json:"student_id"`
	Questions []SittingQuestion `json:"questions"`
	IssuedAt  time.Time         `json:"issued_at"`
}

type SittingQuestion struct {
	ID       int      `json:"id"`
	Text     string   `json:"question"`
	Options  []string `json:"options"`
	Category string   `json:"category"`
	// Don't include the correct answer or explanation while the test is live
}

// Draw picks a uniform random sample without replacement of min(size, bank
// size) questions. Each call is independent; there is no repeat-avoidance
// across sittings.
func (s *SittingService) Draw(size int) []models.Question {
	all := s.bank.All()
	if size > len(all) {
		size = len(all)
	}
	if size < 0 {
		size = 0
	}

	picked := make([]models.Question, 0, size)
	for _, idx := range rand.Perm(len(all))[:size] {
		picked = append(picked, all[idx])
	}
	return picked
}

// CreateSitting draws a question set for the student and caches it under a
// fresh token. A cache failure is logged and otherwise ignored; the sitting
// is still usable, it just cannot be re-fetched.
func (s *SittingService) CreateSitting(studentID uint) *Sitting {
	questions := s.Draw(s.size)

	sitting := &Sitting{
		Token:     uuid.NewString(),
		StudentID: studentID,
		Questions: make([]SittingQuestion, 0, len(questions)),
		IssuedAt:  time.Now().UTC(),
	}
	for _, q := range questions {
		sitting.Questions = append(sitting.Questions, SittingQuestion{
			ID:       q.ID,
			Text:     q.Text,
			Options:  q.Options,
			Category: q.Category,
		})
	}

	if err := s.storeSitting(sitting); err != nil {
		log.Printf("Failed to store sitting %s in Redis: %v", sitting.Token, err)
	}

	return sitting
}

// GetSitting returns the cached sitting for a token, or nil when the token is
// unknown or expired.
func (s *SittingService) GetSitting(token string) *Sitting {
	if s.redis == nil {
		return nil
	}

	data, err := s.redis.Get(context.Background(), "sitting:"+token).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis error getting sitting %s: %v", token, err)
		}
		return nil
	}

	var sitting Sitting
	if err := json.Unmarshal([]byte(data), &sitting); err != nil {
		log.Printf("Failed to unmarshal sitting %s: %v", token, err)
		return nil
	}
	return &sitting
}

func (s *SittingService) storeSitting(sitting *Sitting) error {
	if s.redis == nil {
		return nil
	}

	data, err := json.Marshal(sitting)
	if err != nil {
		return fmt.Errorf("failed to marshal sitting: %v", err)
	}

	// Sittings expire after 2 hours
	err = s.redis.Set(context.Background(), "sitting:"+sitting.Token, data, 2*time.Hour).Err()
	if err != nil {
		return fmt.Errorf("failed to store in Redis: %v", err)
	}
	return nil
}
