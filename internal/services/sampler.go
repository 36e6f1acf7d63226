package services

import (
	"errors"
	"math/rand"

	"github.com/justinharry4/qz-trivia-api/internal/models"

	"gorm.io/gorm"
)

type SamplerService struct {
	db *gorm.DB
}

func NewSamplerService(db *gorm.DB) *SamplerService {
	return &SamplerService{db: db}
}

// SampledOption deliberately omits is_correct: answers are never exposed on
// the question-serving path.
type SampledOption struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
}

type SampledQuestion struct {
	ID      uint            `json:"id"`
	Content string          `json:"content"`
	Options []SampledOption `json:"options"`
}

// SampleQuestions draws min(N, questions_per_attempt) questions uniformly
// at random without replacement, with each question's options independently
// shuffled. Randomization happens here rather than in the storage query, so
// every request gets a fresh draw regardless of backend.
func (s *SamplerService) SampleQuestions(quizID uint) ([]SampledQuestion, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	var questions []models.Question
	if err := s.db.Where("quiz_id = ?", quizID).
		Preload("Options").
		Find(&questions).Error; err != nil {
		return nil, err
	}

	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	count := quiz.QuestionsPerAttempt
	if count > len(questions) {
		count = len(questions)
	}

	sampled := make([]SampledQuestion, 0, count)
	for _, question := range questions[:count] {
		options := make([]SampledOption, 0, len(question.Options))
		for _, option := range question.Options {
			options = append(options, SampledOption{ID: option.ID, Content: option.Content})
		}
		rand.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		sampled = append(sampled, SampledQuestion{
			ID:      question.ID,
			Content: question.Content,
			Options: options,
		})
	}

	return sampled, nil
}
