package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/justinharry4/qz-trivia-api/internal/models"

	"gorm.io/gorm"
)

type ScoringService struct {
	db *gorm.DB
}

func NewScoringService(db *gorm.DB) *ScoringService {
	return &ScoringService{db: db}
}

// AnswerInput is one submitted answer. OptionID 0 means the question was
// skipped.
type AnswerInput struct {
	QuestionID     uint
	OptionID       uint
	QuestionNumber int
}

type QuizView struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type QuestionView struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
}

type OptionView struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
}

type AnsweredQuestionView struct {
	ID             uint          `json:"id"`
	Question       QuestionView  `json:"question"`
	SelectedOption *OptionView   `json:"selected_option"`
	CorrectOption  *OptionView   `json:"correct_option"`
	QuestionNumber int           `json:"question_number"`
}

type ResultView struct {
	ID                uint                   `json:"id"`
	Quiz              QuizView               `json:"quiz"`
	AnsweredQuestions []AnsweredQuestionView `json:"answered_questions"`
	TotalAnswered     int                    `json:"total_answered"`
	TotalCorrect      int                    `json:"total_correct"`
	PercentageScore   float64                `json:"percentage_score"`
}

// Submit validates a batch of answers and, when valid, creates the Result
// and its AnsweredQuestions in one transaction. Validation collects every
// violation rather than stopping at the first.
func (s *ScoringService) Submit(quizID uint, answers []AnswerInput, duration *int64) (*ResultView, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	if errs, err := s.validate(quizID, answers); err != nil {
		return nil, err
	} else if len(errs) > 0 {
		return nil, errs
	}

	tx := s.db.Begin()
	result := models.Result{QuizID: quizID, Duration: duration}
	if err := tx.Create(&result).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	answered := make([]models.AnsweredQuestion, 0, len(answers))
	for _, answer := range answers {
		var selected *uint
		if answer.OptionID != 0 {
			optionID := answer.OptionID
			selected = &optionID
		}
		answered = append(answered, models.AnsweredQuestion{
			ResultID:         result.ID,
			QuestionID:       answer.QuestionID,
			SelectedOptionID: selected,
			PositionInQuiz:   answer.QuestionNumber,
		})
	}
	if err := tx.Create(&answered).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.Retrieve(quizID, result.ID)
}

func (s *ScoringService) validate(quizID uint, answers []AnswerInput) (ValidationErrors, error) {
	errs := ValidationErrors{}

	if len(answers) == 0 {
		errs["answered_questions"] = "this field must be a list of one or more items"
		return errs, nil
	}

	questionIDs := make([]uint, 0, len(answers))
	optionIDs := make([]uint, 0, len(answers))
	seenQuestions := make(map[uint]bool)
	seenOptions := make(map[uint]bool)
	seenNumbers := make(map[int]bool)
	duplicateNumber := false

	for _, answer := range answers {
		if !seenQuestions[answer.QuestionID] {
			seenQuestions[answer.QuestionID] = true
			questionIDs = append(questionIDs, answer.QuestionID)
		}
		if answer.OptionID != 0 && !seenOptions[answer.OptionID] {
			seenOptions[answer.OptionID] = true
			optionIDs = append(optionIDs, answer.OptionID)
		}
		if seenNumbers[answer.QuestionNumber] {
			duplicateNumber = true
		}
		seenNumbers[answer.QuestionNumber] = true
	}

	var questionCount int64
	if err := s.db.Model(&models.Question{}).
		Where("id IN ?", questionIDs).
		Count(&questionCount).Error; err != nil {
		return nil, err
	}
	if int(questionCount) < len(questionIDs) {
		errs["question_id"] = "one or more invalid question ids were passed"
	} else {
		var quizQuestionCount int64
		if err := s.db.Model(&models.Question{}).
			Where("id IN ? AND quiz_id = ?", questionIDs, quizID).
			Count(&quizQuestionCount).Error; err != nil {
			return nil, err
		}
		if int(quizQuestionCount) < len(questionIDs) {
			errs["question_id"] = fmt.Sprintf("one or more question ids do not belong to quiz %d", quizID)
		}
	}

	if len(optionIDs) > 0 {
		var optionCount int64
		if err := s.db.Model(&models.Option{}).
			Where("id IN ?", optionIDs).
			Count(&optionCount).Error; err != nil {
			return nil, err
		}
		if int(optionCount) < len(optionIDs) {
			errs["option_id"] = "one or more invalid option ids were passed"
		}
	}

	if duplicateNumber {
		errs["question_number"] = "question numbers must be unique"
	}

	return errs, nil
}

// Retrieve returns the result with its answers in attempt order, each
// paired with its question, selected option and the question's correct
// option, plus the derived accuracy statistics.
func (s *ScoringService) Retrieve(quizID, resultID uint) (*ResultView, error) {
	var result models.Result
	err := s.db.Where("id = ? AND quiz_id = ?", resultID, quizID).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}

	var quiz models.Quiz
	if err := s.db.First(&quiz, result.QuizID).Error; err != nil {
		return nil, err
	}

	var answered []models.AnsweredQuestion
	if err := s.db.Where("result_id = ?", result.ID).
		Order("position_in_quiz ASC").
		Preload("Question.Options").
		Preload("SelectedOption").
		Find(&answered).Error; err != nil {
		return nil, err
	}

	view := ResultView{
		ID:                result.ID,
		Quiz:              QuizView{ID: quiz.ID, Title: quiz.Title},
		AnsweredQuestions: make([]AnsweredQuestionView, 0, len(answered)),
		TotalAnswered:     len(answered),
	}

	for _, entry := range answered {
		answerView := AnsweredQuestionView{
			ID:             entry.ID,
			Question:       QuestionView{ID: entry.Question.ID, Content: entry.Question.Content},
			QuestionNumber: entry.PositionInQuiz,
		}

		for _, option := range entry.Question.Options {
			if option.IsCorrect {
				answerView.CorrectOption = &OptionView{ID: option.ID, Content: option.Content}
				break
			}
		}
		if entry.SelectedOption != nil {
			answerView.SelectedOption = &OptionView{ID: entry.SelectedOption.ID, Content: entry.SelectedOption.Content}
			if answerView.CorrectOption != nil && entry.SelectedOption.ID == answerView.CorrectOption.ID {
				view.TotalCorrect++
			}
		}

		view.AnsweredQuestions = append(view.AnsweredQuestions, answerView)
	}

	if view.TotalAnswered > 0 {
		score := float64(view.TotalCorrect) / float64(view.TotalAnswered) * 100
		view.PercentageScore = math.Round(score*10) / 10
	}

	return &view, nil
}
