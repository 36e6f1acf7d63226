package services

import (
	"errors"

	"github.com/justinharry4/qz-trivia-api/internal/models"

	"gorm.io/gorm"
)

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListQuizzes returns all quizzes, truncated when limit is positive.
func (s *CatalogService) ListQuizzes(limit int) ([]models.Quiz, error) {
	query := s.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var quizzes []models.Quiz
	if err := query.Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (s *CatalogService) GetQuiz(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// DeleteQuiz removes a quiz together with its questions, options and
// attempt records in one transaction.
func (s *CatalogService) DeleteQuiz(quizID uint) error {
	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuizNotFound
		}
		return err
	}

	tx := s.db.Begin()
	if err := tx.Where("question_id IN (SELECT id FROM questions WHERE quiz_id = ?)", quizID).
		Delete(&models.Option{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("result_id IN (SELECT id FROM results WHERE quiz_id = ?)", quizID).
		Delete(&models.AnsweredQuestion{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Result{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&quiz).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
