package services

import (
	"fmt"
	"testing"

	"github.com/justinharry4/qz-trivia-api/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Admin{},
		&models.Quiz{},
		&models.Question{},
		&models.Option{},
		&models.Result{},
		&models.AnsweredQuestion{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

// seedQuiz creates a quiz with the given number of questions, each carrying
// one correct option followed by two incorrect ones.
func seedQuiz(t *testing.T, db *gorm.DB, title string, questionCount int) models.Quiz {
	t.Helper()

	quiz := models.Quiz{Title: title, QuestionsPerAttempt: models.DefaultQuestionsPerAttempt}
	if err := db.Create(&quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	for i := 0; i < questionCount; i++ {
		question := models.Question{
			QuizID:  quiz.ID,
			Content: fmt.Sprintf("%s question %d", title, i+1),
		}
		if err := db.Create(&question).Error; err != nil {
			t.Fatalf("create question: %v", err)
		}

		options := []models.Option{
			{QuestionID: question.ID, Content: "right answer", IsCorrect: true},
			{QuestionID: question.ID, Content: "wrong answer one"},
			{QuestionID: question.ID, Content: "wrong answer two"},
		}
		if err := db.Create(&options).Error; err != nil {
			t.Fatalf("create options: %v", err)
		}
	}

	return quiz
}

func loadQuestions(t *testing.T, db *gorm.DB, quizID uint) []models.Question {
	t.Helper()

	var questions []models.Question
	if err := db.Where("quiz_id = ?", quizID).Preload("Options").Find(&questions).Error; err != nil {
		t.Fatalf("load questions: %v", err)
	}
	return questions
}

func correctOption(t *testing.T, question models.Question) models.Option {
	t.Helper()

	for _, option := range question.Options {
		if option.IsCorrect {
			return option
		}
	}
	t.Fatalf("question %d has no correct option", question.ID)
	return models.Option{}
}

func incorrectOption(t *testing.T, question models.Question) models.Option {
	t.Helper()

	for _, option := range question.Options {
		if !option.IsCorrect {
			return option
		}
	}
	t.Fatalf("question %d has no incorrect option", question.ID)
	return models.Option{}
}
