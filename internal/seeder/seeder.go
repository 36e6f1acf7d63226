package seeder

import (
	"fmt"
	"html"
	"log"

	"github.com/justinharry4/qz-trivia-api/internal/models"
	"github.com/justinharry4/qz-trivia-api/internal/opentdb"

	"gorm.io/gorm"
)

// TriviaClient is the slice of the trivia source client the seeder drives.
type TriviaClient interface {
	FetchCategories() ([]opentdb.Category, error)
	AcquireSessionToken() error
	FetchQuestions(categoryID, amount int) ([]opentdb.RawQuestion, error)
}

// Seeder drives the trivia client across all categories and persists one
// quiz per category. It is meant to run as a single sequential offline job;
// concurrent runs would trip the source's global rate limit.
type Seeder struct {
	db     *gorm.DB
	client TriviaClient
}

func New(db *gorm.DB, client TriviaClient) *Seeder {
	return &Seeder{db: db, client: client}
}

// Run seeds one quiz per trivia category, fetching at most maxQuestions
// questions each. A single category's failure is logged and skipped; only
// the initial category-list and token-acquisition steps are fatal, since
// without them no categories are known.
func (s *Seeder) Run(maxQuestions int) error {
	log.Println("seeding database...")

	categories, err := s.client.FetchCategories()
	if err != nil {
		return fmt.Errorf("fetch categories: %w", err)
	}
	if err := s.client.AcquireSessionToken(); err != nil {
		return fmt.Errorf("acquire session token: %w", err)
	}

	log.Printf("quiz data for %d categories to be written to the database", len(categories))

	var quizCount, questionCount, optionCount, skipped int
	for _, category := range categories {
		amount := maxQuestions
		if category.QuestionCount < amount {
			amount = category.QuestionCount
		}
		if amount <= 0 {
			log.Printf("category %q has no verified questions, skipping", category.Name)
			skipped++
			continue
		}

		raw, err := s.client.FetchQuestions(category.ID, amount)
		if err != nil {
			log.Printf("category %q skipped: %v", category.Name, err)
			skipped++
			continue
		}
		if len(raw) == 0 {
			log.Printf("category %q returned no questions, skipping", category.Name)
			skipped++
			continue
		}

		questions, options, err := s.createQuiz(category.Name, raw)
		if err != nil {
			log.Printf("category %q skipped: %v", category.Name, err)
			skipped++
			continue
		}

		quizCount++
		questionCount += questions
		optionCount += options
		log.Printf("%q quiz data written to db successfully", category.Name)
	}

	log.Printf(
		"%d quiz(zes), %d question(s) and %d option(s) added, %d categor(ies) skipped",
		quizCount, questionCount, optionCount, skipped,
	)
	return nil
}

// createQuiz writes one category's quiz, questions and options as a single
// all-or-nothing transaction. Options are paired with their question by
// slice position: the batch insert fills question ids in input order, so no
// content-based correlation is needed.
func (s *Seeder) createQuiz(title string, raw []opentdb.RawQuestion) (int, int, error) {
	tx := s.db.Begin()

	quiz := models.Quiz{
		Title:               title,
		QuestionsPerAttempt: models.DefaultQuestionsPerAttempt,
	}
	if err := tx.Create(&quiz).Error; err != nil {
		tx.Rollback()
		return 0, 0, err
	}

	questions := make([]models.Question, len(raw))
	for i, payload := range raw {
		questions[i] = models.Question{
			QuizID:  quiz.ID,
			Content: html.UnescapeString(payload.Question),
		}
	}
	if err := tx.Create(&questions).Error; err != nil {
		tx.Rollback()
		return 0, 0, err
	}

	var options []models.Option
	for i, payload := range raw {
		options = append(options, models.Option{
			QuestionID: questions[i].ID,
			Content:    html.UnescapeString(payload.CorrectAnswer),
			IsCorrect:  true,
		})
		for _, incorrect := range payload.IncorrectAnswers {
			options = append(options, models.Option{
				QuestionID: questions[i].ID,
				Content:    html.UnescapeString(incorrect),
			})
		}
	}
	if err := tx.Create(&options).Error; err != nil {
		tx.Rollback()
		return 0, 0, err
	}

	if err := tx.Commit().Error; err != nil {
		return 0, 0, err
	}
	return len(questions), len(options), nil
}

// Clear deletes all quiz data, attempt records included.
func (s *Seeder) Clear() error {
	log.Println("deleting all quiz, question, option and result data...")

	tx := s.db.Begin()
	for _, model := range []any{
		&models.AnsweredQuestion{},
		&models.Result{},
		&models.Option{},
		&models.Question{},
		&models.Quiz{},
	} {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	log.Println("bulk delete completed")
	return nil
}
