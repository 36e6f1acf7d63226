package services

import (
	"errors"
	"testing"

	"github.com/justinharry4/qz-trivia-api/internal/models"
)

func TestSubmitComputesAccuracyStatistics(t *testing.T) {
	db := newTestDB(t)
	quiz := seedQuiz(t, db, "capitals", 4)
	questions := loadQuestions(t, db, quiz.ID)
	scoring := NewScoringService(db)

	answers := make([]AnswerInput, 0, 4)
	for i, question := range questions {
		option := correctOption(t, question)
		if i == 3 {
			option = incorrectOption(t, question)
		}
		answers = append(answers, AnswerInput{
			QuestionID:     question.ID,
			OptionID:       option.ID,
			QuestionNumber: i + 1,
		})
	}

	view, err := scoring.Submit(quiz.ID, answers, nil)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if view.TotalAnswered != 4 {
		t.Fatalf("expected total_answered 4, got %d", view.TotalAnswered)
	}
	if view.TotalCorrect != 3 {
		t.Fatalf("expected total_correct 3, got %d", view.TotalCorrect)
	}
	if view.PercentageScore != 75.0 {
		t.Fatalf("expected percentage_score 75.0, got %v", view.PercentageScore)
	}
	if view.Quiz.ID != quiz.ID {
		t.Fatalf("expected quiz id %d, got %d", quiz.ID, view.Quiz.ID)
	}
}

func TestSubmitDuplicateQuestionNumberCreatesNothing(t *testing.T) {
	db := newTestDB(t)
	quiz := seedQuiz(t, db, "history", 2)
	questions := loadQuestions(t, db, quiz.ID)
	scoring := NewScoringService(db)

	answers := []AnswerInput{
		{QuestionID: questions[0].ID, OptionID: correctOption(t, questions[0]).ID, QuestionNumber: 1},
		{QuestionID: questions[1].ID, OptionID: correctOption(t, questions[1]).ID, QuestionNumber: 1},
	}

	_, err := scoring.Submit(quiz.ID, answers, nil)

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if _, ok := verrs["question_number"]; !ok {
		t.Fatalf("expected question_number violation, got %v", verrs)
	}

	var resultCount int64
	db.Model(&models.Result{}).Count(&resultCount)
	if resultCount != 0 {
		t.Fatalf("expected no result rows after failed validation, got %d", resultCount)
	}
}

func TestSubmitSkippedAnswerCountsAsAnsweredNotCorrect(t *testing.T) {
	db := newTestDB(t)
	quiz := seedQuiz(t, db, "science", 2)
	questions := loadQuestions(t, db, quiz.ID)
	scoring := NewScoringService(db)

	answers := []AnswerInput{
		{QuestionID: questions[0].ID, OptionID: correctOption(t, questions[0]).ID, QuestionNumber: 1},
		{QuestionID: questions[1].ID, OptionID: 0, QuestionNumber: 2},
	}

	view, err := scoring.Submit(quiz.ID, answers, nil)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if view.TotalAnswered != 2 {
		t.Fatalf("expected total_answered 2, got %d", view.TotalAnswered)
	}
	if view.TotalCorrect != 1 {
		t.Fatalf("expected total_correct 1, got %d", view.TotalCorrect)
	}

	skipped := view.AnsweredQuestions[1]
	if skipped.SelectedOption != nil {
		t.Fatalf("expected null selected option for skipped answer, got %+v", skipped.SelectedOption)
	}
	if skipped.CorrectOption == nil {
		t.Fatalf("expected correct option to be present for skipped answer")
	}

	var stored models.AnsweredQuestion
	if err := db.Where("result_id = ? AND position_in_quiz = 2", view.ID).First(&stored).Error; err != nil {
		t.Fatalf("load skipped answer: %v", err)
	}
	if stored.SelectedOptionID != nil {
		t.Fatalf("expected NULL selected_option_id, got %v", *stored.SelectedOptionID)
	}
}

func TestSubmitCollectsAllViolations(t *testing.T) {
	db := newTestDB(t)
	quiz := seedQuiz(t, db, "geography", 1)
	questions := loadQuestions(t, db, quiz.ID)
	scoring := NewScoringService(db)

	answers := []AnswerInput{
		{QuestionID: questions[0].ID, OptionID: 99999, QuestionNumber: 1},
		{QuestionID: 99999, OptionID: 0, QuestionNumber: 1},
	}

	_, err := scoring.Submit(quiz.ID, answers, nil)

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	for _, field := range []string{"question_id", "option_id", "question_number"} {
		if _, ok := verrs[field]; !ok {
			t.Fatalf("expected %s violation, got %v", field, verrs)
		}
	}
}

func TestSubmitEmptyListFailsValidation(t *testing.T) {
	db := newTestDB(t)
	quiz := seedQuiz(t, db, "sports", 1)
	scoring := NewScoringService(db)

	_, err := scoring.Submit(quiz.ID, nil, nil)

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if _, ok := verrs["answered_questions"]; !ok {
		t.Fatalf("expected answered_questions violation, got %v", verrs)
	}
}

func TestSubmitRejectsQuestionFromAnotherQuiz(t *testing.T) {
	db := newTestDB(t)
	quiz := seedQuiz(t, db, "films", 1)
	other := seedQuiz(t, db, "music", 1)
	otherQuestions := loadQuestions(t, db, other.ID)
	scoring := NewScoringService(db)

	answers := []AnswerInput{
		{QuestionID: otherQuestions[0].ID, OptionID: 0, QuestionNumber: 1},
	}

	_, err := scoring.Submit(quiz.ID, answers, nil)

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if _, ok := verrs["question_id"]; !ok {
		t.Fatalf("expected question_id violation, got %v", verrs)
	}
}

func TestSubmitUnknownQuizIsNotFound(t *testing.T) {
	db := newTestDB(t)
	scoring := NewScoringService(db)

	_, err := scoring.Submit(42, []AnswerInput{{QuestionID: 1, QuestionNumber: 1}}, nil)
	if !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestRetrieveOrdersAnswersByPosition(t *testing.T) {
	db := newTestDB(t)
	quiz := seedQuiz(t, db, "art", 3)
	questions := loadQuestions(t, db, quiz.ID)
	scoring := NewScoringService(db)

	answers := []AnswerInput{
		{QuestionID: questions[0].ID, OptionID: 0, QuestionNumber: 3},
		{QuestionID: questions[1].ID, OptionID: 0, QuestionNumber: 1},
		{QuestionID: questions[2].ID, OptionID: 0, QuestionNumber: 2},
	}

	view, err := scoring.Submit(quiz.ID, answers, nil)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	for i, entry := range view.AnsweredQuestions {
		if entry.QuestionNumber != i+1 {
			t.Fatalf("expected ascending question numbers, got %+v", view.AnsweredQuestions)
		}
	}
}

func TestRetrieveEmptyResultScoresZero(t *testing.T) {
	db := newTestDB(t)
	quiz := seedQuiz(t, db, "empty", 1)
	scoring := NewScoringService(db)

	result := models.Result{QuizID: quiz.ID}
	if err := db.Create(&result).Error; err != nil {
		t.Fatalf("create result: %v", err)
	}

	view, err := scoring.Retrieve(quiz.ID, result.ID)
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if view.PercentageScore != 0 {
		t.Fatalf("expected percentage_score 0 for empty result, got %v", view.PercentageScore)
	}
}

func TestRetrieveUnknownResultIsNotFound(t *testing.T) {
	db := newTestDB(t)
	quiz := seedQuiz(t, db, "lonely", 1)
	other := seedQuiz(t, db, "stranger", 1)
	scoring := NewScoringService(db)

	if _, err := scoring.Retrieve(quiz.ID, 999); !errors.Is(err, ErrResultNotFound) {
		t.Fatalf("expected ErrResultNotFound, got %v", err)
	}

	// A result must not be reachable through another quiz's id.
	result := models.Result{QuizID: quiz.ID}
	if err := db.Create(&result).Error; err != nil {
		t.Fatalf("create result: %v", err)
	}
	if _, err := scoring.Retrieve(other.ID, result.ID); !errors.Is(err, ErrResultNotFound) {
		t.Fatalf("expected ErrResultNotFound for wrong quiz, got %v", err)
	}
}
