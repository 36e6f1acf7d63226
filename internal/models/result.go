package models

import "time"

// Result is an immutable attempt record. It and its answered questions are
// created in one transaction and never updated afterwards.
type Result struct {
	ID                uint               `gorm:"primaryKey" json:"id"`
	QuizID            uint               `gorm:"not null;index" json:"quiz_id"`
	Duration          *int64             `json:"duration,omitempty"`
	AnsweredQuestions []AnsweredQuestion `gorm:"foreignKey:ResultID;constraint:OnDelete:CASCADE" json:"answered_questions,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
}

// AnsweredQuestion records one answer within an attempt. A null
// SelectedOptionID means the question was skipped. No two answers in the
// same attempt may share a position.
type AnsweredQuestion struct {
	ID               uint     `gorm:"primaryKey" json:"id"`
	ResultID         uint     `gorm:"not null;uniqueIndex:idx_result_position" json:"result_id"`
	QuestionID       uint     `gorm:"not null" json:"question_id"`
	Question         Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	SelectedOptionID *uint    `json:"selected_option_id,omitempty"`
	SelectedOption   *Option  `gorm:"foreignKey:SelectedOptionID" json:"selected_option,omitempty"`
	PositionInQuiz   int      `gorm:"not null;uniqueIndex:idx_result_position" json:"position_in_quiz"`
}
