package models

import "time"

const (
	DefaultQuestionsPerAttempt = 15
	MinQuestionsPerAttempt     = 1
	MaxQuestionsPerAttempt     = 150
)

type Quiz struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	Title               string     `gorm:"size:255;not null" json:"title"`
	Description         *string    `gorm:"type:text" json:"description"`
	CoverImage          *string    `gorm:"size:500" json:"cover_image"`
	QuestionsPerAttempt int        `gorm:"not null;default:15" json:"question_count"`
	Questions           []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
