package models

// Exactly one option per question carries IsCorrect = true. Seed data
// always supplies one correct answer plus several incorrect ones.
type Option struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Content    string `gorm:"size:255;not null" json:"content"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"is_correct"`
}
