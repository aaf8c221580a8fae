package model

import "time"

// Attempt records a user's single submission for a question.
// The composite unique index enforces at most one attempt per (user, question),
// including under concurrent submissions.
type Attempt struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint      `gorm:"index:idx_user_question,unique;not null" json:"user_id"`
	QuestionID     uint      `gorm:"index:idx_user_question,unique;not null" json:"question_id"`
	SelectedAnswer string    `gorm:"size:1;not null" json:"selected_answer"`
	IsCorrect      bool      `gorm:"not null" json:"is_correct"`
	PointsEarned   int       `gorm:"not null" json:"points_earned"`
	HintUsed       bool      `gorm:"not null" json:"hint_used"`
	CreatedAt      time.Time `json:"attempt_date"`
}

func (Attempt) TableName() string {
	return "user_quiz_attempts"
}
