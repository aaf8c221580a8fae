package model

import "time"

// Question is the single quiz question scheduled for one calendar day.
// Rows are treated as immutable once attempts exist against them.
type Question struct {
	BaseModel
	Date          time.Time        `gorm:"type:date;uniqueIndex;not null" json:"date"`
	Category      string           `gorm:"size:100;not null" json:"category"`
	Prompt        string           `gorm:"type:text;not null" json:"question"`
	CodeSnippet   string           `gorm:"type:text" json:"code_snippet,omitempty"`
	CorrectAnswer string           `gorm:"size:1;not null" json:"-"`
	Explanation   string           `gorm:"type:text" json:"-"`
	Hint          string           `gorm:"type:text" json:"-"`
	Points        int              `gorm:"default:50" json:"points"`
	Difficulty    string           `gorm:"size:20;default:'medium'" json:"difficulty"`
	CreatedBy     uint             `gorm:"index" json:"-"`
	Options       []QuestionOption `gorm:"constraint:OnDelete:CASCADE" json:"options"`
	Topics        []QuestionTopic  `gorm:"constraint:OnDelete:CASCADE" json:"topics"`
}

func (Question) TableName() string {
	return "quiz_questions"
}

type QuestionOption struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	QuestionID uint   `gorm:"index:idx_question_letter,unique;not null" json:"-"`
	Letter     string `gorm:"size:1;index:idx_question_letter,unique;not null" json:"option_letter"`
	Text       string `gorm:"type:text;not null" json:"option_text"`
}

func (QuestionOption) TableName() string {
	return "quiz_options"
}

type QuestionTopic struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	QuestionID uint   `gorm:"index;not null" json:"-"`
	Topic      string `gorm:"size:100;not null" json:"topic"`
}

func (QuestionTopic) TableName() string {
	return "quiz_topics"
}
