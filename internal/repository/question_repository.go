package repository

import (
	"daily_trivia_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("Options", orderOptions).Preload("Topics").First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) FindByDate(date time.Time) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("Options", orderOptions).Preload("Topics").
		Where("date = ?", date).
		First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) ExistsForDate(date time.Time) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("date = ?", date).Count(&count).Error
	return count > 0, err
}

// Create inserts the question together with its options and topics.
func (r *QuestionRepository) Create(tx *gorm.DB, q *model.Question) error {
	return tx.Create(q).Error
}

// History lists questions scheduled before today, newest first. The filters
// are expressed as EXISTS subqueries against the caller's attempts so each
// variant stays a single parameterized query.
func (r *QuestionRepository) History(userID uint, filter string, today time.Time, limit, offset int) ([]model.Question, error) {
	query := r.DB.Preload("Options", orderOptions).Preload("Topics").
		Where("date < ?", today)

	attempted := r.DB.Model(&model.Attempt{}).
		Select("1").
		Where("user_quiz_attempts.question_id = quiz_questions.id AND user_quiz_attempts.user_id = ?", userID)

	switch filter {
	case "completed":
		query = query.Where("EXISTS (?)", attempted)
	case "missed":
		query = query.Where("NOT EXISTS (?)", attempted)
	case "perfect":
		correct := r.DB.Model(&model.Attempt{}).
			Select("1").
			Where("user_quiz_attempts.question_id = quiz_questions.id AND user_quiz_attempts.user_id = ? AND user_quiz_attempts.is_correct = ?", userID, true)
		query = query.Where("EXISTS (?)", correct)
	}

	var questions []model.Question
	err := query.Order("date DESC").Limit(limit).Offset(offset).Find(&questions).Error
	return questions, err
}

func orderOptions(db *gorm.DB) *gorm.DB {
	return db.Order("quiz_options.letter ASC")
}
