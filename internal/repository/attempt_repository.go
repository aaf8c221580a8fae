package repository

import (
	"daily_trivia_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// Create inserts the immutable attempt row. A duplicate (user, question) pair
// surfaces as gorm.ErrDuplicatedKey via the unique index.
func (r *AttemptRepository) Create(tx *gorm.DB, attempt *model.Attempt) error {
	return tx.Create(attempt).Error
}

func (r *AttemptRepository) FindByUserAndQuestion(userID, questionID uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.DB.Where("user_id = ? AND question_id = ?", userID, questionID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) Exists(tx *gorm.DB, userID, questionID uint) (bool, error) {
	var count int64
	err := tx.Model(&model.Attempt{}).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Count(&count).Error
	return count > 0, err
}

func (r *AttemptRepository) CountByQuestion(questionID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Attempt{}).Where("question_id = ?", questionID).Count(&count).Error
	return count, err
}

// FindByUserForQuestions loads the user's attempts for a question set, keyed
// by question id. Used to decorate history rows in one query.
func (r *AttemptRepository) FindByUserForQuestions(userID uint, questionIDs []uint) (map[uint]model.Attempt, error) {
	byQuestion := make(map[uint]model.Attempt, len(questionIDs))
	if len(questionIDs) == 0 {
		return byQuestion, nil
	}
	var attempts []model.Attempt
	err := r.DB.Where("user_id = ? AND question_id IN ?", userID, questionIDs).Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	for _, a := range attempts {
		byQuestion[a.QuestionID] = a
	}
	return byQuestion, nil
}
