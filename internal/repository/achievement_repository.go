package repository

import (
	"daily_trivia_backend/internal/model"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) FindAll() ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Order("id ASC").Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) FindByName(tx *gorm.DB, name string) (*model.Achievement, error) {
	var a model.Achievement
	err := tx.Where("name = ?", name).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindUnearnedByUser returns achievements the user has not earned yet.
func (r *AchievementRepository) FindUnearnedByUser(tx *gorm.DB, userID uint) ([]model.Achievement, error) {
	earned := tx.Model(&model.UserAchievement{}).
		Select("achievement_id").
		Where("user_id = ?", userID)

	var achievements []model.Achievement
	err := tx.Where("id NOT IN (?)", earned).Order("id ASC").Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) HasEarned(tx *gorm.DB, userID, achievementID uint) (bool, error) {
	var count int64
	err := tx.Model(&model.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error
	return count > 0, err
}

func (r *AchievementRepository) CreateUserAchievement(tx *gorm.DB, ua *model.UserAchievement) error {
	return tx.Create(ua).Error
}

func (r *AchievementRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserAchievement{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *AchievementRepository) CountByUsers(userIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(userIDs))
	if len(userIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		UserID uint
		Total  int64
	}
	err := r.DB.Model(&model.UserAchievement{}).
		Select("user_id, COUNT(*) AS total").
		Where("user_id IN ?", userIDs).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.UserID] = row.Total
	}
	return counts, nil
}

func (r *AchievementRepository) FindEarnedByUser(userID uint) ([]model.UserAchievement, error) {
	var earned []model.UserAchievement
	err := r.DB.Where("user_id = ?", userID).Order("earned_at DESC").Find(&earned).Error
	return earned, err
}
