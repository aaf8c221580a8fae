package model

import "time"

// Achievement thresholds are independent: any single non-zero threshold met by
// the user's current totals unlocks it. A zero threshold means not applicable.
type Achievement struct {
	BaseModel
	Name            string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description     string `gorm:"size:255" json:"description"`
	Icon            string `gorm:"size:50" json:"icon"`
	PointsRequired  int    `gorm:"default:0" json:"points_required,omitempty"`
	CorrectRequired int    `gorm:"default:0" json:"correct_required,omitempty"`
	StreakRequired  int    `gorm:"default:0" json:"streak_required,omitempty"`
}

func (Achievement) TableName() string {
	return "quiz_achievements"
}

// UserAchievement is append-only: an achievement, once earned, is never
// revoked or re-earned.
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint      `gorm:"index:idx_user_achievement,unique;not null" json:"user_id"`
	AchievementID uint      `gorm:"index:idx_user_achievement,unique;not null" json:"achievement_id"`
	EarnedAt      time.Time `json:"earned_date"`
}

func (UserAchievement) TableName() string {
	return "user_quiz_achievements"
}
