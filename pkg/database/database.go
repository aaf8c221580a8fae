package database

import (
	"daily_trivia_backend/internal/config"
	"daily_trivia_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs schema migration and seeds the default achievement catalog.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.QuestionOption{},
		&model.QuestionTopic{},
		&model.Attempt{},
		&model.LeaderboardEntry{},
		&model.Achievement{},
		&model.UserAchievement{},
	)
	if err != nil {
		return err
	}

	return seedAchievements(db)
}

// seedAchievements inserts the default catalog. FirstOrCreate keys on name so
// reruns are no-ops and operators can still edit thresholds in place.
func seedAchievements(db *gorm.DB) error {
	defaults := []model.Achievement{
		{Name: "Speed Demon", Description: "Answered correctly in under 30 seconds!", Icon: "⚡"},
		{Name: "First Steps", Description: "Answer your first question correctly", Icon: "🎯", CorrectRequired: 1},
		{Name: "Sharp Shooter", Description: "Answer 10 questions correctly", Icon: "🏹", CorrectRequired: 10},
		{Name: "Quiz Master", Description: "Answer 50 questions correctly", Icon: "🎓", CorrectRequired: 50},
		{Name: "Point Collector", Description: "Earn 500 total points", Icon: "💰", PointsRequired: 500},
		{Name: "Point Hoarder", Description: "Earn 2000 total points", Icon: "💎", PointsRequired: 2000},
		{Name: "Week Warrior", Description: "Keep a 7 day streak", Icon: "🔥", StreakRequired: 7},
		{Name: "Monthly Devotee", Description: "Keep a 30 day streak", Icon: "🏆", StreakRequired: 30},
	}

	for _, a := range defaults {
		if err := db.Where(model.Achievement{Name: a.Name}).FirstOrCreate(&a).Error; err != nil {
			return err
		}
	}
	return nil
}
