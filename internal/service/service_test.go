package service

import (
	"daily_trivia_backend/internal/model"
	"daily_trivia_backend/internal/repository"
	"daily_trivia_backend/internal/util"
	"path/filepath"
	"testing"
	"time"

	"daily_trivia_backend/pkg/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db           *gorm.DB
	hints        *repository.HintStore
	quiz         *QuizService
	submission   *SubmissionService
	leaderboard  *LeaderboardService
	achievements *AchievementService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// _txlock=immediate makes concurrent transactions queue on the write lock
	// instead of failing with SQLITE_BUSY mid-transaction
	dsn := filepath.Join(t.TempDir(), "quiz.db") + "?_busy_timeout=5000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         glogger.Default.LogMode(glogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	questionRepo := repository.NewQuestionRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)
	userRepo := repository.NewUserRepository(db)
	hints := repository.NewHintStore(rdb)

	return &testEnv{
		db:           db,
		hints:        hints,
		quiz:         NewQuizService(db, questionRepo, attemptRepo, hints),
		submission:   NewSubmissionService(db, questionRepo, attemptRepo, leaderboardRepo, achievementRepo, hints),
		leaderboard:  NewLeaderboardService(leaderboardRepo, achievementRepo, userRepo),
		achievements: NewAchievementService(achievementRepo),
	}
}

func (e *testEnv) createQuestion(t *testing.T, date time.Time, correct string, points int, hint string) *model.Question {
	t.Helper()

	q := &model.Question{
		Date:          util.DateOnly(date),
		Category:      "go",
		Prompt:        "What does the blank identifier do?",
		CorrectAnswer: correct,
		Explanation:   "It discards a value.",
		Hint:          hint,
		Points:        points,
		Difficulty:    "medium",
		Options: []model.QuestionOption{
			{Letter: "A", Text: "Discards a value"},
			{Letter: "B", Text: "Declares a variable"},
			{Letter: "C", Text: "Imports a package"},
			{Letter: "D", Text: "Panics"},
		},
		Topics: []model.QuestionTopic{{Topic: "syntax"}},
	}
	if err := e.db.Create(q).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}
	return q
}

func (e *testEnv) createUser(t *testing.T, name string) *model.User {
	t.Helper()

	u := &model.User{Name: name, Email: name + "@example.com", Password: "x", Role: model.RoleUser}
	if err := e.db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (e *testEnv) stats(t *testing.T, userID uint) *model.LeaderboardEntry {
	t.Helper()

	var entry model.LeaderboardEntry
	if err := e.db.Where("user_id = ?", userID).First(&entry).Error; err != nil {
		t.Fatalf("load stats for user %d: %v", userID, err)
	}
	return &entry
}

func (e *testEnv) setLastAttemptDate(t *testing.T, userID uint, date time.Time) {
	t.Helper()

	err := e.db.Model(&model.LeaderboardEntry{}).
		Where("user_id = ?", userID).
		Update("last_attempt_date", util.DateOnly(date)).Error
	if err != nil {
		t.Fatalf("set last attempt date: %v", err)
	}
}

func hasBadge(badges []AchievementBadge, name string) bool {
	for _, b := range badges {
		if b.Name == name {
			return true
		}
	}
	return false
}
