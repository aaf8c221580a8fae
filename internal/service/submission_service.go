package service

import (
	"context"
	"daily_trivia_backend/internal/model"
	"daily_trivia_backend/internal/repository"
	"daily_trivia_backend/internal/util"
	"daily_trivia_backend/pkg/logger"
	"daily_trivia_backend/pkg/monitoring"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	hintPenalty      = 10
	speedBonusPoints = 10
	// 秒数低于该阈值的正确回答获得速度奖励
	speedBonusWindow = 30

	speedAchievementName = "Speed Demon"
)

type SubmissionService struct {
	DB              *gorm.DB
	QuestionRepo    *repository.QuestionRepository
	AttemptRepo     *repository.AttemptRepository
	LeaderboardRepo *repository.LeaderboardRepository
	AchievementRepo *repository.AchievementRepository
	Hints           *repository.HintStore
}

func NewSubmissionService(
	db *gorm.DB,
	questionRepo *repository.QuestionRepository,
	attemptRepo *repository.AttemptRepository,
	leaderboardRepo *repository.LeaderboardRepository,
	achievementRepo *repository.AchievementRepository,
	hints *repository.HintStore,
) *SubmissionService {
	return &SubmissionService{
		DB:              db,
		QuestionRepo:    questionRepo,
		AttemptRepo:     attemptRepo,
		LeaderboardRepo: leaderboardRepo,
		AchievementRepo: achievementRepo,
		Hints:           hints,
	}
}

type SubmitRequest struct {
	QuestionID     uint   `json:"question_id" binding:"required"`
	SelectedAnswer string `json:"selected_answer" binding:"required"`
	TimeTaken      int    `json:"time_taken"`
}

type AchievementBadge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type SubmitResult struct {
	IsCorrect       bool               `json:"is_correct"`
	CorrectAnswer   string             `json:"correct_answer"`
	Explanation     string             `json:"explanation"`
	PointsEarned    int                `json:"points_earned"`
	Topics          []string           `json:"topics"`
	NewAchievements []AchievementBadge `json:"new_achievements"`
	SpeedBonus      bool               `json:"speed_bonus"`
}

// Submit runs the whole answer workflow in one transaction: attempt insert,
// stats/streak update, rank recomputation and achievement unlocks either all
// commit or none do. A concurrent duplicate loses on the attempt unique index
// and is reported as "already completed" instead of corrupting stats.
func (s *SubmissionService) Submit(ctx context.Context, userID uint, req SubmitRequest) (*SubmitResult, error) {
	hintUsed, err := s.Hints.Used(ctx, userID, req.QuestionID)
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{NewAchievements: []AchievementBadge{}}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		answered, err := s.AttemptRepo.Exists(tx, userID, req.QuestionID)
		if err != nil {
			return err
		}
		if answered {
			return util.ErrAlreadyAnswered
		}

		var question model.Question
		err = tx.Preload("Topics").First(&question, req.QuestionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		if err != nil {
			return err
		}

		isCorrect := req.SelectedAnswer == question.CorrectAnswer
		points := 0
		speedBonus := false
		if isCorrect {
			points = question.Points
			if hintUsed {
				points -= hintPenalty
				if points < 0 {
					points = 0
				}
			}
			if req.TimeTaken < speedBonusWindow {
				points += speedBonusPoints
				speedBonus = true
			}
		}

		attempt := &model.Attempt{
			UserID:         userID,
			QuestionID:     req.QuestionID,
			SelectedAnswer: req.SelectedAnswer,
			IsCorrect:      isCorrect,
			PointsEarned:   points,
			HintUsed:       hintUsed,
		}
		if err := s.AttemptRepo.Create(tx, attempt); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return util.ErrAlreadyAnswered
			}
			return err
		}

		if err := s.applyStats(tx, userID, isCorrect, points); err != nil {
			return err
		}

		if err := s.LeaderboardRepo.RecomputeRanks(tx); err != nil {
			return err
		}

		badges, err := s.evaluateAchievements(tx, userID, speedBonus)
		if err != nil {
			return err
		}

		result.IsCorrect = isCorrect
		result.CorrectAnswer = question.CorrectAnswer
		result.Explanation = question.Explanation
		result.PointsEarned = points
		result.Topics = topicNames(question.Topics)
		result.NewAchievements = badges
		result.SpeedBonus = speedBonus
		return nil
	})
	if err != nil {
		if errors.Is(err, util.ErrAlreadyAnswered) {
			monitoring.SubmissionCounter.WithLabelValues("duplicate").Inc()
		}
		return nil, err
	}

	// 提交后清理提示标记，失败只记录日志
	if err := s.Hints.Clear(ctx, userID, req.QuestionID); err != nil {
		logger.Log.Warn("failed to clear hint flag",
			zap.Uint("user_id", userID),
			zap.Uint("question_id", req.QuestionID),
			zap.Error(err),
		)
	}

	if result.IsCorrect {
		monitoring.SubmissionCounter.WithLabelValues("correct").Inc()
	} else {
		monitoring.SubmissionCounter.WithLabelValues("incorrect").Inc()
	}
	monitoring.AchievementCounter.Add(float64(len(result.NewAchievements)))

	return result, nil
}

// applyStats upserts the user's leaderboard row and runs the day-based streak
// rule: a one-day gap extends the streak, a zero-day gap leaves it unchanged,
// anything else resets it to 1.
func (s *SubmissionService) applyStats(tx *gorm.DB, userID uint, isCorrect bool, points int) error {
	today := util.DateOnly(time.Now())

	entry, err := s.LeaderboardRepo.FindByUserIDTx(tx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = &model.LeaderboardEntry{
			UserID:          userID,
			TotalPoints:     points,
			TotalAttempted:  1,
			CurrentStreak:   1,
			LongestStreak:   1,
			LastAttemptDate: today,
		}
		if isCorrect {
			entry.TotalCorrect = 1
		}
		return s.LeaderboardRepo.Create(tx, entry)
	}
	if err != nil {
		return err
	}

	streak := 1
	switch util.DayGap(entry.LastAttemptDate, today) {
	case 1:
		streak = entry.CurrentStreak + 1
	case 0:
		streak = entry.CurrentStreak
	}

	entry.CurrentStreak = streak
	if streak > entry.LongestStreak {
		entry.LongestStreak = streak
	}
	entry.TotalPoints += points
	entry.TotalAttempted++
	if isCorrect {
		entry.TotalCorrect++
	}
	entry.LastAttemptDate = today

	return s.LeaderboardRepo.Update(tx, entry)
}

// evaluateAchievements unlocks the one-shot speed achievement when this
// submission earned the speed bonus, then every other unearned achievement
// whose points, correct-count or streak threshold the user now meets.
// Thresholds are independent: any single satisfied one triggers the unlock.
func (s *SubmissionService) evaluateAchievements(tx *gorm.DB, userID uint, speedBonus bool) ([]AchievementBadge, error) {
	badges := []AchievementBadge{}

	entry, err := s.LeaderboardRepo.FindByUserIDTx(tx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return badges, nil
	}
	if err != nil {
		return nil, err
	}

	if speedBonus {
		speed, err := s.AchievementRepo.FindByName(tx, speedAchievementName)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if speed != nil {
			earned, err := s.AchievementRepo.HasEarned(tx, userID, speed.ID)
			if err != nil {
				return nil, err
			}
			if !earned {
				if err := s.unlock(tx, userID, speed); err != nil {
					return nil, err
				}
				badges = append(badges, badge(speed))
			}
		}
	}

	unearned, err := s.AchievementRepo.FindUnearnedByUser(tx, userID)
	if err != nil {
		return nil, err
	}

	for i := range unearned {
		a := &unearned[i]
		satisfied := (a.PointsRequired > 0 && entry.TotalPoints >= a.PointsRequired) ||
			(a.CorrectRequired > 0 && entry.TotalCorrect >= a.CorrectRequired) ||
			(a.StreakRequired > 0 && entry.CurrentStreak >= a.StreakRequired)
		if !satisfied {
			continue
		}
		if err := s.unlock(tx, userID, a); err != nil {
			return nil, err
		}
		badges = append(badges, badge(a))
	}

	return badges, nil
}

func (s *SubmissionService) unlock(tx *gorm.DB, userID uint, a *model.Achievement) error {
	return s.AchievementRepo.CreateUserAchievement(tx, &model.UserAchievement{
		UserID:        userID,
		AchievementID: a.ID,
		EarnedAt:      time.Now(),
	})
}

func badge(a *model.Achievement) AchievementBadge {
	return AchievementBadge{
		Name:        a.Name,
		Description: a.Description,
		Icon:        a.Icon,
	}
}

func topicNames(topics []model.QuestionTopic) []string {
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Topic
	}
	return names
}
