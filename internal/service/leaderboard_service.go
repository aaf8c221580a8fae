package service

import (
	"daily_trivia_backend/internal/repository"
	"daily_trivia_backend/internal/util"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
)

type LeaderboardService struct {
	LeaderboardRepo *repository.LeaderboardRepository
	AchievementRepo *repository.AchievementRepository
	UserRepo        *repository.UserRepository
}

func NewLeaderboardService(
	leaderboardRepo *repository.LeaderboardRepository,
	achievementRepo *repository.AchievementRepository,
	userRepo *repository.UserRepository,
) *LeaderboardService {
	return &LeaderboardService{
		LeaderboardRepo: leaderboardRepo,
		AchievementRepo: achievementRepo,
		UserRepo:        userRepo,
	}
}

type UserStats struct {
	Username          string `json:"username,omitempty"`
	Avatar            string `json:"avatar,omitempty"`
	TotalPoints       int    `json:"total_points"`
	TotalCorrect      int    `json:"total_correct"`
	TotalAttempted    int    `json:"total_attempted"`
	CurrentStreak     int    `json:"current_streak"`
	LongestStreak     int    `json:"longest_streak"`
	LastAttemptDate   string `json:"last_attempt_date,omitempty"`
	RankPosition      int    `json:"rank_position,omitempty"`
	AchievementsCount int64  `json:"achievements_count"`
	Accuracy          int    `json:"accuracy"`
}

// Stats returns the caller's leaderboard row with accuracy and achievement
// count attached. A user with no attempts yet gets an all-zero row.
func (s *LeaderboardService) Stats(userID uint) (*UserStats, error) {
	entry, err := s.LeaderboardRepo.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &UserStats{}, nil
	}
	if err != nil {
		return nil, err
	}

	count, err := s.AchievementRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	stats := &UserStats{
		TotalPoints:       entry.TotalPoints,
		TotalCorrect:      entry.TotalCorrect,
		TotalAttempted:    entry.TotalAttempted,
		CurrentStreak:     entry.CurrentStreak,
		LongestStreak:     entry.LongestStreak,
		LastAttemptDate:   entry.LastAttemptDate.Format("2006-01-02"),
		RankPosition:      entry.RankPosition,
		AchievementsCount: count,
		Accuracy:          accuracy(entry.TotalCorrect, entry.TotalAttempted),
	}

	user, err := s.UserRepo.FindByID(userID)
	if err == nil {
		stats.Username = user.Name
		stats.Avatar = user.Avatar
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return stats, nil
}

type LeaderboardRow struct {
	UserID            uint   `json:"user_id"`
	Username          string `json:"username"`
	Avatar            string `json:"avatar,omitempty"`
	TotalPoints       int    `json:"total_points"`
	TotalCorrect      int    `json:"total_correct"`
	TotalAttempted    int    `json:"total_attempted"`
	CurrentStreak     int    `json:"current_streak"`
	RankPosition      int    `json:"rank_position"`
	AchievementsCount int64  `json:"achievements_count"`
	IsCurrentUser     bool   `json:"is_current_user"`
}

// Leaderboard returns the top entries for the requested time window. Windows
// filter on last_attempt_date: daily means attempted today, weekly and
// monthly mean within the last 7 and 30 days.
func (s *LeaderboardService) Leaderboard(currentUserID uint, limit int, window string) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	today := util.DateOnly(time.Now())
	var since time.Time
	switch window {
	case "daily":
		since = today
	case "weekly":
		since = today.AddDate(0, 0, -7)
	case "monthly":
		since = today.AddDate(0, 0, -30)
	}

	entries, err := s.LeaderboardRepo.Top(limit, since)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint, len(entries))
	for i, e := range entries {
		userIDs[i] = e.UserID
	}
	users, err := s.UserRepo.FindByIDs(userIDs)
	if err != nil {
		return nil, err
	}
	counts, err := s.AchievementRepo.CountByUsers(userIDs)
	if err != nil {
		return nil, err
	}

	rows := make([]LeaderboardRow, len(entries))
	for i, e := range entries {
		row := LeaderboardRow{
			UserID:            e.UserID,
			TotalPoints:       e.TotalPoints,
			TotalCorrect:      e.TotalCorrect,
			TotalAttempted:    e.TotalAttempted,
			CurrentStreak:     e.CurrentStreak,
			RankPosition:      e.RankPosition,
			AchievementsCount: counts[e.UserID],
			IsCurrentUser:     e.UserID == currentUserID,
		}
		if u, ok := users[e.UserID]; ok {
			row.Username = u.Name
			row.Avatar = u.Avatar
		}
		rows[i] = row
	}
	return rows, nil
}

func accuracy(correct, attempted int) int {
	if attempted == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(attempted)))
}
