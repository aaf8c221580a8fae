package service

import (
	"daily_trivia_backend/internal/model"
	"daily_trivia_backend/internal/repository"
	"time"
)

type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
}

func NewAchievementService(achievementRepo *repository.AchievementRepository) *AchievementService {
	return &AchievementService{AchievementRepo: achievementRepo}
}

type EarnedAchievement struct {
	model.Achievement
	EarnedDate time.Time `json:"earned_date"`
}

// List splits the full catalog into what the user has earned (most recent
// first) and what is still available.
func (s *AchievementService) List(userID uint) ([]EarnedAchievement, []model.Achievement, error) {
	all, err := s.AchievementRepo.FindAll()
	if err != nil {
		return nil, nil, err
	}

	userAchievements, err := s.AchievementRepo.FindEarnedByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	earnedAt := make(map[uint]time.Time, len(userAchievements))
	for _, ua := range userAchievements {
		earnedAt[ua.AchievementID] = ua.EarnedAt
	}

	earned := []EarnedAchievement{}
	available := []model.Achievement{}
	for _, ua := range userAchievements {
		for _, a := range all {
			if a.ID == ua.AchievementID {
				earned = append(earned, EarnedAchievement{Achievement: a, EarnedDate: ua.EarnedAt})
				break
			}
		}
	}
	for _, a := range all {
		if _, ok := earnedAt[a.ID]; !ok {
			available = append(available, a)
		}
	}
	return earned, available, nil
}
