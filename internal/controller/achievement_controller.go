package controller

import (
	"daily_trivia_backend/internal/service"
	"daily_trivia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	AchievementService *service.AchievementService
}

func NewAchievementController(achievementService *service.AchievementService) *AchievementController {
	return &AchievementController{AchievementService: achievementService}
}

// @Summary Get achievements
// @Description All achievements split into earned (with earn date) and available
// @Tags achievements
// @Produce json
// @Security ApiKeyAuth
// @Router /api/quiz/achievements [get]
func (ac *AchievementController) GetAchievements(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	earned, available, err := ac.AchievementService.List(user.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{
		"earned":    earned,
		"available": available,
	})
}
