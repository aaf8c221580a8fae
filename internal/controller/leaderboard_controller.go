package controller

import (
	"daily_trivia_backend/internal/service"
	"daily_trivia_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

// @Summary Get current user's stats
// @Description Points, streaks, rank, achievement count and accuracy for the caller
// @Tags leaderboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.UserStats
// @Router /api/quiz/stats [get]
func (lc *LeaderboardController) GetStats(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	stats, err := lc.LeaderboardService.Stats(user.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{"stats": stats})
}

// @Summary Get the leaderboard
// @Description Top users by points, filterable by time window
// @Tags leaderboard
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "number of rows" default(10)
// @Param type query string false "all|daily|weekly|monthly" default(all)
// @Router /api/quiz/leaderboard [get]
func (lc *LeaderboardController) GetLeaderboard(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	window := c.DefaultQuery("type", "all")

	rows, err := lc.LeaderboardService.Leaderboard(user.UserID, limit, window)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{"leaderboard": rows})
}
