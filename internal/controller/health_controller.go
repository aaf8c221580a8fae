package controller

import (
	"daily_trivia_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// @Summary Health check
// @Tags health
// @Produce json
// @Router /api/health [get]
func (hc *HealthController) HealthCheck(c *gin.Context) {
	sqlDB, err := hc.DB.DB()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{"status": "ok"})
}
