package app

import (
	"daily_trivia_backend/internal/config"
	"daily_trivia_backend/internal/middleware"
	"daily_trivia_backend/internal/model"
	"daily_trivia_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.POST("/user/avatar/upload", c.user.UploadAvatar)

		quiz := authGroup.Group("/quiz")
		{
			quiz.GET("/daily", c.quiz.GetDaily)
			quiz.GET("/history", c.quiz.GetHistory)
			quiz.GET("/stats", c.leaderboard.GetStats)
			quiz.GET("/leaderboard", c.leaderboard.GetLeaderboard)
			quiz.GET("/achievements", c.achievement.GetAchievements)
			quiz.POST("/submit", c.quiz.Submit)
			quiz.POST("/hint", c.quiz.UseHint)

			admin := quiz.Group("")
			admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
			{
				admin.POST("", c.quiz.CreateQuestion)
			}
		}
	}
}
