package controller

import (
	"daily_trivia_backend/internal/service"
	"daily_trivia_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService       *service.QuizService
	SubmissionService *service.SubmissionService
}

func NewQuizController(quizService *service.QuizService, submissionService *service.SubmissionService) *QuizController {
	return &QuizController{
		QuizService:       quizService,
		SubmissionService: submissionService,
	}
}

// @Summary Get today's quiz
// @Description Today's question with options and topics; answer fields are included only after the user has attempted it
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.DailyQuiz
// @Router /api/quiz/daily [get]
func (qc *QuizController) GetDaily(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	quiz, err := qc.QuizService.GetDaily(c.Request.Context(), user.UserID)
	if err != nil {
		respondQuizError(c, err)
		return
	}

	util.Success(c, gin.H{"quiz": quiz})
}

// @Summary Get quiz history
// @Description Past questions, filterable by completed/missed/perfect, paginated via limit/offset
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param filter query string false "all|completed|missed|perfect" default(all)
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Router /api/quiz/history [get]
func (qc *QuizController) GetHistory(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	filter := c.DefaultQuery("filter", "all")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	history, err := qc.QuizService.History(c.Request.Context(), user.UserID, filter, limit, offset)
	if err != nil {
		respondQuizError(c, err)
		return
	}

	util.Success(c, gin.H{"history": history})
}

// @Summary Submit an answer
// @Description Scores the answer, updates stats and rankings and unlocks achievements in one transaction
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param submission body service.SubmitRequest true "answer submission"
// @Router /api/quiz/submit [post]
func (qc *QuizController) Submit(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	var req service.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Invalid input")
		return
	}

	result, err := qc.SubmissionService.Submit(c.Request.Context(), user.UserID, req)
	if err != nil {
		respondQuizError(c, err)
		return
	}

	util.Success(c, gin.H{
		"is_correct":       result.IsCorrect,
		"correct_answer":   result.CorrectAnswer,
		"explanation":      result.Explanation,
		"points_earned":    result.PointsEarned,
		"topics":           result.Topics,
		"new_achievements": result.NewAchievements,
		"speed_bonus":      result.SpeedBonus,
	})
}

type hintRequest struct {
	QuestionID uint `json:"question_id" binding:"required"`
}

// @Summary Use a hint
// @Description Reveals the hint once per question; costs 10 points if the final answer is correct
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body hintRequest true "question id"
// @Router /api/quiz/hint [post]
func (qc *QuizController) UseHint(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	var req hintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Invalid input")
		return
	}

	hint, err := qc.QuizService.UseHint(c.Request.Context(), user.UserID, req.QuestionID)
	if err != nil {
		respondQuizError(c, err)
		return
	}

	util.Success(c, gin.H{
		"hint":            hint,
		"points_deducted": 10,
	})
}

// @Summary Create a quiz question
// @Description Schedules a new question for today or a future date (admin only)
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param question body service.CreateQuestionRequest true "question"
// @Router /api/quiz [post]
func (qc *QuizController) CreateQuestion(c *gin.Context) {
	user := util.GetUserFromContext(c)
	if user == nil {
		util.Unauthorized(c)
		return
	}

	var req service.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	question, err := qc.QuizService.CreateQuestion(c.Request.Context(), user.UserID, req)
	if err != nil {
		respondQuizError(c, err)
		return
	}

	util.Success(c, gin.H{
		"message": "Quiz created successfully",
		"quiz_id": question.ID,
	})
}

// respondQuizError maps service errors onto the HTTP taxonomy: unknown
// question or absent hint are 404, business-rule rejections are 400,
// everything else is a logged 500.
func respondQuizError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrNoQuizToday),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrHintNotAvailable):
		util.NotFound(c, err.Error())
	case errors.Is(err, util.ErrAlreadyAnswered),
		errors.Is(err, util.ErrHintAlreadyUsed),
		errors.Is(err, util.ErrQuizDateTaken),
		errors.Is(err, util.ErrPastQuizDate),
		errors.Is(err, util.ErrInvalidDateFormat),
		errors.Is(err, util.ErrOptionCount),
		errors.Is(err, util.ErrInvalidAnswerLetter):
		util.BadRequest(c, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}
