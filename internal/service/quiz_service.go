package service

import (
	"context"
	"daily_trivia_backend/internal/model"
	"daily_trivia_backend/internal/repository"
	"daily_trivia_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

const defaultQuestionPoints = 50

type QuizService struct {
	DB           *gorm.DB
	QuestionRepo *repository.QuestionRepository
	AttemptRepo  *repository.AttemptRepository
	Hints        *repository.HintStore
}

func NewQuizService(
	db *gorm.DB,
	questionRepo *repository.QuestionRepository,
	attemptRepo *repository.AttemptRepository,
	hints *repository.HintStore,
) *QuizService {
	return &QuizService{
		DB:           db,
		QuestionRepo: questionRepo,
		AttemptRepo:  attemptRepo,
		Hints:        hints,
	}
}

type OptionView struct {
	Letter string `json:"option_letter"`
	Text   string `json:"option_text"`
}

type TimeRemaining struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// DailyQuiz is the client view of today's question. The reveal fields at the
// bottom stay nil until the user has attempted the question so the payload
// can never leak the answer beforehand.
type DailyQuiz struct {
	ID            uint          `json:"id"`
	Date          string        `json:"date"`
	Category      string        `json:"category"`
	Question      string        `json:"question"`
	CodeSnippet   string        `json:"code_snippet,omitempty"`
	Options       []OptionView  `json:"options"`
	Points        int           `json:"points"`
	Difficulty    string        `json:"difficulty"`
	Participants  int64         `json:"participants"`
	Topics        []string      `json:"topics"`
	Completed     bool          `json:"completed"`
	TimeRemaining TimeRemaining `json:"time_remaining"`

	UserAnswer    *string `json:"user_answer,omitempty"`
	CorrectAnswer *string `json:"correct_answer,omitempty"`
	Explanation   *string `json:"explanation,omitempty"`
	IsCorrect     *bool   `json:"is_correct,omitempty"`
	HintUsed      *bool   `json:"hint_used,omitempty"`
}

type HistoryItem struct {
	ID          uint         `json:"id"`
	Date        string       `json:"date"`
	Category    string       `json:"category"`
	Question    string       `json:"question"`
	CodeSnippet string       `json:"code_snippet,omitempty"`
	Options     []OptionView `json:"options"`
	Points      int          `json:"points"`
	Difficulty  string       `json:"difficulty"`
	Topics      []string     `json:"topics"`
	Completed   bool         `json:"completed"`
	Missed      bool         `json:"missed"`

	UserAnswer    *string    `json:"user_answer,omitempty"`
	CorrectAnswer *string    `json:"correct_answer,omitempty"`
	Explanation   *string    `json:"explanation,omitempty"`
	IsCorrect     *bool      `json:"is_correct,omitempty"`
	PointsEarned  *int       `json:"points_earned,omitempty"`
	AttemptDate   *time.Time `json:"attempt_date,omitempty"`
}

func (s *QuizService) GetDaily(ctx context.Context, userID uint) (*DailyQuiz, error) {
	now := time.Now()
	today := util.DateOnly(now)

	question, err := s.QuestionRepo.FindByDate(today)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNoQuizToday
	}
	if err != nil {
		return nil, err
	}

	participants, err := s.AttemptRepo.CountByQuestion(question.ID)
	if err != nil {
		return nil, err
	}

	quiz := &DailyQuiz{
		ID:            question.ID,
		Date:          question.Date.Format("2006-01-02"),
		Category:      question.Category,
		Question:      question.Prompt,
		CodeSnippet:   question.CodeSnippet,
		Options:       optionViews(question.Options),
		Points:        question.Points,
		Difficulty:    question.Difficulty,
		Participants:  participants,
		Topics:        topicNames(question.Topics),
		TimeRemaining: untilTomorrow(now),
	}

	attempt, err := s.AttemptRepo.FindByUserAndQuestion(userID, question.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if attempt != nil {
		quiz.Completed = true
		quiz.UserAnswer = &attempt.SelectedAnswer
		quiz.CorrectAnswer = &question.CorrectAnswer
		quiz.Explanation = &question.Explanation
		quiz.IsCorrect = &attempt.IsCorrect
		quiz.HintUsed = &attempt.HintUsed
	}

	return quiz, nil
}

func (s *QuizService) History(ctx context.Context, userID uint, filter string, limit, offset int) ([]HistoryItem, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	today := util.DateOnly(time.Now())
	questions, err := s.QuestionRepo.History(userID, filter, today, limit, offset)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(questions))
	for i := range questions {
		ids[i] = questions[i].ID
	}
	attempts, err := s.AttemptRepo.FindByUserForQuestions(userID, ids)
	if err != nil {
		return nil, err
	}

	items := make([]HistoryItem, len(questions))
	for i := range questions {
		q := &questions[i]
		item := HistoryItem{
			ID:          q.ID,
			Date:        q.Date.Format("2006-01-02"),
			Category:    q.Category,
			Question:    q.Prompt,
			CodeSnippet: q.CodeSnippet,
			Options:     optionViews(q.Options),
			Points:      q.Points,
			Difficulty:  q.Difficulty,
			Topics:      topicNames(q.Topics),
			Missed:      true,
		}
		if attempt, ok := attempts[q.ID]; ok {
			item.Completed = true
			item.Missed = false
			item.UserAnswer = &attempt.SelectedAnswer
			item.CorrectAnswer = &q.CorrectAnswer
			item.Explanation = &q.Explanation
			item.IsCorrect = &attempt.IsCorrect
			item.PointsEarned = &attempt.PointsEarned
			item.AttemptDate = &attempt.CreatedAt
		}
		items[i] = item
	}
	return items, nil
}

// UseHint reveals the hint once per (user, question) and records the flag that
// later costs 10 points on a correct answer.
func (s *QuizService) UseHint(ctx context.Context, userID, questionID uint) (string, error) {
	attempted, err := s.AttemptRepo.Exists(s.DB, userID, questionID)
	if err != nil {
		return "", err
	}
	if attempted {
		return "", util.ErrAlreadyAnswered
	}

	used, err := s.Hints.Used(ctx, userID, questionID)
	if err != nil {
		return "", err
	}
	if used {
		return "", util.ErrHintAlreadyUsed
	}

	question, err := s.QuestionRepo.FindByID(questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", util.ErrQuestionNotFound
	}
	if err != nil {
		return "", err
	}
	if question.Hint == "" {
		return "", util.ErrHintNotAvailable
	}

	if err := s.Hints.MarkUsed(ctx, userID, questionID); err != nil {
		return "", err
	}
	return question.Hint, nil
}

type CreateQuestionRequest struct {
	Date          string   `json:"date" binding:"required"`
	Category      string   `json:"category" binding:"required"`
	Question      string   `json:"question" binding:"required"`
	CodeSnippet   string   `json:"code_snippet"`
	Options       []string `json:"options" binding:"required"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
	Explanation   string   `json:"explanation" binding:"required"`
	Hint          string   `json:"hint"`
	Points        int      `json:"points"`
	Difficulty    string   `json:"difficulty"`
	Topics        []string `json:"topics"`
}

var optionLetters = []string{"A", "B", "C", "D"}

// CreateQuestion schedules a new question. The date must be today or later
// and not already taken; options map to letters A-D in the given order.
func (s *QuizService) CreateQuestion(ctx context.Context, creatorID uint, req CreateQuestionRequest) (*model.Question, error) {
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return nil, util.ErrInvalidDateFormat
	}
	if date.Before(util.DateOnly(time.Now())) {
		return nil, util.ErrPastQuizDate
	}
	if len(req.Options) != len(optionLetters) {
		return nil, util.ErrOptionCount
	}
	if !validLetter(req.CorrectAnswer) {
		return nil, util.ErrInvalidAnswerLetter
	}

	points := req.Points
	if points <= 0 {
		points = defaultQuestionPoints
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}

	question := &model.Question{
		Date:          date,
		Category:      req.Category,
		Prompt:        req.Question,
		CodeSnippet:   req.CodeSnippet,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		Hint:          req.Hint,
		Points:        points,
		Difficulty:    difficulty,
		CreatedBy:     creatorID,
	}
	for i, text := range req.Options {
		question.Options = append(question.Options, model.QuestionOption{
			Letter: optionLetters[i],
			Text:   text,
		})
	}
	for _, topic := range req.Topics {
		question.Topics = append(question.Topics, model.QuestionTopic{Topic: topic})
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Question{}).Where("date = ?", date).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return util.ErrQuizDateTaken
		}
		if err := s.QuestionRepo.Create(tx, question); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return util.ErrQuizDateTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

func validLetter(letter string) bool {
	for _, l := range optionLetters {
		if letter == l {
			return true
		}
	}
	return false
}

func optionViews(options []model.QuestionOption) []OptionView {
	views := make([]OptionView, len(options))
	for i, o := range options {
		views[i] = OptionView{Letter: o.Letter, Text: o.Text}
	}
	return views
}

func untilTomorrow(now time.Time) TimeRemaining {
	tomorrow := util.DateOnly(now).AddDate(0, 0, 1)
	diff := tomorrow.Sub(now)
	return TimeRemaining{
		Hours:   int(diff.Hours()),
		Minutes: int(diff.Minutes()) % 60,
		Seconds: int(diff.Seconds()) % 60,
	}
}
