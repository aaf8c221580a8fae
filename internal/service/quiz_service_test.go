package service

import (
	"context"
	"daily_trivia_backend/internal/util"
	"errors"
	"testing"
	"time"
)

func TestGetDailyHidesAnswerBeforeAttempt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createQuestion(t, time.Now(), "A", 50, "")

	quiz, err := env.quiz.GetDaily(ctx, 1)
	if err != nil {
		t.Fatalf("get daily failed: %v", err)
	}

	if quiz.Completed {
		t.Fatal("quiz must not be completed before an attempt")
	}
	if quiz.CorrectAnswer != nil || quiz.Explanation != nil || quiz.UserAnswer != nil {
		t.Fatalf("reveal fields leaked before attempt: %+v", quiz)
	}
	if len(quiz.Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(quiz.Options))
	}
	for i, letter := range []string{"A", "B", "C", "D"} {
		if quiz.Options[i].Letter != letter {
			t.Fatalf("options out of order: %+v", quiz.Options)
		}
	}
	if quiz.Participants != 0 {
		t.Fatalf("expected 0 participants, got %d", quiz.Participants)
	}
	if len(quiz.Topics) != 1 || quiz.Topics[0] != "syntax" {
		t.Fatalf("unexpected topics: %v", quiz.Topics)
	}
}

func TestGetDailyRevealsAfterAttempt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	q := env.createQuestion(t, time.Now(), "A", 50, "")

	if _, err := env.submission.Submit(ctx, 1, SubmitRequest{QuestionID: q.ID, SelectedAnswer: "B", TimeTaken: 40}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	quiz, err := env.quiz.GetDaily(ctx, 1)
	if err != nil {
		t.Fatalf("get daily failed: %v", err)
	}

	if !quiz.Completed {
		t.Fatal("expected completed quiz")
	}
	if quiz.CorrectAnswer == nil || *quiz.CorrectAnswer != "A" {
		t.Fatalf("expected revealed correct answer, got %+v", quiz.CorrectAnswer)
	}
	if quiz.UserAnswer == nil || *quiz.UserAnswer != "B" {
		t.Fatalf("expected recorded user answer, got %+v", quiz.UserAnswer)
	}
	if quiz.IsCorrect == nil || *quiz.IsCorrect {
		t.Fatal("expected is_correct false")
	}
	if quiz.Explanation == nil || *quiz.Explanation == "" {
		t.Fatal("expected explanation after attempt")
	}
	if quiz.Participants != 1 {
		t.Fatalf("expected 1 participant, got %d", quiz.Participants)
	}

	// another user still gets the hidden view
	other, err := env.quiz.GetDaily(ctx, 2)
	if err != nil {
		t.Fatalf("get daily failed: %v", err)
	}
	if other.Completed || other.CorrectAnswer != nil {
		t.Fatalf("answer leaked to another user: %+v", other)
	}
}

func TestGetDailyWithoutScheduledQuestion(t *testing.T) {
	env := newTestEnv(t)
	env.createQuestion(t, time.Now().AddDate(0, 0, -1), "A", 50, "")

	_, err := env.quiz.GetDaily(context.Background(), 1)
	if !errors.Is(err, util.ErrNoQuizToday) {
		t.Fatalf("expected ErrNoQuizToday, got %v", err)
	}
}

func TestHistoryFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	qToday := env.createQuestion(t, time.Now(), "A", 50, "")
	qCorrect := env.createQuestion(t, time.Now().AddDate(0, 0, -1), "A", 50, "")
	qWrong := env.createQuestion(t, time.Now().AddDate(0, 0, -2), "A", 50, "")
	qMissed := env.createQuestion(t, time.Now().AddDate(0, 0, -3), "A", 50, "")

	if _, err := env.submission.Submit(ctx, 1, SubmitRequest{QuestionID: qCorrect.ID, SelectedAnswer: "A", TimeTaken: 40}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := env.submission.Submit(ctx, 1, SubmitRequest{QuestionID: qWrong.ID, SelectedAnswer: "C", TimeTaken: 40}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	all, err := env.quiz.History(ctx, 1, "all", 10, 0)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 past questions, got %d", len(all))
	}
	for _, item := range all {
		if item.ID == qToday.ID {
			t.Fatal("today's question must not appear in history")
		}
	}
	// newest first
	if all[0].ID != qCorrect.ID || all[2].ID != qMissed.ID {
		t.Fatalf("history not ordered by date desc: %+v", all)
	}
	if !all[0].Completed || all[0].PointsEarned == nil || *all[0].PointsEarned != 50 {
		t.Fatalf("expected completed item with points, got %+v", all[0])
	}
	if !all[2].Missed || all[2].CorrectAnswer != nil {
		t.Fatalf("missed item must stay unrevealed: %+v", all[2])
	}

	completed, err := env.quiz.History(ctx, 1, "completed", 10, 0)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(completed) != 2 {
		t.Fatalf("expected 2 completed, got %d", len(completed))
	}

	missed, err := env.quiz.History(ctx, 1, "missed", 10, 0)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(missed) != 1 || missed[0].ID != qMissed.ID {
		t.Fatalf("expected only the missed question, got %+v", missed)
	}

	perfect, err := env.quiz.History(ctx, 1, "perfect", 10, 0)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(perfect) != 1 || perfect[0].ID != qCorrect.ID {
		t.Fatalf("expected only the correct question, got %+v", perfect)
	}
}

func TestHistoryPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		env.createQuestion(t, time.Now().AddDate(0, 0, -i), "A", 50, "")
	}

	page1, err := env.quiz.History(ctx, 1, "all", 2, 0)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	page2, err := env.quiz.History(ctx, 1, "all", 2, 2)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(page1) != 2 || len(page2) != 2 {
		t.Fatalf("expected 2 items per page, got %d and %d", len(page1), len(page2))
	}
	if page1[1].ID == page2[0].ID {
		t.Fatal("pages overlap")
	}
	if page1[0].Date < page2[0].Date {
		t.Fatalf("pages out of order: %s before %s", page1[0].Date, page2[0].Date)
	}
}

func TestUseHintFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	q := env.createQuestion(t, time.Now(), "A", 50, "think about discards")

	hint, err := env.quiz.UseHint(ctx, 1, q.ID)
	if err != nil {
		t.Fatalf("use hint failed: %v", err)
	}
	if hint != "think about discards" {
		t.Fatalf("unexpected hint text: %q", hint)
	}

	_, err = env.quiz.UseHint(ctx, 1, q.ID)
	if !errors.Is(err, util.ErrHintAlreadyUsed) {
		t.Fatalf("expected ErrHintAlreadyUsed, got %v", err)
	}

	// a different user gets their own hint flag
	if _, err := env.quiz.UseHint(ctx, 2, q.ID); err != nil {
		t.Fatalf("hint for second user failed: %v", err)
	}
}

func TestUseHintAfterAnswering(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	q := env.createQuestion(t, time.Now(), "A", 50, "hint")

	if _, err := env.submission.Submit(ctx, 1, SubmitRequest{QuestionID: q.ID, SelectedAnswer: "A", TimeTaken: 40}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, err := env.quiz.UseHint(ctx, 1, q.ID)
	if !errors.Is(err, util.ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}
}

func TestUseHintUnavailable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	q := env.createQuestion(t, time.Now(), "A", 50, "")

	_, err := env.quiz.UseHint(ctx, 1, q.ID)
	if !errors.Is(err, util.ErrHintNotAvailable) {
		t.Fatalf("expected ErrHintNotAvailable, got %v", err)
	}

	_, err = env.quiz.UseHint(ctx, 1, 999)
	if !errors.Is(err, util.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	base := CreateQuestionRequest{
		Date:          time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		Category:      "go",
		Question:      "What does cap() return for a slice?",
		Options:       []string{"Length", "Capacity", "Pointer", "Type"},
		CorrectAnswer: "B",
		Explanation:   "cap reports the capacity of the underlying array.",
		Topics:        []string{"slices"},
	}

	cases := []struct {
		name    string
		mutate  func(r *CreateQuestionRequest)
		wantErr error
	}{
		{"past date", func(r *CreateQuestionRequest) { r.Date = time.Now().AddDate(0, 0, -1).Format("2006-01-02") }, util.ErrPastQuizDate},
		{"bad date format", func(r *CreateQuestionRequest) { r.Date = "01/02/2026" }, util.ErrInvalidDateFormat},
		{"three options", func(r *CreateQuestionRequest) { r.Options = r.Options[:3] }, util.ErrOptionCount},
		{"letter out of range", func(r *CreateQuestionRequest) { r.CorrectAnswer = "E" }, util.ErrInvalidAnswerLetter},
	}
	for _, tc := range cases {
		req := base
		tc.mutate(&req)
		if _, err := env.quiz.CreateQuestion(ctx, 1, req); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}

	question, err := env.quiz.CreateQuestion(ctx, 1, base)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if question.Points != 50 || question.Difficulty != "medium" {
		t.Fatalf("defaults not applied: %+v", question)
	}
	if len(question.Options) != 4 || question.Options[0].Letter != "A" || question.Options[3].Letter != "D" {
		t.Fatalf("options not lettered A-D: %+v", question.Options)
	}

	if _, err := env.quiz.CreateQuestion(ctx, 1, base); !errors.Is(err, util.ErrQuizDateTaken) {
		t.Fatalf("expected ErrQuizDateTaken for duplicate date, got %v", err)
	}
}

func TestCreateQuestionForTodayIsServed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := CreateQuestionRequest{
		Date:          time.Now().Format("2006-01-02"),
		Category:      "go",
		Question:      "Which keyword starts a goroutine?",
		Options:       []string{"go", "async", "spawn", "run"},
		CorrectAnswer: "A",
		Explanation:   "The go statement runs a function concurrently.",
		Hint:          "two letters",
	}
	created, err := env.quiz.CreateQuestion(ctx, 1, req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	quiz, err := env.quiz.GetDaily(ctx, 1)
	if err != nil {
		t.Fatalf("get daily failed: %v", err)
	}
	if quiz.ID != created.ID {
		t.Fatalf("expected question %d served today, got %d", created.ID, quiz.ID)
	}
}
