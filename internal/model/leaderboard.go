package model

import "time"

// LeaderboardEntry is the per-user stats row. Created lazily on the first
// attempt, mutated on every later one. RankPosition is a dense 1..N ordering
// by (points desc, correct desc, attempted asc), rewritten after each change.
type LeaderboardEntry struct {
	BaseModel
	UserID          uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	TotalPoints     int       `gorm:"default:0" json:"total_points"`
	TotalCorrect    int       `gorm:"default:0" json:"total_correct"`
	TotalAttempted  int       `gorm:"default:0" json:"total_attempted"`
	CurrentStreak   int       `gorm:"default:0" json:"current_streak"`
	LongestStreak   int       `gorm:"default:0" json:"longest_streak"`
	LastAttemptDate time.Time `gorm:"type:date" json:"last_attempt_date"`
	RankPosition    int       `gorm:"default:0" json:"rank_position"`
}

func (LeaderboardEntry) TableName() string {
	return "quiz_leaderboard"
}
