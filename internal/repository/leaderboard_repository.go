package repository

import (
	"daily_trivia_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeaderboardRepository struct {
	DB *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{DB: db}
}

func (r *LeaderboardRepository) FindByUserID(userID uint) (*model.LeaderboardEntry, error) {
	var entry model.LeaderboardEntry
	err := r.DB.Where("user_id = ?", userID).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *LeaderboardRepository) FindByUserIDTx(tx *gorm.DB, userID uint) (*model.LeaderboardEntry, error) {
	var entry model.LeaderboardEntry
	err := tx.Where("user_id = ?", userID).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *LeaderboardRepository) Create(tx *gorm.DB, entry *model.LeaderboardEntry) error {
	return tx.Create(entry).Error
}

func (r *LeaderboardRepository) Update(tx *gorm.DB, entry *model.LeaderboardEntry) error {
	return tx.Save(entry).Error
}

// Top returns the highest ranked entries, optionally restricted to users whose
// last attempt falls inside the window (since is zero for the all-time board).
func (r *LeaderboardRepository) Top(limit int, since time.Time) ([]model.LeaderboardEntry, error) {
	query := r.DB.Model(&model.LeaderboardEntry{})
	if !since.IsZero() {
		query = query.Where("last_attempt_date >= ?", since)
	}

	var entries []model.LeaderboardEntry
	err := query.
		Order("total_points DESC, total_correct DESC, total_attempted ASC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// RecomputeRanks rewrites rank_position for every entry as a dense 1..N
// ordering. Full recomputation is fine at this population size; the ordered
// select takes row locks on MySQL so two concurrent recomputations cannot
// interleave (sqlite, used in tests, serializes writers on its own).
func (r *LeaderboardRepository) RecomputeRanks(tx *gorm.DB) error {
	query := tx.Model(&model.LeaderboardEntry{}).
		Order("total_points DESC, total_correct DESC, total_attempted ASC")
	if tx.Dialector.Name() == "mysql" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var entries []model.LeaderboardEntry
	if err := query.Find(&entries).Error; err != nil {
		return err
	}

	for i := range entries {
		position := i + 1
		if entries[i].RankPosition == position {
			continue
		}
		err := tx.Model(&model.LeaderboardEntry{}).
			Where("id = ?", entries[i].ID).
			Update("rank_position", position).Error
		if err != nil {
			return err
		}
	}
	return nil
}
