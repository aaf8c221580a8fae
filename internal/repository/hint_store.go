package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// hintTTL outlives the one-day quiz cycle; stale flags for questions the user
// never answers expire on their own.
const hintTTL = 48 * time.Hour

// HintStore keeps the per-user "hint used" flag for a question between the
// hint request and the answer submission.
type HintStore struct {
	RDB *redis.Client
}

func NewHintStore(rdb *redis.Client) *HintStore {
	return &HintStore{RDB: rdb}
}

func hintKey(userID, questionID uint) string {
	return fmt.Sprintf("hint:%d:%d", userID, questionID)
}

func (s *HintStore) MarkUsed(ctx context.Context, userID, questionID uint) error {
	return s.RDB.Set(ctx, hintKey(userID, questionID), 1, hintTTL).Err()
}

func (s *HintStore) Used(ctx context.Context, userID, questionID uint) (bool, error) {
	n, err := s.RDB.Exists(ctx, hintKey(userID, questionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *HintStore) Clear(ctx context.Context, userID, questionID uint) error {
	return s.RDB.Del(ctx, hintKey(userID, questionID)).Err()
}
