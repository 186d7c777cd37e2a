package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"sals_backend/internal/concept"
	"sals_backend/internal/model"
	"sals_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const learningPathKeyPrefix = "sals:learning_path:"

// CacheService keeps generated learning path materials in Redis, keyed by the
// normalized weak concept set. A nil Redis client disables it.
type CacheService struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewCacheService(rdb *redis.Client, ttl time.Duration) *CacheService {
	return &CacheService{Redis: rdb, TTL: ttl}
}

func learningPathKey(weak concept.Set) string {
	return learningPathKeyPrefix + strings.Join(weak.Keys(), "|")
}

func (s *CacheService) Enabled() bool {
	return s != nil && s.Redis != nil
}

// GetMaterials returns cached materials. Any Redis failure is a miss.
func (s *CacheService) GetMaterials(ctx context.Context, weak concept.Set) (model.Materials, bool) {
	if !s.Enabled() || weak.IsEmpty() {
		return nil, false
	}

	raw, err := s.Redis.Get(ctx, learningPathKey(weak)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("Learning path cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var m model.Materials
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false
	}
	return m, true
}

func (s *CacheService) SetMaterials(ctx context.Context, weak concept.Set, m model.Materials) {
	if !s.Enabled() || weak.IsEmpty() {
		return
	}
	b, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, learningPathKey(weak), b, s.TTL).Err(); err != nil {
		logger.Log.Warn("Learning path cache write failed", zap.Error(err))
	}
}
