package service

import (
	"context"
	"encoding/json"
	"time"

	"social_feed/internal/domain/feed/model"
	"social_feed/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// leaderboardCacheKey 榜单缓存键
const leaderboardCacheKey = "feed:leaderboard:24h"

// CachedFeedService 给榜单加短 TTL Redis 缓存的装饰器
// 窗口是滚动的 24 小时，结果天然容忍秒级陈旧，过期即失效，无需主动清除
type CachedFeedService struct {
	FeedService
	cache *redis.Client
	ttl   time.Duration
}

// NewCachedFeedService 包装已有服务，仅拦截 Leaderboard
func NewCachedFeedService(inner FeedService, cache *redis.Client, ttl time.Duration) FeedService {
	return &CachedFeedService{
		FeedService: inner,
		cache:       cache,
		ttl:         ttl,
	}
}

// Leaderboard 先查缓存，未命中再计算并回填
// 缓存故障只记日志，回退为直接计算
func (s *CachedFeedService) Leaderboard(now time.Time) ([]model.KarmaEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if raw, err := s.cache.Get(ctx, leaderboardCacheKey).Bytes(); err == nil {
		var entries []model.KarmaEntry
		if err := json.Unmarshal(raw, &entries); err == nil {
			return entries, nil
		}
	} else if err != redis.Nil && logger.Log != nil {
		logger.Log.Warn("leaderboard cache read failed", zap.Error(err))
	}

	entries, err := s.FeedService.Leaderboard(now)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(entries); err == nil {
		if err := s.cache.Set(ctx, leaderboardCacheKey, raw, s.ttl).Err(); err != nil && logger.Log != nil {
			logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
		}
	}
	return entries, nil
}
