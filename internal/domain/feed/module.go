package feed

import (
	"time"

	"social_feed/internal/domain/feed/handler"
	"social_feed/internal/domain/feed/repository"
	"social_feed/internal/domain/feed/service"
	"social_feed/internal/pkg/config"
	"social_feed/internal/pkg/middleware"
	"social_feed/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// FeedModule 动态流模块
type FeedModule struct{}

func init() {
	registry.Register(&FeedModule{})
}

func (m *FeedModule) Name() string {
	return "feed"
}

func (m *FeedModule) Priority() int {
	return 10
}

func (m *FeedModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	repo := repository.NewFeedRepository(ctx.DB)
	svc := service.NewFeedService(repo)

	// 榜单短 TTL 缓存，TTL 配 0 则直连计算
	if ttl := config.GlobalConfig.Feed.LeaderboardCacheTTL; ttl > 0 && ctx.Redis != nil {
		svc = service.NewCachedFeedService(svc, ctx.Redis, time.Duration(ttl)*time.Second)
	}

	h := handler.NewFeedHandler(svc, ctx.Metrics)

	// 2. 路由注册
	setupRoutes(ctx.Router, h)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.FeedHandler) {
	// 读接口公开
	r.GET("/posts/:id", h.GetPost)
	r.GET("/posts-json", h.FeedJSON)
	r.GET("/leaderboard", h.Leaderboard)

	// 写接口可匿名到达，是否拒绝由业务层统一判定
	write := r.Group("")
	write.Use(middleware.OptionalAuthMiddleware())
	{
		write.POST("/posts", h.CreatePost)
		write.POST("/comments", h.CreateComment)
		write.POST("/likes", h.ToggleLike)
	}
}
