package main

import (
	"log"

	"social_feed/internal/pkg/config"
	"social_feed/internal/pkg/middleware"
	"social_feed/internal/pkg/registry"
	"social_feed/pkg/database"
	"social_feed/pkg/logger"
	"social_feed/pkg/metrics"

	// 模块通过 init 自注册
	_ "social_feed/internal/domain/feed"
	_ "social_feed/internal/domain/user"

	_ "social_feed/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// @title Social Feed API
// @version 1.0
// @description 帖子、嵌套评论、点赞与 24 小时 karma 榜单
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 配置与日志
	config.LoadConfig()
	logger.InitLogger(config.GlobalConfig.App.Debug)
	defer logger.Sync()

	// 2. 基础设施
	db := database.InitDatabase()
	rdb := database.InitRedis()
	collector := metrics.NewCollector()

	// 3. HTTP 引擎与全局中间件
	gin.SetMode(config.GlobalConfig.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(collector))
	r.Use(cors.Default())
	r.Use(middleware.RateLimitMiddleware(middleware.NewIPRateLimiter(rate.Limit(50), 100)))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 4. 业务模块
	if err := registry.InitModules(&registry.ModuleContext{
		DB:      db,
		Redis:   rdb,
		Router:  r,
		Metrics: collector,
	}); err != nil {
		log.Fatalf("Failed to initialize modules: %v", err)
	}

	// 5. 启动
	addr := ":" + config.GlobalConfig.Server.Port
	logger.Log.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
