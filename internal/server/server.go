package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"sintascope/internal/api"
	"sintascope/internal/config"
	"sintascope/internal/logging"
	"sintascope/internal/metrics"
	"sintascope/internal/service/dataset"
	"sintascope/internal/service/store"
)

// Server HTTP服务器
type Server struct {
	router  *gin.Engine
	store   *store.MemoryStore
	loader  *dataset.Loader
	metrics *metrics.Metrics
	logger  logging.Logger
	api     *api.Handler
	http    *http.Server
}

// Deps 服务器依赖，nil 字段使用默认实现
type Deps struct {
	Store   *store.MemoryStore
	Loader  *dataset.Loader
	Metrics *metrics.Metrics
	Logger  logging.Logger
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, deps Deps) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Store == nil {
		deps.Store = store.NewMemoryStore()
	}
	if deps.Loader == nil {
		deps.Loader = dataset.NewLoader(deps.Logger, deps.Metrics)
	}

	handler := api.NewHandler(deps.Store, deps.Loader, cfg.Analysis, deps.Logger).
		WithUploadLimit(rate.Limit(cfg.Server.UploadRate), cfg.Server.UploadBurst)

	s := &Server{
		router:  gin.New(),
		store:   deps.Store,
		loader:  deps.Loader,
		metrics: deps.Metrics,
		logger:  deps.Logger.Named("http"),
		api:     handler,
	}

	s.setupRoutes()

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery(), requestLogger(s.logger, s.metrics))

	// CORS
	s.router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders:   []string{"Content-Disposition", RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
}

// Handler 返回 http.Handler（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Store 当前数据集存储
func (s *Server) Store() *store.MemoryStore {
	return s.store
}

// Loader 数据集加载器
func (s *Server) Loader() *dataset.Loader {
	return s.loader
}

// Run 启动服务器，阻塞直到 Shutdown 或出错
func (s *Server) Run(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅退出
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
