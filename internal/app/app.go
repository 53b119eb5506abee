package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/kaanoztekin99/3d-object-generation/internal/client"
	"github.com/kaanoztekin99/3d-object-generation/internal/config"
	"github.com/kaanoztekin99/3d-object-generation/internal/controller"
	"github.com/kaanoztekin99/3d-object-generation/internal/lock"
	"github.com/kaanoztekin99/3d-object-generation/internal/middleware"
	"github.com/kaanoztekin99/3d-object-generation/internal/repository"
	"github.com/kaanoztekin99/3d-object-generation/internal/service"
	"github.com/kaanoztekin99/3d-object-generation/internal/store"
	"github.com/kaanoztekin99/3d-object-generation/internal/survey"
	"github.com/kaanoztekin99/3d-object-generation/pkg/configwatcher"
	"github.com/kaanoztekin99/3d-object-generation/pkg/database"
	"github.com/kaanoztekin99/3d-object-generation/pkg/logger"
	"github.com/kaanoztekin99/3d-object-generation/pkg/monitoring"
	"github.com/kaanoztekin99/3d-object-generation/pkg/security"
	"github.com/kaanoztekin99/3d-object-generation/pkg/tracing"
	"github.com/kaanoztekin99/3d-object-generation/web"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Client          *client.SubmissionClient
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type services struct {
	survey  *service.SurveyService
	results *service.ResultsService
	archive *service.ArchiveService
}

type controllers struct {
	survey  *controller.SurveyController
	results *controller.ResultsController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

// NewApp 初始化日志、可选的数据库/Redis/追踪, 然后装配路由
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("initialize redis: %w", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("initialize tracing: %w", err)
		}
		app.tracer = tp
	}

	if err := app.init(); err != nil {
		return nil, err
	}
	return app, nil
}

// init 组装各层; DB 和 Redis 为 nil 时相应功能关闭
func (a *App) init() error {
	cfg := a.Config

	catalog, err := survey.LoadCatalog(cfg.Survey.CatalogPath)
	if err != nil {
		return err
	}

	var locker lock.Locker = lock.NewLocalLocker()
	if a.Redis != nil {
		locker = lock.NewRedisLocker(a.Redis, cfg.Redis.LockKey, cfg.Redis.LockTTL)
	}
	csvStore := store.NewCSVStore(cfg.CSV.Path, locker)

	var responses *repository.ResponseRepository
	var mirror service.ResponseMirror
	if a.DB != nil {
		responses = repository.NewResponseRepository(a.DB)
		mirror = responses
	}

	a.Client = client.NewSubmissionClient(cfg.Survey.SaveEndpoint, cfg.Survey.SubmitTimeout)

	provider, err := service.NewStorageProvider(&cfg.Storage)
	if err != nil {
		return err
	}

	a.services = &services{
		survey:  service.NewSurveyService(catalog, survey.NewRandomizer(nil), a.Client),
		results: service.NewResultsService(csvStore, mirror),
		archive: service.NewArchiveService(csvStore, provider, cfg.Storage.ArchivePrefix),
	}

	var dbPinger controller.Pinger
	if responses != nil {
		dbPinger = responses
	}
	c := &controllers{
		survey:  controller.NewSurveyController(a.services.survey, cfg.Survey.Title),
		results: controller.NewResultsController(a.services.results, cfg.Survey.ExportEnabled),
		health:  controller.NewHealthController(csvStore, dbPinger),
	}

	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	a.Router = router

	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	a.setupMiddlewares(router, cfg)
	a.registerRoutes(router, c, cfg)

	a.RegisterConfigCallback(logger.SetLevel)
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		a.Client.SetEndpoint(newCfg.Survey.SaveEndpoint)
	})

	return nil
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
	router.Use(middleware.AccessLog())
}

func (a *App) startBackgroundTasks(ctx context.Context) {
	if interval := a.Config.Storage.ArchiveInterval; interval > 0 {
		go a.services.archive.Run(ctx, interval)
	}

	if a.Config.File != "" {
		go func() {
			if err := configwatcher.WatchConfig(ctx, a.Config.File, a.applyConfig); err != nil {
				logger.Log.Error("config watcher stopped", zap.Error(err))
			}
		}()
	}
}

// Archive 立即归档一次结果文件
func (a *App) Archive(ctx context.Context) (string, error) {
	return a.services.archive.Archive(ctx)
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.startBackgroundTasks(ctx)

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port), zap.String("csv", a.Config.CSV.Path))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(shutdownCtx)
	logger.Log.Info("Server exiting")
}

// Close 释放追踪、Redis 和数据库连接
func (a *App) Close(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
