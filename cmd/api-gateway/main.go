package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campushub/gradebook-api/api/swagger"
	"github.com/campushub/gradebook-api/internal/grading"
	"github.com/campushub/gradebook-api/internal/handler"
	"github.com/campushub/gradebook-api/internal/middleware"
	"github.com/campushub/gradebook-api/internal/repository"
	"github.com/campushub/gradebook-api/internal/service"
	"github.com/campushub/gradebook-api/pkg/cache"
	"github.com/campushub/gradebook-api/pkg/config"
	"github.com/campushub/gradebook-api/pkg/database"
	"github.com/campushub/gradebook-api/pkg/logger"
	corsmiddleware "github.com/campushub/gradebook-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campushub/gradebook-api/pkg/middleware/requestid"
)

// @title CampusHub Gradebook API
// @version 1.0.0
// @description Grade computation and class results service
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	weights := grading.Weights{
		Assessment: cfg.Grading.AssessmentWeight,
		Test:       cfg.Grading.TestWeight,
		Exam:       cfg.Grading.ExamWeight,
	}
	if err := weights.Validate(); err != nil {
		logr.Sugar().Fatalw("invalid grading weights", "error", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var cacheRepo service.CacheRepository
	if cfg.Results.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			repo := repository.NewCacheRepository(redisClient, logr)
			defer repo.Close()
			cacheRepo = repo
		}
	}

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Results.CacheTTL, logr, cacheRepo != nil)

	gradeRepo := repository.NewGradeRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	classRepo := repository.NewClassRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	userRepo := repository.NewUserRepository(db)

	authSvc := service.NewAuthService(userRepo, nil, logr, cfg.JWT)
	classSvc := service.NewClassService(classRepo, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, logr)
	studentSvc := service.NewStudentService(studentRepo, cfg.Results.PageSize, logr)
	gradeSvc, err := service.NewGradeService(gradeRepo, studentRepo, subjectRepo, cacheSvc, metricsSvc, weights, nil, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to build grade service", "error", err)
	}
	resultsSvc := service.NewResultsService(studentRepo, gradeRepo, cacheSvc, metricsSvc, cfg.Results, logr)

	handlers := handler.Handlers{
		Auth:    handler.NewAuthHandler(authSvc),
		Classes: handler.NewClassHandler(classSvc, studentSvc),
		Subject: handler.NewSubjectHandler(subjectSvc),
		Grades:  handler.NewGradeHandler(gradeSvc),
		Results: handler.NewResultsHandler(resultsSvc),
		Metrics: handler.NewMetricsHandler(metricsSvc),
	}
	if cfg.Exports.Enabled {
		exportSvc := service.NewExportService(studentRepo, gradeSvc, logr)
		handlers.Exports = handler.NewExportHandler(exportSvc)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", handlers.Metrics.Health)

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handlers, authSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
