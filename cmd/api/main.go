package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"him-backend/internal/core/auth"
	"him-backend/internal/core/cache"
	"him-backend/internal/core/config"
	"him-backend/internal/core/database"
	"him-backend/internal/core/logger"
	"him-backend/internal/core/server"
	"him-backend/internal/core/session"
	"him-backend/internal/domain"
	"him-backend/internal/repo"
	"him-backend/internal/service"
	"him-backend/internal/storage"
	"him-backend/internal/transport/http/handler"
	"him-backend/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{}, &domain.Category{}, &domain.Article{},
			&domain.Member{}, &domain.Event{}, &domain.Project{}, &domain.Student{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// redis：会话 + 热点读缓存共用一个连接
	c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
	sessions := session.NewRedisStore(c.RDB, sessionTTL)

	// 对象存储；配置不全则文章图片功能整体降级
	store, err := storage.New(
		cfg.Storage.Endpoint, cfg.Storage.Region,
		cfg.Storage.AccessKey, cfg.Storage.SecretKey,
		cfg.Storage.Bucket, cfg.Storage.PublicURL,
	)
	if err != nil {
		log.Fatal("storage init", zap.Error(err))
	}
	if store == nil {
		log.Warn("object storage not configured, image upload disabled")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	// repos → services
	articleRepo := repo.NewArticleRepo(db)
	categoryRepo := repo.NewCategoryRepo(db)
	memberRepo := repo.NewMemberRepo(db)
	eventRepo := repo.NewEventRepo(db)
	projectRepo := repo.NewProjectRepo(db)
	studentRepo := repo.NewStudentRepo(db)
	userRepo := repo.NewUserRepo(db)

	articleSvc := service.NewArticleService(articleRepo, categoryRepo, store, c, log)
	eventSvc := service.NewEventService(eventRepo, memberRepo)
	memberSvc := service.NewMemberService(memberRepo)
	projectSvc := service.NewProjectService(projectRepo, memberRepo)
	studentSvc := service.NewStudentService(studentRepo)
	userSvc := service.NewUserService(userRepo)

	h := router.Handlers{
		Articles:   handler.NewArticleHandler(articleSvc, userSvc, log),
		Categories: handler.NewCategoryHandler(articleSvc),
		Events:     handler.NewEventHandler(eventSvc),
		Members:    handler.NewMemberHandler(memberSvc),
		Projects:   handler.NewProjectHandler(projectSvc),
		Students:   handler.NewStudentHandler(studentSvc),
		Auth: handler.NewAuthHandler(userSvc, sessions, jwter,
			cfg.Session.CookieName, sessionTTL, cfg.Session.Secure, log),
		Setup: handler.NewSetupHandler(userSvc, cfg.AdminSetup.Secret, log),
		Pages: handler.NewPageHandler(articleSvc, studentSvc, userSvc, sessions,
			cfg.Session.CookieName, cfg.Session.Secure, log),
	}

	r := router.New(log, cfg, sessions, jwter, h)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start FAILED", zap.Error(err))
		}
	}()
	log.Info("api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
