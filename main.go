package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"quizku_backend/internals/configs"
	database "quizku_backend/internals/databases"
	adminService "quizku_backend/internals/features/admin/service"
	certScheduler "quizku_backend/internals/features/certificates/scheduler"
	certService "quizku_backend/internals/features/certificates/service"
	"quizku_backend/internals/features/notifications"
	questionService "quizku_backend/internals/features/quiz/questions/service"
	sessionService "quizku_backend/internals/features/quiz/sessions/service"
	authScheduler "quizku_backend/internals/features/users/auth/scheduler"
	authService "quizku_backend/internals/features/users/auth/service"
	helper "quizku_backend/internals/helpers"
	ossHelper "quizku_backend/internals/helpers/oss"
	"quizku_backend/internals/logger"
	middlewares "quizku_backend/internals/middlewares"
	"quizku_backend/internals/middlewares/metrics"
	routes "quizku_backend/internals/route"
	"quizku_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	cfg, err := configs.Load()
	if err != nil {
		logger.L().WithError(err).Fatal("config")
	}
	logger.Init(cfg.LogLevel)
	log := logger.L()

	// 🔌 DB connect + pool + migrate
	if err := database.ConnectDB(cfg.DB); err != nil {
		log.WithError(err).Fatal("database connect failed")
	}
	db := database.DB
	database.TunePool(db, cfg.DB.Driver)
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	// `quizku seed` seeds and exits
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := seeds.RunAllSeeds(db, cfg); err != nil {
			log.WithError(err).Fatal("seeding failed")
		}
		closeDB(db, log)
		return
	}
	if cfg.SeedOnStart {
		if err := seeds.RunAllSeeds(db, cfg); err != nil {
			log.WithError(err).Error("seeding failed")
		}
	}
	database.WarmUpQueries(db)

	m := metrics.New()
	if sqlDB, err := db.DB(); err == nil {
		m.WatchDB(sqlDB, cfg.DB.Driver)
	}

	// services
	notifier := notifications.FromConfig(cfg.SMTP)
	store, err := certService.NewStore(cfg.ArtifactDir)
	if err != nil {
		log.WithError(err).Fatal("artifact dir")
	}
	artifacts := certService.New(store, cfg.PublicBaseURL)

	var remote certScheduler.RemoteReaper
	if cfg.OSS.Enabled() {
		ossSvc, err := ossHelper.NewOSSService(cfg.OSS)
		if err != nil {
			log.WithError(err).Warn("oss disabled, serving artifacts locally only")
		} else {
			artifacts.WithMirror(ossSvc, cfg.OSS.SignedURLTTL)
			remote = ossSvc
		}
	}

	auth := authService.New(db, cfg.JWTSecret, cfg.TokenTTL, notifier)
	questions := questionService.New(db, cfg.QuizSampleSize, cfg.QuizTimeLimit)
	sessions := sessionService.New(db, questions, notifier, artifacts, m)
	admin := adminService.New(db, artifacts)

	// ⏱ scheduler after the DB is ready
	jobs := cron.New(cron.WithChain(
		cron.Recover(cron.PrintfLogger(logger.Base())),
		cron.SkipIfStillRunning(cron.PrintfLogger(logger.Base())),
	))
	reaper := certScheduler.NewReaper(store, remote, cfg.ArtifactRetention)
	if _, err := reaper.Register(jobs, cfg.ArtifactReaperCron); err != nil {
		log.WithError(err).Fatal("artifact reaper schedule")
	}
	if _, err := authScheduler.RegisterBlacklistCleanup(jobs, cfg.BlacklistCron, auth); err != nil {
		log.WithError(err).Fatal("blacklist cleanup schedule")
	}
	jobs.Start()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})
	middlewares.SetupMiddlewares(app, cfg, m)

	routes.SetupRoutes(app, routes.Deps{
		DB:        db,
		Env:       cfg.Env,
		Auth:      auth,
		Questions: questions,
		Sessions:  sessions,
		Admin:     admin,
		Store:     store,
		Metrics:   m,
	})

	// 🔒 Keep-Alive & connection timeouts
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.WithField("port", cfg.Port).Info("listening")
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.WithError(err).Fatal("server error")
		}
	}()

	// graceful shutdown: stop cron, drain HTTP, close the pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	select {
	case <-jobs.Stop().Done():
	case <-ctx.Done():
	}
	_ = app.ShutdownWithContext(ctx)
	if err := notifier.Flush(ctx); err != nil {
		log.WithError(err).Warn("pending emails dropped")
	}
	closeDB(db, log)
}

func closeDB(db *gorm.DB, log *logrus.Entry) {
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.WithError(err).Warn("close db")
		}
	}
}
