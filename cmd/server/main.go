package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Soumyadip04/MindMesh/internal/app"
	"github.com/Soumyadip04/MindMesh/internal/config"
	"github.com/Soumyadip04/MindMesh/internal/database"
	"github.com/Soumyadip04/MindMesh/internal/handler"
	"github.com/Soumyadip04/MindMesh/internal/queue"
	"github.com/Soumyadip04/MindMesh/internal/repository"
	"github.com/Soumyadip04/MindMesh/internal/router"
	"github.com/Soumyadip04/MindMesh/internal/schedule"
	"github.com/Soumyadip04/MindMesh/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := app.NewLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	migrator, err := app.NewMigrator(db, logger)
	if err != nil {
		logger.Fatal("init migrator", zap.Error(err))
	}
	if err := migrator.Run(context.Background()); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable, cache and rate limiting disabled")
	}

	bookings := repository.NewBookingRepo(db)
	recurring := repository.NewRecurringRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	notes := repository.NewNoteRepo(db)

	validator := schedule.NewValidator(cfg.StaffRooms)
	merger := schedule.NewMerger(bookings, recurring)
	events := service.NewPublisher(logger)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	scheduleHandler := handler.NewScheduleHandler(validator, bookings, merger, events)
	bookingHandler := handler.NewBookingHandler(validator, bookings, events)
	noteHandler := handler.NewNoteHandler(notes)

	go func() {
		if err := queue.StartBookingConsumer(service.BrokerURL(), logger); err != nil {
			logger.Warn("booking consumer stopped", zap.Error(err))
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterSchedule(e, scheduleHandler, cfg.JWTSecret, rdb)
	router.RegisterBookings(e, bookingHandler, cfg.JWTSecret)
	router.RegisterNotes(e, noteHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
