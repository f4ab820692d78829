package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/example/yamp/internal/application"
	"github.com/example/yamp/internal/config"
	httptransport "github.com/example/yamp/internal/http"
	"github.com/example/yamp/internal/mail"
	"github.com/example/yamp/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine; the environment itself still applies.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.NewConnectionPool(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	userRepo := sqlite.NewUserRepository(pool)
	meetingRepo := sqlite.NewMeetingRepository(pool)
	invitationRepo := sqlite.NewInvitationRepository(pool)
	sessionRepo := sqlite.NewSessionRepository(pool)
	nonMemberMeetingRepo := sqlite.NewNonMemberMeetingRepository(pool)
	nonMemberInvitationRepo := sqlite.NewNonMemberInvitationRepository(pool)

	idGenerator := uuid.NewString
	tokenGenerator := uuid.NewString
	now := time.Now

	hasher := func(password string) (string, error) {
		return application.CreatePasswordHash(password, application.DefaultArgon2idParams)
	}

	userService := application.NewUserServiceWithLogger(userRepo, hasher, idGenerator, now, logger)
	meetingService := application.NewMeetingServiceWithLogger(meetingRepo, userRepo, idGenerator, now, logger)
	invitationService := application.NewInvitationServiceWithLogger(invitationRepo, meetingRepo, idGenerator, now, logger)
	authService := application.NewAuthServiceWithLogger(userRepo, sessionRepo, application.VerifyPassword, tokenGenerator, now, cfg.SessionTTL, logger)
	nonMemberMeetingService := application.NewNonMemberMeetingServiceWithLogger(nonMemberMeetingRepo, idGenerator, now, logger)
	nonMemberInvitationService := application.NewNonMemberInvitationServiceWithLogger(nonMemberInvitationRepo, idGenerator, now, logger)

	mailer := mail.NewMailer(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		BaseURL:  cfg.BaseURL,
	}, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:                 httptransport.NewAuthHandler(authService, logger),
		Users:                httptransport.NewUserHandler(userService, logger),
		Meetings:             httptransport.NewMeetingHandler(meetingService, logger),
		Invitations:          httptransport.NewInvitationHandler(invitationService, mailer, logger),
		NonMemberMeetings:    httptransport.NewNonMemberMeetingHandler(nonMemberMeetingService, logger),
		NonMemberInvitations: httptransport.NewNonMemberInvitationHandler(nonMemberInvitationService, mailer, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.AttachSession(authService),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("meeting API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
