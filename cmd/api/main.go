package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"eventplanner/config"
	_ "eventplanner/docs"
	"eventplanner/internal/adapters/auth"
	"eventplanner/internal/adapters/blob"
	"eventplanner/internal/adapters/email"
	"eventplanner/internal/adapters/invitelink"
	delivery "eventplanner/internal/delivery/http"
	"eventplanner/internal/delivery/http/controllers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/repository/postgres"
	"eventplanner/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title Event Planner API
// @version 1.0
// @description Event management backend: events, participants, invitation links, and photos.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	// Adapters
	linkCodec, err := invitelink.NewCodec(cfg.InviteLinkKey)
	if err != nil {
		logger.Error("invite link codec", "err", err)
		os.Exit(1)
	}
	fileStore, err := blob.NewFileStore(cfg.UploadDir)
	if err != nil {
		logger.Error("file store", "err", err)
		os.Exit(1)
	}
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretKey,
			InsecureSkipVerify: cfg.SESSkipVerify,
		},
	}, logger)
	if err != nil {
		logger.Error("mailer", "err", err)
		os.Exit(1)
	}
	jwtCodec := auth.NewJWTCodec(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	participantRepo := postgres.NewParticipantRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)
	photoRepo := postgres.NewPhotoRepository(db)
	userRepo := postgres.NewUserRepository(db)
	confirmationRepo := postgres.NewEmailConfirmationRepository(db)
	tx := postgres.NewTransactor(db)

	// Services
	emailService := services.NewEmailService(email.NewTemplateRenderer(), mailer)
	userService := services.NewUserService(userRepo, confirmationRepo, participantRepo, invitationRepo, eventRepo,
		hasher, jwtCodec, emailService, tx, logger, serviceTimeout)
	participantService := services.NewParticipantService(participantRepo, eventRepo, userRepo, serviceTimeout)
	eventService := services.NewEventService(eventRepo, participantRepo, participantService, invitationRepo, photoRepo, userRepo, fileStore, tx, serviceTimeout)
	invitationService := services.NewInvitationService(invitationRepo, participantRepo, eventRepo, userRepo, participantService, linkCodec, emailService, tx, logger, serviceTimeout)
	photoService := services.NewPhotoService(photoRepo, eventRepo, fileStore, tx, serviceTimeout)

	mux := delivery.NewRouter(delivery.Controllers{
		Auth:        controllers.NewAuthController(logger, userService),
		User:        controllers.NewUserController(logger, userService),
		Event:       controllers.NewEventController(logger, eventService),
		Participant: controllers.NewParticipantController(logger, participantService),
		Invitation:  controllers.NewInvitationController(logger, invitationService),
		Photo:       controllers.NewPhotoController(logger, photoService, fileStore),
	}, jwtCodec, logger)

	handler := middleware.CORS(cfg.AllowedOrigins)(middleware.Logging(logger)(mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
