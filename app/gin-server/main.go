package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Prince260602/internhubs/config"
	"github.com/Prince260602/internhubs/internal/api/handlers"
	"github.com/Prince260602/internhubs/internal/api/middleware"
	"github.com/Prince260602/internhubs/internal/api/routes"
	"github.com/Prince260602/internhubs/internal/auth"
	"github.com/Prince260602/internhubs/internal/cache"
	"github.com/Prince260602/internhubs/internal/events"
	"github.com/Prince260602/internhubs/internal/logger"
	"github.com/Prince260602/internhubs/internal/mail"
	"github.com/Prince260602/internhubs/internal/observability"
	mongorepo "github.com/Prince260602/internhubs/internal/repositories/mongo"
	pgrepo "github.com/Prince260602/internhubs/internal/repositories/postgres"
	"github.com/Prince260602/internhubs/internal/services"
	"github.com/Prince260602/internhubs/internal/storage"
	"github.com/Prince260602/internhubs/internal/validation"
	"github.com/Prince260602/internhubs/internal/workers"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	log := logger.New(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("config error")
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg config.AppConfig, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOtel := observability.InitOTel(ctx, log, observability.OtelConfigFromEnv(cfg.OtelEnabled, cfg.OtelServiceName))
	defer func() { _ = shutdownOtel(context.Background()) }()

	// MongoDB
	mc, err := config.InitMongo(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() { _ = mc.Disconnect(context.Background()) }()
	db := mc.Database(cfg.MongoDB)
	if err := config.EnsureMongoIndexes(ctx, db); err != nil {
		return err
	}
	log.WithField("db", cfg.MongoDB).Info("MongoDB connected")

	tx := mongorepo.NewDirectTx()
	if cfg.MongoTransactions {
		tx = mongorepo.NewSessionTx(mc)
	}

	// Redis (optional): listing cache, listing events, mail queue
	var (
		rdb          *redis.Client
		listingCache cache.Cache = cache.Nop{}
		bus          events.Bus  = events.NewMemoryBus()
	)
	if cfg.RedisURL != "" {
		rdb, err = config.InitRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		listingCache = cache.NewRedisCache(rdb)
		bus = events.NewRedisBus(rdb, log)
		log.Info("Redis connected")
	}

	// PostgreSQL (optional): notification ledger
	ledger := pgrepo.NopNotificationRepo()
	if cfg.PostgresURI != "" {
		gdb, err := config.InitPostgres(cfg.PostgresURI)
		if err != nil {
			return err
		}
		if err := pgrepo.MigrateNotifications(gdb); err != nil {
			return err
		}
		ledger = pgrepo.NewNotificationRepo(gdb)
		log.Info("PostgreSQL connected")
	}

	// Mail
	var mailer mail.Mailer = mail.NewLogMailer(log)
	if cfg.Mail.Transport == "gmail" {
		gm, err := mail.NewGmailMailer(ctx, cfg.Mail.CredentialsFile, cfg.Mail.TokenFile)
		if err != nil {
			return err
		}
		mailer = gm
	}
	templates, err := mail.DefaultTemplates()
	if err != nil {
		return err
	}
	var queue services.MailQueue
	if cfg.Mail.Queue && rdb != nil {
		queue = &workers.MailStream{Redis: rdb, MaxLen: 10000}
	}
	notifications := services.NewNotificationService(
		services.NotificationConfig{From: cfg.Mail.User, Admin: cfg.Mail.User},
		templates, mailer, queue, ledger, log,
	)
	if queue != nil {
		pool := &workers.MailWorkerPool{Redis: rdb, Mail: notifications, NumWorkers: cfg.Mail.Workers, Logger: log}
		if err := pool.Start(ctx); err != nil {
			return err
		}
	}

	// GCS (optional): resumes
	var uploader storage.Uploader
	if cfg.GCSBucket != "" {
		gcs, err := storage.NewGCSUploader(ctx, cfg.GCSBucket)
		if err != nil {
			return err
		}
		defer gcs.Close()
		uploader = gcs
	}

	gateway, err := validation.NewGateway()
	if err != nil {
		return err
	}
	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)

	users := mongorepo.NewUserRepo(db)
	profiles := services.NewProfileService(users, mongorepo.NewProfileRepo(db), mongorepo.NewSectionRepos(db), tx, gateway, log)
	listingOpts := services.ListingOptions{CacheTTL: cfg.ListingsCacheTTL}
	jobs := services.NewJobService(mongorepo.NewJobRepo(db), listingCache, bus, listingOpts, log)
	internships := services.NewInternshipService(mongorepo.NewInternshipRepo(db), listingCache, bus, listingOpts, log)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		otelgin.Middleware(cfg.OtelServiceName),
		middleware.RequestLogger(log),
		middleware.CORS(cfg.CORSOrigins),
	)

	routes.RegisterRoutes(r, routes.Deps{
		Auth:                 handlers.NewAuthHandler(services.NewUserService(users, tokens)),
		Profile:              handlers.NewProfileHandler(profiles, handlers.ProfileHandlerConfig{}),
		Resume:               handlers.NewResumeHandler(services.NewResumeService(users, uploader)),
		Jobs:                 handlers.NewJobHandler(jobs),
		Internships:          handlers.NewInternshipHandler(internships),
		Notification:         handlers.NewNotificationHandler(notifications),
		WS:                   handlers.NewWSHandler(bus, cfg.CORSOrigins, log),
		Tokens:               tokens,
		ListingsRequireAdmin: cfg.ListingsRequireAdmin,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
