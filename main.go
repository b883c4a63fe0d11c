package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/docgen"
	"github.com/joho/godotenv"
	"github.com/kevinaaaquil/dailypulse/backend/config"
	"github.com/kevinaaaquil/dailypulse/backend/handlers"
	"github.com/kevinaaaquil/dailypulse/backend/middleware"
	"github.com/kevinaaaquil/dailypulse/backend/service"
	"github.com/kevinaaaquil/dailypulse/backend/store"
	"go.uber.org/zap"
)

var routes = flag.Bool("routes", false, "Generate router documentation")

func newLogger(cfg *config.Config) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if cfg.Production() {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	return log
}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := newLogger(cfg)
	defer log.Sync()
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx := context.Background()

	// Route docs need no backing services.
	if *routes {
		srv := newServer(cfg, log, nil, nil, nil, nil, nil)
		fmt.Println(docgen.MarkdownRoutesDoc(srv.Router(), docgen.MarkdownOpts{
			ProjectPath: "github.com/kevinaaaquil/dailypulse/backend",
			Intro:       "The Daily Pulse REST API.",
		}))
		return
	}

	db, err := store.NewMongoDB(ctx, cfg.MongoURI, cfg.DBName, log)
	if err != nil {
		log.Fatal("mongodb", zap.Error(err))
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Warn("mongodb disconnect", zap.Error(err))
		}
	}()
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal("mongodb indexes", zap.Error(err))
	}

	var directory middleware.UserDirectory = db
	var cache *service.UserCache
	if cfg.RedisAddr != "" {
		cache = service.NewUserCache(db, service.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword), cfg.UserCacheTTL, log)
		if err := cache.Ping(ctx); err != nil {
			log.Fatal("redis", zap.Error(err))
		}
		directory = cache
		log.Info("user cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.UserCacheTTL))
	}

	var images *service.S3Service
	if cfg.S3Bucket != "" {
		images, err = service.NewS3Service(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3AccessKeyID, cfg.S3SecretKey)
		if err != nil {
			log.Fatal("s3", zap.Error(err))
		}
	} else {
		log.Warn("AWS_S3_BUCKET not set; image uploads disabled")
	}

	var payments *service.StripePayments
	if cfg.StripeKey != "" {
		payments = service.NewStripePayments(cfg.StripeKey)
	} else {
		log.Warn("STRIPE_SECRET_KEY not set; payment intents disabled")
	}

	var mailer *service.Mailer
	if cfg.SMTPHost != "" {
		mailer = service.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	}

	srv := newServer(cfg, log, db, directory, cache, images, payments)
	if mailer != nil {
		srv.Payments.Mailer = mailer
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("server listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
}

// newServer assembles the handlers. Nil integrations leave their routes
// answering 503.
func newServer(cfg *config.Config, log *zap.Logger, db *store.DB, directory middleware.UserDirectory,
	cache *service.UserCache, images *service.S3Service, payments *service.StripePayments) *handlers.Server {
	issuer := middleware.NewIssuer(cfg.JWTSecret, middleware.DefaultTokenTTL)

	srv := &handlers.Server{
		Auth:       &handlers.AuthHandler{Issuer: issuer, Log: log},
		Users:      &handlers.UsersHandler{Directory: directory, Log: log},
		Articles:   &handlers.ArticlesHandler{Directory: directory, Log: log},
		Uploads:    &handlers.UploadHandler{MaxBytes: cfg.MaxUploadMB * 1024 * 1024, Log: log},
		Publishers: &handlers.PublishersHandler{Log: log},
		Payments:   &handlers.PaymentsHandler{Log: log},
		Stats:      &handlers.StatsHandler{Log: log},
		Issuer:     issuer,
		Directory:  directory,
		Origins:    cfg.ClientOrigins,
		Log:        log,
	}
	if db != nil {
		srv.Users.DB = db
		srv.Articles.DB = db
		srv.Publishers.DB = db
		srv.Payments.DB = db
		srv.Stats.DB = db
		srv.DB = db
	}
	// Interface fields stay nil rather than holding typed nil pointers.
	if cache != nil {
		srv.Users.Cache = cache
	}
	if images != nil {
		srv.Uploads.Images = images
		srv.Articles.Images = images
	}
	if payments != nil {
		srv.Payments.Processor = payments
	}
	return srv
}
