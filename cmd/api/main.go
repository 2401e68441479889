package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/realitylabs/reality-check/internal/application"
	appanalysis "github.com/realitylabs/reality-check/internal/application/analysis"
	appdetector "github.com/realitylabs/reality-check/internal/application/detector"
	"github.com/realitylabs/reality-check/internal/config"
	"github.com/realitylabs/reality-check/internal/domain/analysis"
	domaindetector "github.com/realitylabs/reality-check/internal/domain/detector"
	"github.com/realitylabs/reality-check/internal/domain/identity"
	"github.com/realitylabs/reality-check/internal/domain/submission"
	"github.com/realitylabs/reality-check/internal/forensics"
	mysqlp "github.com/realitylabs/reality-check/internal/infra/db/mysql"
	postgresp "github.com/realitylabs/reality-check/internal/infra/db/postgres"
	hfdetector "github.com/realitylabs/reality-check/internal/infra/detector/huggingface"
	oaidetector "github.com/realitylabs/reality-check/internal/infra/detector/openai"
	"github.com/realitylabs/reality-check/internal/infra/httpserver"
	minioStore "github.com/realitylabs/reality-check/internal/infra/storage"
	"github.com/realitylabs/reality-check/internal/middleware"
)

func main() {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	var (
		db       *sql.DB
		repo     submission.Repository
		resolver identity.Resolver
	)
	switch cfg.Database.Driver {
	case "", "mysql":
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqlp.NewSubmissionRepository(db)
		resolver = mysqlp.NewAccountRepository(db)
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresp.NewSubmissionRepository(db)
		resolver = postgresp.NewAccountRepository(db)
	default:
		log.Fatalf("unknown database driver: %s", cfg.Database.Driver)
	}
	defer db.Close()

	// Object storage is optional: without it submissions keep no media URL.
	var media submission.MediaStore
	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		media = store
	}

	var detectorClient domaindetector.Client
	switch cfg.Detector.Provider {
	case "":
		// disabled
	case "huggingface":
		detectorClient = hfdetector.New(cfg.Detector.Endpoint, cfg.Detector.APIKey)
	case "openai":
		detectorClient = oaidetector.NewClient(cfg.Detector.APIKey, cfg.Detector.Model)
	default:
		log.Fatalf("unknown detector provider: %s", cfg.Detector.Provider)
	}

	scoring := analysis.DefaultScoreConfig()
	svc := &appanalysis.Service{
		Repo:      repo,
		Extractor: forensics.NewPipeline(scoring),
		Detector:  appdetector.NewService(detectorClient, cfg.DetectorTimeout()),
		Media:     media,
		Clock:     application.SystemClock{},
		Scoring:   scoring,
	}

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(60, 1))

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}))
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Mount("/", httpserver.NewRouter(svc, resolver, cfg.MaxUploadBytes()))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
