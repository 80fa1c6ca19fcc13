package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Nerldy/hello-books-api/internal/config"
	"github.com/Nerldy/hello-books-api/internal/httpserver"
	"github.com/Nerldy/hello-books-api/internal/logging"
	"github.com/Nerldy/hello-books-api/internal/middleware"
	"github.com/Nerldy/hello-books-api/internal/mykafka"
	"github.com/Nerldy/hello-books-api/internal/repo"
	"github.com/Nerldy/hello-books-api/internal/search"
	"github.com/Nerldy/hello-books-api/internal/service"
	"github.com/Nerldy/hello-books-api/internal/tokens"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel)

	db, err := config.InitDB(context.Background(), cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	producer := mykafka.NewProducer([]string{cfg.KafkaAddress})

	esClient, err := search.NewClient(search.Config{
		URL:      cfg.ESURL,
		Username: cfg.ESUser,
		Password: cfg.ESPassword,
		Index:    "books",
	})
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}
	if esClient == nil {
		logger.Warn("search disabled, ES_URL not set")
	}

	store := repo.New(db)
	codec := tokens.NewCodec([]byte(cfg.JWTSecret))

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), logging.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc: &service.AuthService{Repo: store, Codec: codec, Producer: producer},
		},
		BookHandler: &httpserver.BookHTTP{
			Svc: &service.BookService{Repo: store, Producer: producer, Search: esClient},
		},
		AuthMW: middleware.NewAuth(store, codec),
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "port", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
