package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"hostel/internal/attendance"
	"hostel/internal/cloudinary"
	"hostel/internal/config"
	"hostel/internal/handler"
	"hostel/internal/queue"
	"hostel/internal/session"
	"hostel/internal/store"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	redisClient := store.NewRedis(cfg.RedisAddr)

	var st store.Store
	var db *store.DB
	if cfg.StoreBackend == "memory" {
		st = store.NewMemory()
		log.Println("using in-memory store (data is not persisted)")
	} else {
		var err error
		db, err = store.NewDB(cfg.DatabaseURL)
		if err != nil {
			if db == nil {
				// Open failed outright (malformed DATABASE_URL); there is
				// no pool to serve from.
				return err
			}
			log.Printf("warning: db not reachable: %v", err)
		}
		defer func() {
			if db != nil {
				_ = db.Close()
			}
		}()
		st = store.NewPostgres(db.Client)
	}

	var sessions session.Registry
	if cfg.StoreBackend == "memory" {
		sessions = session.NewMemoryRegistry()
	} else {
		sessions = session.NewRedisRegistry(redisClient.Client)
	}

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "hostel:checkins")
	}

	// Cloudinary client (nil when not configured)
	var cdnClient *cloudinary.Client
	if cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cdnClient = cloudinary.New(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		log.Println("Cloudinary configured:", cfg.CloudinaryCloudName)
	} else {
		log.Println("Cloudinary not configured (complaint images disabled)")
	}

	att := attendance.NewService(st)
	h := handler.New(cfg, st, sessions, att, q, cdnClient, func() (bool, bool) {
		// Memory backends have no external dependency to probe.
		redisUsed := cfg.StoreBackend != "memory" || cfg.QueueBackend != "memory"
		redisOK := !redisUsed || redisClient.Healthy(context.Background())
		dbOK := cfg.StoreBackend == "memory" || db != nil
		return redisOK, dbOK
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      h.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}
