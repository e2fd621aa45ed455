package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hostel/internal/config"
	"hostel/internal/queue"
	"hostel/internal/store"
)

// Worker consumes check-in events and maintains per-day present counts in
// redis for the admin dashboard.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "hostel:checkins")
	}

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for check-ins...")
	for msg := range messages {
		if msg.Type != "checkin" {
			continue
		}

		var evt struct {
			StudentID string `json:"studentId"`
			Date      string `json:"date"`
		}
		if err := json.Unmarshal(msg.Body, &evt); err != nil || evt.Date == "" {
			log.Printf("skipping malformed check-in: %v", err)
			continue
		}

		key := "hostel:present:" + evt.Date
		if err := redisClient.Client.Incr(ctx, key).Err(); err != nil {
			log.Printf("count update failed for %s: %v", evt.Date, err)
			continue
		}
		// Daily counters age out after a term.
		redisClient.Client.Expire(ctx, key, 120*24*time.Hour)
		log.Printf("recorded check-in for %s on %s", evt.StudentID, evt.Date)
	}

	log.Println("worker stopped")
}
