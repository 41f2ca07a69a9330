package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/rledge21/shardmart/internal/adapter/channel"
	"github.com/rledge21/shardmart/internal/adapter/storage"
	"github.com/rledge21/shardmart/internal/config"
	"github.com/rledge21/shardmart/internal/core/service"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sql.Open("postgres", cfg.CentralDSN())
	if err != nil {
		log.WithError(err).Fatal("failed to open central store")
	}
	db.SetMaxOpenConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		log.WithError(err).Fatal("failed to ping central store")
	}
	log.Info("connected to central store")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Fatal("failed to connect redis")
	}
	log.Info("connected to redis")

	central := storage.NewPostgresCentral(db)
	worker := service.NewSyncWorker(central, log)
	queue := channel.NewRedisQueue(rdb, log)

	var wg sync.WaitGroup
	for i := 0; i < cfg.WorkerCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			consumerID := fmt.Sprintf("worker-%d", id)
			if n, err := queue.Reclaim(ctx, consumerID); err != nil {
				log.WithField("consumer", consumerID).WithError(err).Warn("reclaim failed")
			} else if n > 0 {
				log.WithFields(logrus.Fields{"consumer": consumerID, "events": n}).Info("reclaimed stranded events")
			}

			if err := queue.Consume(ctx, consumerID, worker); err != nil && ctx.Err() == nil {
				log.WithField("consumer", consumerID).WithError(err).Error("consumer stopped")
			}
		}(i)
	}
	log.WithField("workers", cfg.WorkerCount).Info("central sync workers started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	cancel()
	wg.Wait()
	log.Info("workers stopped")

	rdb.Close()
	db.Close()
	log.Info("connections closed")
}
