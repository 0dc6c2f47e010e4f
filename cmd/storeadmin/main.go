package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"storeadmin/internal/config"
	"storeadmin/internal/events"
	"storeadmin/internal/http/handlers"
	"storeadmin/internal/redisx"
	"storeadmin/internal/repos"
)

func main() {
	// .env is optional; real environment wins
	_ = godotenv.Load()
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	var pub events.Publisher = events.Nop{}
	var kp *events.KafkaPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kp = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, 1024)
		kp.Start()
		pub = kp
		log.Printf("[events] kafka topic %s on %v", cfg.KafkaTopic, cfg.KafkaBrokers)
	}

	deps := handlers.NewDeps(db, cfg, pub)

	if cfg.RedisAddr != "" {
		rdb := redisx.New(cfg.RedisAddr)
		if err := redisx.Ping(rdb); err != nil {
			log.Printf("[warn] redis %s unreachable, limiter and csrf stay in memory: %v", cfg.RedisAddr, err)
		} else {
			store := redisx.NewStorage(rdb, cfg.ServiceName+":")
			defer store.Close()
			deps.Storage = store
		}
	}

	app := handlers.NewApp(cfg, deps)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Printf("[shutdown] draining")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("[shutdown] http: %v", err)
	}
	if kp != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := kp.Close(ctx); err != nil {
			log.Printf("[shutdown] kafka: %v", err)
		}
	}
}
