package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/stagedoor/theater-api/internal/config"
	"github.com/stagedoor/theater-api/internal/database"
	"github.com/stagedoor/theater-api/internal/handler"
	"github.com/stagedoor/theater-api/internal/middleware"
	"github.com/stagedoor/theater-api/internal/queue"
	"github.com/stagedoor/theater-api/internal/repository"
	"github.com/stagedoor/theater-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(database.Options{
		User: cfg.DBUser, Pass: cfg.DBPass,
		Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.DBConnMaxLifeMin) * time.Minute,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	theaters := repository.NewTheaterRepo(db)
	sessions := repository.NewSessionRepo(db)

	// Baseline data must be in place before the server accepts traffic.
	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Seed(seedCtx, roles, users, theaters, cfg.BcryptCost); err != nil {
		cancel()
		log.Fatalf("seed: %v", err)
	}
	cancel()

	// Redis is optional; a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}

	session := middleware.Session(cfg.SessionSecret, cfg.SessionTTLMin, sessions, users, roles)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	authHandler := handler.NewAuthHandler(cfg, users, roles, sessions)
	userHandler := handler.NewUserHandler(cfg, users, roles)
	theaterHandler := handler.NewTheaterHandler(theaters, users)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, userHandler, session)
	router.RegisterTheaters(e, theaterHandler, session, cache)
	router.RegisterUsers(e, userHandler, session)

	// Audit consumer runs for the lifetime of the process and reconnects
	// on broker failures.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
