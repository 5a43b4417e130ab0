package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/nordbook/eid-gateway/internal/config"
	"github.com/nordbook/eid-gateway/internal/handlers"
	"github.com/nordbook/eid-gateway/internal/logger"
	"github.com/nordbook/eid-gateway/internal/repository"
	memory_repo "github.com/nordbook/eid-gateway/internal/repository/memory"
	redis_repo "github.com/nordbook/eid-gateway/internal/repository/redis"
	"github.com/nordbook/eid-gateway/internal/router"
	"github.com/nordbook/eid-gateway/internal/server"
	"github.com/nordbook/eid-gateway/internal/service"
	"github.com/nordbook/eid-gateway/internal/soap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.AppEnv)

	var creditCache repository.CreditCacheRepository
	if cfg.RedisSettings.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisSettings.Address,
			Password: cfg.RedisSettings.Password,
			DB:       cfg.RedisSettings.DB,
		})
		creditCache = redis_repo.NewRedisCreditCacheRepository(redisClient)
	} else {
		creditCache = memory_repo.NewMemoryCreditCacheRepository()
	}

	bankidClient := soap.NewClient(cfg.BankID.Endpoint, cfg.BankID.Username, cfg.BankID.Password, cfg.BankID.Timeout)
	creditClient := soap.NewClient(cfg.Credit.Provider.Endpoint, cfg.Credit.Provider.Username, cfg.Credit.Provider.Password, cfg.Credit.Provider.Timeout)

	bankidService := service.NewBankIDService(bankidClient)
	creditService := service.NewCreditService(creditClient, creditCache, cfg)
	tokenService := service.NewTokenService(cfg.Token.Secret, cfg.Token.TTL)
	checkoutService := service.NewCheckoutService(creditService, tokenService)

	app := server.New()

	router.SetupEIDRoutes(app, handlers.NewEIDHandler(bankidService, checkoutService))
	router.SetupCheckoutRoutes(app, handlers.NewCheckoutHandler(checkoutService), cfg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		log.Printf("Server starting on port %s...", cfg.Port)
		if err := app.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
