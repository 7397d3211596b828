// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/wildcard-games/uno-service/internal/auth"
	"github.com/wildcard-games/uno-service/internal/cache"
	"github.com/wildcard-games/uno-service/internal/handlers"
	"github.com/wildcard-games/uno-service/internal/middleware"
)

func main() {
	auth.Init()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	// The action queue is optional; without REDIS_ADDR the server runs
	// standalone and publishes nothing.
	if os.Getenv("REDIS_ADDR") != "" {
		if err := cache.ConnectRedis(); err != nil {
			logger.Warnf("room action queue disabled: %v", err)
			cache.Rdb = nil
		}
	}

	srv := handlers.NewServer()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", handlers.HealthHandler)
	mux.Handle("/rooms", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.ListRoomsHandler(srv),
	)))
	mux.Handle("/room/ws/", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.RoomWSHandler(logger, srv),
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
