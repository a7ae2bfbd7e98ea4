package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/MonkyMars/gecho"
	"github.com/joho/godotenv"

	"github.com/muhammadMilon/FruitPanda-sub001/api"
	"github.com/muhammadMilon/FruitPanda-sub001/config"
	"github.com/muhammadMilon/FruitPanda-sub001/database"
	"github.com/muhammadMilon/FruitPanda-sub001/structs"
)

var logger *gecho.Logger
var cfg *structs.Config

func init() {
	envErr := godotenv.Load()

	cfg = config.GetConfig()
	logger = config.InitializeLogger()

	if envErr != nil {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}

	if err := database.Initialize(); err != nil {
		logger.Fatal("Failed to initialize database", gecho.Field("error", err))
	}
}

func main() {
	setupGracefulShutdown(logger)

	r := api.App()

	logger.Info(fmt.Sprintf("Starting server (%s) on %s", cfg.Server.AppName, cfg.Server.Port))

	if err := http.ListenAndServe(cfg.Server.Port, r); err != nil {
		logger.Error("Failed to start server", gecho.Field("error", err))
	}
}

// setupGracefulShutdown closes the database pool before the process exits.
func setupGracefulShutdown(logger *gecho.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-c
		logger.Info("Received shutdown signal", gecho.Field("signal", sig.String()))
		if err := database.CloseInstance(); err != nil {
			logger.Error("Failed to close database", gecho.Field("error", err))
		}
		os.Exit(0)
	}()
}
