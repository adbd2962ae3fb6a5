package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/studyhall/seat-reservation-system/internal/app"
)

func main() {
	// Secrets come from the environment; a local .env is optional.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	err := app.Run()
	if err != nil {
		slog.Error("application exited with error", "error", err)
		os.Exit(1)
	}
}
