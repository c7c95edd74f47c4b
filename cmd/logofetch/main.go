package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"logofetch"
)

func main() {
	_ = godotenv.Load()

	level := slog.LevelInfo
	if strings.EqualFold(getEnv("LOG_LEVEL", "info"), "debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := &logofetch.Config{
		OutDir:           getEnv("OUT_DIR", logofetch.DefaultOutDir),
		BrandfetchKey:    os.Getenv("BRANDFETCH_KEY"),
		SerpAPIKey:       os.Getenv("SERPAPI_KEY"),
		OfficialPriority: getEnvBool("OFFICIAL_PRIORITY", true),
		EnableFallbacks:  getEnvBool("ENABLE_FALLBACKS", true),
		Capabilities:     logofetch.DefaultCapabilities(),
	}

	pipe, err := logofetch.NewPipeline(cfg)
	if err != nil {
		slog.Error("logofetch: startup failed", "error", err)
		os.Exit(1)
	}

	listPath := getEnv("CSV_PATH", "brands.csv")
	if err := pipe.RunBatch(context.Background(), listPath); err != nil {
		slog.Error("logofetch: batch failed", "error", err)
		os.Exit(1)
	}

	slog.Info("logofetch: done",
		"brands", len(pipe.Recorder().Records()),
		"out", cfg.OutDir)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
