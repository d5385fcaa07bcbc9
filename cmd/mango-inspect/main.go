package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Aidin1998/mango_layouts/internal/inspect"
	"github.com/Aidin1998/mango_layouts/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	cfg, err := inspect.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	zapLogger, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	svc, err := inspect.NewService(zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create inspect service", zap.Error(err))
	}

	runErr := svc.Run(cfg, os.Stdin, os.Stdout)
	if cfg.Metrics {
		if err := svc.WriteMetrics(os.Stderr); err != nil {
			zapLogger.Error("Failed to write metrics", zap.Error(err))
		}
	}
	if runErr != nil {
		zapLogger.Error("Inspection failed", zap.Error(runErr))
		zapLogger.Sync()
		os.Exit(1)
	}
}
