//cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/unclebandit/customer-service/internal/config"
	"github.com/unclebandit/customer-service/internal/db"
	"github.com/unclebandit/customer-service/internal/logger"
	"github.com/unclebandit/customer-service/internal/repository"
	"github.com/unclebandit/customer-service/internal/seed"
)

func main() {
	seedFile := flag.String("file", "seed/customers.sql", "SQL file to execute after the table exists")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	zl, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	gormDB, sqlDB, err := db.Open(context.Background(), cfg.Database, zl)
	if err != nil {
		zl.Fatal("database unavailable", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := repository.EnsureSchema(gormDB); err != nil {
		zl.Fatal("failed to create Customer table", zap.Error(err))
	}

	if err := seed.RunFiles(gormDB, *seedFile); err != nil {
		zl.Fatal("seeding failed", zap.Error(err))
	}
	zl.Info("database seeding completed", zap.String("file", *seedFile))
}
