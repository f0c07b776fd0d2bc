package main

import (
	"context"
	"log"
	"os"

	"sunnyside-shop/internal/config"
	"sunnyside-shop/internal/db"
	"sunnyside-shop/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		logger.Println("no .env file found, using environment variables")
	}
	cfg := config.FromEnv()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := seed.Apply(ctx, pool); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
