package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	_ "github.com/joho/godotenv/autoload"

	"github.com/octobees/places-gateway/internal/app"
	"github.com/octobees/places-gateway/internal/config"
	"github.com/octobees/places-gateway/internal/lambdaproxy"
	"github.com/octobees/places-gateway/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	e, err := app.Build(ctx, cfg, app.Options{Logger: logger})
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}

	lambda.Start(lambdaproxy.Handler(e))
}
