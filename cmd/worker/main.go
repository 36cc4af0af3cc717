package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/abdibrokhim/ai-interviewer/internal/setup"
	setuplogger "github.com/abdibrokhim/ai-interviewer/internal/setup/logger"
	"github.com/abdibrokhim/ai-interviewer/internal/stream"
	"github.com/abdibrokhim/ai-interviewer/internal/stream/redis"
)

func main() {
	// Setup logging
	logger := setuplogger.New(os.Getenv("LOG_LEVEL"))
	log.Logger = logger

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := setup.LoadConfig()
	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	streamName := os.Getenv("SCORING_STREAM")
	if streamName == "" {
		streamName = "interview-scoring"
	}

	consumer, err := stream.NewStreamConsumer(ctx, &stream.Config{
		Provider: os.Getenv("STREAM_PROVIDER"),
		RedisConfig: redis.NewRedisStreamConfig(
			cfg.RedisAddr,
			cfg.RedisPassword,
			streamName,
			"scoring-group",
			os.Getenv("HOSTNAME"),
		),
	}, deps.Orchestrator, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create stream consumer")
	}

	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup consumer")
	}

	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Consumer stopped with error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down...")

	if err := consumer.Stop(); err != nil {
		logger.Error().Err(err).Msg("Consumer stop failed")
	}

	log.Info().Msg("Scoring worker stopped")
}
