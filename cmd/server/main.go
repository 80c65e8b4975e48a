package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"research-agent/internal/di"
	"research-agent/internal/infrastructure/env"
	"research-agent/internal/infrastructure/web"
)

func main() {
	envService := env.NewEnvService()

	container, err := di.NewContainer(di.Config{
		OpenRouterAPIKey: envService.MustGet("OPENROUTER_API_KEY"),
		OpenRouterModel:  envService.MustGet("OPENROUTER_MODEL_NAME"),
		Temperature:      float32(envService.GetFloat("TEMPERATURE", 0.7)),
		MaxToolRounds:    envService.GetInt("MAX_TOOL_ROUNDS", 10),
		LLMTimeout:       envService.GetDuration("LLM_TIMEOUT", 2*time.Minute),
		PipelineTimeout:  envService.GetDuration("PIPELINE_TIMEOUT", 20*time.Minute),
		SearchMaxResults: envService.GetInt("SEARCH_MAX_RESULTS", 5),
		Development:      envService.GetBool("DEV_LOGGING", false),
	})
	if err != nil {
		log.Fatalf("Initialization failed: %v", err)
	}
	defer container.Close()

	serverCfg := web.DefaultServerConfig()
	serverCfg.Addr = envService.GetDefault("LISTEN_ADDR", serverCfg.Addr)
	server := web.NewServer(serverCfg, container.Handler, container.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		container.Logger.Error("Server stopped with error", "error", err)
		container.Close()
		log.Fatalf("Server error: %v", err)
	}
}
