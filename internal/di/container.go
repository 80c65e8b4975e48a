package di

import (
	"fmt"
	"time"

	"research-agent/internal/adapter/tool"
	"research-agent/internal/application/port/output"
	"research-agent/internal/application/service"
	"research-agent/internal/infrastructure/llm/openrouter"
	"research-agent/internal/infrastructure/logger"
	"research-agent/internal/infrastructure/markdown"
	"research-agent/internal/infrastructure/web"
	"research-agent/internal/research"
	"research-agent/internal/usecase/executor"
	"research-agent/internal/usecase/pipeline"
)

type Config struct {
	OpenRouterAPIKey string
	OpenRouterModel  string
	Temperature      float32
	MaxToolRounds    int
	LLMTimeout       time.Duration
	PipelineTimeout  time.Duration
	SearchMaxResults int
	Development      bool
}

type Container struct {
	Logger  output.LoggerPort
	LLM     output.LLMPort
	Tools   output.ToolRegistry
	Cache   *service.ReportCache
	Handler *web.Handler
}

func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.NewLoggerAdapter(cfg.Development)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	llmCfg := openrouter.DefaultConfig(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)
	if cfg.LLMTimeout > 0 {
		llmCfg.RequestTimeout = cfg.LLMTimeout
	}
	llmCfg.Logger = log
	llm := openrouter.NewAdapter(llmCfg)

	tools := service.NewToolRegistry()
	search, err := tool.NewSearchTool(cfg.SearchMaxResults, log)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create search tool: %w", err)
	}
	tools.Register(search)

	runner := executor.New(llm, tools, log, cfg.MaxToolRounds)

	pipe, err := pipeline.New(research.Tasks(cfg.Temperature), runner, log)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("invalid pipeline configuration: %w", err)
	}

	cache := service.NewReportCache(pipe, log, cfg.PipelineTimeout)
	handler := web.NewHandler(cache, markdown.NewRenderer(), log)

	return &Container{
		Logger:  log,
		LLM:     llm,
		Tools:   tools,
		Cache:   cache,
		Handler: handler,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
