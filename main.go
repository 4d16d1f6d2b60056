package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slidegen/artifact"
	"slidegen/config"
	"slidegen/export"
	"slidegen/handler"
	"slidegen/logger"
	"slidegen/outline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	var client outline.Client
	if cfg.LLM.APIKey != "" {
		llmClient, err := outline.NewLLMClient(outline.LLMConfig{
			BaseURL: cfg.LLM.BaseURL,
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout,
		}, zl)
		if err != nil {
			zl.Fatal("failed to build llm client", zap.Error(err))
		}
		client = llmClient
	} else {
		zl.Warn("LLM_API_KEY is empty, serving demo outlines only")
	}

	generator := outline.NewGenerator(client, outline.NewDemoSynthesizer(),
		cfg.LLM.MaxRetries, cfg.LLM.RetryDelay, zl)

	templates := export.NewTemplateStore(cfg.Templates.Dir)
	if err := templates.EnsureDefault(); err != nil {
		zl.Fatal("failed to prepare default template", zap.Error(err))
	}
	renderers := export.NewSelector(templates, zl)
	artifacts := artifact.NewStore(cfg.Output.Dir)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))

	h := handler.NewGenerateHandler(generator, renderers, artifacts, zl)
	h.Register(router)

	zl.Info("server starting",
		zap.String("addr", cfg.Server.Addr),
		zap.String("templates_dir", cfg.Templates.Dir),
		zap.String("output_dir", cfg.Output.Dir))

	if err := router.Run(cfg.Server.Addr); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
