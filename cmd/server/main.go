package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/docqa/backend/internal/answer"
	"github.com/docqa/backend/internal/api"
	"github.com/docqa/backend/internal/config"
	"github.com/docqa/backend/internal/extract"
	"github.com/docqa/backend/internal/storage"
	"github.com/docqa/backend/internal/web"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	defaultPath := os.Getenv("DOCQA_CONFIG")
	if defaultPath == "" {
		defaultPath = "docqa.yaml"
	}
	configPath := flag.String("config", defaultPath, "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	embeddedMode := web.HasEmbeddedFiles()

	store := storage.NewMemoryStore(cfg.Documents.CacheSize, cfg.GetDocumentTTL())

	answerer, err := answer.New(context.Background(), answer.Options{
		Provider: cfg.Answerer.Provider,
		Model:    cfg.Answerer.Model,
		APIKey:   cfg.Answerer.APIKey,
		Endpoint: cfg.Answerer.Endpoint,
		Timeout:  cfg.GetAnswerTimeout(),
	})
	if err != nil {
		fmt.Printf("Failed to initialize answerer: %v\n", err)
		os.Exit(1)
	}

	e := api.NewServer(&api.Dependencies{
		Store:         store,
		Registry:      extract.GetGlobalRegistry(),
		Answerer:      answerer,
		AnswerTimeout: cfg.GetAnswerTimeout(),
		Version:       Version,
	}, api.MiddlewareOptions{
		EnableCORS:           cfg.Server.EnableCORS,
		AllowOrigins:         cfg.GetAllowOrigins(),
		BodyLimit:            cfg.Server.BodyLimit,
		EnableRequestLogging: cfg.Advanced.EnableRequestLogging,
		EnableCompression:    cfg.Advanced.EnableCompression,
		CompressionLevel:     cfg.Advanced.CompressionLevel,
	})

	if embeddedMode {
		if err := web.RegisterStaticRoutes(e); err != nil {
			fmt.Printf("Warning: failed to register static routes: %v\n", err)
		} else {
			fmt.Println("Serving embedded frontend from binary")
		}
	}

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Document Q&A Server                             ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  Answerer:   %-45s║\n", answerer.Name())
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", *configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Documents: %-46s║\n", fmt.Sprintf("%d cached, %s TTL", cfg.Documents.CacheSize, cfg.GetDocumentTTL()))
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	if embeddedMode {
		fmt.Printf("Open http://localhost:%d in your browser\n\n", cfg.Server.Port)
	}

	e.Logger.Fatal(e.StartServer(s))
}
