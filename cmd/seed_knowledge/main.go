package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"trade-advisor-be/internal/config"
	"trade-advisor-be/internal/repository/implementation"
	"trade-advisor-be/pkg/advisor/knowledge"
	"trade-advisor-be/pkg/database"
	"trade-advisor-be/pkg/embedding"
	"trade-advisor-be/pkg/embedding/jina"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "parse and print chunks without embedding or writing")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		log.Fatal("usage: seed_knowledge [-dry-run] <file.yaml>...")
	}

	chunks, err := knowledge.LoadSeedFiles(paths)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	log.Printf("Parsed %d chunks from %d files", len(chunks), len(paths))

	if *dryRun {
		for _, c := range chunks {
			fmt.Printf("[%s/%s] region=%q season=%q stage=%q priority=%d keywords=%v\n",
				c.Domain, c.Topic, c.Region, c.Season, c.BusinessStage, c.PriorityScore, c.Keywords)
		}
		return
	}

	cfg := config.Load()
	db, err := database.NewGormDBFromDSN(cfg.Database.ServiceConnection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	var provider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	case "jina":
		provider = jina.NewJinaProvider(cfg.Keys.Jina)
	case "gemini":
		provider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	default:
		provider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI)
	}

	ctx := context.Background()
	if err := knowledge.EmbedChunks(ctx, provider, chunks); err != nil {
		log.Fatalf("Error: %v", err)
	}

	repo := implementation.NewKnowledgeChunkRepository(db)
	if err := repo.CreateBulk(ctx, chunks); err != nil {
		log.Fatalf("Error: insert failed: %v", err)
	}

	log.Printf("Success: seeded %d global knowledge chunks", len(chunks))
}
