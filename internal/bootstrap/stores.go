package bootstrap

import (
	"context"
	"log"

	"trade-advisor-be/internal/config"
	"trade-advisor-be/internal/repository/contract"
	"trade-advisor-be/internal/repository/implementation"
	"trade-advisor-be/internal/repository/memory"
	"trade-advisor-be/pkg/advisor/knowledge"
	"trade-advisor-be/pkg/database"
	"trade-advisor-be/pkg/embedding"
)

// newModerationLogRepository returns where the gate writes its audit rows.
func newModerationLogRepository(conns *database.Connections, cfg *config.Config) contract.ModerationLogRepository {
	if cfg.Pipeline.StoreBackend == "memory" {
		log.Printf("[INFO] Moderation audit log: in-process memory")
		return memory.NewModerationLogRepository()
	}
	return implementation.NewModerationLogRepository(conns.Service)
}

// newKnowledgeIndex returns the index the knowledge engine searches. The
// memory index holds only the seeded global chunks; user documents are
// ingested into postgres and are not visible to it.
func newKnowledgeIndex(ctx context.Context, conns *database.Connections, cfg *config.Config, provider embedding.EmbeddingProvider) (contract.KnowledgeChunkRepository, error) {
	if cfg.Pipeline.StoreBackend != "memory" {
		return implementation.NewKnowledgeChunkRepository(conns.Reader), nil
	}

	index := memory.NewKnowledgeChunkRepository()
	if len(cfg.Pipeline.KnowledgeSeedFiles) == 0 {
		log.Printf("[WARN] Knowledge index is in memory with no seed files, global retrieval will be empty")
		return index, nil
	}

	chunks, err := knowledge.LoadSeedFiles(cfg.Pipeline.KnowledgeSeedFiles)
	if err != nil {
		return nil, err
	}
	if err := knowledge.EmbedChunks(ctx, provider, chunks); err != nil {
		return nil, err
	}
	if err := index.CreateBulk(ctx, chunks); err != nil {
		return nil, err
	}
	log.Printf("[INFO] Knowledge index: in-process memory, %d seeded chunks", len(chunks))
	return index, nil
}
