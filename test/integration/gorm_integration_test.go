package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/repository/contract"
	"trade-advisor-be/internal/repository/implementation"
	"trade-advisor-be/internal/repository/specification"
	"trade-advisor-be/internal/repository/unitofwork"
	"trade-advisor-be/pkg/database"
	"trade-advisor-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitVector(axis int) []float32 {
	v := make([]float32, embedding.Dimensions)
	v[axis] = 1
	return v
}

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	conns, err := database.NewConnections(dsn, os.Getenv("DB_SERVICE_CONNECTION_STRING"))
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(conns.Service)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.KnowledgeChunkRepository())
	assert.NotNil(t, uow.ModerationLogRepository())

	// Basic Ping
	sqlDB, _ := conns.Reader.DB()
	require.NoError(t, sqlDB.Ping())
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Moderation Log Repository", func(t *testing.T) {
		count, err := uow.ModerationLogRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("ModerationLog count: %d", count)
	})

	t.Run("Vector search respects population and threshold", func(t *testing.T) {
		ctx := context.Background()
		repo := implementation.NewKnowledgeChunkRepository(conns.Service)
		owner := uuid.New()
		docID := uuid.New()

		global := &entity.KnowledgeChunk{
			Id: uuid.New(), Content: "integration global chunk", Domain: "integration",
			Population: entity.PopulationGlobal, PriorityScore: 5, IsActive: true,
			Embedding: unitVector(0),
		}
		user := &entity.KnowledgeChunk{
			Id: uuid.New(), Content: "integration user chunk", Domain: "uploaded_document",
			Population: entity.PopulationUser, OwnerId: &owner, DocumentId: &docID,
			PriorityScore: 5, IsActive: true, Embedding: unitVector(0),
		}
		require.NoError(t, repo.CreateBulk(ctx, []*entity.KnowledgeChunk{global, user}))
		t.Cleanup(func() {
			_ = repo.DeleteByDocumentId(ctx, docID)
			conns.Service.Exec("DELETE FROM knowledge_chunks WHERE id = ?", global.Id)
		})

		hits, err := repo.SearchGlobal(ctx, unitVector(0), contract.GlobalChunkQuery{Threshold: 0.99, Limit: 50})
		require.NoError(t, err)
		found := false
		for _, h := range hits {
			assert.Equal(t, entity.PopulationGlobal, h.Chunk.Population)
			if h.Chunk.Id == global.Id {
				found = true
				assert.InDelta(t, 1.0, h.Similarity, 1e-4)
			}
		}
		assert.True(t, found)

		userHits, err := repo.SearchUser(ctx, unitVector(0), owner, 0.65, 2)
		require.NoError(t, err)
		require.Len(t, userHits, 1)
		assert.Equal(t, user.Id, userHits[0].Chunk.Id)

		orthogonal, err := repo.SearchUser(ctx, unitVector(1), owner, 0.65, 2)
		require.NoError(t, err)
		assert.Empty(t, orthogonal)

		require.NoError(t, repo.DeactivateByDocumentId(ctx, docID))
		afterDelete, err := repo.SearchUser(ctx, unitVector(0), owner, 0.65, 2)
		require.NoError(t, err)
		assert.Empty(t, afterDelete)

		active, err := repo.Count(ctx, specification.ChunkOwnedBy{OwnerID: owner}, specification.ActiveChunks{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), active)
	})
}
