package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"trade-advisor-be/internal/dto"
	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ingestMessage(t *testing.T, doc *entity.UserDocument, text string) *message.Message {
	t.Helper()
	payload, err := json.Marshal(dto.IngestDocumentMessage{DocumentId: doc.Id, OwnerId: doc.OwnerId, Text: text})
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), payload)
}

func acked(msg *message.Message) bool {
	select {
	case <-msg.Acked():
		return true
	default:
		return false
	}
}

func pendingDocument(t *testing.T, store *fakeStore) *entity.UserDocument {
	t.Helper()
	doc := &entity.UserDocument{Id: uuid.New(), OwnerId: uuid.New(), FileName: "guide.md", Status: entity.DocumentStatusPending, IsActive: true}
	require.NoError(t, store.documents.Create(context.Background(), doc))
	return doc
}

func TestConsumerService_IngestsDocument(t *testing.T) {
	store := newFakeStore()
	emb := &stubEmbedder{}
	cs := NewConsumerService(nil, "topic", store, emb, logger.NewNop()).(*consumerService)
	doc := pendingDocument(t, store)
	text := strings.Repeat("Seasonal pricing for aeration and overseeding. ", 80)

	msg := ingestMessage(t, doc, text)
	cs.processMessage(context.Background(), msg)

	assert.True(t, acked(msg))
	stored := store.documents.get(doc.Id)
	assert.Equal(t, entity.DocumentStatusReady, stored.Status)
	assert.Greater(t, stored.ChunkCount, 1)
	assert.Equal(t, stored.ChunkCount, emb.calls)

	found, err := store.chunks.SearchUser(context.Background(), []float32{1, 0, 0}, doc.OwnerId, 0.5, 10)
	require.NoError(t, err)
	require.NotEmpty(t, found)
	c := found[0].Chunk
	assert.Equal(t, entity.PopulationUser, c.Population)
	assert.Equal(t, "guide.md", c.SourceDocument)
	assert.Contains(t, c.Keywords, "aeration")
}

func TestConsumerService_SkipsRejectedDocument(t *testing.T) {
	store := newFakeStore()
	emb := &stubEmbedder{}
	cs := NewConsumerService(nil, "topic", store, emb, logger.NewNop()).(*consumerService)
	doc := pendingDocument(t, store)
	doc.Status = entity.DocumentStatusRejected
	doc.IsActive = false
	require.NoError(t, store.documents.Update(context.Background(), doc))

	msg := ingestMessage(t, doc, "text")
	cs.processMessage(context.Background(), msg)

	assert.True(t, acked(msg))
	assert.Equal(t, 0, emb.calls)
	n, _ := store.chunks.Count(context.Background())
	assert.Zero(t, n)
}

func TestConsumerService_EmbeddingFailureMarksFailed(t *testing.T) {
	store := newFakeStore()
	cs := NewConsumerService(nil, "topic", store, &stubEmbedder{err: errBoom}, logger.NewNop()).(*consumerService)
	doc := pendingDocument(t, store)

	msg := ingestMessage(t, doc, "short text")
	cs.processMessage(context.Background(), msg)

	assert.True(t, acked(msg))
	assert.Equal(t, entity.DocumentStatusFailed, store.documents.get(doc.Id).Status)
}

func TestConsumerService_DeleteDuringIngestionWins(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	doc := pendingDocument(t, store)
	docs := newTestDocumentService(store, &fakePublisher{})

	emb := &stubEmbedder{}
	emb.onGenerate = func() {
		if emb.calls == 1 {
			require.NoError(t, docs.Delete(ctx, doc.OwnerId, doc.Id))
		}
	}
	cs := NewConsumerService(nil, "topic", store, emb, logger.NewNop()).(*consumerService)

	msg := ingestMessage(t, doc, "Aeration pricing for spring. Overseeding after aeration.")
	cs.processMessage(ctx, msg)

	assert.True(t, acked(msg))
	stored := store.documents.get(doc.Id)
	assert.False(t, stored.IsActive)
	assert.NotEqual(t, entity.DocumentStatusReady, stored.Status)

	chunkCount, err := store.chunks.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, chunkCount)

	found, err := store.chunks.SearchUser(ctx, []float32{1, 0, 0}, doc.OwnerId, 0.5, 10)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestConsumerService_FailureDoesNotReviveDeletedDocument(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	doc := pendingDocument(t, store)
	docs := newTestDocumentService(store, &fakePublisher{})

	emb := &stubEmbedder{err: errBoom}
	emb.onGenerate = func() {
		require.NoError(t, docs.Delete(ctx, doc.OwnerId, doc.Id))
	}
	cs := NewConsumerService(nil, "topic", store, emb, logger.NewNop()).(*consumerService)

	msg := ingestMessage(t, doc, "short text")
	cs.processMessage(ctx, msg)

	assert.True(t, acked(msg))
	stored := store.documents.get(doc.Id)
	assert.False(t, stored.IsActive)
	assert.Equal(t, entity.DocumentStatusPending, stored.Status)
}

func TestConsumerService_ConsumesFromPubSub(t *testing.T) {
	store := newFakeStore()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, NewConsumerService(pubSub, "ingest", store, &stubEmbedder{}, logger.NewNop()).Consume(ctx))

	doc := pendingDocument(t, store)
	payload, _ := json.Marshal(dto.IngestDocumentMessage{DocumentId: doc.Id, OwnerId: doc.OwnerId, Text: "Mulch in spring."})
	require.NoError(t, NewPublisherService(pubSub, "ingest").Publish(ctx, payload))

	assert.Eventually(t, func() bool {
		return store.documents.get(doc.Id).Status == entity.DocumentStatusReady
	}, 2*time.Second, 10*time.Millisecond)
}
