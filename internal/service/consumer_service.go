package service

import (
	"context"
	"encoding/json"
	"time"

	"trade-advisor-be/internal/dto"
	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/pkg/logger"
	"trade-advisor-be/internal/repository/specification"
	"trade-advisor-be/internal/repository/unitofwork"
	"trade-advisor-be/pkg/advisor/intent"
	"trade-advisor-be/pkg/embedding"
	"trade-advisor-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const (
	ingestChunkSize    = 1500
	ingestChunkOverlap = 200
	ingestKeywordCount = 8
	userChunkPriority  = 5
	userChunkDomain    = "uploaded_document"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber        message.Subscriber
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:        subscriber,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("INGEST", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.UserDocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		cs.logger.Error("INGEST", "Failed to load document", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	if doc == nil || !doc.IsActive || doc.Status == entity.DocumentStatusRejected {
		cs.logger.Info("INGEST", "Document gone or not ingestible, skipping", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
		})
		msg.Ack()
		return
	}

	texts := utils.SplitText(payload.Text, ingestChunkSize, ingestChunkOverlap)
	cs.logger.Info("INGEST", "Document split", map[string]interface{}{
		"document_id": doc.Id.String(),
		"chunks":      len(texts),
	})

	now := time.Now()
	chunks := make([]*entity.KnowledgeChunk, 0, len(texts))
	for i, text := range texts {
		res, err := cs.embeddingProvider.Generate(ctx, text, embedding.TaskRetrievalDocument)
		if err != nil {
			cs.logger.Error("INGEST", "Failed to embed chunk", map[string]interface{}{
				"document_id": doc.Id.String(),
				"chunk":       i,
				"error":       err.Error(),
			})
			cs.markFailed(ctx, uow, doc)
			msg.Ack()
			return
		}

		owner := doc.OwnerId
		docId := doc.Id
		chunks = append(chunks, &entity.KnowledgeChunk{
			Id:             uuid.New(),
			Content:        text,
			Domain:         userChunkDomain,
			Topic:          intent.ClassifyTopic(text),
			SourceDocument: doc.FileName,
			DocumentId:     &docId,
			ChunkIndex:     i,
			Keywords:       utils.ExtractKeywords(text, ingestKeywordCount),
			PriorityScore:  userChunkPriority,
			Embedding:      res.Embedding.Values,
			Population:     entity.PopulationUser,
			OwnerId:        &owner,
			IsActive:       true,
			CreatedAt:      now,
		})
	}

	if err := uow.Begin(ctx); err != nil {
		cs.logger.Error("INGEST", "Failed to begin transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	defer uow.Rollback()

	// The document may have been deleted while its chunks were being embedded.
	current, err := uow.UserDocumentRepository().FindOne(ctx,
		specification.ByID{ID: doc.Id},
		specification.ActiveDocuments{},
		specification.ForUpdate{},
	)
	if err != nil {
		cs.logger.Error("INGEST", "Failed to reload document", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	if current == nil {
		cs.logger.Info("INGEST", "Document deleted during ingestion, discarding chunks", map[string]interface{}{
			"document_id": doc.Id.String(),
		})
		msg.Ack()
		return
	}

	if err := uow.KnowledgeChunkRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		cs.logger.Error("INGEST", "Failed to delete previous chunks", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	if len(chunks) > 0 {
		if err := uow.KnowledgeChunkRepository().CreateBulk(ctx, chunks); err != nil {
			cs.logger.Error("INGEST", "Failed to store chunks", map[string]interface{}{"error": err.Error()})
			msg.Nack()
			return
		}
	}

	updated, err := uow.UserDocumentRepository().UpdateStatus(ctx, doc.Id, entity.DocumentStatusReady, len(chunks))
	if err != nil {
		cs.logger.Error("INGEST", "Failed to update document", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}
	if !updated {
		cs.logger.Info("INGEST", "Document deleted during ingestion, discarding chunks", map[string]interface{}{
			"document_id": doc.Id.String(),
		})
		msg.Ack()
		return
	}

	if err := uow.Commit(); err != nil {
		cs.logger.Error("INGEST", "Failed to commit transaction", map[string]interface{}{"error": err.Error()})
		msg.Nack()
		return
	}

	cs.logger.Info("INGEST", "Document ingested", map[string]interface{}{
		"document_id": doc.Id.String(),
		"chunks":      len(chunks),
	})
	msg.Ack()
}

func (cs *consumerService) markFailed(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.UserDocument) {
	if _, err := uow.UserDocumentRepository().UpdateStatus(ctx, doc.Id, entity.DocumentStatusFailed, 0); err != nil {
		cs.logger.Error("INGEST", "Failed to mark document as failed", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
	}
}
