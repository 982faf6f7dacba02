package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"trade-advisor-be/internal/dto"
	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/pkg/logger"
	"trade-advisor-be/internal/repository/specification"
	"trade-advisor-be/internal/repository/unitofwork"
	"trade-advisor-be/pkg/advisor/assembler"
	"trade-advisor-be/pkg/advisor/moderation"
	"trade-advisor-be/pkg/extract"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// MaxUploadBytes bounds a single uploaded document.
const MaxUploadBytes = 10 << 20

type IDocumentService interface {
	Upload(ctx context.Context, userId uuid.UUID, fileName, mimeType string, content []byte) (*dto.UploadDocumentResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	gate             assembler.Moderator
	extractor        *extract.Extractor
	logger           logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	gate assembler.Moderator,
	extractor *extract.Extractor,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		gate:             gate,
		extractor:        extractor,
		logger:           log,
	}
}

// Upload screens the extracted text as file_upload. A rejected document is kept
// for the audit trail but never ingested.
func (s *documentService) Upload(ctx context.Context, userId uuid.UUID, fileName, mimeType string, content []byte) (*dto.UploadDocumentResponse, error) {
	if len(content) > MaxUploadBytes {
		return nil, ErrDocumentTooLarge
	}

	text, err := s.extractor.Extract(fileName, mimeType, content)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedFormat) {
			return nil, ErrUnsupportedDocument
		}
		return nil, goerr.Wrap(err, "failed to extract document text", goerr.V("file_name", fileName))
	}
	if text == "" {
		return nil, ErrDocumentEmpty
	}

	verdict := s.gate.Moderate(ctx, text, moderation.ContentFileUpload, userId.String())

	doc := &entity.UserDocument{
		Id:        uuid.New(),
		OwnerId:   userId,
		FileName:  fileName,
		MimeType:  mimeType,
		SizeBytes: int64(len(content)),
		Status:    entity.DocumentStatusPending,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if !verdict.Allowed {
		doc.Status = entity.DocumentStatusRejected
		doc.IsActive = false
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserDocumentRepository().Create(ctx, doc); err != nil {
		return nil, err
	}

	res := &dto.UploadDocumentResponse{Id: doc.Id, FileName: doc.FileName, Status: doc.Status}
	if !verdict.Allowed {
		res.Message = verdict.UserFacingMessage
		return res, nil
	}

	payload, err := json.Marshal(dto.IngestDocumentMessage{DocumentId: doc.Id, OwnerId: userId, Text: text})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		now := time.Now()
		doc.Status = entity.DocumentStatusFailed
		doc.UpdatedAt = &now
		if uerr := uow.UserDocumentRepository().Update(ctx, doc); uerr != nil {
			s.logger.Error("DOCUMENT", "Failed to mark document as failed", map[string]interface{}{
				"document_id": doc.Id.String(),
				"error":       uerr.Error(),
			})
		}
		return nil, goerr.Wrap(err, "failed to queue document for ingestion", goerr.V("document_id", doc.Id.String()))
	}

	return res, nil
}

func (s *documentService) List(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.UserDocumentRepository().FindAll(ctx,
		specification.DocumentOwnedBy{OwnerID: userId},
		specification.ActiveDocuments{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		res = append(res, &dto.DocumentResponse{
			Id:         d.Id,
			FileName:   d.FileName,
			MimeType:   d.MimeType,
			SizeBytes:  d.SizeBytes,
			Status:     d.Status,
			ChunkCount: d.ChunkCount,
			CreatedAt:  d.CreatedAt,
			UpdatedAt:  d.UpdatedAt,
		})
	}
	return res, nil
}

// Delete deactivates the document and its chunks so retrieval stops returning them.
func (s *documentService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	doc, err := uow.UserDocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.DocumentOwnedBy{OwnerID: userId},
		specification.ActiveDocuments{},
		specification.ForUpdate{},
	)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrDocumentNotFound
	}

	if err := uow.KnowledgeChunkRepository().DeactivateByDocumentId(ctx, doc.Id); err != nil {
		return err
	}

	now := time.Now()
	doc.IsActive = false
	doc.UpdatedAt = &now
	if err := uow.UserDocumentRepository().Update(ctx, doc); err != nil {
		return err
	}

	return uow.Commit()
}
