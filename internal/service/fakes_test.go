package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/repository/contract"
	"trade-advisor-be/internal/repository/memory"
	"trade-advisor-be/internal/repository/specification"
	"trade-advisor-be/internal/repository/unitofwork"
	"trade-advisor-be/pkg/advisor/moderation"
	"trade-advisor-be/pkg/embedding"

	"github.com/google/uuid"
)

type fakeDocumentRepo struct {
	mu   sync.Mutex
	docs map[uuid.UUID]*entity.UserDocument
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[uuid.UUID]*entity.UserDocument{}}
}

func (r *fakeDocumentRepo) Create(ctx context.Context, d *entity.UserDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.docs[d.Id] = &cp
	return nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, d *entity.UserDocument) error {
	return r.Create(ctx, d)
}

func (r *fakeDocumentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, chunkCount int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || !d.IsActive {
		return false, nil
	}
	d.Status = status
	d.ChunkCount = chunkCount
	return true, nil
}

func (r *fakeDocumentRepo) matches(d *entity.UserDocument, specs []specification.Specification) bool {
	for _, s := range specs {
		switch s := s.(type) {
		case specification.ByID:
			if d.Id != s.ID {
				return false
			}
		case specification.DocumentOwnedBy:
			if d.OwnerId != s.OwnerID {
				return false
			}
		case specification.ActiveDocuments:
			if !d.IsActive {
				return false
			}
		}
	}
	return true
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserDocument, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.UserDocument
	for _, d := range r.docs {
		if r.matches(d, specs) {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) get(id uuid.UUID) *entity.UserDocument {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs[id]
}

type fakeProfileRepo struct {
	profile *entity.BusinessProfile
	err     error
}

func (r *fakeProfileRepo) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.BusinessProfile, error) {
	return r.profile, r.err
}

type fakeUnitOfWork struct {
	store *fakeStore
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                    { return nil }
func (u *fakeUnitOfWork) Rollback() error                  { return nil }

func (u *fakeUnitOfWork) KnowledgeChunkRepository() contract.KnowledgeChunkRepository {
	return u.store.chunks
}

func (u *fakeUnitOfWork) UserDocumentRepository() contract.UserDocumentRepository {
	return u.store.documents
}

func (u *fakeUnitOfWork) ModerationLogRepository() contract.ModerationLogRepository {
	return u.store.logs
}

func (u *fakeUnitOfWork) BusinessProfileRepository() contract.BusinessProfileRepository {
	return u.store.profiles
}

type fakeStore struct {
	chunks    *memory.KnowledgeChunkRepository
	documents *fakeDocumentRepo
	logs      *memory.ModerationLogRepository
	profiles  *fakeProfileRepo
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		chunks:    memory.NewKnowledgeChunkRepository(),
		documents: newFakeDocumentRepo(),
		logs:      memory.NewModerationLogRepository(),
		profiles:  &fakeProfileRepo{},
	}
}

func (s *fakeStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: s}
}

// keywordProvider flags self-harm instructions whenever the text contains "forbidden".
type keywordProvider struct{}

func (keywordProvider) Classify(ctx context.Context, text string) (*moderation.Verdict, error) {
	scores := map[string]float64{"self-harm/instructions": 0.0}
	if strings.Contains(strings.ToLower(text), "forbidden") {
		scores["self-harm/instructions"] = 0.5
	}
	return &moderation.Verdict{Scores: scores}, nil
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

type stubEmbedder struct {
	err   error
	calls int
	// onGenerate runs before each embedding call.
	onGenerate func()
}

func (e *stubEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	e.calls++
	if e.onGenerate != nil {
		e.onGenerate()
	}
	if e.err != nil {
		return nil, e.err
	}
	return embedding.NewResponse([]float32{1, 0, 0}), nil
}

var errBoom = errors.New("boom")
