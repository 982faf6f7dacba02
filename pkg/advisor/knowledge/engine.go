// Package knowledge retrieves curated and user-uploaded knowledge chunks for a
// chat turn by embedding similarity.
package knowledge

import (
	"context"
	"strings"
	"time"

	"trade-advisor-be/internal/pkg/logger"
	"trade-advisor-be/internal/repository/contract"
	"trade-advisor-be/pkg/embedding"

	"github.com/google/uuid"
)

const (
	Separator = "\n\n---\n\n"

	contextHeader = "RELEVANT EXPERTISE:\n" +
		"Use the following material as your own professional expertise. Present it naturally in your own words. " +
		"Do NOT cite sources, documents, files or a knowledge base, and do not mention that this material was provided to you.\n\n"
)

// Config holds the similarity thresholds and caps of one retrieval.
type Config struct {
	GlobalThreshold   float64
	UserThreshold     float64
	FallbackThreshold float64
	GlobalLimit       int
	UserLimit         int
	MaxChunks         int
}

func DefaultConfig() Config {
	return Config{
		GlobalThreshold:   0.75,
		UserThreshold:     0.65,
		FallbackThreshold: 0.65,
		GlobalLimit:       3,
		UserLimit:         2,
		MaxChunks:         3,
	}
}

// UserContext carries the caller attributes that narrow the curated search.
// Now picks the season; the zero value means time.Now().
type UserContext struct {
	UserID        uuid.UUID
	Region        string
	BusinessStage string
	Now           time.Time
}

// Season maps a calendar month to its northern-hemisphere season tag.
func Season(t time.Time) string {
	switch t.Month() {
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	case time.September, time.October, time.November:
		return "fall"
	default:
		return "winter"
	}
}

type Engine struct {
	embeddingProvider embedding.EmbeddingProvider
	chunks            contract.KnowledgeChunkRepository
	logger            logger.ILogger
	config            Config
}

func NewEngine(provider embedding.EmbeddingProvider, chunks contract.KnowledgeChunkRepository, log logger.ILogger, config Config) *Engine {
	return &Engine{
		embeddingProvider: provider,
		chunks:            chunks,
		logger:            log,
		config:            config,
	}
}

// Retrieve returns the wrapped context block, or "" when nothing clears any
// threshold or the query cannot be embedded.
func (e *Engine) Retrieve(ctx context.Context, queryText string, uc UserContext) string {
	chunks := e.Search(ctx, queryText, uc)
	if len(chunks) == 0 {
		return ""
	}
	return Format(chunks)
}

// Search runs the curated and user passes, falling back to a relaxed curated
// pass when both come back empty. User chunks lead the result.
func (e *Engine) Search(ctx context.Context, queryText string, uc UserContext) []*contract.ScoredKnowledgeChunk {
	queryText = strings.TrimSpace(queryText)
	if queryText == "" {
		return nil
	}

	res, err := e.embeddingProvider.Generate(ctx, queryText, embedding.TaskRetrievalQuery)
	if err != nil {
		e.logger.Warn("KNOWLEDGE", "Query embedding failed, skipping retrieval", map[string]interface{}{"error": err.Error()})
		return nil
	}
	vec := res.Embedding.Values

	now := uc.Now
	if now.IsZero() {
		now = time.Now()
	}
	query := contract.GlobalChunkQuery{
		Threshold:     e.config.GlobalThreshold,
		Limit:         e.config.GlobalLimit,
		Region:        strings.ToLower(strings.TrimSpace(uc.Region)),
		BusinessStage: strings.ToLower(strings.TrimSpace(uc.BusinessStage)),
		Season:        Season(now),
	}

	global := e.searchGlobal(ctx, vec, query)

	var user []*contract.ScoredKnowledgeChunk
	if uc.UserID != uuid.Nil {
		user, err = e.chunks.SearchUser(ctx, vec, uc.UserID, e.config.UserThreshold, e.config.UserLimit)
		if err != nil {
			e.logger.Warn("KNOWLEDGE", "User knowledge search failed", map[string]interface{}{
				"user_id": uc.UserID.String(),
				"error":   err.Error(),
			})
			user = nil
		}
	}

	if len(global) == 0 && len(user) == 0 {
		query.Threshold = e.config.FallbackThreshold
		global = e.searchGlobal(ctx, vec, query)
		e.logger.Debug("KNOWLEDGE", "Fallback pass", map[string]interface{}{
			"threshold": query.Threshold,
			"found":     len(global),
		})
	}

	if len(user) > e.config.UserLimit {
		user = user[:e.config.UserLimit]
	}
	merged := append(append([]*contract.ScoredKnowledgeChunk{}, user...), global...)
	if len(merged) > e.config.MaxChunks {
		merged = merged[:e.config.MaxChunks]
	}

	e.logger.Debug("KNOWLEDGE", "Retrieval finished", map[string]interface{}{
		"user_chunks":   len(user),
		"global_chunks": len(global),
		"returned":      len(merged),
		"season":        query.Season,
	})
	return merged
}

func (e *Engine) searchGlobal(ctx context.Context, vec []float32, q contract.GlobalChunkQuery) []*contract.ScoredKnowledgeChunk {
	found, err := e.chunks.SearchGlobal(ctx, vec, q)
	if err != nil {
		e.logger.Warn("KNOWLEDGE", "Global knowledge search failed", map[string]interface{}{
			"threshold": q.Threshold,
			"error":     err.Error(),
		})
		return nil
	}
	return found
}

func Format(chunks []*contract.ScoredKnowledgeChunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if text := strings.TrimSpace(c.Chunk.Content); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return contextHeader + strings.Join(parts, Separator)
}
