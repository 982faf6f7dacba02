package knowledge

import (
	"context"
	"fmt"
	"os"
	"strings"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/pkg/advisor/intent"
	"trade-advisor-be/pkg/embedding"
	"trade-advisor-be/pkg/utils"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// seedFile is the curated knowledge format, one file per domain.
type seedFile struct {
	Domain string      `yaml:"domain"`
	Source string      `yaml:"source"`
	Chunks []seedChunk `yaml:"chunks"`
}

type seedChunk struct {
	Content       string   `yaml:"content"`
	Topic         string   `yaml:"topic"`
	Region        string   `yaml:"region"`
	Season        string   `yaml:"season"`
	BusinessStage string   `yaml:"business_stage"`
	Keywords      []string `yaml:"keywords"`
	Priority      int      `yaml:"priority"`
}

// LoadSeedFile parses a curated YAML file into global chunks without embeddings.
// Blank chunks are skipped. Missing topic, keywords and priority are derived.
func LoadSeedFile(path string) ([]*entity.KnowledgeChunk, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	source := f.Source
	if source == "" {
		source = path
	}

	out := make([]*entity.KnowledgeChunk, 0, len(f.Chunks))
	for i, sc := range f.Chunks {
		content := strings.TrimSpace(sc.Content)
		if content == "" {
			continue
		}

		topic := sc.Topic
		if topic == "" {
			topic = intent.ClassifyTopic(content)
		}
		keywords := sc.Keywords
		if len(keywords) == 0 {
			keywords = utils.ExtractKeywords(content, 8)
		}
		priority := sc.Priority
		if priority == 0 {
			priority = 5
		}
		if priority < 0 || priority > 10 {
			return nil, fmt.Errorf("%s chunk %d: priority %d out of range 0..10", path, i, priority)
		}

		out = append(out, &entity.KnowledgeChunk{
			Id:             uuid.New(),
			Content:        content,
			Domain:         f.Domain,
			Topic:          topic,
			Region:         sc.Region,
			Season:         sc.Season,
			BusinessStage:  sc.BusinessStage,
			SourceDocument: source,
			ChunkIndex:     i,
			Keywords:       keywords,
			PriorityScore:  priority,
			Population:     entity.PopulationGlobal,
			IsActive:       true,
		})
	}
	return out, nil
}

// LoadSeedFiles parses every path in order.
func LoadSeedFiles(paths []string) ([]*entity.KnowledgeChunk, error) {
	var chunks []*entity.KnowledgeChunk
	for _, p := range paths {
		parsed, err := LoadSeedFile(p)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, parsed...)
	}
	return chunks, nil
}

// EmbedChunks fills in document embeddings, stopping at the first failure.
func EmbedChunks(ctx context.Context, provider embedding.EmbeddingProvider, chunks []*entity.KnowledgeChunk) error {
	for i, c := range chunks {
		resp, err := provider.Generate(ctx, c.Content, embedding.TaskRetrievalDocument)
		if err != nil {
			return fmt.Errorf("embedding chunk %d failed: %w", i, err)
		}
		c.Embedding = resp.Embedding.Values
	}
	return nil
}
