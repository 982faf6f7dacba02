package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoProvider remembers recent embeddings in process so a repeated query text
// costs no provider call.
type MemoProvider struct {
	next  EmbeddingProvider
	cache *cache.Cache
}

func NewMemoProvider(next EmbeddingProvider, ttl time.Duration) *MemoProvider {
	return &MemoProvider{
		next:  next,
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func memoKey(text, taskType string) string {
	sum := sha256.Sum256([]byte(taskType + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

func (p *MemoProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	key := memoKey(text, taskType)
	if x, found := p.cache.Get(key); found {
		return x.(*EmbeddingResponse), nil
	}

	res, err := p.next.Generate(ctx, text, taskType)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, res, cache.DefaultExpiration)
	return res, nil
}
