// Package assembler builds the prompt context for one advisor turn from the
// moderation verdict, attached files, competitor listings, web results and
// retrieved knowledge.
package assembler

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"trade-advisor-be/internal/constant"
	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/pkg/logger"
	"trade-advisor-be/pkg/advisor/intent"
	"trade-advisor-be/pkg/advisor/knowledge"
	"trade-advisor-be/pkg/advisor/moderation"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	SourceFile       = "file"
	SourceCompetitor = "competitor"
	SourceWeb        = "web"
	SourceKnowledge  = "knowledge"

	// MaxFileContextLength is the rune budget of one attached file in the context.
	MaxFileContextLength = 8000
)

type Moderator interface {
	Moderate(ctx context.Context, content string, contentType moderation.ContentType, callerID string) *moderation.Result
}

type BusinessResolver interface {
	ResolveBusinesses(ctx context.Context, query, locationText string) string
}

type WebSearcher interface {
	Search(ctx context.Context, query string) string
}

type KnowledgeRetriever interface {
	Retrieve(ctx context.Context, queryText string, uc knowledge.UserContext) string
}

type File struct {
	Name    string
	Content string
}

type Request struct {
	Message    string
	Profile    *entity.BusinessProfile
	Moderation *moderation.Result
	Files      []File
	CallerID   string
	UserID     uuid.UUID
	Now        time.Time
}

type PromptContext struct {
	Blocked        bool
	RefusalMessage string
	SystemPrompt   string
	Context        string
	Topic          string
	HighValue      bool
	Sources        []string
	BlockedFiles   []string
}

type Assembler struct {
	moderator  Moderator
	businesses BusinessResolver
	web        WebSearcher
	knowledge  KnowledgeRetriever
	logger     logger.ILogger
}

// NewAssembler wires the context sources. A nil source is skipped.
func NewAssembler(moderator Moderator, businesses BusinessResolver, web WebSearcher, retriever KnowledgeRetriever, log logger.ILogger) *Assembler {
	return &Assembler{
		moderator:  moderator,
		businesses: businesses,
		web:        web,
		knowledge:  retriever,
		logger:     log,
	}
}

var zipInText = regexp.MustCompile(`\b\d{5}\b`)

// Assemble refuses when the inbound verdict blocks, otherwise fetches every
// applicable source concurrently and merges them in a fixed order.
func (a *Assembler) Assemble(ctx context.Context, req Request) *PromptContext {
	tracer := otel.Tracer("advisor.assembler")
	ctx, span := tracer.Start(ctx, "Assemble")
	defer span.End()

	if req.Moderation != nil && !req.Moderation.Allowed {
		msg := req.Moderation.UserFacingMessage
		if msg == "" {
			msg = moderation.MessageBlocked
		}
		span.SetAttributes(attribute.Bool("blocked", true))
		return &PromptContext{Blocked: true, RefusalMessage: msg}
	}

	pc := &PromptContext{
		SystemPrompt: BuildSystemPrompt(req.Profile),
		Topic:        intent.ClassifyTopic(req.Message),
		HighValue:    intent.IsHighValueQuery(req.Message),
	}
	wantCompetitors := a.businesses != nil && intent.NeedsCompetitorLookup(req.Message)
	wantWeb := a.web != nil && intent.NeedsWebSearch(req.Message)

	var fileBlock, competitorBlock, webBlock, knowledgeBlock string

	g, gctx := errgroup.WithContext(ctx)

	if len(req.Files) > 0 {
		g.Go(func() error {
			_, s := tracer.Start(gctx, "context.file")
			defer s.End()
			var blocked []string
			fileBlock, blocked = a.fileContext(gctx, req)
			pc.BlockedFiles = blocked
			return nil
		})
	}
	if wantCompetitors {
		g.Go(func() error {
			query, location := competitorQuery(req), locationFor(req)
			sctx, s := tracer.Start(gctx, "context.competitor", trace.WithAttributes(
				attribute.String("query", query),
				attribute.String("location", location),
			))
			defer s.End()
			competitorBlock = a.businesses.ResolveBusinesses(sctx, query, location)
			return nil
		})
	}
	if wantWeb {
		g.Go(func() error {
			sctx, s := tracer.Start(gctx, "context.web")
			defer s.End()
			webBlock = a.web.Search(sctx, req.Message)
			return nil
		})
	}
	if a.knowledge != nil {
		g.Go(func() error {
			sctx, s := tracer.Start(gctx, "context.knowledge")
			defer s.End()
			uc := knowledge.UserContext{UserID: req.UserID, Now: req.Now}
			if req.Profile != nil {
				uc.Region = req.Profile.Region
				uc.BusinessStage = req.Profile.BusinessStage
			}
			knowledgeBlock = a.knowledge.Retrieve(sctx, req.Message, uc)
			return nil
		})
	}
	_ = g.Wait()

	var blocks []string
	for _, src := range []struct {
		name  string
		block string
	}{
		{SourceFile, fileBlock},
		{SourceCompetitor, competitorBlock},
		{SourceWeb, webBlock},
		{SourceKnowledge, knowledgeBlock},
	} {
		if strings.TrimSpace(src.block) == "" {
			continue
		}
		blocks = append(blocks, src.block)
		pc.Sources = append(pc.Sources, src.name)
	}
	blocks = append(blocks, constant.AdvisorFormattingInstructionsV1)
	pc.Context = strings.Join(blocks, "\n\n")

	span.SetAttributes(
		attribute.String("topic", pc.Topic),
		attribute.Bool("high_value", pc.HighValue),
		attribute.StringSlice("sources", pc.Sources),
	)
	a.logger.Info("ASSEMBLER", "Context assembled", map[string]interface{}{
		"caller_id":     req.CallerID,
		"topic":         pc.Topic,
		"high_value":    pc.HighValue,
		"sources":       pc.Sources,
		"blocked_files": len(pc.BlockedFiles),
		"context_len":   len(pc.Context),
	})
	return pc
}

// fileContext moderates each attachment on its own. A blocked file contributes
// only the refusal text.
func (a *Assembler) fileContext(ctx context.Context, req Request) (string, []string) {
	var parts, blocked []string
	for _, f := range req.Files {
		content := strings.TrimSpace(f.Content)
		if content == "" {
			continue
		}
		if a.moderator != nil {
			res := a.moderator.Moderate(ctx, content, moderation.ContentFileContent, req.CallerID)
			if !res.Allowed {
				blocked = append(blocked, f.Name)
				msg := res.UserFacingMessage
				if msg == "" {
					msg = moderation.MessageFileBlocked
				}
				parts = append(parts, fmt.Sprintf(constant.FileContextHeaderV1, f.Name, msg))
				continue
			}
		}
		parts = append(parts, fmt.Sprintf(constant.FileContextHeaderV1, f.Name, clip(content, MaxFileContextLength)))
	}
	return strings.Join(parts, "\n\n"), blocked
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "\n[truncated]"
}

// competitorQuery searches by the caller's trade when the profile names one.
func competitorQuery(req Request) string {
	if req.Profile != nil && strings.TrimSpace(req.Profile.Trade) != "" {
		return strings.TrimSpace(req.Profile.Trade)
	}
	return req.Message
}

// locationFor prefers the profile location and falls back to a zip code in the message.
func locationFor(req Request) string {
	if loc := req.Profile.LocationText(); loc != "" {
		return loc
	}
	return zipInText.FindString(req.Message)
}

func BuildSystemPrompt(p *entity.BusinessProfile) string {
	if p == nil {
		return constant.AdvisorSystemPromptV1
	}
	orUnknown := func(s string) string {
		if s = strings.TrimSpace(s); s == "" {
			return "not specified"
		}
		return s
	}
	return constant.AdvisorSystemPromptV1 + fmt.Sprintf(constant.AdvisorProfilePromptV1,
		orUnknown(p.BusinessName),
		orUnknown(p.Trade),
		orUnknown(p.LocationText()),
		orUnknown(p.BusinessStage),
	)
}
