package service

import (
	"context"

	"trade-advisor-be/internal/constant"
	"trade-advisor-be/internal/dto"
	"trade-advisor-be/internal/pkg/logger"
	"trade-advisor-be/internal/repository/unitofwork"
	"trade-advisor-be/pkg/advisor/assembler"
	"trade-advisor-be/pkg/advisor/moderation"
	"trade-advisor-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type IAdvisorService interface {
	Reply(ctx context.Context, userId uuid.UUID, req *dto.AdvisorChatRequest) (*dto.AdvisorChatResponse, error)
	PreviewContext(ctx context.Context, userId uuid.UUID, req *dto.AdvisorChatRequest) (*dto.AdvisorContextResponse, error)
	Moderate(ctx context.Context, userId uuid.UUID, req *dto.ModerateRequest) (*dto.ModerateResponse, error)
}

type ContextAssembler interface {
	Assemble(ctx context.Context, req assembler.Request) *assembler.PromptContext
}

type advisorService struct {
	uowFactory    unitofwork.RepositoryFactory
	gate          assembler.Moderator
	assembler     ContextAssembler
	llmProvider   llm.LLMProvider
	standardModel string
	premiumModel  string
	logger        logger.ILogger
}

func NewAdvisorService(
	uowFactory unitofwork.RepositoryFactory,
	gate assembler.Moderator,
	contextAssembler ContextAssembler,
	llmProvider llm.LLMProvider,
	standardModel string,
	premiumModel string,
	log logger.ILogger,
) IAdvisorService {
	return &advisorService{
		uowFactory:    uowFactory,
		gate:          gate,
		assembler:     contextAssembler,
		llmProvider:   llmProvider,
		standardModel: standardModel,
		premiumModel:  premiumModel,
		logger:        log,
	}
}

// assemble moderates the inbound message and builds the prompt context. The
// gate always runs before any context source is consulted.
func (s *advisorService) assemble(ctx context.Context, userId uuid.UUID, req *dto.AdvisorChatRequest) *assembler.PromptContext {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, err := uow.BusinessProfileRepository().FindByUserId(ctx, userId)
	if err != nil {
		s.logger.Warn("ADVISOR", "Failed to load business profile, continuing without it", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		profile = nil
	}

	inbound := s.gate.Moderate(ctx, req.Message, moderation.ContentMessage, userId.String())

	files := make([]assembler.File, 0, len(req.Files))
	for _, f := range req.Files {
		files = append(files, assembler.File{Name: f.Name, Content: f.Content})
	}

	return s.assembler.Assemble(ctx, assembler.Request{
		Message:    req.Message,
		Profile:    profile,
		Moderation: inbound,
		Files:      files,
		CallerID:   userId.String(),
		UserID:     userId,
	})
}

func (s *advisorService) Reply(ctx context.Context, userId uuid.UUID, req *dto.AdvisorChatRequest) (*dto.AdvisorChatResponse, error) {
	pc := s.assemble(ctx, userId, req)
	if pc.Blocked {
		return &dto.AdvisorChatResponse{Reply: refusal(pc.RefusalMessage), Blocked: true}, nil
	}

	model := s.standardModel
	if pc.HighValue && s.premiumModel != "" {
		model = s.premiumModel
	}

	history := []llm.Message{{Role: "system", Content: pc.SystemPrompt + "\n\n" + pc.Context}}
	for _, turn := range req.History {
		history = append(history, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	history = append(history, llm.Message{Role: "user", Content: req.Message})

	reply, err := s.llmProvider.Chat(ctx, history, llm.WithModel(model), llm.WithTemperature(0.7))
	if err != nil {
		return nil, goerr.Wrap(err, "advisor completion failed", goerr.V("model", model))
	}

	res := &dto.AdvisorChatResponse{
		Reply:     reply,
		Topic:     pc.Topic,
		HighValue: pc.HighValue,
		Model:     model,
		Sources:   pc.Sources,
	}

	outbound := s.gate.Moderate(ctx, reply, moderation.ContentReply, userId.String())
	if !outbound.Allowed {
		s.logger.Warn("ADVISOR", "Generated reply blocked by moderation", map[string]interface{}{
			"user_id":    userId.String(),
			"categories": outbound.FlaggedCategories,
		})
		res.Reply = refusal(outbound.UserFacingMessage)
		res.Blocked = true
	}
	return res, nil
}

func (s *advisorService) PreviewContext(ctx context.Context, userId uuid.UUID, req *dto.AdvisorChatRequest) (*dto.AdvisorContextResponse, error) {
	pc := s.assemble(ctx, userId, req)
	return &dto.AdvisorContextResponse{
		Blocked:        pc.Blocked,
		RefusalMessage: pc.RefusalMessage,
		SystemPrompt:   pc.SystemPrompt,
		Context:        pc.Context,
		Topic:          pc.Topic,
		HighValue:      pc.HighValue,
		Sources:        pc.Sources,
		BlockedFiles:   pc.BlockedFiles,
	}, nil
}

func (s *advisorService) Moderate(ctx context.Context, userId uuid.UUID, req *dto.ModerateRequest) (*dto.ModerateResponse, error) {
	result := s.gate.Moderate(ctx, req.Content, moderation.ContentType(req.ContentType), userId.String())
	return &dto.ModerateResponse{
		Allowed:           result.Allowed,
		FlaggedCategories: result.FlaggedCategories,
		CategoryScores:    result.CategoryScores,
		UserFacingMessage: result.UserFacingMessage,
		ProviderAvailable: result.ProviderAvailable,
	}, nil
}

func refusal(message string) string {
	if message == "" {
		return constant.ModerationRefusalReplyV1
	}
	return message
}
