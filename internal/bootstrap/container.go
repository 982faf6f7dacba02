package bootstrap

import (
	"context"
	"log"
	"time"

	"trade-advisor-be/internal/config"
	"trade-advisor-be/internal/controller"
	"trade-advisor-be/internal/handler"
	"trade-advisor-be/internal/pkg/logger"
	"trade-advisor-be/internal/pkg/serverutils"
	"trade-advisor-be/internal/repository/contract"
	"trade-advisor-be/internal/repository/implementation"
	"trade-advisor-be/internal/repository/memory"
	"trade-advisor-be/internal/repository/unitofwork"
	"trade-advisor-be/internal/service"
	"trade-advisor-be/pkg/advisor/assembler"
	"trade-advisor-be/pkg/advisor/knowledge"
	"trade-advisor-be/pkg/advisor/listing"
	"trade-advisor-be/pkg/advisor/lookup"
	"trade-advisor-be/pkg/advisor/moderation"
	"trade-advisor-be/pkg/advisor/websearch"
	"trade-advisor-be/pkg/database"
	"trade-advisor-be/pkg/embedding"
	"trade-advisor-be/pkg/embedding/jina"
	"trade-advisor-be/pkg/extract"
	"trade-advisor-be/pkg/llm/factory"
	pktNats "trade-advisor-be/pkg/nats"
	"trade-advisor-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// queryEmbeddingTTL bounds how long a query embedding is reused in process.
const queryEmbeddingTTL = time.Hour

type Container struct {
	// Controllers
	AdvisorController  controller.IAdvisorController
	DocumentController controller.IDocumentController

	// Ops
	ModerationAlertHandler *handler.ModerationAlertHandler
	Auth                   fiber.Handler
	Logger                 logger.ILogger

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	natsPub *pktNats.Publisher
	natsSub *pktNats.Subscriber
	redis   *redis.Client
}

func NewContainer(conns *database.Connections, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(conns.Reader)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	pipelineLogger := logger.NewIsolatedLogger(cfg.App.PipelineLogPath)

	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	// 3. Providers
	embeddingProvider := newEmbeddingProvider(cfg)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s, premium %s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.LLMPremiumModel)

	// 4. Ops events
	alertHandler := handler.NewModerationAlertHandler(sysLogger)
	if cfg.App.NatsURL != "" {
		if c.natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL); err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			c.natsPub = nil
		}
		if c.natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL); err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
			c.natsSub = nil
		} else if err := c.natsSub.Subscribe("moderation.>", "moderation-alerts", alertHandler.Handle); err != nil {
			log.Printf("[WARN] Failed to subscribe to moderation events: %v", err)
		}
	}

	// 5. Moderation Gate (audit rows go through the service-role connection)
	gateOpts := []moderation.Option{moderation.WithPolicies(moderation.NewFinancialCrimePolicy())}
	if c.natsPub != nil {
		gateOpts = append(gateOpts, moderation.WithEventPublisher(c.natsPub))
	}
	gate := moderation.NewGate(
		moderation.NewOpenAIProvider(cfg.Keys.OpenAI),
		newModerationLogRepository(conns, cfg),
		sysLogger,
		gateOpts...,
	)

	// 6. Lookup cache and context sources
	cache := lookup.NewCache(c.newLookupCacheRepository(conns, cfg), pipelineLogger)
	limiter := utils.NewProviderLimiter(cfg.Pipeline.ProviderRateLimit)

	var geocoder listing.Geocoder
	if cfg.Pipeline.Geocoder == "geoapify" {
		geocoder = listing.NewGeoapifyGeocoder(cfg.Keys.Geoapify, limiter)
	} else {
		geocoder = listing.NewGoogleGeocoder(cfg.Keys.GoogleMaps, limiter)
	}

	resolver := listing.NewResolver(
		listing.NewCachedGeocoder(geocoder, cache, pipelineLogger),
		listing.NewGooglePlacesClient(cfg.Keys.GoogleMaps, limiter),
		cache,
		pipelineLogger,
		cfg.Pipeline.SearchRadiusMeters,
		cfg.Keys.GoogleMaps != "",
	)

	searcher := websearch.NewSearcher(
		websearch.NewGoogleCSEClient(cfg.Keys.GoogleSearch, cfg.Keys.GoogleSearchCx, limiter),
		cache,
		pipelineLogger,
		cfg.Pipeline.TrustedDomains,
		cfg.Keys.GoogleSearch != "" && cfg.Keys.GoogleSearchCx != "",
	)

	knowledgeIndex, err := newKnowledgeIndex(context.Background(), conns, cfg, embeddingProvider)
	if err != nil {
		log.Fatalf("[FATAL] Failed to build knowledge index: %v", err)
	}
	engine := knowledge.NewEngine(
		embedding.NewMemoProvider(embeddingProvider, queryEmbeddingTTL),
		knowledgeIndex,
		pipelineLogger,
		knowledge.DefaultConfig(),
	)

	contextAssembler := assembler.NewAssembler(gate, resolver, searcher, engine, pipelineLogger)

	// 7. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.IngestTopic)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Keys.IngestTopic,
		unitofwork.NewRepositoryFactory(conns.Service),
		embeddingProvider,
		sysLogger,
	)

	advisorService := service.NewAdvisorService(
		uowFactory,
		gate,
		contextAssembler,
		llmProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMPremiumModel,
		sysLogger,
	)
	documentService := service.NewDocumentService(
		unitofwork.NewRepositoryFactory(conns.Service),
		publisherService,
		gate,
		extract.NewExtractor(),
		sysLogger,
	)

	// 8. Controllers
	c.Auth = serverutils.NewJwtMiddleware(cfg.App.JwtSecret)
	c.AdvisorController = controller.NewAdvisorController(advisorService, c.Auth)
	c.DocumentController = controller.NewDocumentController(documentService, c.Auth)
	c.ModerationAlertHandler = alertHandler

	return c
}

func newEmbeddingProvider(cfg *config.Config) embedding.EmbeddingProvider {
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
		return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	case "jina":
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
		return jina.NewJinaProvider(cfg.Keys.Jina)
	case "gemini":
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
		return embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	default:
		log.Printf("[INFO] Using Embedding Provider: OPENAI")
		return embedding.NewOpenAIProvider(cfg.Keys.OpenAI)
	}
}

func (c *Container) newLookupCacheRepository(conns *database.Connections, cfg *config.Config) contract.LookupCacheRepository {
	switch cfg.Pipeline.CacheBackend {
	case "memory":
		log.Printf("[INFO] Lookup cache backend: in-process memory")
		return memory.NewLookupCacheRepository()
	case "redis":
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		c.redis = redis.NewClient(opt)
		if _, err := c.redis.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		log.Printf("[INFO] Lookup cache backend: redis")
		return implementation.NewRedisLookupCacheRepository(c.redis)
	default:
		log.Printf("[INFO] Lookup cache backend: postgres")
		return implementation.NewLookupCacheRepository(conns.Reader, conns.Service)
	}
}

// Close releases the broker and cache connections.
func (c *Container) Close() {
	if c.natsSub != nil {
		c.natsSub.Close()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.redis != nil {
		_ = c.redis.Close()
	}
	_ = c.Logger.Sync()
}
