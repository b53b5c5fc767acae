package bootstrap

import (
	"context"
	"log"

	"ai-websearch-be/internal/config"
	"ai-websearch-be/internal/controller"
	"ai-websearch-be/internal/handler"
	"ai-websearch-be/internal/model"
	"ai-websearch-be/internal/pkg/logger"
	"ai-websearch-be/internal/repository/implementation"
	"ai-websearch-be/internal/service"
	"ai-websearch-be/internal/websocket"
	"ai-websearch-be/pkg/embedding"
	"ai-websearch-be/pkg/llm/factory"
	pktNats "ai-websearch-be/pkg/nats"
	"ai-websearch-be/pkg/rag/answer"
	"ai-websearch-be/pkg/rag/collect"
	"ai-websearch-be/pkg/rag/fetch"
	"ai-websearch-be/pkg/rag/followup"
	"ai-websearch-be/pkg/rag/index"
	"ai-websearch-be/pkg/rag/sources"
	"ai-websearch-be/pkg/search/brave"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	HistoryController controller.IHistoryController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Pipeline
	AnswerHandler *handler.AnswerHandler
	WebSocketHub  *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Schema: the answer record table needs the pgvector extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.Printf("[WARN] Failed to ensure pgvector extension: %v", err)
	}
	if err := db.AutoMigrate(&model.MessageHistory{}, &model.AnswerRecord{}); err != nil {
		log.Printf("[WARN] Failed to run migrations: %v", err)
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Capability Providers
	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	searchProvider := brave.NewClient(cfg.Keys.BraveSearch)

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Pipeline Stages
	retriever := sources.NewRetriever(llmProvider, searchProvider)
	fetcher := fetch.NewFetcher()
	indexer := index.NewIndexer(embeddingProvider)
	collector := collect.NewCoordinator(fetcher, indexer, sysLogger)
	streamer := answer.NewStreamer(llmProvider)
	followupGen := followup.NewGenerator(llmProvider)

	// 5. Services
	historyRepo := implementation.NewHistoryRepository(db)

	publisherService := service.NewPublisherService(cfg.Keys.HistoryTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.HistoryTopic,
		historyRepo,
	)

	answerService := service.NewAnswerService(
		retriever,
		collector,
		streamer,
		followupGen,
		embeddingProvider,
		historyRepo,
		wsHub,
		publisherService,
		natsPub,
		sysLogger,
	)
	historyService := service.NewHistoryService(historyRepo, embeddingProvider)

	// 6. Handlers & Controllers
	answerHandler := handler.NewAnswerHandler(answerService, wsHub, wsLogger)

	return &Container{
		AnswerHandler:     answerHandler,
		WebSocketHub:      wsHub,
		HistoryController: controller.NewHistoryController(historyService),

		ConsumerService: consumerService,
	}
}
