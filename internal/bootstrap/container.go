package bootstrap

import (
	"context"
	"log"
	"os"
	"time"

	"civic-voice-be/internal/config"
	"civic-voice-be/internal/controller"
	"civic-voice-be/internal/handler"
	"civic-voice-be/internal/model"
	"civic-voice-be/internal/pkg/logger"
	"civic-voice-be/internal/repository/contract"
	"civic-voice-be/internal/repository/implementation"
	"civic-voice-be/internal/repository/memory"
	"civic-voice-be/internal/service"
	"civic-voice-be/internal/websocket"
	"civic-voice-be/pkg/database"
	"civic-voice-be/pkg/embedding"
	"civic-voice-be/pkg/events"
	"civic-voice-be/pkg/llm"
	"civic-voice-be/pkg/llm/factory"
	"civic-voice-be/pkg/nlp"
	"civic-voice-be/pkg/rag/executor"
	"civic-voice-be/pkg/rag/intent"
	"civic-voice-be/pkg/rag/response"
	"civic-voice-be/pkg/search"
	"civic-voice-be/pkg/speech"
	"civic-voice-be/pkg/traffic"

	pktNats "civic-voice-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

const queryEmbeddingTTL = 10 * time.Minute

type Container struct {
	// Controllers
	AgentController     controller.IAgentController
	KnowledgeController controller.IKnowledgeController
	HealthController    controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	VoiceHandler *handler.VoiceHandler
	WebSocketHub *websocket.Hub

	// Exposed for the CLI tools
	KnowledgeService service.IKnowledgeService
	Logger           logger.ILogger

	closers []func()
}

// NewContainer wires every component from configuration. A feature flag
// that is on without its credential stops the process; optional
// capabilities without credentials are replaced by disabled stand-ins.
func NewContainer(cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	stageTimeout := cfg.Ai.CapabilityTimeout

	// 1. Stores
	rdb := newRedisClient(cfg.App.RedisURL)
	articleRepo := implementation.NewKnowledgeArticleRepository(rdb)
	vectorRepo := newVectorRepository(cfg, rdb)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	var eventPublisher events.Publisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPublisher = natsPub
	}

	// 3. AI capabilities
	vectorSearch := search.NewVectorSearch(
		search.VectorConfig{
			Enabled:       cfg.Features.VectorEmbeddings,
			Limit:         cfg.Vector.Limit,
			MinSimilarity: cfg.Vector.MinSimilarity,
			Timeout:       stageTimeout,
		},
		newEmbeddingProvider(cfg),
		vectorRepo,
		articleRepo,
		memory.NewEmbeddingCache(queryEmbeddingTTL),
		componentLogger("VectorSearch"),
	)

	settings := llm.ResolveSettings(cfg.Llm.Model, cfg.Llm.Temperature, cfg.Llm.MaxTokens)
	responder := llm.NewResponder(newLLMProvider(cfg, settings.Model), settings, cfg.Features.LLMResponses)
	log.Printf("[INFO] LLM responses enabled=%t (%s, temperature %.2f, max tokens %d)",
		responder.Enabled(), settings.Model, settings.Temperature, settings.MaxTokens)

	var nlpProvider nlp.NLPProvider
	if cfg.Keys.GoogleCloud != "" {
		nlpProvider = nlp.NewGoogleProvider(cfg.Keys.GoogleCloud)
	} else {
		log.Printf("[WARN] GOOGLE_CLOUD_API_KEY not set; queries will be classified without entities")
	}

	var trafficLookup traffic.TrafficLookup
	if cfg.Keys.GoogleMaps != "" {
		trafficLookup = traffic.NewRoutesClient(cfg.Keys.GoogleMaps)
	} else {
		log.Printf("[WARN] GOOGLE_MAPS_API_KEY not set; traffic questions will get the fallback reply")
	}

	detector, transcriber, speaker := newSpeechCapabilities(cfg)

	// 4. Pipeline
	classifier := intent.NewClassifier(nlpProvider, stageTimeout, componentLogger("Intent"))
	pipeline := executor.NewVoicePipeline(executor.Dependencies{
		Detector:     detector,
		Transcriber:  transcriber,
		Speaker:      speaker,
		Classifier:   classifier,
		TagSearch:    search.NewTagSearch(articleRepo),
		VectorSearch: vectorSearch,
		Synthesizer:  response.NewSynthesizer(responder, stageTimeout, componentLogger("Synthesizer")),
		Traffic:      trafficLookup,
	}, executor.Config{
		StageTimeout:  stageTimeout,
		TrafficOrigin: cfg.App.TrafficOrigin,
	}, componentLogger("VoicePipeline"))

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.IndexTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.IndexTopic, articleRepo, vectorSearch, sysLogger)
	knowledgeService := service.NewKnowledgeService(articleRepo, vectorSearch, publisherService, eventPublisher, sysLogger)
	agentService := service.NewAgentService(pipeline, classifier, sysLogger)
	healthService := service.NewHealthService(articleRepo)

	// 6. WebSocket
	wsLogger := logger.NewIsolatedLogger("logs/voice_socket.log")
	wsHub := websocket.NewHub(wsLogger)
	go wsHub.Run()

	return &Container{
		AgentController:     controller.NewAgentController(agentService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService, cfg.App.JwtSecret),
		HealthController:    controller.NewHealthController(healthService),

		ConsumerService: consumerService,

		VoiceHandler: handler.NewVoiceHandler(agentService, wsHub, wsLogger),
		WebSocketHub: wsHub,

		KnowledgeService: knowledgeService,
		Logger:           sysLogger,

		closers: []func(){
			func() { _ = pubSub.Close() },
			natsPub.Close,
			func() { _ = rdb.Close() },
			func() { _ = sysLogger.Sync() },
		},
	}
}

// Close releases connections in reverse dependency order.
func (c *Container) Close() {
	for _, fn := range c.closers {
		fn()
	}
}

func newRedisClient(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	return rdb
}

func newVectorRepository(cfg *config.Config, rdb *redis.Client) contract.KnowledgeVectorRepository {
	if cfg.Features.VectorStore != "pgvector" {
		return implementation.NewKnowledgeVectorRedisRepository(rdb)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("[FATAL] VECTOR_STORE=pgvector but the database is unreachable: %v", err)
	}
	if err := database.Migrate(db, &model.KnowledgeVector{}); err != nil {
		log.Fatalf("[FATAL] Failed to migrate knowledge_vectors: %v", err)
	}
	log.Printf("[INFO] Using Vector Store: PGVECTOR")
	return implementation.NewKnowledgeVectorRepository(db, cfg.Ai.EmbeddingModel)
}

func newEmbeddingProvider(cfg *config.Config) embedding.EmbeddingProvider {
	if !cfg.Features.VectorEmbeddings {
		return nil
	}

	provider, err := embedding.NewProvider(cfg.Ai.EmbeddingProvider, cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel, cfg.Ai.OllamaBaseURL)
	if err != nil {
		log.Fatalf("[FATAL] ENABLE_VECTOR_EMBEDDINGS is on but the embedding provider failed: %v", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s (%s)", cfg.Ai.EmbeddingProvider, provider.Model())
	return provider
}

func newLLMProvider(cfg *config.Config, model string) llm.LLMProvider {
	if !cfg.Features.LLMResponses {
		return nil
	}

	apiKey := cfg.Keys.OpenAI
	if cfg.Ai.LLMProvider == "huggingface" {
		apiKey = cfg.Keys.HuggingFace
	}

	provider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, apiKey, model, cfg.Ai.LLMBaseURL)
	if err != nil {
		log.Fatalf("[FATAL] ENABLE_LLM_RESPONSES is on but the LLM provider failed: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, model)
	return provider
}

// newSpeechCapabilities returns detector, transcriber and speaker. Deepgram
// can transcribe and detect but not speak, so speech output stays on OpenAI.
func newSpeechCapabilities(cfg *config.Config) (speech.LanguageDetector, speech.SpeechToText, speech.TextToSpeech) {
	var (
		detector    speech.LanguageDetector = speech.Disabled{Name: "language detection"}
		transcriber speech.SpeechToText     = speech.Disabled{Name: "speech-to-text"}
		speaker     speech.TextToSpeech     = speech.Disabled{Name: "text-to-speech"}
	)

	if cfg.Ai.SpeechProvider == "deepgram" {
		if dg, err := speech.NewDeepgramClient(cfg.Keys.Deepgram); err == nil {
			detector, transcriber = dg, dg
		} else {
			log.Printf("[ERROR] Deepgram unavailable: %v", err)
		}
	} else {
		if c, err := speech.NewOpenAIClient(cfg.Keys.SpeechToText); err == nil {
			transcriber = c
		} else {
			log.Printf("[ERROR] Speech-to-text unavailable: %v", err)
		}
		if c, err := speech.NewOpenAIClient(cfg.Keys.LanguageDetect); err == nil {
			detector = c
		} else {
			log.Printf("[ERROR] Language detection unavailable: %v", err)
		}
	}

	if c, err := speech.NewOpenAIClient(cfg.Keys.TextToSpeech); err == nil {
		speaker = c
	} else {
		log.Printf("[ERROR] Text-to-speech unavailable: %v", err)
	}

	return detector, transcriber, speaker
}

func componentLogger(name string) *log.Logger {
	return log.New(os.Stdout, "["+name+"] ", log.LstdFlags)
}
