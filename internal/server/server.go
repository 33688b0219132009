package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"price-advisor/internal/config"
	"price-advisor/internal/db"
	"price-advisor/internal/handlers"
	"price-advisor/internal/repositories"
	"price-advisor/internal/routes"
	"price-advisor/internal/services"
)

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requestLogMiddleware tags each request with an id and logs its outcome
func requestLogMiddleware(logger *zap.SugaredLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			w.Header().Set("X-Request-ID", requestID)

			start := time.Now()
			next.ServeHTTP(w, r)

			logger.Infow("request completed",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// NewServer wires the store, vector database, cache and hosted model into
// the HTTP server. The returned cleanup func releases all long-lived
// clients and must be called on shutdown.
func NewServer(cfg *config.Config, logger *zap.SugaredLogger) (*http.Server, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Product store. The pool connects lazily, so an unreachable store
	// degrades to empty fetches at runtime instead of failing startup.
	productRepo, err := repositories.NewPostgresProductRepository(
		ctx, cfg.Database.URL, cfg.Database.Table, cfg.Database.FetchLimit)
	if err != nil {
		return nil, nil, err
	}

	var products repositories.ProductRepository = productRepo
	var redisClient *db.RedisClient
	if cfg.Redis.CacheTTL > 0 {
		redisClient = db.NewRedisClient(db.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx); err != nil {
			logger.Warnf("redis unavailable, product cache disabled: %v", err)
			_ = redisClient.Close()
			redisClient = nil
		} else {
			products = repositories.NewCachedProductRepository(
				productRepo, redisClient, cfg.Redis.CacheTTL, logger)
			logger.Infof("product cache enabled (ttl %s)", cfg.Redis.CacheTTL)
		}
	}

	// Vector database
	chromaClient := db.NewChromaClient(db.ChromaConfig{
		Host:     cfg.Chroma.Host,
		Port:     cfg.Chroma.Port,
		Tenant:   cfg.Chroma.Tenant,
		Database: cfg.Chroma.Database,
		Timeout:  cfg.Chroma.Timeout,
	})
	if err := chromaClient.Heartbeat(ctx); err != nil {
		logger.Warnf("chromadb not reachable at startup: %v", err)
	}
	vectorRepo := repositories.NewChromaVectorRepository(chromaClient, cfg.Chroma.Collection)

	// Hosted model for embeddings and generation
	gemini, err := services.NewGeminiService(ctx, services.GeminiConfig{
		APIKey:         cfg.Gemini.APIKey,
		Model:          cfg.Gemini.Model,
		EmbeddingModel: cfg.Gemini.EmbeddingModel,
	}, logger)
	if err != nil {
		products.Close()
		return nil, nil, err
	}

	// Services
	indexService := services.NewIndexService(products, vectorRepo, gemini, logger)
	chatService := services.NewChatService(indexService, gemini, logger)
	productService := services.NewProductService(products, logger)

	// Handlers and routes
	h := &routes.Handlers{
		Home:      handlers.HomeHandler,
		Health:    handlers.HealthCheckHandler,
		LLMHealth: handlers.NewLLMHealthHandler(gemini),
		Chat:      handlers.NewChatHandler(chatService, logger),
		Search:    handlers.NewSearchHandler(indexService, cfg.Retrieval.SearchTopK, logger),
		Products:  handlers.NewProductHandler(productService, logger),
	}

	router := mux.NewRouter()
	router.Use(requestLogMiddleware(logger))
	routes.RegisterRoutes(router, h)

	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
	))

	cleanup := func() {
		products.Close()
		_ = vectorRepo.Close()
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}

	return &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      corsMiddleware(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, cleanup, nil
}
