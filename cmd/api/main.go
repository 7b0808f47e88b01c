package main

import (
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"todoflow-backend/internal/ai"
	"todoflow-backend/internal/analytics"
	"todoflow-backend/internal/config"
	"todoflow-backend/internal/db"
	"todoflow-backend/internal/extract"
	"todoflow-backend/internal/httpserver"
	"todoflow-backend/internal/todos"
	"todoflow-backend/pkg/logger"
)

func main() {
	log := logger.NewLogger()
	defer log.Sync()

	cfg := config.Load()

	database, err := db.Connect(cfg.ConnString())
	if err != nil {
		log.Fatal("failed to connect db", zap.Error(err))
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("connected to postgres", zap.String("db", cfg.DBName))

	// ----- EXTRACTION PIPELINE -----

	var remote extract.Extractor
	if cfg.OpenAIKey != "" {
		remote = extract.NewModelExtractor(ai.New(ai.Config{
			APIKey:  cfg.OpenAIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: cfg.ExtractTimeout,
		}))

		if cfg.RedisAddr != "" {
			rdb := redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
			})
			remote = extract.NewCachedExtractor(remote, rdb, cfg.CacheTTL, log)
			log.Info("extraction cache enabled", zap.String("redis", cfg.RedisAddr))
		}
	} else {
		log.Warn("OPENAI_API_KEY not set, running on rule-based extraction only")
	}

	normalizer := extract.NewNormalizer(
		remote,
		extract.NewRuleExtractor(cfg.FillerPhrases),
		cfg.ExtractTimeout,
		log,
	)

	// ----- HTTP -----

	router := httpserver.NewRouter(httpserver.Deps{
		Store:      todos.NewPostgresStore(database),
		Normalizer: normalizer,
		Events:     analytics.NewLogger(database),
		Log:        log,
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	log.Info("api server is running", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, c.Handler(router)); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
