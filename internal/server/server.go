package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinepedia/scraper/internal/queue"
	mid "github.com/cinepedia/scraper/internal/server/middleware"
	"github.com/cinepedia/scraper/internal/util"
	"github.com/cinepedia/scraper/pkg/ai"
	oai "github.com/cinepedia/scraper/pkg/ai/ollama"
	gai "github.com/cinepedia/scraper/pkg/ai/openai"
	"github.com/cinepedia/scraper/pkg/logger"
	"github.com/cinepedia/scraper/pkg/store"
	jsonstore "github.com/cinepedia/scraper/pkg/store/json"
	pgxstore "github.com/cinepedia/scraper/pkg/store/pgx"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/go-playground/validator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	var key *keyfunc.Keyfunc
	if authURL := util.GetEnv("AUTH_URL"); authURL != "" {
		k, err := keyfunc.NewDefault([]string{authURL + "/jwks"})
		if err != nil {
			logger.Fatal("Failed to load jwks keys", "err", err)
		}
		key = &k
	} else {
		logger.Warn("AUTH_URL not set, only the master API key is accepted")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	entityStore, cleanup := NewEntityStore(ctx, NewAIClient())
	defer cleanup()

	que := queue.Init()
	defer que.Close()
	ch, err := que.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	if err := queue.SetupQueues(ch, queue.Queues); err != nil {
		logger.Fatal("Failed to setup queues", "err", err)
	}

	masterAPIKey := util.GetEnv("MASTER_API_KEY")

	e.Use(mid.AppContextMiddleware(entityStore, ch, key, masterAPIKey))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}

// NewAIClient builds the configured AI adapter from the environment.
func NewAIClient() ai.Client {
	switch util.GetEnv("AI_ADAPTER") {
	case "ollama":
		client, err := oai.NewExtractionOllamaClient(oai.NewExtractionOllamaClientParams{
			EmbeddingModel:  util.GetEnv("AI_EMBED_MODEL"),
			ExtractionModel: util.GetEnv("AI_CHAT_EXTRACT_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 4)),
			RequestTimeoutMin:     int64(util.GetEnvNumeric("AI_TIMEOUT_MIN", 10)),
		})
		if err != nil {
			logger.Fatal("Failed to create Ollama client", "err", err)
		}
		return client
	default:
		return gai.NewExtractionOpenAIClient(gai.NewExtractionOpenAIClientParams{
			EmbeddingModel:  util.GetEnv("AI_EMBED_MODEL"),
			ExtractionModel: util.GetEnv("AI_CHAT_EXTRACT_MODEL"),

			EmbeddingURL: util.GetEnv("AI_EMBED_URL"),
			EmbeddingKey: util.GetEnv("AI_EMBED_KEY"),
			ChatURL:      util.GetEnv("AI_CHAT_URL"),
			ChatKey:      util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 4)),
			RequestTimeoutMin:     int64(util.GetEnvNumeric("AI_TIMEOUT_MIN", 10)),
		})
	}
}

// NewEntityStore picks the entity storage backend. With DATABASE_URL set
// entities live in Postgres with pgvector search, otherwise they are
// written as JSON files under STORAGE_DIR.
func NewEntityStore(ctx context.Context, aiClient ai.Client) (store.EntityStorage, func()) {
	databaseURL := util.GetEnv("DATABASE_URL")
	if databaseURL == "" {
		dir := util.GetEnvString("STORAGE_DIR", "data")
		dirStore, err := jsonstore.NewEntityDirStorage(dir)
		if err != nil {
			logger.Fatal("Failed to open storage directory", "dir", dir, "err", err)
		}
		logger.Info("Using JSON file storage", "dir", dir)
		return dirStore, func() {}
	}

	if err := pgxstore.Migrate(util.GetEnvString("MIGRATIONS_PATH", "pkg/store/pgx/migrations"), databaseURL); err != nil {
		logger.Fatal("Failed to run migrations", "err", err)
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		logger.Fatal("Failed to parse database url", "err", err)
	}
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}
	conn, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}

	logger.Info("Using Postgres storage")
	return pgxstore.NewEntityDBStorageWithConnection(conn, aiClient), conn.Close
}
