package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"shinz/internal/access"
	"shinz/internal/adapters/ai"
	"shinz/internal/adapters/insights"
	"shinz/internal/adapters/store"
	"shinz/internal/adapters/twitter"
	"shinz/internal/adapters/web"
	"shinz/internal/command"
	"shinz/internal/scheduler"
	"shinz/internal/usecases"
	"shinz/pkg/log"
)

const defaultHandle = "seishinzinshape"

func main() {
	// Missing .env is fine; the platform may inject env vars directly.
	_ = godotenv.Load()

	logger := log.New(log.ParseLevel(os.Getenv("LOG_LEVEL")), log.NewStdout())
	log.SetDefault(logger)

	// Access grant table, with optional YAML override.
	grants, err := access.LoadGrants(os.Getenv("ACCESS_CODES_FILE"))
	if err != nil {
		log.GlobalError("failed to load access codes", "error", err)
		os.Exit(1)
	}
	gate := access.NewGate(grants)

	// Persona for generated content.
	character, err := ai.LoadCharacter(os.Getenv("CHARACTER_FILE"))
	if err != nil {
		log.GlobalError("failed to load character", "error", err)
		os.Exit(1)
	}

	generator, err := ai.NewClient(ai.Config{
		Provider: aiProvider(),
		APIKey:   aiAPIKey(),
		Model:    os.Getenv("AI_MODEL"),
	}, character)
	if err != nil {
		log.GlobalError("failed to create ai client", "error", err)
		os.Exit(1)
	}

	social := twitter.NewClient(twitter.Config{
		APIKey:       os.Getenv("TWITTER_API_KEY"),
		APISecret:    os.Getenv("TWITTER_API_SECRET"),
		AccessToken:  os.Getenv("TWITTER_ACCESS_TOKEN"),
		AccessSecret: os.Getenv("TWITTER_ACCESS_SECRET"),
	})

	shapeInsights := insights.NewClient(os.Getenv("SHAPE_MCP_URL"), 0)

	stateStore := newStateStore()

	handle := os.Getenv("TWITTER_HANDLE")
	if handle == "" {
		handle = defaultHandle
	}

	dispatcher := command.NewDispatcher(generator, social, shapeInsights, handle)

	runCommand := usecases.NewRunCommandUseCase(gate, dispatcher, social)
	postHourly := usecases.NewPostHourlyUseCase(shapeInsights, generator, social, handle)
	postGM := usecases.NewPostGMUseCase(social, stateStore)
	replyMentions := usecases.NewReplyMentionsUseCase(social, generator, stateStore)
	gasbackUpdate := usecases.NewPostUpdateUseCase(social, usecases.GasbackUpdateContent)
	nftUpdate := usecases.NewPostUpdateUseCase(social, usecases.NFTUpdateContent)

	sched := scheduler.New(gate, map[scheduler.TaskType]scheduler.Runner{
		scheduler.TaskGMTweet: func(ctx context.Context) error {
			_, err := postGM.Execute(ctx)
			return err
		},
		scheduler.TaskGasbackUpdate: func(ctx context.Context) error {
			_, err := gasbackUpdate.Execute(ctx)
			return err
		},
		scheduler.TaskNFTUpdate: func(ctx context.Context) error {
			_, err := nftUpdate.Execute(ctx)
			return err
		},
		scheduler.TaskEngagement: func(ctx context.Context) error {
			_, _, err := replyMentions.Execute(ctx)
			return err
		},
	})
	if os.Getenv("SCHEDULER_ENABLED") == "true" {
		sched.Start(context.Background())
	}

	handlers := web.NewHandlers(gate, runCommand, postHourly, postGM, replyMentions, shapeInsights, sched)

	app := fiber.New(fiber.Config{
		AppName: "ShinZ Agent",
	})
	app.Use(recover.New())
	app.Use(requestid.New(web.RequestIDConfig()))
	app.Use(web.RequestIDToContextMiddleware())
	app.Use(web.RequestLoggerMiddleware())

	web.SetupRoutes(app, handlers)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.GlobalInfo("starting shinz agent", "port", port, "handle", handle)
	if err := app.Listen(":" + port); err != nil {
		log.GlobalError("server stopped", "error", err)
		os.Exit(1)
	}
}

// aiProvider resolves the provider the same way the hosted bot did:
// explicit AI_PROVIDER wins, otherwise DeepSeek when only its key is set.
func aiProvider() string {
	if p := strings.ToLower(os.Getenv("AI_PROVIDER")); p != "" {
		return p
	}
	if os.Getenv("DEEPSEEK_API_KEY") != "" && os.Getenv("OPENAI_API_KEY") == "" {
		return ai.ProviderDeepSeek
	}
	return ai.ProviderOpenAI
}

func aiAPIKey() string {
	if aiProvider() == ai.ProviderDeepSeek {
		return os.Getenv("DEEPSEEK_API_KEY")
	}
	return os.Getenv("OPENAI_API_KEY")
}

// newStateStore picks Redis when REDIS_ADDR is set, in-memory otherwise.
func newStateStore() usecases.StateStore {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.GlobalInfo("using in-memory state store")
		return store.NewMemory()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.GlobalWarn("redis unreachable, falling back to in-memory store", "addr", addr, "error", err)
		return store.NewMemory()
	}

	log.GlobalInfo("using redis state store", "addr", addr)
	return store.NewRedis(client)
}
