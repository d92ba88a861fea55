package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gastrohub/resto-copilot/internal/application/copilot"
	"github.com/gastrohub/resto-copilot/internal/application/snapshot"
	infraai "github.com/gastrohub/resto-copilot/internal/infrastructure/ai"
	"github.com/gastrohub/resto-copilot/internal/infrastructure/postgres"
	httpRouter "github.com/gastrohub/resto-copilot/internal/interfaces/http"
	"github.com/gastrohub/resto-copilot/pkg/config"
	"github.com/gastrohub/resto-copilot/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	membershipRepo := postgres.NewMembershipRepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	resolverRepo := postgres.NewEntityResolverRepository(pool)

	snapshotUC := snapshot.NewUseCase(membershipRepo, snapshotRepo)

	// Sem OPENROUTER_API_KEY o serviço sobe normalmente; só /chat devolve erro.
	llmSvc := infraai.NewOpenRouterService(cfg.LLM)
	executor := copilot.NewExecutor(resolverRepo, txRepo, taskRepo, movRepo, log)
	orchestrator := copilot.NewOrchestrator(llmSvc, executor, copilot.PromptPolicy{
		MaxSentences: cfg.Copilot.MaxSentences,
		MaxEmojis:    cfg.Copilot.MaxEmojis,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // turnos de chat aguardam o provedor LLM
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Snapshot:  snapshotUC,
		Chat:      orchestrator,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
