package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	Snapshot  SnapshotBuilder
	Chat      ChatReplier
	JWTSecret string
}

// Router registra as rotas da API. As duas rotas do copiloto exigem Bearer
// Token; o snapshot ainda passa pela checagem de associação com a unidade.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	copilotGroup := api.Group("/copilot", AuthMiddleware(deps.JWTSecret))
	handler := NewCopilotHandler(deps.Snapshot, deps.Chat)
	copilotGroup.Post("/context", handler.Context)
	copilotGroup.Post("/chat", handler.Chat)
}
