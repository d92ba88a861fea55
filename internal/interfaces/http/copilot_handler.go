package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gastrohub/resto-copilot/internal/application/dto"
	"github.com/gastrohub/resto-copilot/internal/domain"
)

// SnapshotBuilder contrato do agregador de contexto visto pelo handler.
type SnapshotBuilder interface {
	Build(ctx context.Context, userID, unitID string) (*dto.ContextResponse, error)
}

// ChatReplier contrato do orquestrador de conversa visto pelo handler.
type ChatReplier interface {
	Reply(ctx context.Context, req dto.ChatRequest) (*dto.ChatReply, error)
}

// CopilotHandler endpoints do copiloto: snapshot de contexto e turno de chat.
type CopilotHandler struct {
	snapshot SnapshotBuilder
	chat     ChatReplier
}

// NewCopilotHandler constrói o handler.
func NewCopilotHandler(snapshot SnapshotBuilder, chat ChatReplier) *CopilotHandler {
	return &CopilotHandler{snapshot: snapshot, chat: chat}
}

// Context godoc
// @Summary      Snapshot operacional da unidade
// @Description  Agrega saldos, pendências, estoque baixo, tarefas e checklists
//               do dia em um contexto pronto para o prompt do copiloto, mais
//               contadores para badges. Sempre recalculado; nada é cacheado.
// @Tags         copilot
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContextRequest  true  "unit_id (obrigatório)"
// @Success      200   {object}  dto.ContextResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/copilot/context [post]
func (h *CopilotHandler) Context(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}

	var req dto.ContextRequest
	if err := c.BodyParser(&req); err != nil || req.UnitID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "unit_id required"})
	}

	res, err := h.snapshot.Build(c.Context(), userID, req.UnitID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "unit_id required"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "Access denied"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(res)
}

// Chat godoc
// @Summary      Turno de conversa do copiloto
// @Description  Recebe o histórico e o snapshot pré-agregado, chama o modelo
//               com as ferramentas registradas e devolve uma única resposta
//               normalizada. Falhas de execução de ferramenta continuam 200;
//               só infraestrutura (rate limit, créditos, configuração) vira
//               status de erro.
// @Tags         copilot
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "messages, context, user_id, unit_id"
// @Success      200   {object}  dto.ChatReply
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/copilot/chat [post]
func (h *CopilotHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "requisição inválida"})
	}
	if req.UserID == "" {
		req.UserID = GetUserID(c)
	}

	reply, err := h.chat.Reply(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrLLMRateLimited) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error: "Limite de requisições de IA atingido. Tente novamente em instantes.",
			})
		}
		if errors.Is(err, domain.ErrLLMQuota) {
			return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{
				Error: "Créditos do serviço de IA esgotados.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(reply)
}
