package copilot

import (
	"context"

	"github.com/gastrohub/resto-copilot/internal/application/dto"
	"github.com/gastrohub/resto-copilot/internal/application/ports"
	"github.com/gastrohub/resto-copilot/pkg/logger"
)

// ClarificationReply resposta fixa quando os argumentos da ferramenta não
// puderam ser interpretados. Nenhum handler é invocado nesse caso.
const ClarificationReply = "Não consegui interpretar os dados. Pode repetir?"

// Orchestrator é o ponto de entrada de um turno de conversa: monta o prompt,
// chama o serviço de completions uma única vez, interpreta a resposta (texto
// ou chamada de ferramenta) e devolve um único payload normalizado.
//
// O orquestrador é stateless entre turnos; o histórico vem do chamador e o
// snapshot de contexto chega pré-agregado na própria requisição.
type Orchestrator struct {
	chat   ports.ChatService
	exec   *Executor
	policy PromptPolicy
	log    *logger.Logger
}

// NewOrchestrator constrói o orquestrador.
func NewOrchestrator(chat ports.ChatService, exec *Executor, policy PromptPolicy, log *logger.Logger) *Orchestrator {
	return &Orchestrator{chat: chat, exec: exec, policy: policy, log: log}
}

// Reply processa um turno. Erros upstream (domain.ErrLLM*) sobem para o
// handler HTTP mapear em 429/402/500; tudo que é relacionado à execução de
// ferramenta vira resposta de chat, mesmo em falha.
func (o *Orchestrator) Reply(ctx context.Context, req dto.ChatRequest) (*dto.ChatReply, error) {
	messages := assembleMessages(o.policy, req)

	result, err := o.chat.Chat(ctx, messages, ToolSchemas())
	if err != nil {
		return nil, err
	}

	if len(result.ToolCalls) == 0 {
		return &dto.ChatReply{Suggestion: result.Text, ActionExecuted: false}, nil
	}

	// Apenas a primeira chamada é processada; planos multi-passo não são
	// suportados neste turno.
	call := result.ToolCalls[0]
	if len(result.ToolCalls) > 1 {
		o.log.Warn().
			Int("ignored", len(result.ToolCalls)-1).
			Str("tool", call.Name).
			Msg("modelo pediu múltiplas ferramentas; executando só a primeira")
	}

	args, parseErr := ParseToolArgs(call.Name, call.Arguments)
	if parseErr != nil {
		o.log.Warn().Err(parseErr).Str("tool", call.Name).Msg("argumentos da ferramenta inválidos")
		return &dto.ChatReply{Suggestion: ClarificationReply, ActionExecuted: false}, nil
	}

	outcome := o.exec.Execute(ctx, req.UserID, req.UnitID, args)
	return &dto.ChatReply{Suggestion: outcome.Message, ActionExecuted: outcome.Executed}, nil
}

// assembleMessages monta system prompt + histórico do chamador. Histórico
// vazio ganha um turno sintético pedindo uma saudação.
func assembleMessages(policy PromptPolicy, req dto.ChatRequest) []ports.ChatMessage {
	messages := []ports.ChatMessage{
		{Role: ports.RoleSystem, Content: BuildSystemPrompt(policy, req.Context)},
	}
	for _, m := range req.Messages {
		role := ports.RoleUser
		if m.Role == ports.RoleAssistant {
			role = ports.RoleAssistant
		}
		messages = append(messages, ports.ChatMessage{Role: role, Content: m.Content})
	}
	if len(req.Messages) == 0 {
		messages = append(messages, ports.ChatMessage{
			Role:    ports.RoleUser,
			Content: "Cumprimente o usuário em uma frase curta e pergunte em que pode ajudar.",
		})
	}
	return messages
}
