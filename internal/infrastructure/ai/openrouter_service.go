package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openrouter "github.com/revrost/go-openrouter"
	"github.com/rs/zerolog/log"

	"github.com/gastrohub/resto-copilot/internal/application/ports"
	"github.com/gastrohub/resto-copilot/internal/domain"
	"github.com/gastrohub/resto-copilot/pkg/config"
)

// Verificação em tempo de compilação de que OpenRouterService implementa ChatService.
var _ ports.ChatService = (*OpenRouterService)(nil)

// OpenRouterService adaptador da porta ChatService sobre a API OpenRouter
// (chat-completions estilo OpenAI com tool-calling). O OpenRouter devolve
// 429 para rate limit e 402 para créditos esgotados; a classificação em
// sentinelas de domínio acontece aqui, não no orquestrador.
type OpenRouterService struct {
	client *openrouter.Client
	model  string
}

// NewOpenRouterService constrói o adaptador. Sem API key as chamadas devolvem
// domain.ErrLLMNotConfigured em vez de panic.
func NewOpenRouterService(cfg config.LLMConfig) *OpenRouterService {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return &OpenRouterService{model: cfg.Model}
	}

	clientCfg := openrouter.DefaultConfig(apiKey)
	if strings.TrimSpace(cfg.BaseURL) != "" {
		clientCfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}
	clientCfg.HTTPClient = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}

	return &OpenRouterService{
		client: openrouter.NewClientWithConfig(*clientCfg),
		model:  cfg.Model,
	}
}

// Chat envia o turno completo (mensagens + registro de ferramentas) e devolve
// o texto e/ou as chamadas de ferramenta da resposta.
func (s *OpenRouterService) Chat(ctx context.Context, messages []ports.ChatMessage, tools []ports.ToolDefinition) (*ports.ChatResult, error) {
	if s.client == nil {
		return nil, domain.ErrLLMNotConfigured
	}

	request := openrouter.ChatCompletionRequest{
		Model:    s.model,
		Messages: toOpenRouterMessages(messages),
		Tools:    toOpenRouterTools(tools),
	}

	resp, err := s.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, classifyError(err)
	}
	logUsage(resp)

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("serviço de IA devolveu resposta vazia")
	}

	msg := resp.Choices[0].Message
	result := &ports.ChatResult{Text: strings.TrimSpace(msg.Content.Text)}
	for _, call := range msg.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, ports.ToolCall{
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
	return result, nil
}

func toOpenRouterMessages(messages []ports.ChatMessage) []openrouter.ChatCompletionMessage {
	out := make([]openrouter.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := openrouter.ChatMessageRoleUser
		switch m.Role {
		case ports.RoleSystem:
			role = openrouter.ChatMessageRoleSystem
		case ports.RoleAssistant:
			role = openrouter.ChatMessageRoleAssistant
		}
		out = append(out, openrouter.ChatCompletionMessage{
			Role:    role,
			Content: openrouter.Content{Text: m.Content},
		})
	}
	return out
}

func toOpenRouterTools(tools []ports.ToolDefinition) []openrouter.Tool {
	out := make([]openrouter.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, openrouter.Tool{
			Type: openrouter.ToolTypeFunction,
			Function: &openrouter.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return out
}

// classifyError traduz erros HTTP do OpenRouter nos sentinelas de domínio.
func classifyError(err error) error {
	var apiErr *openrouter.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", domain.ErrLLMRateLimited, err)
		case http.StatusPaymentRequired:
			return fmt.Errorf("%w: %v", domain.ErrLLMQuota, err)
		}
	}
	return fmt.Errorf("chamada ao serviço de IA: %w", err)
}

func logUsage(resp openrouter.ChatCompletionResponse) {
	if resp.Usage == nil {
		return
	}
	log.Debug().
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Int("total_tokens", resp.Usage.TotalTokens).
		Msg("uso do serviço de IA")
}
