package ports

import "context"

// Papéis de mensagem no protocolo chat-completions.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage mensagem enviada ao serviço de completions.
type ChatMessage struct {
	Role    string
	Content string
}

// ToolDefinition declaração de uma ferramenta exposta ao modelo: nome,
// descrição em linguagem natural (o modelo decide por ela quando invocar)
// e o JSON Schema dos parâmetros.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ToolCall pedido de execução de ferramenta emitido pelo modelo.
// Arguments chega como JSON codificado em string, como na API OpenAI.
type ToolCall struct {
	Name      string
	Arguments string
}

// ChatResult resultado de um turno: texto livre e/ou chamadas de ferramenta.
type ChatResult struct {
	Text      string
	ToolCalls []ToolCall
}

// ChatService define a porta de saída para o serviço de completions com
// suporte a tool-calling. Qualquer adaptador (OpenRouter, mock) implementa
// este contrato; a aplicação não conhece a implementação concreta.
// Erros upstream devem vir classificados com os sentinelas domain.ErrLLM*.
type ChatService interface {
	Chat(ctx context.Context, messages []ChatMessage, tools []ToolDefinition) (*ChatResult, error)
}
