package dto

// ChatMessage um turno da conversa (papel + conteúdo), no formato que o
// front envia e que o serviço repassa ao modelo.
type ChatMessage struct {
	Role    string `json:"role"` // user | assistant
	Content string `json:"content"`
}

// ChatRequest corpo da chamada do copiloto. O histórico é de responsabilidade
// do chamador; o serviço é stateless entre turnos. Context é o snapshot
// pré-agregado devolvido pelo endpoint de contexto.
type ChatRequest struct {
	Messages []ChatMessage   `json:"messages"`
	Context  *CopilotContext `json:"context"`
	UserID   string          `json:"user_id"`
	UnitID   *string         `json:"unit_id"`
}

// ChatReply resposta normalizada de um turno: sempre exatamente um objeto,
// sem streaming. Quando uma ferramenta foi executada, Suggestion vem com o
// prefixo "[ACTION]" que o front remove para diferenciar bolhas de ação.
type ChatReply struct {
	Suggestion     string `json:"suggestion"`
	ActionExecuted bool   `json:"action_executed"`
}
