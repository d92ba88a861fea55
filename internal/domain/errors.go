package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrInvalidInput = errors.New("entrada inválida")
	ErrForbidden    = errors.New("acesso negado")
)

// Erros do serviço de linguagem (classificados pelo adaptador de IA).
var (
	ErrLLMNotConfigured = errors.New("serviço de IA não configurado")
	ErrLLMRateLimited   = errors.New("limite de requisições do serviço de IA atingido")
	ErrLLMQuota         = errors.New("créditos do serviço de IA esgotados")
)
