package repository

import (
	"context"

	"github.com/gastrohub/resto-copilot/internal/domain/entity"
)

// Portas de escrita usadas pelo executor de ferramentas do copiloto.
// Cada ferramenta realiza exatamente um insert; não há update nem delete
// neste serviço (correções são ação administrativa em outro lugar do sistema).

// TransactionRepository persistência de lançamentos financeiros.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
}

// TaskRepository persistência de tarefas.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
}

// StockMovementRepository persistência de movimentações de estoque.
type StockMovementRepository interface {
	Create(ctx context.Context, mov *entity.StockMovement) error
}
