package copilot

import (
	"context"

	"github.com/gastrohub/resto-copilot/internal/domain/entity"
)

// EntityResolver traduz nomes livres emitidos pelo modelo em IDs concretos,
// sempre dentro do escopo correto: categorias e contas são do usuário;
// fornecedores, funcionários e itens são da unidade.
//
// Contrato de matching: substring case-insensitive sobre a coluna de nome,
// primeiro resultado na ordem natural do banco. Ambiguidade não é exposta ao
// chamador; "sem correspondência" é (="", nil) / (nil, nil), nunca erro.
// A interface existe para que um matcher ranqueado/fuzzy possa substituir o
// first-match sem tocar nos handlers.
type EntityResolver interface {
	ResolveCategory(ctx context.Context, userID, name string) (string, error)
	ResolveAccount(ctx context.Context, userID, name string) (string, error)
	ResolveSupplier(ctx context.Context, unitID, name string) (string, error)
	ResolveEmployee(ctx context.Context, unitID, name string) (string, error)

	// ResolveItem devolve o item completo porque o executor precisa do saldo
	// atual para a pré-condição de saída.
	ResolveItem(ctx context.Context, unitID, name string) (*entity.InventoryItem, error)
}
