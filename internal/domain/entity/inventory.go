package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimentação de estoque. Os valores em português são os que o
// modelo de linguagem emite e os que a tabela de movimentações armazena.
const (
	MovementTypeIn  = "entrada"
	MovementTypeOut = "saida"
)

// InventoryItem representa um item de estoque de uma unidade.
// CurrentStock é o saldo consolidado mantido pelo banco via trigger de
// movimentações; este serviço apenas o lê.
type InventoryItem struct {
	ID           string
	UnitID       *string
	Name         string
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	UnitType     string // kg, un, l, cx...
	CreatedAt    time.Time
}

// StockMovement representa uma entrada ou saída de estoque de um item.
// O saldo do item não é atualizado aqui: a consolidação é responsabilidade
// do banco (trigger sobre a tabela de movimentações).
type StockMovement struct {
	ID        string
	ItemID    string
	UserID    string
	UnitID    *string
	Type      string // entrada | saida
	Quantity  decimal.Decimal
	Notes     *string
	CreatedAt time.Time
}
