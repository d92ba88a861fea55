package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transação financeira.
const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// Transaction representa um lançamento financeiro (receita ou despesa) de uma unidade.
// As associações (categoria, conta, fornecedor, funcionário) são opcionais:
// um lançamento sem categoria continua válido.
type Transaction struct {
	ID          string
	UserID      string
	UnitID      *string // nil = lançamento pessoal, sem unidade
	Type        string  // income | expense
	Amount      decimal.Decimal
	Description string
	CategoryID  *string
	AccountID   *string
	SupplierID  *string
	EmployeeID  *string
	Date        time.Time
	IsPaid      bool
	CreatedAt   time.Time
}
