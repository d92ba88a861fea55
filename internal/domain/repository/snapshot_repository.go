package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Resultados crus das consultas do snapshot operacional.
// O banco os produz; o use case os formata em texto para o prompt.

// PendingExpenseResult despesa em aberto (não paga).
type PendingExpenseResult struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time
}

// RecentTransactionResult lançamento dos últimos dias.
type RecentTransactionResult struct {
	Type        string // income | expense
	Description string
	Amount      decimal.Decimal
	Date        time.Time
}

// LowStockResult item com saldo igual ou abaixo do mínimo.
type LowStockResult struct {
	Name         string
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	UnitType     string
}

// PendingOrderResult pedido de compra aguardando recebimento.
type PendingOrderResult struct {
	SupplierName string
	Total        decimal.Decimal
	ExpectedAt   *time.Time
}

// EmployeeResult funcionário ativo da unidade.
type EmployeeResult struct {
	Name string
	Role string
}

// TaskResult tarefa do dia.
type TaskResult struct {
	Title    string
	Period   string
	Priority string
	Done     bool
}

// ChecklistProgressResult progresso de um checklist do dia por tipo
// (abertura/fechamento).
type ChecklistProgressResult struct {
	Type  string // abertura | fechamento
	Total int
	Done  int
}

// UpcomingInvoiceResult boleto/fatura com vencimento próximo.
type UpcomingInvoiceResult struct {
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
}

// BudgetStatusResult orçamento mensal de uma categoria e o gasto acumulado.
type BudgetStatusResult struct {
	CategoryName string
	Limit        decimal.Decimal
	Spent        decimal.Decimal
}

// SnapshotRepository define as consultas read-only do agregador de contexto.
// Todas recebem o escopo da unidade e, quando a tabela é por usuário, o userID.
// As implementações não modificam dados.
type SnapshotRepository interface {
	// MonthlyTotals soma receitas e despesas pagas no intervalo dado.
	MonthlyTotals(ctx context.Context, userID, unitID string, from, to time.Time) (income, expense decimal.Decimal, err error)

	// PendingExpenses lista despesas não pagas do mês corrente.
	PendingExpenses(ctx context.Context, userID, unitID string) ([]PendingExpenseResult, error)

	// RecentTransactions lista lançamentos desde a data dada (janela de 7 dias).
	RecentTransactions(ctx context.Context, userID, unitID string, since time.Time) ([]RecentTransactionResult, error)

	// LowStockItems lista itens com current_stock <= min_stock.
	LowStockItems(ctx context.Context, unitID string) ([]LowStockResult, error)

	// PendingOrders lista pedidos de compra pendentes da unidade.
	PendingOrders(ctx context.Context, unitID string) ([]PendingOrderResult, error)

	// Employees lista funcionários ativos da unidade.
	Employees(ctx context.Context, unitID string) ([]EmployeeResult, error)

	// TodayTasks lista as tarefas do dia.
	TodayTasks(ctx context.Context, userID, unitID string, day time.Time) ([]TaskResult, error)

	// ChecklistProgress devolve o progresso dos checklists do dia por tipo.
	ChecklistProgress(ctx context.Context, unitID string, day time.Time) ([]ChecklistProgressResult, error)

	// UpcomingInvoices lista faturas com vencimento no intervalo (próximos 7 dias).
	UpcomingInvoices(ctx context.Context, userID, unitID string, from, to time.Time) ([]UpcomingInvoiceResult, error)

	// BudgetStatus devolve orçamento vs. gasto por categoria no mês corrente.
	BudgetStatus(ctx context.Context, userID, unitID string, from, to time.Time) ([]BudgetStatusResult, error)
}
