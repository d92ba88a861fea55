package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gastrohub/resto-copilot/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo implementa as consultas read-only do agregador de contexto.
// Toda consulta carrega o filtro de unidade: a credencial do pool é de nível
// de serviço e não aplica row-level security.
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository constrói o adaptador.
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

// MonthlyTotals soma receitas e despesas pagas do período.
// COALESCE devolve zero quando não há lançamentos.
func (r *SnapshotRepo) MonthlyTotals(ctx context.Context, userID, unitID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM transactions
		WHERE user_id = $1 AND unit_id = $2 AND is_paid AND date BETWEEN $3 AND $4`
	var income, expense decimal.Decimal
	err := r.q.QueryRow(ctx, query, userID, unitID, from, to).Scan(&income, &expense)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("totais do mês: %w", err)
	}
	return income, expense, nil
}

// PendingExpenses lista despesas não pagas do mês corrente.
func (r *SnapshotRepo) PendingExpenses(ctx context.Context, userID, unitID string) ([]repository.PendingExpenseResult, error) {
	query := `
		SELECT description, amount, date
		FROM transactions
		WHERE user_id = $1 AND unit_id = $2 AND type = 'expense' AND NOT is_paid
		  AND date >= date_trunc('month', now())
		ORDER BY date
		LIMIT 20`
	rows, err := r.q.Query(ctx, query, userID, unitID)
	if err != nil {
		return nil, fmt.Errorf("despesas pendentes: %w", err)
	}
	defer rows.Close()

	var list []repository.PendingExpenseResult
	for rows.Next() {
		var p repository.PendingExpenseResult
		if err := rows.Scan(&p.Description, &p.Amount, &p.Date); err != nil {
			return nil, fmt.Errorf("scan despesa pendente: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// RecentTransactions lista lançamentos desde a data dada.
func (r *SnapshotRepo) RecentTransactions(ctx context.Context, userID, unitID string, since time.Time) ([]repository.RecentTransactionResult, error) {
	query := `
		SELECT type, description, amount, date
		FROM transactions
		WHERE user_id = $1 AND unit_id = $2 AND date >= $3
		ORDER BY date DESC
		LIMIT 10`
	rows, err := r.q.Query(ctx, query, userID, unitID, since)
	if err != nil {
		return nil, fmt.Errorf("lançamentos recentes: %w", err)
	}
	defer rows.Close()

	var list []repository.RecentTransactionResult
	for rows.Next() {
		var t repository.RecentTransactionResult
		if err := rows.Scan(&t.Type, &t.Description, &t.Amount, &t.Date); err != nil {
			return nil, fmt.Errorf("scan lançamento: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// LowStockItems lista itens com saldo igual ou abaixo do mínimo.
func (r *SnapshotRepo) LowStockItems(ctx context.Context, unitID string) ([]repository.LowStockResult, error) {
	query := `
		SELECT name, current_stock, min_stock, unit_type
		FROM inventory_items
		WHERE unit_id = $1 AND current_stock <= min_stock
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, unitID)
	if err != nil {
		return nil, fmt.Errorf("estoque baixo: %w", err)
	}
	defer rows.Close()

	var list []repository.LowStockResult
	for rows.Next() {
		var it repository.LowStockResult
		if err := rows.Scan(&it.Name, &it.CurrentStock, &it.MinStock, &it.UnitType); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// PendingOrders lista pedidos de compra pendentes com o nome do fornecedor.
func (r *SnapshotRepo) PendingOrders(ctx context.Context, unitID string) ([]repository.PendingOrderResult, error) {
	query := `
		SELECT s.name, po.total, po.expected_at
		FROM purchase_orders po
		JOIN suppliers s ON s.id = po.supplier_id
		WHERE po.unit_id = $1 AND po.status = 'pending'
		ORDER BY po.created_at`
	rows, err := r.q.Query(ctx, query, unitID)
	if err != nil {
		return nil, fmt.Errorf("pedidos pendentes: %w", err)
	}
	defer rows.Close()

	var list []repository.PendingOrderResult
	for rows.Next() {
		var o repository.PendingOrderResult
		if err := rows.Scan(&o.SupplierName, &o.Total, &o.ExpectedAt); err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Employees lista funcionários ativos da unidade.
func (r *SnapshotRepo) Employees(ctx context.Context, unitID string) ([]repository.EmployeeResult, error) {
	query := `
		SELECT name, COALESCE(role, '')
		FROM employees
		WHERE unit_id = $1 AND active
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, unitID)
	if err != nil {
		return nil, fmt.Errorf("funcionários: %w", err)
	}
	defer rows.Close()

	var list []repository.EmployeeResult
	for rows.Next() {
		var e repository.EmployeeResult
		if err := rows.Scan(&e.Name, &e.Role); err != nil {
			return nil, fmt.Errorf("scan funcionário: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// TodayTasks lista as tarefas do dia da unidade (ou pessoais, sem unidade).
func (r *SnapshotRepo) TodayTasks(ctx context.Context, userID, unitID string, day time.Time) ([]repository.TaskResult, error) {
	query := `
		SELECT title, period, priority, done
		FROM tasks
		WHERE (unit_id = $2 OR (unit_id IS NULL AND user_id = $1))
		  AND date::date = $3::date
		ORDER BY CASE period
			WHEN 'morning' THEN 1 WHEN 'afternoon' THEN 2 ELSE 3 END`
	rows, err := r.q.Query(ctx, query, userID, unitID, day)
	if err != nil {
		return nil, fmt.Errorf("tarefas de hoje: %w", err)
	}
	defer rows.Close()

	var list []repository.TaskResult
	for rows.Next() {
		var t repository.TaskResult
		if err := rows.Scan(&t.Title, &t.Period, &t.Priority, &t.Done); err != nil {
			return nil, fmt.Errorf("scan tarefa: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// ChecklistProgress progresso dos checklists do dia por tipo (abertura/fechamento).
func (r *SnapshotRepo) ChecklistProgress(ctx context.Context, unitID string, day time.Time) ([]repository.ChecklistProgressResult, error) {
	query := `
		SELECT ci.type, COUNT(*), COUNT(cc.item_id)
		FROM checklist_items ci
		LEFT JOIN checklist_completions cc
			ON cc.item_id = ci.id AND cc.completed_on = $2::date
		WHERE ci.unit_id = $1 AND ci.active
		GROUP BY ci.type
		ORDER BY ci.type`
	rows, err := r.q.Query(ctx, query, unitID, day)
	if err != nil {
		return nil, fmt.Errorf("checklists: %w", err)
	}
	defer rows.Close()

	var list []repository.ChecklistProgressResult
	for rows.Next() {
		var p repository.ChecklistProgressResult
		if err := rows.Scan(&p.Type, &p.Total, &p.Done); err != nil {
			return nil, fmt.Errorf("scan checklist: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpcomingInvoices faturas não pagas vencendo no intervalo.
func (r *SnapshotRepo) UpcomingInvoices(ctx context.Context, userID, unitID string, from, to time.Time) ([]repository.UpcomingInvoiceResult, error) {
	query := `
		SELECT description, amount, due_date
		FROM invoices
		WHERE user_id = $1 AND unit_id = $2 AND NOT is_paid
		  AND due_date BETWEEN $3 AND $4
		ORDER BY due_date`
	rows, err := r.q.Query(ctx, query, userID, unitID, from, to)
	if err != nil {
		return nil, fmt.Errorf("faturas a vencer: %w", err)
	}
	defer rows.Close()

	var list []repository.UpcomingInvoiceResult
	for rows.Next() {
		var inv repository.UpcomingInvoiceResult
		if err := rows.Scan(&inv.Description, &inv.Amount, &inv.DueDate); err != nil {
			return nil, fmt.Errorf("scan fatura: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// BudgetStatus orçamento vs. gasto por categoria no período.
func (r *SnapshotRepo) BudgetStatus(ctx context.Context, userID, unitID string, from, to time.Time) ([]repository.BudgetStatusResult, error) {
	query := `
		SELECT c.name, b.month_limit,
			COALESCE((
				SELECT SUM(t.amount) FROM transactions t
				WHERE t.category_id = b.category_id AND t.type = 'expense'
				  AND t.user_id = $1 AND t.unit_id = $2
				  AND t.date BETWEEN $3 AND $4
			), 0)
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.user_id = $1 AND b.unit_id = $2
		ORDER BY c.name`
	rows, err := r.q.Query(ctx, query, userID, unitID, from, to)
	if err != nil {
		return nil, fmt.Errorf("orçamentos: %w", err)
	}
	defer rows.Close()

	var list []repository.BudgetStatusResult
	for rows.Next() {
		var b repository.BudgetStatusResult
		if err := rows.Scan(&b.CategoryName, &b.Limit, &b.Spent); err != nil {
			return nil, fmt.Errorf("scan orçamento: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
