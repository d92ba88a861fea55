package snapshot

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gastrohub/resto-copilot/internal/application/dto"
	"github.com/gastrohub/resto-copilot/internal/domain/entity"
	"github.com/gastrohub/resto-copilot/internal/domain/repository"
)

// buildResponse converte os resultados crus em linhas de prompt e contadores.
// Ambas as saídas são funções determinísticas dos resultados das consultas.
func buildResponse(res *queryResults) *dto.ContextResponse {
	ctx := dto.CopilotContext{
		Finance:    financeLines(res),
		Inventory:  inventoryLines(res.lowStock),
		Orders:     orderLines(res.orders),
		Team:       teamLines(res.employees),
		Tasks:      taskLines(res.tasks),
		Checklists: checklistLines(res.checklists),
		Invoices:   invoiceLines(res.invoices),
		Budget:     budgetLines(res.budgets),
	}
	stats := dto.ContextStats{
		PendingExpenses:  len(res.pending),
		LowStockItems:    len(res.lowStock),
		PendingOrders:    len(res.orders),
		TodayTasks:       len(res.tasks),
		UpcomingInvoices: len(res.invoices),
	}
	return &dto.ContextResponse{Context: ctx, ContextStats: stats}
}

func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

func financeLines(res *queryResults) []string {
	lines := []string{
		fmt.Sprintf("Receitas do mês (pagas): %s", money(res.income)),
		fmt.Sprintf("Despesas do mês (pagas): %s", money(res.expense)),
		fmt.Sprintf("Saldo do mês: %s", money(res.income.Sub(res.expense))),
	}
	if len(res.pending) > 0 {
		total := decimal.Zero
		for _, p := range res.pending {
			total = total.Add(p.Amount)
		}
		lines = append(lines, fmt.Sprintf("Despesas pendentes: %d somando %s", len(res.pending), money(total)))
		for _, p := range res.pending {
			lines = append(lines, fmt.Sprintf("Pendente: %s — %s (%s)", p.Description, money(p.Amount), p.Date.Format("02/01")))
		}
	}
	for _, t := range res.recent {
		kind := "despesa"
		if t.Type == entity.TransactionTypeIncome {
			kind = "receita"
		}
		lines = append(lines, fmt.Sprintf("%s %s: %s — %s", t.Date.Format("02/01"), kind, t.Description, money(t.Amount)))
	}
	return lines
}

func inventoryLines(items []repository.LowStockResult) []string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%s: %s %s (mínimo %s)",
			it.Name, it.CurrentStock.String(), it.UnitType, it.MinStock.String()))
	}
	return lines
}

func orderLines(orders []repository.PendingOrderResult) []string {
	lines := make([]string, 0, len(orders))
	for _, o := range orders {
		when := "sem previsão"
		if o.ExpectedAt != nil {
			when = "previsto " + o.ExpectedAt.Format("02/01")
		}
		lines = append(lines, fmt.Sprintf("%s — %s (%s)", o.SupplierName, money(o.Total), when))
	}
	return lines
}

func teamLines(employees []repository.EmployeeResult) []string {
	lines := make([]string, 0, len(employees))
	for _, e := range employees {
		if e.Role != "" {
			lines = append(lines, fmt.Sprintf("%s (%s)", e.Name, e.Role))
			continue
		}
		lines = append(lines, e.Name)
	}
	return lines
}

func taskLines(tasks []repository.TaskResult) []string {
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		status := ""
		if t.Done {
			status = " — feita"
		}
		lines = append(lines, fmt.Sprintf("[%s] %s (%s)%s", periodShort(t.Period), t.Title, t.Priority, status))
	}
	return lines
}

func periodShort(period string) string {
	switch period {
	case entity.TaskPeriodAfternoon:
		return "tarde"
	case entity.TaskPeriodEvening:
		return "noite"
	default:
		return "manhã"
	}
}

func checklistLines(progress []repository.ChecklistProgressResult) []string {
	lines := make([]string, 0, len(progress))
	for _, p := range progress {
		pct := 0
		if p.Total > 0 {
			pct = p.Done * 100 / p.Total
		}
		label := "Abertura"
		if p.Type == "fechamento" {
			label = "Fechamento"
		}
		lines = append(lines, fmt.Sprintf("%s: %d/%d (%d%%)", label, p.Done, p.Total, pct))
	}
	return lines
}

func invoiceLines(invoices []repository.UpcomingInvoiceResult) []string {
	lines := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		lines = append(lines, fmt.Sprintf("%s — %s vence %s", inv.Description, money(inv.Amount), inv.DueDate.Format("02/01")))
	}
	return lines
}

func budgetLines(budgets []repository.BudgetStatusResult) []string {
	lines := make([]string, 0, len(budgets))
	for _, b := range budgets {
		pct := 0
		if b.Limit.IsPositive() {
			pct = int(b.Spent.Div(b.Limit).Mul(decimal.NewFromInt(100)).IntPart())
		}
		lines = append(lines, fmt.Sprintf("%s: %s de %s (%d%%)", b.CategoryName, money(b.Spent), money(b.Limit), pct))
	}
	return lines
}
