// Package snapshot monta o snapshot operacional de uma unidade para um turno
// do copiloto: consultas read-only disparadas em paralelo e formatadas em
// texto de prompt + contadores para badges da UI.
package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gastrohub/resto-copilot/internal/application/dto"
	"github.com/gastrohub/resto-copilot/internal/domain"
	"github.com/gastrohub/resto-copilot/internal/domain/repository"
)

// Janelas de tempo do snapshot.
const (
	recentWindow   = 7 * 24 * time.Hour // lançamentos recentes
	upcomingWindow = 7 * 24 * time.Hour // faturas a vencer
)

// UseCase agrega o estado operacional da unidade.
//
// Fonte de dados: SnapshotRepository (consultas read-only) após a checagem de
// associação em MembershipRepository. Nenhum resultado é cacheado: o frescor
// é responsabilidade do chamador, que reinvoca a cada turno.
type UseCase struct {
	membership repository.MembershipRepository
	reads      repository.SnapshotRepository
	now        func() time.Time
}

// NewUseCase constrói o caso de uso.
func NewUseCase(membership repository.MembershipRepository, reads repository.SnapshotRepository) *UseCase {
	return &UseCase{membership: membership, reads: reads, now: time.Now}
}

// WithClock substitui o relógio (testes).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// queryResults resultados crus do fan-out. Cada goroutine escreve apenas os
// seus campos; a sincronização é o WaitGroup.
type queryResults struct {
	income, expense decimal.Decimal
	incomeErr       error

	pending    []repository.PendingExpenseResult
	pendingErr error

	recent    []repository.RecentTransactionResult
	recentErr error

	lowStock    []repository.LowStockResult
	lowStockErr error

	orders    []repository.PendingOrderResult
	ordersErr error

	employees    []repository.EmployeeResult
	employeesErr error

	tasks    []repository.TaskResult
	tasksErr error

	checklists    []repository.ChecklistProgressResult
	checklistsErr error

	invoices    []repository.UpcomingInvoiceResult
	invoicesErr error

	budgets    []repository.BudgetStatusResult
	budgetsErr error
}

// Build valida a associação do usuário com a unidade e dispara o lote fixo de
// consultas em paralelo. Nenhum resultado é consumido antes de todo o lote
// terminar. Usuário sem associação devolve domain.ErrForbidden sem executar
// nenhuma consulta downstream.
func (uc *UseCase) Build(ctx context.Context, userID, unitID string) (*dto.ContextResponse, error) {
	if unitID == "" {
		return nil, domain.ErrInvalidInput
	}

	ok, err := uc.membership.IsMember(ctx, userID, unitID)
	if err != nil {
		return nil, fmt.Errorf("snapshot: checar associação: %w", err)
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	now := uc.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	var res queryResults
	var wg sync.WaitGroup
	wg.Add(10)

	go func() {
		defer wg.Done()
		res.income, res.expense, res.incomeErr = uc.reads.MonthlyTotals(ctx, userID, unitID, monthStart, dayEnd)
	}()
	go func() {
		defer wg.Done()
		res.pending, res.pendingErr = uc.reads.PendingExpenses(ctx, userID, unitID)
	}()
	go func() {
		defer wg.Done()
		res.recent, res.recentErr = uc.reads.RecentTransactions(ctx, userID, unitID, now.Add(-recentWindow))
	}()
	go func() {
		defer wg.Done()
		res.lowStock, res.lowStockErr = uc.reads.LowStockItems(ctx, unitID)
	}()
	go func() {
		defer wg.Done()
		res.orders, res.ordersErr = uc.reads.PendingOrders(ctx, unitID)
	}()
	go func() {
		defer wg.Done()
		res.employees, res.employeesErr = uc.reads.Employees(ctx, unitID)
	}()
	go func() {
		defer wg.Done()
		res.tasks, res.tasksErr = uc.reads.TodayTasks(ctx, userID, unitID, dayStart)
	}()
	go func() {
		defer wg.Done()
		res.checklists, res.checklistsErr = uc.reads.ChecklistProgress(ctx, unitID, dayStart)
	}()
	go func() {
		defer wg.Done()
		res.invoices, res.invoicesErr = uc.reads.UpcomingInvoices(ctx, userID, unitID, dayStart, now.Add(upcomingWindow))
	}()
	go func() {
		defer wg.Done()
		res.budgets, res.budgetsErr = uc.reads.BudgetStatus(ctx, userID, unitID, monthStart, dayEnd)
	}()

	wg.Wait()

	for _, pair := range []struct {
		name string
		err  error
	}{
		{"totais do mês", res.incomeErr},
		{"despesas pendentes", res.pendingErr},
		{"lançamentos recentes", res.recentErr},
		{"estoque baixo", res.lowStockErr},
		{"pedidos pendentes", res.ordersErr},
		{"funcionários", res.employeesErr},
		{"tarefas de hoje", res.tasksErr},
		{"checklists", res.checklistsErr},
		{"faturas a vencer", res.invoicesErr},
		{"orçamentos", res.budgetsErr},
	} {
		if pair.err != nil {
			return nil, fmt.Errorf("snapshot: %s: %w", pair.name, pair.err)
		}
	}

	return buildResponse(&res), nil
}
