package postgres

import (
	"context"
	"fmt"

	"github.com/gastrohub/resto-copilot/internal/domain/entity"
	"github.com/gastrohub/resto-copilot/internal/domain/repository"
)

var (
	_ repository.TransactionRepository   = (*TransactionRepo)(nil)
	_ repository.TaskRepository          = (*TaskRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
)

// TransactionRepo persistência de lançamentos financeiros.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository constrói o adaptador.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create insere um lançamento.
func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, unit_id, type, amount, description,
			category_id, account_id, supplier_id, employee_id, date, is_paid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.UserID, tx.UnitID, tx.Type, tx.Amount, tx.Description,
		tx.CategoryID, tx.AccountID, tx.SupplierID, tx.EmployeeID,
		tx.Date, tx.IsPaid, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// TaskRepo persistência de tarefas.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository constrói o adaptador.
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

// Create insere uma tarefa.
func (r *TaskRepo) Create(ctx context.Context, task *entity.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, unit_id, title, date, period, priority,
			notes, due_time, done, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		task.ID, task.UserID, task.UnitID, task.Title, task.Date, task.Period,
		task.Priority, task.Notes, task.DueTime, task.Done, task.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// StockMovementRepo persistência de movimentações de estoque. O saldo do item
// é consolidado por trigger no banco; aqui só entra a movimentação.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create insere uma movimentação.
func (r *StockMovementRepo) Create(ctx context.Context, mov *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, item_id, user_id, unit_id, type, quantity, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		mov.ID, mov.ItemID, mov.UserID, mov.UnitID, mov.Type, mov.Quantity, mov.Notes, mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}
