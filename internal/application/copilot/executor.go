package copilot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gastrohub/resto-copilot/internal/domain/entity"
	"github.com/gastrohub/resto-copilot/internal/domain/repository"
	"github.com/gastrohub/resto-copilot/pkg/logger"
)

// ActionMarker prefixo que o front remove para distinguir bolhas de ação de
// bolhas de conversa.
const ActionMarker = "[ACTION]"

// Outcome resultado estruturado de uma execução de ferramenta.
type Outcome struct {
	Message  string
	Executed bool
}

// Executor despacha uma chamada de ferramenta para o handler correspondente.
// Cada handler valida pré-condições, resolve entidades e faz exatamente um
// insert. Falhas de banco são recuperadas localmente em Outcome{Executed:
// false}; nenhum erro escapa para o orquestrador.
type Executor struct {
	resolver EntityResolver
	txRepo   repository.TransactionRepository
	taskRepo repository.TaskRepository
	movRepo  repository.StockMovementRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewExecutor constrói o executor. now é o relógio do servidor (injetável em
// testes).
func NewExecutor(
	resolver EntityResolver,
	txRepo repository.TransactionRepository,
	taskRepo repository.TaskRepository,
	movRepo repository.StockMovementRepository,
	log *logger.Logger,
) *Executor {
	return &Executor{
		resolver: resolver,
		txRepo:   txRepo,
		taskRepo: taskRepo,
		movRepo:  movRepo,
		log:      log,
		now:      time.Now,
	}
}

// WithClock substitui o relógio (testes).
func (e *Executor) WithClock(now func() time.Time) *Executor {
	e.now = now
	return e
}

// Execute despacha os argumentos tipados para o handler da ferramenta.
// Nome desconhecido devolve a mensagem fixa de função não reconhecida, sem
// nenhuma escrita.
func (e *Executor) Execute(ctx context.Context, userID string, unitID *string, args *ToolArgs) Outcome {
	switch args.Tool {
	case ToolCreateTransaction:
		return e.createTransaction(ctx, userID, unitID, args.Transaction)
	case ToolCreateTask:
		return e.createTask(ctx, userID, unitID, args.Task)
	case ToolRegisterStockMovement:
		return e.registerStockMovement(ctx, userID, unitID, args.Stock)
	default:
		return Outcome{Message: "Função não reconhecida.", Executed: false}
	}
}

// ── create_transaction ────────────────────────────────────────────────────────

// createTransaction resolve as associações de forma independente (falha de
// resolução vira "sem associação", nunca erro), aplica os padrões de data e
// pagamento e insere um lançamento.
func (e *Executor) createTransaction(ctx context.Context, userID string, unitID *string, args *TransactionArgs) Outcome {
	unitScope := derefUnit(unitID)

	var categoryID, accountID, supplierID, employeeID *string
	var categoryName, accountName, supplierName, employeeName string

	if args.CategoryName != "" {
		if id, err := e.resolver.ResolveCategory(ctx, userID, args.CategoryName); err == nil && id != "" {
			categoryID = &id
			categoryName = args.CategoryName
		}
	}
	if args.AccountName != "" {
		if id, err := e.resolver.ResolveAccount(ctx, userID, args.AccountName); err == nil && id != "" {
			accountID = &id
			accountName = args.AccountName
		}
	}
	if args.SupplierName != "" {
		if id, err := e.resolver.ResolveSupplier(ctx, unitScope, args.SupplierName); err == nil && id != "" {
			supplierID = &id
			supplierName = args.SupplierName
		}
	}
	if args.EmployeeName != "" {
		if id, err := e.resolver.ResolveEmployee(ctx, unitScope, args.EmployeeName); err == nil && id != "" {
			employeeID = &id
			employeeName = args.EmployeeName
		}
	}

	now := e.now()
	date := now
	if args.Date != nil {
		date = *args.Date
	}
	isPaid := true
	if args.IsPaid != nil {
		isPaid = *args.IsPaid
	}

	tx := &entity.Transaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		UnitID:      unitID,
		Type:        args.Type,
		Amount:      args.Amount,
		Description: args.Description,
		CategoryID:  categoryID,
		AccountID:   accountID,
		SupplierID:  supplierID,
		EmployeeID:  employeeID,
		Date:        date,
		IsPaid:      isPaid,
		CreatedAt:   now,
	}
	if err := e.txRepo.Create(ctx, tx); err != nil {
		e.log.Error().Err(err).Str("tool", ToolCreateTransaction).Msg("insert de lançamento falhou")
		return Outcome{Message: "Não consegui registrar o lançamento. Tente novamente.", Executed: false}
	}

	var b strings.Builder
	if args.Type == entity.TransactionTypeIncome {
		b.WriteString(ActionMarker + "✅ Receita registrada!\n\n")
	} else {
		b.WriteString(ActionMarker + "✅ Despesa registrada!\n\n")
	}
	fmt.Fprintf(&b, "📝 %s\n", args.Description)
	fmt.Fprintf(&b, "💰 R$ %s\n", args.Amount.StringFixed(2))
	if categoryName != "" {
		fmt.Fprintf(&b, "📁 Categoria: %s\n", categoryName)
	}
	if accountName != "" {
		fmt.Fprintf(&b, "🏦 Conta: %s\n", accountName)
	}
	if supplierName != "" {
		fmt.Fprintf(&b, "🚚 Fornecedor: %s\n", supplierName)
	}
	if employeeName != "" {
		fmt.Fprintf(&b, "👤 Funcionário: %s\n", employeeName)
	}
	fmt.Fprintf(&b, "📅 Data: %s\n", date.Format("02/01/2006"))
	if isPaid {
		b.WriteString("Status: Pago")
	} else {
		b.WriteString("Status: Pendente")
	}
	return Outcome{Message: b.String(), Executed: true}
}

// ── create_task ───────────────────────────────────────────────────────────────

func (e *Executor) createTask(ctx context.Context, userID string, unitID *string, args *TaskArgs) Outcome {
	now := e.now()
	date := now
	if args.Date != nil {
		date = *args.Date
	}
	period := normalizePeriod(args.Period)
	priority := args.Priority
	if priority == "" {
		priority = entity.TaskPriorityMedium
	}

	task := &entity.Task{
		ID:        uuid.New().String(),
		UserID:    userID,
		UnitID:    unitID,
		Title:     args.Title,
		Date:      date,
		Period:    period,
		Priority:  priority,
		CreatedAt: now,
	}
	if args.Notes != "" {
		task.Notes = &args.Notes
	}
	if args.DueTime != "" {
		task.DueTime = &args.DueTime
	}
	if err := e.taskRepo.Create(ctx, task); err != nil {
		e.log.Error().Err(err).Str("tool", ToolCreateTask).Msg("insert de tarefa falhou")
		return Outcome{Message: "Não consegui criar a tarefa. Tente novamente.", Executed: false}
	}

	var b strings.Builder
	b.WriteString(ActionMarker + "✅ Tarefa criada!\n\n")
	fmt.Fprintf(&b, "📝 %s\n", args.Title)
	fmt.Fprintf(&b, "📅 Data: %s\n", date.Format("02/01/2006"))
	fmt.Fprintf(&b, "🕐 Período: %s\n", periodLabel(period))
	fmt.Fprintf(&b, "⭐ Prioridade: %s", priorityLabel(priority))
	if args.DueTime != "" {
		fmt.Fprintf(&b, "\n⏰ Horário: %s", args.DueTime)
	}
	if args.Notes != "" {
		fmt.Fprintf(&b, "\n🗒️ Obs: %s", args.Notes)
	}
	return Outcome{Message: b.String(), Executed: true}
}

// normalizePeriod converte o vocabulário em português (com ou sem acento)
// para o conjunto canônico; valores já canônicos passam inalterados.
func normalizePeriod(period string) string {
	switch strings.ToLower(strings.TrimSpace(period)) {
	case "manha", "manhã":
		return entity.TaskPeriodMorning
	case "tarde":
		return entity.TaskPeriodAfternoon
	case "noite":
		return entity.TaskPeriodEvening
	case entity.TaskPeriodMorning, entity.TaskPeriodAfternoon, entity.TaskPeriodEvening:
		return strings.ToLower(strings.TrimSpace(period))
	default:
		return entity.TaskPeriodMorning
	}
}

func periodLabel(period string) string {
	switch period {
	case entity.TaskPeriodAfternoon:
		return "Tarde"
	case entity.TaskPeriodEvening:
		return "Noite"
	default:
		return "Manhã"
	}
}

func priorityLabel(priority string) string {
	switch priority {
	case entity.TaskPriorityLow:
		return "Baixa"
	case entity.TaskPriorityHigh:
		return "Alta"
	case entity.TaskPriorityUrgent:
		return "Urgente"
	default:
		return "Média"
	}
}

// ── register_stock_movement ───────────────────────────────────────────────────

// registerStockMovement exige item existente e, para saída, saldo suficiente.
// O saldo projetado entra só na mensagem; a consolidação autoritativa do
// estoque é do banco (trigger de movimentações).
func (e *Executor) registerStockMovement(ctx context.Context, userID string, unitID *string, args *StockArgs) Outcome {
	unitScope := derefUnit(unitID)

	item, err := e.resolver.ResolveItem(ctx, unitScope, args.ItemName)
	if err != nil {
		e.log.Error().Err(err).Str("tool", ToolRegisterStockMovement).Msg("busca de item falhou")
		return Outcome{Message: "Não consegui consultar o estoque. Tente novamente.", Executed: false}
	}
	if item == nil {
		return Outcome{
			Message:  fmt.Sprintf("Item \"%s\" não encontrado no estoque.", args.ItemName),
			Executed: false,
		}
	}

	if args.Type == entity.MovementTypeOut && args.Quantity.GreaterThan(item.CurrentStock) {
		return Outcome{
			Message: fmt.Sprintf("❌ Estoque insuficiente! Saldo atual de %s: %s %s. Saída solicitada: %s %s.",
				item.Name, item.CurrentStock.String(), item.UnitType, args.Quantity.String(), item.UnitType),
			Executed: false,
		}
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ItemID:    item.ID,
		UserID:    userID,
		UnitID:    unitID,
		Type:      args.Type,
		Quantity:  args.Quantity,
		CreatedAt: e.now(),
	}
	if args.Notes != "" {
		mov.Notes = &args.Notes
	}
	if err := e.movRepo.Create(ctx, mov); err != nil {
		e.log.Error().Err(err).Str("tool", ToolRegisterStockMovement).Msg("insert de movimentação falhou")
		return Outcome{Message: "Não consegui registrar a movimentação. Tente novamente.", Executed: false}
	}

	// Saldo projetado apenas para exibição.
	newStock := item.CurrentStock.Add(args.Quantity)
	verb := "Entrada"
	if args.Type == entity.MovementTypeOut {
		newStock = item.CurrentStock.Sub(args.Quantity)
		verb = "Saída"
	}

	var b strings.Builder
	b.WriteString(ActionMarker + "✅ Movimentação registrada!\n\n")
	fmt.Fprintf(&b, "📦 %s\n", item.Name)
	fmt.Fprintf(&b, "%s de %s %s\n", verb, args.Quantity.String(), item.UnitType)
	fmt.Fprintf(&b, "Estoque: %s → %s %s", item.CurrentStock.String(), newStock.String(), item.UnitType)
	return Outcome{Message: b.String(), Executed: true}
}

func derefUnit(unitID *string) string {
	if unitID == nil {
		return ""
	}
	return *unitID
}
