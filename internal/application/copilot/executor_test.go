package copilot_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastrohub/resto-copilot/internal/application/copilot"
	"github.com/gastrohub/resto-copilot/internal/domain/entity"
	"github.com/gastrohub/resto-copilot/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes compartilhados pelos testes do pacote
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID = "00000000-0000-0000-0000-000000000001"
	testUnitID = "00000000-0000-0000-0000-000000000002"
)

// fixedNow relógio fixo para datas determinísticas nas mensagens.
var fixedNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

// fakeResolver devolve IDs configurados por nome; nomes ausentes devolvem
// "sem correspondência" como o contrato do resolver manda.
type fakeResolver struct {
	categories map[string]string
	accounts   map[string]string
	suppliers  map[string]string
	employees  map[string]string
	items      map[string]*entity.InventoryItem
	itemErr    error
}

func (f *fakeResolver) ResolveCategory(_ context.Context, _, name string) (string, error) {
	return f.categories[name], nil
}

func (f *fakeResolver) ResolveAccount(_ context.Context, _, name string) (string, error) {
	return f.accounts[name], nil
}

func (f *fakeResolver) ResolveSupplier(_ context.Context, _, name string) (string, error) {
	return f.suppliers[name], nil
}

func (f *fakeResolver) ResolveEmployee(_ context.Context, _, name string) (string, error) {
	return f.employees[name], nil
}

func (f *fakeResolver) ResolveItem(_ context.Context, _, name string) (*entity.InventoryItem, error) {
	if f.itemErr != nil {
		return nil, f.itemErr
	}
	return f.items[name], nil
}

type fakeTxRepo struct {
	created []*entity.Transaction
	err     error
}

func (f *fakeTxRepo) Create(_ context.Context, tx *entity.Transaction) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, tx)
	return nil
}

type fakeTaskRepo struct {
	created []*entity.Task
	err     error
}

func (f *fakeTaskRepo) Create(_ context.Context, task *entity.Task) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, task)
	return nil
}

type fakeMovRepo struct {
	created []*entity.StockMovement
	err     error
}

func (f *fakeMovRepo) Create(_ context.Context, mov *entity.StockMovement) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, mov)
	return nil
}

type executorFixture struct {
	resolver *fakeResolver
	txRepo   *fakeTxRepo
	taskRepo *fakeTaskRepo
	movRepo  *fakeMovRepo
	exec     *copilot.Executor
}

func newExecutorFixture() *executorFixture {
	f := &executorFixture{
		resolver: &fakeResolver{},
		txRepo:   &fakeTxRepo{},
		taskRepo: &fakeTaskRepo{},
		movRepo:  &fakeMovRepo{},
	}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	f.exec = copilot.NewExecutor(f.resolver, f.txRepo, f.taskRepo, f.movRepo, log).
		WithClock(func() time.Time { return fixedNow })
	return f
}

func unitPtr() *string {
	u := testUnitID
	return &u
}

// ──────────────────────────────────────────────────────────────────────────────
// create_transaction
// ──────────────────────────────────────────────────────────────────────────────

// Despesa com categoria e conta resolvidas: insert com associações e mensagem
// de confirmação completa.
func TestExecutor_CriaDespesaComAssociacoes(t *testing.T) {
	f := newExecutorFixture()
	f.resolver.categories = map[string]string{"Insumos": "cat-1"}
	f.resolver.accounts = map[string]string{"Caixa": "acc-1"}

	args, err := copilot.ParseToolArgs(copilot.ToolCreateTransaction,
		`{"type":"expense","amount":45.90,"description":"Compra de tomates","category_name":"Insumos","account_name":"Caixa"}`)
	require.NoError(t, err)

	out := f.exec.Execute(context.Background(), testUserID, unitPtr(), args)

	assert.True(t, out.Executed)
	require.Len(t, f.txRepo.created, 1)
	tx := f.txRepo.created[0]
	assert.Equal(t, entity.TransactionTypeExpense, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("45.90")))
	require.NotNil(t, tx.CategoryID)
	assert.Equal(t, "cat-1", *tx.CategoryID)
	require.NotNil(t, tx.AccountID)
	assert.Equal(t, "acc-1", *tx.AccountID)

	assert.True(t, len(out.Message) > len(copilot.ActionMarker))
	assert.Equal(t, copilot.ActionMarker, out.Message[:len(copilot.ActionMarker)],
		"confirmação de ação deve vir com o prefixo que o front remove")
	assert.Contains(t, out.Message, "✅ Despesa registrada!")
	assert.Contains(t, out.Message, "💰 R$ 45.90")
	assert.Contains(t, out.Message, "📁 Categoria: Insumos")
	assert.Contains(t, out.Message, "🏦 Conta: Caixa")
	assert.Contains(t, out.Message, "Status: Pago")
}

// Sem data nos argumentos, o lançamento usa o relógio do servidor.
func TestExecutor_TransacaoSemData_UsaHoje(t *testing.T) {
	f := newExecutorFixture()

	args, err := copilot.ParseToolArgs(copilot.ToolCreateTransaction,
		`{"type":"income","amount":"120.00","description":"Venda avulsa"}`)
	require.NoError(t, err)

	out := f.exec.Execute(context.Background(), testUserID, unitPtr(), args)

	assert.True(t, out.Executed)
	require.Len(t, f.txRepo.created, 1)
	tx := f.txRepo.created[0]
	assert.Equal(t, fixedNow, tx.Date)
	assert.True(t, tx.IsPaid, "is_paid ausente deve assumir pago")
	assert.Contains(t, out.Message, "✅ Receita registrada!")
	assert.Contains(t, out.Message, "📅 Data: 15/03/2026")
}

// Nome de categoria sem correspondência: o lançamento entra sem associação,
// nunca falha por causa da resolução.
func TestExecutor_CategoriaNaoEncontrada_RegistraSemAssociacao(t *testing.T) {
	f := newExecutorFixture()

	args, err := copilot.ParseToolArgs(copilot.ToolCreateTransaction,
		`{"type":"expense","amount":30,"description":"Gelo","category_name":"Inexistente"}`)
	require.NoError(t, err)

	out := f.exec.Execute(context.Background(), testUserID, unitPtr(), args)

	assert.True(t, out.Executed)
	require.Len(t, f.txRepo.created, 1)
	assert.Nil(t, f.txRepo.created[0].CategoryID)
	assert.NotContains(t, out.Message, "📁 Categoria")
}

// Data explícita e is_paid false aparecem corretamente na confirmação.
func TestExecutor_TransacaoPendenteComData(t *testing.T) {
	f := newExecutorFixture()

	args, err := copilot.ParseToolArgs(copilot.ToolCreateTransaction,
		`{"type":"expense","amount":800,"description":"Aluguel","date":"2026-04-05","is_paid":false}`)
	require.NoError(t, err)

	out := f.exec.Execute(context.Background(), testUserID, unitPtr(), args)

	require.Len(t, f.txRepo.created, 1)
	assert.False(t, f.txRepo.created[0].IsPaid)
	assert.Contains(t, out.Message, "📅 Data: 05/04/2026")
	assert.Contains(t, out.Message, "Status: Pendente")
}

// Falha do banco vira mensagem de conversa, não erro: Executed false e texto
// pedindo nova tentativa.
func TestExecutor_InsertFalha_RespondeSemExecutar(t *testing.T) {
	f := newExecutorFixture()
	f.txRepo.err = errors.New("conexão perdida")

	args, err := copilot.ParseToolArgs(copilot.ToolCreateTransaction,
		`{"type":"expense","amount":10,"description":"Teste"}`)
	require.NoError(t, err)

	out := f.exec.Execute(context.Background(), testUserID, unitPtr(), args)

	assert.False(t, out.Executed)
	assert.Contains(t, out.Message, "Não consegui registrar o lançamento")
}

// ──────────────────────────────────────────────────────────────────────────────
// create_task
// ──────────────────────────────────────────────────────────────────────────────

// Período em português com acento é normalizado para o valor canônico antes
// de persistir; o rótulo exibido permanece em português.
func TestExecutor_TarefaPeriodoPortugues_Normaliza(t *testing.T) {
	cases := []struct {
		in        string
		canonical string
		label     string
	}{
		{"manha", entity.TaskPeriodMorning, "Manhã"},
		{"manhã", entity.TaskPeriodMorning, "Manhã"},
		{"tarde", entity.TaskPeriodAfternoon, "Tarde"},
		{"noite", entity.TaskPeriodEvening, "Noite"},
		{"evening", entity.TaskPeriodEvening, "Noite"}, // canônico passa inalterado
		{"", entity.TaskPeriodMorning, "Manhã"},        // padrão
	}

	for _, tc := range cases {
		f := newExecutorFixture()
		args, err := copilot.ParseToolArgs(copilot.ToolCreateTask,
			`{"title":"Conferir câmara fria","period":"`+tc.in+`"}`)
		require.NoError(t, err)

		out := f.exec.Execute(context.Background(), testUserID, unitPtr(), args)

		assert.True(t, out.Executed, "period=%q", tc.in)
		require.Len(t, f.taskRepo.created, 1)
		assert.Equal(t, tc.canonical, f.taskRepo.created[0].Period, "period=%q", tc.in)
		assert.Contains(t, out.Message, "🕐 Período: "+tc.label, "period=%q", tc.in)
	}
}

// Tarefa sem data nem prioridade recebe hoje e prioridade média.
func TestExecutor_TarefaPadroes(t *testing.T) {
	f := newExecutorFixture()

	args, err := copilot.ParseToolArgs(copilot.ToolCreateTask, `{"title":"Ligar pro fornecedor"}`)
	require.NoError(t, err)

	out := f.exec.Execute(context.Background(), testUserID, unitPtr(), args)

	assert.True(t, out.Executed)
	require.Len(t, f.taskRepo.created, 1)
	task := f.taskRepo.created[0]
	assert.Equal(t, fixedNow, task.Date)
	assert.Equal(t, entity.TaskPriorityMedium, task.Priority)
	assert.Contains(t, out.Message, "✅ Tarefa criada!")
	assert.Contains(t, out.Message, "📅 Data: 15/03/2026")
	assert.Contains(t, out.Message, "⭐ Prioridade: Média")
}

// Horário e observações opcionais entram na confirmação quando presentes.
func TestExecutor_TarefaComHorarioEObs(t *testing.T) {
	f := newExecutorFixture()

	args, err := copilot.ParseToolArgs(copilot.ToolCreateTask,
		`{"title":"Receber pedido","priority":"high","due_time":"14:00","notes":"Conferir nota fiscal"}`)
	require.NoError(t, err)

	out := f.exec.Execute(context.Background(), testUserID, unitPtr(), args)

	assert.True(t, out.Executed)
	require.Len(t, f.taskRepo.created, 1)
	task := f.taskRepo.created[0]
	require.NotNil(t, task.DueTime)
	assert.Equal(t, "14:00", *task.DueTime)
	require.NotNil(t, task.Notes)
	assert.Contains(t, out.Message, "⏰ Horário: 14:00")
	assert.Contains(t, out.Message, "🗒️ Obs: Conferir nota fiscal")
	assert.Contains(t, out.Message, "⭐ Prioridade: Alta")
}

// ──────────────────────────────────────────────────────────────────────────────
// register_stock_movement
// ──────────────────────────────────────────────────────────────────────────────

func stockItem(name string, current string) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:           "item-1",
		Name:         name,
		CurrentStock: decimal.RequireFromString(current),
		MinStock:     decimal.RequireFromString("1"),
		UnitType:     "kg",
	}
}

// Saída maior que o saldo atual: recusa com a mensagem de estoque insuficiente
// e nenhuma escrita acontece.
func TestExecutor_SaidaMaiorQueSaldo_Recusa(t *testing.T) {
	f := newExecutorFixture()
	f.resolver.items = map[string]*entity.InventoryItem{"Tomate": stockItem("Tomate", "2")}

	args, err := copilot.ParseToolArgs(copilot.ToolRegisterStockMovement,
		`{"item_name":"Tomate","type":"saida","quantity":5}`)
	require.NoError(t, err)

	out := f.exec.Execute(context.Background(), testUserID, unitPtr(), args)

	assert.False(t, out.Executed)
	assert.Contains(t, out.Message, "❌ Estoque insuficiente!")
	assert.Contains(t, out.Message, "Saldo atual de Tomate: 2 kg")
	assert.Contains(t, out.Message, "Saída solicitada: 5 kg")
	assert.Empty(t, f.movRepo.created, "recusa de pré-condição não pode gerar escrita")
}

// Entrada bem-sucedida projeta o novo saldo na mensagem.
func TestExecutor_EntradaProjetaSaldo(t *testing.T) {
	f := newExecutorFixture()
	f.resolver.items = map[string]*entity.InventoryItem{"Tomate": stockItem("Tomate", "2")}

	args, err := copilot.ParseToolArgs(copilot.ToolRegisterStockMovement,
		`{"item_name":"Tomate","type":"entrada","quantity":5}`)
	require.NoError(t, err)

	out := f.exec.Execute(context.Background(), testUserID, unitPtr(), args)

	assert.True(t, out.Executed)
	require.Len(t, f.movRepo.created, 1)
	mov := f.movRepo.created[0]
	assert.Equal(t, "item-1", mov.ItemID)
	assert.Equal(t, entity.MovementTypeIn, mov.Type)
	assert.Contains(t, out.Message, "Entrada de 5 kg")
	assert.Contains(t, out.Message, "Estoque: 2 → 7 kg")
}

// Saída igual ao saldo é permitida (zera o estoque).
func TestExecutor_SaidaIgualAoSaldo_Permite(t *testing.T) {
	f := newExecutorFixture()
	f.resolver.items = map[string]*entity.InventoryItem{"Tomate": stockItem("Tomate", "5")}

	args, err := copilot.ParseToolArgs(copilot.ToolRegisterStockMovement,
		`{"item_name":"Tomate","type":"saida","quantity":5}`)
	require.NoError(t, err)

	out := f.exec.Execute(context.Background(), testUserID, unitPtr(), args)

	assert.True(t, out.Executed)
	require.Len(t, f.movRepo.created, 1)
	assert.Contains(t, out.Message, "Estoque: 5 → 0 kg")
}

// Item inexistente no estoque da unidade: mensagem com o nome pedido e nenhuma
// escrita.
func TestExecutor_ItemNaoEncontrado(t *testing.T) {
	f := newExecutorFixture()

	args, err := copilot.ParseToolArgs(copilot.ToolRegisterStockMovement,
		`{"item_name":"Caviar","type":"entrada","quantity":1}`)
	require.NoError(t, err)

	out := f.exec.Execute(context.Background(), testUserID, unitPtr(), args)

	assert.False(t, out.Executed)
	assert.Contains(t, out.Message, `Item "Caviar" não encontrado no estoque.`)
	assert.Empty(t, f.movRepo.created)
}

// Falha na consulta do item vira mensagem de conversa sem escrita.
func TestExecutor_ConsultaDeItemFalha(t *testing.T) {
	f := newExecutorFixture()
	f.resolver.itemErr = errors.New("timeout")

	args, err := copilot.ParseToolArgs(copilot.ToolRegisterStockMovement,
		`{"item_name":"Tomate","type":"saida","quantity":1}`)
	require.NoError(t, err)

	out := f.exec.Execute(context.Background(), testUserID, unitPtr(), args)

	assert.False(t, out.Executed)
	assert.Contains(t, out.Message, "Não consegui consultar o estoque")
	assert.Empty(t, f.movRepo.created)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ferramenta desconhecida
// ──────────────────────────────────────────────────────────────────────────────

// Nome de ferramenta fora do registro: resposta fixa e nenhuma escrita em
// nenhum repositório.
func TestExecutor_FerramentaDesconhecida(t *testing.T) {
	f := newExecutorFixture()

	args, err := copilot.ParseToolArgs("delete_everything", `{"foo":1}`)
	require.NoError(t, err, "nome desconhecido não é erro de parse")

	out := f.exec.Execute(context.Background(), testUserID, unitPtr(), args)

	assert.False(t, out.Executed)
	assert.Equal(t, "Função não reconhecida.", out.Message)
	assert.Empty(t, f.txRepo.created)
	assert.Empty(t, f.taskRepo.created)
	assert.Empty(t, f.movRepo.created)
}
