package copilot

import "github.com/gastrohub/resto-copilot/internal/application/ports"

// Nomes das ferramentas expostas ao modelo.
const (
	ToolCreateTransaction     = "create_transaction"
	ToolCreateTask            = "create_task"
	ToolRegisterStockMovement = "register_stock_movement"
)

// ToolSchemas devolve o registro estático de ferramentas enviado ao serviço
// de completions em cada turno. O registro não valida nada: a validação é
// responsabilidade do executor após o parse dos argumentos.
func ToolSchemas() []ports.ToolDefinition {
	return []ports.ToolDefinition{
		createTransactionTool(),
		createTaskTool(),
		registerStockMovementTool(),
	}
}

func createTransactionTool() ports.ToolDefinition {
	return ports.ToolDefinition{
		Name: ToolCreateTransaction,
		Description: "Cria um lançamento financeiro (receita ou despesa) para a unidade. " +
			"Use quando o usuário pedir para registrar um gasto, pagamento ou recebimento. " +
			"category_name, account_name, supplier_name e employee_name são nomes livres; " +
			"o sistema resolve para os cadastros existentes.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"type": map[string]any{
					"type":        "string",
					"enum":        []string{"income", "expense"},
					"description": "income para receita, expense para despesa.",
				},
				"amount": map[string]any{
					"type":        "number",
					"description": "Valor em reais (ex.: 45.90).",
				},
				"description": map[string]any{
					"type":        "string",
					"description": "Descrição curta do lançamento.",
				},
				"category_name": map[string]any{
					"type":        "string",
					"description": "Nome da categoria, se o usuário mencionar (ex.: Bebidas).",
				},
				"account_name": map[string]any{
					"type":        "string",
					"description": "Nome da conta (ex.: Caixa, Banco), se mencionada.",
				},
				"supplier_name": map[string]any{
					"type":        "string",
					"description": "Nome do fornecedor, se mencionado.",
				},
				"employee_name": map[string]any{
					"type":        "string",
					"description": "Nome do funcionário, se mencionado.",
				},
				"date": map[string]any{
					"type":        "string",
					"format":      "date",
					"description": "Data no formato YYYY-MM-DD. Se omitida, usa a data de hoje.",
				},
				"is_paid": map[string]any{
					"type":        "boolean",
					"description": "true se já foi pago/recebido (padrão), false se pendente.",
				},
			},
			"required":             []string{"type", "amount", "description"},
			"additionalProperties": false,
		},
	}
}

func createTaskTool() ports.ToolDefinition {
	return ports.ToolDefinition{
		Name: ToolCreateTask,
		Description: "Cria uma tarefa operacional (ex.: ligar para fornecedor, conferir estoque). " +
			"Use quando o usuário pedir para anotar, lembrar ou agendar algo.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{
					"type":        "string",
					"description": "Título da tarefa.",
				},
				"date": map[string]any{
					"type":        "string",
					"format":      "date",
					"description": "Data no formato YYYY-MM-DD. Se omitida, usa a data de hoje.",
				},
				"period": map[string]any{
					"type":        "string",
					"enum":        []string{"manha", "tarde", "noite"},
					"description": "Período do dia. Padrão: manha.",
				},
				"priority": map[string]any{
					"type":        "string",
					"enum":        []string{"low", "medium", "high", "urgent"},
					"description": "Prioridade. Padrão: medium.",
				},
				"notes": map[string]any{
					"type":        "string",
					"description": "Observações adicionais.",
				},
				"due_time": map[string]any{
					"type":        "string",
					"description": "Horário limite no formato HH:MM, se houver.",
				},
			},
			"required":             []string{"title"},
			"additionalProperties": false,
		},
	}
}

func registerStockMovementTool() ports.ToolDefinition {
	return ports.ToolDefinition{
		Name: ToolRegisterStockMovement,
		Description: "Registra uma entrada ou saída de estoque de um item existente. " +
			"item_name é o nome livre do item; o sistema resolve para o cadastro. " +
			"Saídas maiores que o saldo atual são recusadas.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"item_name": map[string]any{
					"type":        "string",
					"description": "Nome do item de estoque (ex.: Queijo Cheddar).",
				},
				"type": map[string]any{
					"type":        "string",
					"enum":        []string{"entrada", "saida"},
					"description": "entrada para reposição, saida para consumo/baixa.",
				},
				"quantity": map[string]any{
					"type":        "number",
					"description": "Quantidade movimentada, na unidade do item.",
				},
				"notes": map[string]any{
					"type":        "string",
					"description": "Observações (lote, motivo da baixa etc.).",
				},
			},
			"required":             []string{"item_name", "type", "quantity"},
			"additionalProperties": false,
		},
	}
}
