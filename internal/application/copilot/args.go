package copilot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Argumentos tipados por ferramenta. O payload emitido pelo modelo é
// decodificado e coagido uma única vez aqui; os handlers do executor recebem
// structs já validados, nunca o map cru.

// TransactionArgs argumentos de create_transaction.
type TransactionArgs struct {
	Type         string
	Amount       decimal.Decimal
	Description  string
	CategoryName string
	AccountName  string
	SupplierName string
	EmployeeName string
	Date         *time.Time
	IsPaid       *bool
}

// TaskArgs argumentos de create_task. Period chega em português (manha/tarde/
// noite) ou já canônico; a normalização acontece no handler.
type TaskArgs struct {
	Title    string
	Date     *time.Time
	Period   string
	Priority string
	Notes    string
	DueTime  string
}

// StockArgs argumentos de register_stock_movement.
type StockArgs struct {
	ItemName string
	Type     string
	Quantity decimal.Decimal
	Notes    string
}

// ToolArgs união discriminada dos argumentos: exatamente um dos ponteiros é
// não-nil, conforme Tool.
type ToolArgs struct {
	Tool        string
	Transaction *TransactionArgs
	Task        *TaskArgs
	Stock       *StockArgs
}

// ParseToolArgs decodifica e valida os argumentos crus de uma chamada de
// ferramenta. Tolera tanto um objeto JSON quanto um objeto duplamente
// codificado como string ("{\"amount\":10}"). Qualquer violação de esquema
// devolve erro; o orquestrador converte em pedido de esclarecimento.
func ParseToolArgs(name, raw string) (*ToolArgs, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	switch name {
	case ToolCreateTransaction:
		args, err := parseTransactionArgs(fields)
		if err != nil {
			return nil, err
		}
		return &ToolArgs{Tool: name, Transaction: args}, nil
	case ToolCreateTask:
		args, err := parseTaskArgs(fields)
		if err != nil {
			return nil, err
		}
		return &ToolArgs{Tool: name, Task: args}, nil
	case ToolRegisterStockMovement:
		args, err := parseStockArgs(fields)
		if err != nil {
			return nil, err
		}
		return &ToolArgs{Tool: name, Stock: args}, nil
	default:
		// Nome desconhecido não é erro de parse: o executor responde
		// "função não reconhecida" sem executar nada.
		return &ToolArgs{Tool: name}, nil
	}
}

// decodeObject desserializa o payload preservando números como json.Number.
// Se o payload inteiro for uma string JSON, tenta decodificar o conteúdo.
func decodeObject(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}, nil
	}

	// Payload duplamente codificado: "{\"a\":1}"
	if strings.HasPrefix(raw, `"`) {
		var inner string
		if err := json.Unmarshal([]byte(raw), &inner); err != nil {
			return nil, fmt.Errorf("argumentos inválidos: %w", err)
		}
		raw = inner
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("argumentos inválidos: %w", err)
	}
	return fields, nil
}

func parseTransactionArgs(fields map[string]any) (*TransactionArgs, error) {
	args := &TransactionArgs{
		Type:         getString(fields, "type"),
		Description:  getString(fields, "description"),
		CategoryName: getString(fields, "category_name"),
		AccountName:  getString(fields, "account_name"),
		SupplierName: getString(fields, "supplier_name"),
		EmployeeName: getString(fields, "employee_name"),
	}
	if args.Type != "income" && args.Type != "expense" {
		return nil, fmt.Errorf("type deve ser income ou expense")
	}
	if args.Description == "" {
		return nil, fmt.Errorf("description é obrigatório")
	}

	amount, err := getDecimal(fields, "amount")
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount deve ser maior que zero")
	}
	args.Amount = amount

	date, err := getDate(fields, "date")
	if err != nil {
		return nil, err
	}
	args.Date = date

	if v, ok := fields["is_paid"]; ok {
		paid, err := coerceBool(v)
		if err != nil {
			return nil, fmt.Errorf("is_paid: %w", err)
		}
		args.IsPaid = &paid
	}
	return args, nil
}

func parseTaskArgs(fields map[string]any) (*TaskArgs, error) {
	args := &TaskArgs{
		Title:    getString(fields, "title"),
		Period:   getString(fields, "period"),
		Priority: getString(fields, "priority"),
		Notes:    getString(fields, "notes"),
		DueTime:  getString(fields, "due_time"),
	}
	if args.Title == "" {
		return nil, fmt.Errorf("title é obrigatório")
	}
	if args.Priority != "" {
		switch args.Priority {
		case "low", "medium", "high", "urgent":
		default:
			return nil, fmt.Errorf("priority inválida: %s", args.Priority)
		}
	}
	date, err := getDate(fields, "date")
	if err != nil {
		return nil, err
	}
	args.Date = date
	return args, nil
}

func parseStockArgs(fields map[string]any) (*StockArgs, error) {
	args := &StockArgs{
		ItemName: getString(fields, "item_name"),
		Type:     getString(fields, "type"),
		Notes:    getString(fields, "notes"),
	}
	if args.ItemName == "" {
		return nil, fmt.Errorf("item_name é obrigatório")
	}
	if args.Type != "entrada" && args.Type != "saida" {
		return nil, fmt.Errorf("type deve ser entrada ou saida")
	}
	qty, err := getDecimal(fields, "quantity")
	if err != nil {
		return nil, err
	}
	if !qty.IsPositive() {
		return nil, fmt.Errorf("quantity deve ser maior que zero")
	}
	args.Quantity = qty
	return args, nil
}

// ── Coerção de campos ─────────────────────────────────────────────────────────

func getString(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// getDecimal aceita número JSON ou string numérica ("45.90").
func getDecimal(fields map[string]any, key string) (decimal.Decimal, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return decimal.Zero, fmt.Errorf("%s é obrigatório", key)
	}
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s inválido: %w", key, err)
		}
		return d, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s inválido: %w", key, err)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(n), nil
	default:
		return decimal.Zero, fmt.Errorf("%s inválido", key)
	}
}

// getDate aceita "YYYY-MM-DD"; vazio/ausente devolve nil (o handler aplica hoje).
func getDate(fields map[string]any, key string) (*time.Time, error) {
	s := getString(fields, key)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("%s inválido (esperado YYYY-MM-DD): %w", key, err)
	}
	return &t, nil
}

func coerceBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, fmt.Errorf("valor booleano inválido: %q", b)
		}
		return parsed, nil
	default:
		return false, fmt.Errorf("valor booleano inválido")
	}
}
