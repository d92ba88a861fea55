package dto

// ContextRequest corpo da chamada de snapshot de contexto.
type ContextRequest struct {
	UnitID string `json:"unit_id"`
}

// CopilotContext é o snapshot operacional formatado, pronto para ser
// serializado dentro do prompt do modelo. Cada campo é uma lista de linhas
// em português agrupadas por domínio; seções vazias ficam de fora do prompt.
type CopilotContext struct {
	Finance    []string `json:"finance,omitempty"`
	Inventory  []string `json:"inventory,omitempty"`
	Orders     []string `json:"orders,omitempty"`
	Team       []string `json:"team,omitempty"`
	Tasks      []string `json:"tasks,omitempty"`
	Checklists []string `json:"checklists,omitempty"`
	Invoices   []string `json:"invoices,omitempty"`
	Budget     []string `json:"budget,omitempty"`
}

// ContextStats contadores compactos para badges da UI.
type ContextStats struct {
	PendingExpenses  int `json:"pending_expenses"`
	LowStockItems    int `json:"low_stock_items"`
	PendingOrders    int `json:"pending_orders"`
	TodayTasks       int `json:"today_tasks"`
	UpcomingInvoices int `json:"upcoming_invoices"`
}

// ContextResponse resposta completa do agregador de contexto.
type ContextResponse struct {
	Context      CopilotContext `json:"context"`
	ContextStats ContextStats   `json:"contextStats"`
}
