package copilot

import (
	"fmt"
	"strings"

	"github.com/gastrohub/resto-copilot/internal/application/dto"
)

// PromptPolicy regras comportamentais do copiloto como configuração
// estruturada (em vez de prosa fixa), para que testes possam verificar a
// política sem interpretar texto de prompt.
type PromptPolicy struct {
	MaxSentences int
	MaxEmojis    int
}

// DefaultPromptPolicy valores usados quando a configuração não define outros.
func DefaultPromptPolicy() PromptPolicy {
	return PromptPolicy{MaxSentences: 4, MaxEmojis: 1}
}

// BuildSystemPrompt monta o prompt de sistema: regras fixas de comportamento
// seguidas das seções do snapshot que tiverem dados.
func BuildSystemPrompt(policy PromptPolicy, snapshot *dto.CopilotContext) string {
	var b strings.Builder

	b.WriteString("Você é o copiloto de operações do restaurante. Responda sempre em português do Brasil.\n\n")
	b.WriteString("Regras:\n")
	fmt.Fprintf(&b, "- Responda em no máximo %d frases.\n", policy.MaxSentences)
	fmt.Fprintf(&b, "- Use no máximo %d emoji por resposta.\n", policy.MaxEmojis)
	b.WriteString("- Nunca invente valores, nomes ou saldos; use apenas os dados do contexto abaixo.\n")
	b.WriteString("- Se faltar informação para executar uma ação, faça uma pergunta de esclarecimento antes de chamar a ferramenta.\n")
	b.WriteString("- Para registrar lançamentos, tarefas ou movimentações de estoque, use as ferramentas disponíveis.\n")

	if snapshot == nil {
		return b.String()
	}

	sections := []struct {
		title string
		lines []string
	}{
		{"💰 Financeiro", snapshot.Finance},
		{"📦 Estoque", snapshot.Inventory},
		{"🛒 Pedidos", snapshot.Orders},
		{"👥 Equipe", snapshot.Team},
		{"✅ Tarefas de hoje", snapshot.Tasks},
		{"📋 Checklists", snapshot.Checklists},
		{"📅 Vencimentos próximos", snapshot.Invoices},
		{"🎯 Orçamento", snapshot.Budget},
	}

	wroteHeader := false
	for _, s := range sections {
		if len(s.lines) == 0 {
			continue
		}
		if !wroteHeader {
			b.WriteString("\n📊 Situação atual da unidade:\n")
			wroteHeader = true
		}
		fmt.Fprintf(&b, "\n%s:\n", s.title)
		for _, line := range s.lines {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}

	return b.String()
}
