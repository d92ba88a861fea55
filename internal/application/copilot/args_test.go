package copilot_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastrohub/resto-copilot/internal/application/copilot"
)

// ──────────────────────────────────────────────────────────────────────────────
// Decodificação e coerção dos argumentos de ferramenta
// ──────────────────────────────────────────────────────────────────────────────

// Payload duplamente codificado (objeto JSON dentro de uma string JSON) é
// tolerado; alguns modelos emitem os argumentos assim.
func TestParseToolArgs_PayloadDuplamenteCodificado(t *testing.T) {
	raw := `"{\"type\":\"expense\",\"amount\":45.90,\"description\":\"Compra de tomates\"}"`

	args, err := copilot.ParseToolArgs(copilot.ToolCreateTransaction, raw)
	require.NoError(t, err)
	require.NotNil(t, args.Transaction)
	assert.Equal(t, "expense", args.Transaction.Type)
	assert.True(t, args.Transaction.Amount.Equal(decimal.RequireFromString("45.90")))
}

// Valor numérico pode chegar como número JSON ou como string numérica; ambos
// coagidos para decimal sem perda.
func TestParseToolArgs_ValorComoStringOuNumero(t *testing.T) {
	for _, raw := range []string{
		`{"type":"income","amount":120.50,"description":"Venda"}`,
		`{"type":"income","amount":"120.50","description":"Venda"}`,
	} {
		args, err := copilot.ParseToolArgs(copilot.ToolCreateTransaction, raw)
		require.NoError(t, err, raw)
		assert.True(t, args.Transaction.Amount.Equal(decimal.RequireFromString("120.50")), raw)
	}
}

// Números grandes não passam por float64: o valor chega inteiro no decimal.
func TestParseToolArgs_PrecisaoDecimalPreservada(t *testing.T) {
	args, err := copilot.ParseToolArgs(copilot.ToolCreateTransaction,
		`{"type":"expense","amount":99999999.99,"description":"Reforma"}`)
	require.NoError(t, err)
	assert.Equal(t, "99999999.99", args.Transaction.Amount.String())
}

func TestParseToolArgs_DataValida(t *testing.T) {
	args, err := copilot.ParseToolArgs(copilot.ToolCreateTransaction,
		`{"type":"expense","amount":10,"description":"Gás","date":"2026-03-20"}`)
	require.NoError(t, err)
	require.NotNil(t, args.Transaction.Date)
	assert.Equal(t, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), *args.Transaction.Date)
}

func TestParseToolArgs_DataInvalida(t *testing.T) {
	_, err := copilot.ParseToolArgs(copilot.ToolCreateTransaction,
		`{"type":"expense","amount":10,"description":"Gás","date":"20/03/2026"}`)
	assert.Error(t, err, "data fora de YYYY-MM-DD deve falhar o parse")
}

// is_paid aceita booleano ou string booleana.
func TestParseToolArgs_IsPaidCoagido(t *testing.T) {
	args, err := copilot.ParseToolArgs(copilot.ToolCreateTransaction,
		`{"type":"expense","amount":10,"description":"Gás","is_paid":"false"}`)
	require.NoError(t, err)
	require.NotNil(t, args.Transaction.IsPaid)
	assert.False(t, *args.Transaction.IsPaid)
}

// ──────────────────────────────────────────────────────────────────────────────
// Violações de esquema
// ──────────────────────────────────────────────────────────────────────────────

func TestParseToolArgs_ViolacoesDeEsquema(t *testing.T) {
	cases := []struct {
		name string
		tool string
		raw  string
	}{
		{"JSON inválido", copilot.ToolCreateTransaction, `{"type":`},
		{"tipo de lançamento inválido", copilot.ToolCreateTransaction, `{"type":"transfer","amount":10,"description":"x"}`},
		{"valor ausente", copilot.ToolCreateTransaction, `{"type":"expense","description":"x"}`},
		{"valor zero", copilot.ToolCreateTransaction, `{"type":"expense","amount":0,"description":"x"}`},
		{"valor negativo", copilot.ToolCreateTransaction, `{"type":"expense","amount":-5,"description":"x"}`},
		{"descrição ausente", copilot.ToolCreateTransaction, `{"type":"expense","amount":10}`},
		{"título ausente", copilot.ToolCreateTask, `{"period":"manha"}`},
		{"prioridade inválida", copilot.ToolCreateTask, `{"title":"x","priority":"maxima"}`},
		{"item ausente", copilot.ToolRegisterStockMovement, `{"type":"entrada","quantity":1}`},
		{"tipo de movimentação inválido", copilot.ToolRegisterStockMovement, `{"item_name":"x","type":"ajuste","quantity":1}`},
		{"quantidade zero", copilot.ToolRegisterStockMovement, `{"item_name":"x","type":"saida","quantity":0}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := copilot.ParseToolArgs(tc.tool, tc.raw)
			assert.Error(t, err)
		})
	}
}

// Nome desconhecido não é erro de parse: o chamador decide a resposta.
func TestParseToolArgs_NomeDesconhecido(t *testing.T) {
	args, err := copilot.ParseToolArgs("alguma_coisa", `{"foo":"bar"}`)
	require.NoError(t, err)
	assert.Equal(t, "alguma_coisa", args.Tool)
	assert.Nil(t, args.Transaction)
	assert.Nil(t, args.Task)
	assert.Nil(t, args.Stock)
}

// Campos extras no payload são ignorados em vez de falharem o parse.
func TestParseToolArgs_CamposExtrasIgnorados(t *testing.T) {
	args, err := copilot.ParseToolArgs(copilot.ToolCreateTask,
		`{"title":"Abrir loja","campo_inventado":true}`)
	require.NoError(t, err)
	assert.Equal(t, "Abrir loja", args.Task.Title)
}
