package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/gastrohub/resto-copilot/internal/application/copilot"
	"github.com/gastrohub/resto-copilot/internal/domain/entity"
)

var _ copilot.EntityResolver = (*EntityResolverRepo)(nil)

// EntityResolverRepo resolve nomes livres em IDs via ILIKE sobre a coluna de
// nome, primeiro resultado na ordem natural do banco. Busca LIMIT 2 apenas
// para registrar em debug quando um candidato adicional foi suprimido pelo
// contrato de first-match.
type EntityResolverRepo struct {
	q Querier
}

// NewEntityResolverRepository constrói o adaptador.
func NewEntityResolverRepository(q Querier) *EntityResolverRepo {
	return &EntityResolverRepo{q: q}
}

// ResolveCategory busca uma categoria do usuário.
func (r *EntityResolverRepo) ResolveCategory(ctx context.Context, userID, name string) (string, error) {
	return r.resolveUserOwned(ctx, "categories", userID, name)
}

// ResolveAccount busca uma conta do usuário.
func (r *EntityResolverRepo) ResolveAccount(ctx context.Context, userID, name string) (string, error) {
	return r.resolveUserOwned(ctx, "accounts", userID, name)
}

// ResolveSupplier busca um fornecedor da unidade.
func (r *EntityResolverRepo) ResolveSupplier(ctx context.Context, unitID, name string) (string, error) {
	return r.resolveUnitOwned(ctx, "suppliers", unitID, name)
}

// ResolveEmployee busca um funcionário da unidade.
func (r *EntityResolverRepo) ResolveEmployee(ctx context.Context, unitID, name string) (string, error) {
	return r.resolveUnitOwned(ctx, "employees", unitID, name)
}

// ResolveItem busca um item de estoque da unidade, devolvendo a linha inteira
// (o executor precisa do saldo atual para a pré-condição de saída).
func (r *EntityResolverRepo) ResolveItem(ctx context.Context, unitID, name string) (*entity.InventoryItem, error) {
	query := `
		SELECT id, unit_id, name, current_stock, min_stock, unit_type
		FROM inventory_items
		WHERE unit_id = $1 AND name ILIKE '%' || $2 || '%'
		LIMIT 2`
	args := []any{unitID, name}
	if unitID == "" {
		query = `
			SELECT id, unit_id, name, current_stock, min_stock, unit_type
			FROM inventory_items
			WHERE unit_id IS NULL AND name ILIKE '%' || $1 || '%'
			LIMIT 2`
		args = []any{name}
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("resolver item: %w", err)
	}
	defer rows.Close()

	var items []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(&it.ID, &it.UnitID, &it.Name, &it.CurrentStock, &it.MinStock, &it.UnitType); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resolver item: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	if len(items) > 1 {
		logSuppressed("inventory_items", name)
	}
	return items[0], nil
}

// resolveUserOwned resolve em tabelas escopadas por usuário (categorias, contas).
func (r *EntityResolverRepo) resolveUserOwned(ctx context.Context, table, userID, name string) (string, error) {
	query := fmt.Sprintf(
		`SELECT id FROM %s WHERE user_id = $1 AND name ILIKE '%%' || $2 || '%%' LIMIT 2`, table)
	return r.firstID(ctx, table, name, query, userID, name)
}

// resolveUnitOwned resolve em tabelas escopadas por unidade (fornecedores,
// funcionários). unitID vazio restringe a registros sem unidade; nunca um
// registro de outra unidade é devolvido.
func (r *EntityResolverRepo) resolveUnitOwned(ctx context.Context, table, unitID, name string) (string, error) {
	if unitID == "" {
		query := fmt.Sprintf(
			`SELECT id FROM %s WHERE unit_id IS NULL AND name ILIKE '%%' || $1 || '%%' LIMIT 2`, table)
		return r.firstID(ctx, table, name, query, name)
	}
	query := fmt.Sprintf(
		`SELECT id FROM %s WHERE unit_id = $1 AND name ILIKE '%%' || $2 || '%%' LIMIT 2`, table)
	return r.firstID(ctx, table, name, query, unitID, name)
}

// firstID devolve o primeiro id do resultado; "" (sem erro) quando não há
// correspondência.
func (r *EntityResolverRepo) firstID(ctx context.Context, table, name, query string, args ...any) (string, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("resolver %s: %w", table, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan %s: %w", table, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolver %s: %w", table, err)
	}
	if len(ids) == 0 {
		return "", nil
	}
	if len(ids) > 1 {
		logSuppressed(table, name)
	}
	return ids[0], nil
}

func logSuppressed(table, name string) {
	log.Debug().
		Str("table", table).
		Str("search", name).
		Msg("first-match suprimiu candidato adicional")
}
