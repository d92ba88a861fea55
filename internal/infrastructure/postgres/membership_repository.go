package postgres

import (
	"context"
	"fmt"

	"github.com/gastrohub/resto-copilot/internal/domain/repository"
)

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo consulta de associação usuário↔unidade sobre PostgreSQL.
type MembershipRepo struct {
	q Querier
}

// NewMembershipRepository constrói o adaptador.
func NewMembershipRepository(q Querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

// IsMember devolve true se existe registro de associação do usuário na unidade.
func (r *MembershipRepo) IsMember(ctx context.Context, userID, unitID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM unit_members WHERE user_id = $1 AND unit_id = $2)`,
		userID, unitID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checar associação: %w", err)
	}
	return exists, nil
}
