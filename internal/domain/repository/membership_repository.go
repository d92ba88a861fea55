package repository

import "context"

// MembershipRepository define a consulta de associação usuário↔unidade (DIP).
// É a única checagem de autorização feita pelo serviço antes de usar a
// credencial de nível de serviço nas demais consultas.
type MembershipRepository interface {
	// IsMember devolve true se o usuário pertence à unidade.
	IsMember(ctx context.Context, userID, unitID string) (bool, error)
}
