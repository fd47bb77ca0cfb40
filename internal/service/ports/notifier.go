package ports

import (
	"context"

	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/domain"
)

// CadastroNotifier avisa o canal dos coordenadores. Implementações nunca
// retornam erro ao chamador; falha de notificação não desfaz a operação.
type CadastroNotifier interface {
	NotificarCadastroCriado(ctx context.Context, c *domain.Cadastro, e *domain.Evento)
	NotificarStatusAlterado(ctx context.Context, c *domain.Cadastro)
}
