package ports

import (
	"context"

	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/domain"
)

type CadastroRepo interface {
	Create(ctx context.Context, c *domain.Cadastro) error
	GetByID(ctx context.Context, id string) (*domain.Cadastro, error)
	Update(ctx context.Context, c *domain.Cadastro) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Cadastro, error)
	DetachEvento(ctx context.Context, eventoID string) (int, error)
}
