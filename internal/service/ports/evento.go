package ports

import (
	"context"

	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/domain"
)

type EventoRepo interface {
	Create(ctx context.Context, e *domain.Evento) error
	GetByID(ctx context.Context, id string) (*domain.Evento, error)
	Update(ctx context.Context, e *domain.Evento) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Evento, error)
}
