package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/domain"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/storage"
)

// EventoRepository persiste a coleção de eventos como um array JSON sob a
// chave pcd_eventos. Toda mutação recarrega, altera e regrava a coleção
// antes de retornar; não há estado em memória para divergir do durável.
type EventoRepository struct {
	st storage.Storage
}

func NewEventoRepo(st storage.Storage) *EventoRepository {
	return &EventoRepository{st: st}
}

func (r *EventoRepository) carregar(ctx context.Context) ([]*domain.Evento, error) {
	bruto, ok, err := r.st.Get(ctx, storage.ChaveEventos)
	if err != nil {
		return nil, fmt.Errorf("load eventos: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var eventos []*domain.Evento
	if err = json.Unmarshal(bruto, &eventos); err != nil {
		return nil, fmt.Errorf("decode eventos: %w", err)
	}
	return eventos, nil
}

func (r *EventoRepository) salvar(ctx context.Context, eventos []*domain.Evento) error {
	if eventos == nil {
		eventos = []*domain.Evento{}
	}
	bruto, err := json.Marshal(eventos)
	if err != nil {
		return fmt.Errorf("encode eventos: %w", err)
	}
	if err = r.st.Set(ctx, storage.ChaveEventos, bruto); err != nil {
		return fmt.Errorf("save eventos: %w", err)
	}
	return nil
}

func (r *EventoRepository) Create(ctx context.Context, e *domain.Evento) error {
	eventos, err := r.carregar(ctx)
	if err != nil {
		return err
	}
	eventos = append(eventos, e)
	return r.salvar(ctx, eventos)
}

func (r *EventoRepository) GetByID(ctx context.Context, id string) (*domain.Evento, error) {
	eventos, err := r.carregar(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range eventos {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrEventoNotFound
}

func (r *EventoRepository) Update(ctx context.Context, e *domain.Evento) error {
	eventos, err := r.carregar(ctx)
	if err != nil {
		return err
	}
	for i := range eventos {
		if eventos[i].ID == e.ID {
			eventos[i] = e
			return r.salvar(ctx, eventos)
		}
	}
	return domain.ErrEventoNotFound
}

func (r *EventoRepository) Delete(ctx context.Context, id string) error {
	eventos, err := r.carregar(ctx)
	if err != nil {
		return err
	}
	for i := range eventos {
		if eventos[i].ID == id {
			eventos = append(eventos[:i], eventos[i+1:]...)
			return r.salvar(ctx, eventos)
		}
	}
	return domain.ErrEventoNotFound
}

// List retorna os eventos do mais recente para o mais antigo. A coleção é
// mantida em ordem de criação, então basta inverter.
func (r *EventoRepository) List(ctx context.Context) ([]*domain.Evento, error) {
	eventos, err := r.carregar(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*domain.Evento, 0, len(eventos))
	for i := len(eventos) - 1; i >= 0; i-- {
		res = append(res, eventos[i])
	}
	return res, nil
}

// ReplaceAll troca a coleção inteira. Usado apenas pela restauração de backup.
func (r *EventoRepository) ReplaceAll(ctx context.Context, eventos []*domain.Evento) error {
	return r.salvar(ctx, eventos)
}
