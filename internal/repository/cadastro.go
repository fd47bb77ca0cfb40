package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/domain"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/storage"
)

// CadastroRepository persiste a coleção de cadastros (pessoas) sob a chave
// pcd_pessoas, com a mesma disciplina write-through do EventoRepository.
type CadastroRepository struct {
	st storage.Storage
}

func NewCadastroRepo(st storage.Storage) *CadastroRepository {
	return &CadastroRepository{st: st}
}

func (r *CadastroRepository) carregar(ctx context.Context) ([]*domain.Cadastro, error) {
	bruto, ok, err := r.st.Get(ctx, storage.ChavePessoas)
	if err != nil {
		return nil, fmt.Errorf("load cadastros: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var cadastros []*domain.Cadastro
	if err = json.Unmarshal(bruto, &cadastros); err != nil {
		return nil, fmt.Errorf("decode cadastros: %w", err)
	}
	return cadastros, nil
}

func (r *CadastroRepository) salvar(ctx context.Context, cadastros []*domain.Cadastro) error {
	if cadastros == nil {
		cadastros = []*domain.Cadastro{}
	}
	bruto, err := json.Marshal(cadastros)
	if err != nil {
		return fmt.Errorf("encode cadastros: %w", err)
	}
	if err = r.st.Set(ctx, storage.ChavePessoas, bruto); err != nil {
		return fmt.Errorf("save cadastros: %w", err)
	}
	return nil
}

func (r *CadastroRepository) Create(ctx context.Context, c *domain.Cadastro) error {
	cadastros, err := r.carregar(ctx)
	if err != nil {
		return err
	}
	cadastros = append(cadastros, c)
	return r.salvar(ctx, cadastros)
}

func (r *CadastroRepository) GetByID(ctx context.Context, id string) (*domain.Cadastro, error) {
	cadastros, err := r.carregar(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range cadastros {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrCadastroNotFound
}

func (r *CadastroRepository) Update(ctx context.Context, c *domain.Cadastro) error {
	cadastros, err := r.carregar(ctx)
	if err != nil {
		return err
	}
	for i := range cadastros {
		if cadastros[i].ID == c.ID {
			cadastros[i] = c
			return r.salvar(ctx, cadastros)
		}
	}
	return domain.ErrCadastroNotFound
}

func (r *CadastroRepository) Delete(ctx context.Context, id string) error {
	cadastros, err := r.carregar(ctx)
	if err != nil {
		return err
	}
	for i := range cadastros {
		if cadastros[i].ID == id {
			cadastros = append(cadastros[:i], cadastros[i+1:]...)
			return r.salvar(ctx, cadastros)
		}
	}
	return domain.ErrCadastroNotFound
}

func (r *CadastroRepository) List(ctx context.Context) ([]*domain.Cadastro, error) {
	cadastros, err := r.carregar(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*domain.Cadastro, 0, len(cadastros))
	for i := len(cadastros) - 1; i >= 0; i-- {
		res = append(res, cadastros[i])
	}
	return res, nil
}

func (r *CadastroRepository) ReplaceAll(ctx context.Context, cadastros []*domain.Cadastro) error {
	return r.salvar(ctx, cadastros)
}

// DetachEvento remove o evento das listas de todos os cadastros que o
// referenciam (política de cascata "detach" da exclusão de evento).
// Retorna quantos cadastros foram alterados.
func (r *CadastroRepository) DetachEvento(ctx context.Context, eventoID string) (int, error) {
	cadastros, err := r.carregar(ctx)
	if err != nil {
		return 0, err
	}

	alterados := 0
	for _, c := range cadastros {
		restantes := c.Eventos[:0:0]
		for _, id := range c.Eventos {
			if id != eventoID {
				restantes = append(restantes, id)
			}
		}
		if len(restantes) != len(c.Eventos) {
			c.Eventos = restantes
			alterados++
		}
	}
	if alterados == 0 {
		return 0, nil
	}
	if err = r.salvar(ctx, cadastros); err != nil {
		return 0, err
	}
	return alterados, nil
}
