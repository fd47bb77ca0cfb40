package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/logger"

	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/domain"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/service/ports"
)

const nomeEventoDesconhecido = "Evento não encontrado"

type EventoService struct {
	repo         ports.EventoRepo
	cadastroRepo ports.CadastroRepo
	confirmacoes *Confirmacoes
	logger       logger.Logger
}

func NewEventoService(
	repo ports.EventoRepo,
	cadastroRepo ports.CadastroRepo,
	confirmacoes *Confirmacoes,
	logger logger.Logger,
) *EventoService {
	return &EventoService{
		repo:         repo,
		cadastroRepo: cadastroRepo,
		confirmacoes: confirmacoes,
		logger:       logger,
	}
}

func (s *EventoService) Criar(ctx context.Context, input domain.CriarEventoInput) (*domain.Evento, error) {
	if input.Nome == "" {
		return nil, fmt.Errorf("%w: nome is required", domain.ErrValidation)
	}
	if input.VagasPCD != nil && *input.VagasPCD < 0 {
		return nil, fmt.Errorf("%w: vagas_pcd must not be negative", domain.ErrValidation)
	}

	ativo := true
	if input.Ativo != nil {
		ativo = *input.Ativo
	}

	agora := time.Now().UTC()
	evento := &domain.Evento{
		ID:         uuid.New().String(),
		Nome:       input.Nome,
		Descricao:  input.Descricao,
		DataInicio: input.DataInicio,
		DataFim:    input.DataFim,
		Local:      input.Local,
		LogoURL:    input.LogoURL,
		Ativo:      ativo,
		VagasPCD:   input.VagasPCD,
		CreatedAt:  agora,
		UpdatedAt:  agora,
	}

	if err := s.repo.Create(ctx, evento); err != nil {
		return nil, fmt.Errorf("create evento: %w", err)
	}

	s.logger.Info("evento created",
		logger.String("evento_id", evento.ID),
		logger.String("nome", evento.Nome),
	)

	return evento, nil
}

func (s *EventoService) Atualizar(ctx context.Context, id string, patch domain.AtualizarEventoInput) (*domain.Evento, error) {
	evento, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Nome != nil {
		evento.Nome = *patch.Nome
	}
	if patch.Descricao != nil {
		evento.Descricao = *patch.Descricao
	}
	if patch.DataInicio != nil {
		evento.DataInicio = patch.DataInicio
	}
	if patch.DataFim != nil {
		evento.DataFim = patch.DataFim
	}
	if patch.Local != nil {
		evento.Local = *patch.Local
	}
	if patch.LogoURL != nil {
		evento.LogoURL = *patch.LogoURL
	}
	if patch.Ativo != nil {
		evento.Ativo = *patch.Ativo
	}
	if patch.VagasPCD != nil {
		evento.VagasPCD = patch.VagasPCD
	}

	if evento.Nome == "" {
		return nil, fmt.Errorf("%w: nome is required", domain.ErrValidation)
	}
	if evento.VagasPCD != nil && *evento.VagasPCD < 0 {
		return nil, fmt.Errorf("%w: vagas_pcd must not be negative", domain.ErrValidation)
	}

	evento.UpdatedAt = time.Now().UTC()
	if err = s.repo.Update(ctx, evento); err != nil {
		return nil, fmt.Errorf("update evento: %w", err)
	}

	return evento, nil
}

func (s *EventoService) GetByID(ctx context.Context, id string) (*domain.Evento, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EventoService) Detalhes(ctx context.Context, id string) (*domain.EventoDetalhes, error) {
	evento, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contagem, err := s.ContagemPorEvento(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.EventoDetalhes{
		Evento:    *evento,
		Inscritos: contagem[id],
	}, nil
}

func (s *EventoService) Listar(ctx context.Context) ([]*domain.Evento, error) {
	return s.repo.List(ctx)
}

// ListarAtivos é a visão da página pública: só eventos com ativo = true.
func (s *EventoService) ListarAtivos(ctx context.Context) ([]*domain.Evento, error) {
	eventos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	ativos := make([]*domain.Evento, 0, len(eventos))
	for _, e := range eventos {
		if e.Ativo {
			ativos = append(ativos, e)
		}
	}
	return ativos, nil
}

// ContagemPorEvento conta inscrições por evento, recomputada a cada leitura.
func (s *EventoService) ContagemPorEvento(ctx context.Context) (map[string]int, error) {
	cadastros, err := s.cadastroRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cadastros: %w", err)
	}

	contagem := make(map[string]int)
	for _, c := range cadastros {
		for _, eventoID := range c.Eventos {
			contagem[eventoID]++
		}
	}
	return contagem, nil
}

// NomeEvento resolve o id para exibição; referência pendurada vira um
// rótulo fixo em vez de quebrar a leitura.
func (s *EventoService) NomeEvento(ctx context.Context, id string) (string, error) {
	evento, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrEventoNotFound) {
			return nomeEventoDesconhecido, nil
		}
		return "", err
	}
	return evento.Nome, nil
}

// SolicitarExclusao inicia a exclusão em duas etapas: valida o alvo e
// devolve o token que o chamador precisa reapresentar.
func (s *EventoService) SolicitarExclusao(ctx context.Context, id string) (string, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return "", err
	}
	return s.confirmacoes.Emitir(acaoExcluirEvento, id, nil), nil
}

// Excluir consome o token e aplica a política detach: o evento some e o
// id dele é removido de todos os cadastros que o referenciavam.
func (s *EventoService) Excluir(ctx context.Context, id, token string) error {
	if _, err := s.confirmacoes.Consumir(token, acaoExcluirEvento, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	desvinculados, err := s.cadastroRepo.DetachEvento(ctx, id)
	if err != nil {
		return fmt.Errorf("detach evento: %w", err)
	}

	s.logger.Info("evento deleted",
		logger.String("evento_id", id),
		logger.Int("cadastros_desvinculados", desvinculados),
	)

	return nil
}

// DesativarExpirados desliga eventos cuja data_fim já passou. Chamado
// pelo scheduler.
func (s *EventoService) DesativarExpirados(ctx context.Context) ([]*domain.Evento, error) {
	eventos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	agora := time.Now().UTC()
	var desativados []*domain.Evento
	for _, e := range eventos {
		if !e.Ativo || e.DataFim == nil || e.DataFim.After(agora) {
			continue
		}
		e.Ativo = false
		e.UpdatedAt = agora
		if err = s.repo.Update(ctx, e); err != nil {
			return nil, fmt.Errorf("deactivate evento: %w", err)
		}
		desativados = append(desativados, e)
	}
	return desativados, nil
}
