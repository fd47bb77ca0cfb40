package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/logger"

	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/domain"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/service/ports"
)

type CadastroService struct {
	repo         ports.CadastroRepo
	eventoRepo   ports.EventoRepo
	notifier     ports.CadastroNotifier
	confirmacoes *Confirmacoes
	logger       logger.Logger
}

func NewCadastroService(
	repo ports.CadastroRepo,
	eventoRepo ports.EventoRepo,
	notifier ports.CadastroNotifier,
	confirmacoes *Confirmacoes,
	logger logger.Logger,
) *CadastroService {
	return &CadastroService{
		repo:         repo,
		eventoRepo:   eventoRepo,
		notifier:     notifier,
		confirmacoes: confirmacoes,
		logger:       logger,
	}
}

func (s *CadastroService) Criar(ctx context.Context, input domain.CriarCadastroInput) (*domain.Cadastro, error) {
	eventos := unirEventos(input.EventoID, input.Eventos)

	if input.NomeCompleto == "" {
		return nil, fmt.Errorf("%w: nome_completo is required", domain.ErrValidation)
	}
	if len(domain.NormalizarCPF(input.CPF)) != 11 {
		return nil, fmt.Errorf("%w: cpf must have 11 digits", domain.ErrValidation)
	}
	if input.Telefone == "" {
		return nil, fmt.Errorf("%w: telefone is required", domain.ErrValidation)
	}
	if !input.TipoDeficiencia.Valido() {
		return nil, fmt.Errorf("%w: tipo_deficiencia is invalid", domain.ErrValidation)
	}

	if err := s.verificarEventos(ctx, eventos); err != nil {
		return nil, err
	}

	agora := time.Now().UTC()
	cadastro := &domain.Cadastro{
		ID:                    uuid.New().String(),
		Eventos:               eventos,
		NomeCompleto:          input.NomeCompleto,
		CPF:                   input.CPF,
		DataNascimento:        input.DataNascimento,
		Telefone:              input.Telefone,
		Email:                 input.Email,
		TipoDeficiencia:       input.TipoDeficiencia,
		DescricaoDeficiencia:  input.DescricaoDeficiencia,
		UsaCadeiraRodas:       input.UsaCadeiraRodas,
		NecessitaAcompanhante: input.NecessitaAcompanhante,
		NomeAcompanhante:      input.NomeAcompanhante,
		CPFAcompanhante:       input.CPFAcompanhante,
		TelefoneAcompanhante:  input.TelefoneAcompanhante,
		DocIdentidadeURL:      input.DocIdentidadeURL,
		DocLaudoURL:           input.DocLaudoURL,
		DocComprovanteURL:     input.DocComprovanteURL,
		DocFotoURL:            input.DocFotoURL,
		DocAcompanhanteURL:    input.DocAcompanhanteURL,
		Status:                domain.StatusPendente,
		CreatedAt:             agora,
		UpdatedAt:             agora,
	}
	cadastro.LimparAcompanhante()

	if err := s.repo.Create(ctx, cadastro); err != nil {
		return nil, fmt.Errorf("create cadastro: %w", err)
	}

	s.logger.Info("cadastro created",
		logger.String("cadastro_id", cadastro.ID),
		logger.String("nome", cadastro.NomeCompleto),
	)

	var primeiroEvento *domain.Evento
	if len(eventos) > 0 {
		if e, err := s.eventoRepo.GetByID(ctx, eventos[0]); err == nil {
			primeiroEvento = e
		}
	}
	go s.notifier.NotificarCadastroCriado(context.WithoutCancel(ctx), cadastro, primeiroEvento)

	return cadastro, nil
}

func (s *CadastroService) Atualizar(ctx context.Context, id string, patch domain.AtualizarCadastroInput) (*domain.Cadastro, error) {
	cadastro, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Eventos != nil {
		cadastro.Eventos = *patch.Eventos
	}
	if patch.NomeCompleto != nil {
		cadastro.NomeCompleto = *patch.NomeCompleto
	}
	if patch.CPF != nil {
		cadastro.CPF = *patch.CPF
	}
	if patch.DataNascimento != nil {
		cadastro.DataNascimento = *patch.DataNascimento
	}
	if patch.Telefone != nil {
		cadastro.Telefone = *patch.Telefone
	}
	if patch.Email != nil {
		cadastro.Email = *patch.Email
	}
	if patch.TipoDeficiencia != nil {
		cadastro.TipoDeficiencia = *patch.TipoDeficiencia
	}
	if patch.DescricaoDeficiencia != nil {
		cadastro.DescricaoDeficiencia = *patch.DescricaoDeficiencia
	}
	if patch.UsaCadeiraRodas != nil {
		cadastro.UsaCadeiraRodas = *patch.UsaCadeiraRodas
	}
	if patch.NecessitaAcompanhante != nil {
		cadastro.NecessitaAcompanhante = *patch.NecessitaAcompanhante
	}
	if patch.NomeAcompanhante != nil {
		cadastro.NomeAcompanhante = *patch.NomeAcompanhante
	}
	if patch.CPFAcompanhante != nil {
		cadastro.CPFAcompanhante = *patch.CPFAcompanhante
	}
	if patch.TelefoneAcompanhante != nil {
		cadastro.TelefoneAcompanhante = *patch.TelefoneAcompanhante
	}
	if patch.DocIdentidadeURL != nil {
		cadastro.DocIdentidadeURL = *patch.DocIdentidadeURL
	}
	if patch.DocLaudoURL != nil {
		cadastro.DocLaudoURL = *patch.DocLaudoURL
	}
	if patch.DocComprovanteURL != nil {
		cadastro.DocComprovanteURL = *patch.DocComprovanteURL
	}
	if patch.DocFotoURL != nil {
		cadastro.DocFotoURL = *patch.DocFotoURL
	}
	if patch.DocAcompanhanteURL != nil {
		cadastro.DocAcompanhanteURL = *patch.DocAcompanhanteURL
	}

	if cadastro.NomeCompleto == "" {
		return nil, fmt.Errorf("%w: nome_completo is required", domain.ErrValidation)
	}
	if len(domain.NormalizarCPF(cadastro.CPF)) != 11 {
		return nil, fmt.Errorf("%w: cpf must have 11 digits", domain.ErrValidation)
	}
	if cadastro.Telefone == "" {
		return nil, fmt.Errorf("%w: telefone is required", domain.ErrValidation)
	}
	if !cadastro.TipoDeficiencia.Valido() {
		return nil, fmt.Errorf("%w: tipo_deficiencia is invalid", domain.ErrValidation)
	}

	if err = s.verificarEventos(ctx, cadastro.Eventos); err != nil {
		return nil, err
	}

	cadastro.LimparAcompanhante()
	cadastro.UpdatedAt = time.Now().UTC()

	if err = s.repo.Update(ctx, cadastro); err != nil {
		return nil, fmt.Errorf("update cadastro: %w", err)
	}

	return cadastro, nil
}

// AlterarStatus aplica uma transição do fluxo de aprovação. O grafo é
// completo: qualquer status alcança qualquer outro por ação do
// administrador. Reaplicar o status atual não muda nada, mas regrava
// (retry seguro).
func (s *CadastroService) AlterarStatus(ctx context.Context, id string, novo domain.StatusCadastro) (*domain.Cadastro, error) {
	if !novo.Valido() {
		return nil, fmt.Errorf("%w: %q", domain.ErrStatusInvalido, novo)
	}

	cadastro, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	anterior := cadastro.Status
	cadastro.AplicarStatus(novo, time.Now().UTC())
	cadastro.UpdatedAt = time.Now().UTC()

	if err = s.repo.Update(ctx, cadastro); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	s.logger.Info("status changed",
		logger.String("cadastro_id", id),
		logger.String("de", string(anterior)),
		logger.String("para", string(novo)),
	)

	if anterior != novo {
		go s.notifier.NotificarStatusAlterado(context.WithoutCancel(ctx), cadastro)
	}

	return cadastro, nil
}

func (s *CadastroService) GetByID(ctx context.Context, id string) (*domain.Cadastro, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CadastroService) Listar(ctx context.Context) ([]*domain.Cadastro, error) {
	return s.repo.List(ctx)
}

// Buscar filtra por texto livre (nome, CPF e telefone, substring sem caixa;
// CPF e telefone comparados pelos dígitos) e por status exato.
func (s *CadastroService) Buscar(ctx context.Context, termo string, status domain.StatusCadastro) ([]*domain.Cadastro, error) {
	cadastros, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	termoMin := strings.ToLower(termo)
	termoDigitos := domain.NormalizarCPF(termo)

	res := make([]*domain.Cadastro, 0, len(cadastros))
	for _, c := range cadastros {
		if status != "" && c.Status != status {
			continue
		}
		if termo != "" && !correspondeTermo(c, termoMin, termoDigitos) {
			continue
		}
		res = append(res, c)
	}
	return res, nil
}

func correspondeTermo(c *domain.Cadastro, termoMin, termoDigitos string) bool {
	if strings.Contains(strings.ToLower(c.NomeCompleto), termoMin) {
		return true
	}
	if termoDigitos != "" {
		if strings.Contains(domain.NormalizarCPF(c.CPF), termoDigitos) {
			return true
		}
		if strings.Contains(domain.NormalizarCPF(c.Telefone), termoDigitos) {
			return true
		}
	}
	return false
}

func (s *CadastroService) SolicitarExclusao(ctx context.Context, id string) (string, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return "", err
	}
	return s.confirmacoes.Emitir(acaoExcluirCadastro, id, nil), nil
}

// Excluir é terminal: não há lixeira nem desfazer.
func (s *CadastroService) Excluir(ctx context.Context, id, token string) error {
	if _, err := s.confirmacoes.Consumir(token, acaoExcluirCadastro, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("cadastro deleted", logger.String("cadastro_id", id))
	return nil
}

func (s *CadastroService) verificarEventos(ctx context.Context, eventos []string) error {
	for _, eventoID := range eventos {
		if _, err := s.eventoRepo.GetByID(ctx, eventoID); err != nil {
			if errors.Is(err, domain.ErrEventoNotFound) {
				return fmt.Errorf("%w: %s", domain.ErrEventoInexistente, eventoID)
			}
			return fmt.Errorf("check evento: %w", err)
		}
	}
	return nil
}

// unirEventos funde a forma wizard (evento único) com a forma canônica
// (lista), sem duplicar ids.
func unirEventos(eventoID string, eventos []string) []string {
	res := make([]string, 0, len(eventos)+1)
	visto := make(map[string]bool, len(eventos)+1)
	for _, id := range eventos {
		if id == "" || visto[id] {
			continue
		}
		visto[id] = true
		res = append(res, id)
	}
	if eventoID != "" && !visto[eventoID] {
		res = append(res, eventoID)
	}
	return res
}
