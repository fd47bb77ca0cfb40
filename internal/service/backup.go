package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wb-go/wbf/logger"

	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/domain"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/storage"
)

// Snapshot é o documento de backup: as duas coleções completas mais o
// carimbo de exportação. Os nomes das chaves são contrato estável.
type Snapshot struct {
	Pessoas    []*domain.Cadastro `json:"pessoas"`
	Eventos    []*domain.Evento   `json:"eventos"`
	ExportedAt time.Time          `json:"exportedAt"`
}

// BackupService exporta e restaura o estado inteiro do armazenamento.
// A restauração ignora as operações individuais do store: valida a
// estrutura, troca as duas coleções em uma única escrita durável e nada
// mais — referências penduradas entram como estão e os leitores as
// toleram.
type BackupService struct {
	st           storage.Storage
	confirmacoes *Confirmacoes
	logger       logger.Logger
}

func NewBackupService(st storage.Storage, confirmacoes *Confirmacoes, logger logger.Logger) *BackupService {
	return &BackupService{
		st:           st,
		confirmacoes: confirmacoes,
		logger:       logger,
	}
}

// Exportar serializa o estado atual completo, sem omitir campo nenhum.
func (s *BackupService) Exportar(ctx context.Context) ([]byte, error) {
	pessoas, err := lerColecao[domain.Cadastro](ctx, s.st, storage.ChavePessoas)
	if err != nil {
		return nil, err
	}
	eventos, err := lerColecao[domain.Evento](ctx, s.st, storage.ChaveEventos)
	if err != nil {
		return nil, err
	}

	snapshot := Snapshot{
		Pessoas:    pessoas,
		Eventos:    eventos,
		ExportedAt: time.Now().UTC(),
	}

	dados, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return dados, nil
}

// PrepararImportacao valida a estrutura do snapshot e devolve o token de
// confirmação. O armazenamento não é tocado; um snapshot malformado falha
// aqui e nada muda.
func (s *BackupService) PrepararImportacao(ctx context.Context, dados []byte) (*domain.ResumoImportacao, error) {
	snapshot, err := parseSnapshot(dados)
	if err != nil {
		return nil, err
	}

	token := s.confirmacoes.Emitir(acaoImportarBackup, "", dados)
	return &domain.ResumoImportacao{
		Token:   token,
		Pessoas: len(snapshot.Pessoas),
		Eventos: len(snapshot.Eventos),
	}, nil
}

// ConfirmarImportacao consome o token e substitui as duas coleções por
// inteiro, atomicamente. Não há merge nem revalidação de referências.
func (s *BackupService) ConfirmarImportacao(ctx context.Context, token string) error {
	dados, err := s.confirmacoes.Consumir(token, acaoImportarBackup, "")
	if err != nil {
		return err
	}

	snapshot, err := parseSnapshot(dados)
	if err != nil {
		return err
	}

	pessoas, err := json.Marshal(snapshot.Pessoas)
	if err != nil {
		return fmt.Errorf("encode pessoas: %w", err)
	}
	eventos, err := json.Marshal(snapshot.Eventos)
	if err != nil {
		return fmt.Errorf("encode eventos: %w", err)
	}

	if err = s.st.SetMulti(ctx, map[string][]byte{
		storage.ChavePessoas: pessoas,
		storage.ChaveEventos: eventos,
	}); err != nil {
		return fmt.Errorf("replace collections: %w", err)
	}

	s.logger.Info("backup imported",
		logger.Int("pessoas", len(snapshot.Pessoas)),
		logger.Int("eventos", len(snapshot.Eventos)),
	)

	return nil
}

// parseSnapshot exige as duas chaves presentes (pode ser array vazio) e
// arrays bem formados; qualquer outra coisa é ErrBackupInvalido.
func parseSnapshot(dados []byte) (*Snapshot, error) {
	var topo map[string]json.RawMessage
	if err := json.Unmarshal(dados, &topo); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackupInvalido, err)
	}

	pessoasBruto, ok := topo["pessoas"]
	if !ok {
		return nil, fmt.Errorf("%w: missing key pessoas", domain.ErrBackupInvalido)
	}
	eventosBruto, ok := topo["eventos"]
	if !ok {
		return nil, fmt.Errorf("%w: missing key eventos", domain.ErrBackupInvalido)
	}

	snapshot := &Snapshot{}
	if err := json.Unmarshal(pessoasBruto, &snapshot.Pessoas); err != nil {
		return nil, fmt.Errorf("%w: pessoas: %v", domain.ErrBackupInvalido, err)
	}
	if err := json.Unmarshal(eventosBruto, &snapshot.Eventos); err != nil {
		return nil, fmt.Errorf("%w: eventos: %v", domain.ErrBackupInvalido, err)
	}
	if snapshot.Pessoas == nil {
		snapshot.Pessoas = []*domain.Cadastro{}
	}
	if snapshot.Eventos == nil {
		snapshot.Eventos = []*domain.Evento{}
	}
	return snapshot, nil
}

func lerColecao[T any](ctx context.Context, st storage.Storage, chave string) ([]*T, error) {
	bruto, ok, err := st.Get(ctx, chave)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", chave, err)
	}
	res := []*T{}
	if !ok {
		return res, nil
	}
	if err = json.Unmarshal(bruto, &res); err != nil {
		return nil, fmt.Errorf("decode %s: %w", chave, err)
	}
	if res == nil {
		res = []*T{}
	}
	return res, nil
}
