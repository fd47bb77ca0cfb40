package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/domain"
)

type acaoConfirmavel string

const (
	acaoExcluirEvento   acaoConfirmavel = "excluir_evento"
	acaoExcluirCadastro acaoConfirmavel = "excluir_cadastro"
	acaoImportarBackup  acaoConfirmavel = "importar_backup"
)

type pendencia struct {
	acao    acaoConfirmavel
	alvo    string
	payload []byte
	expira  time.Time
}

// Confirmacoes emite tokens de uso único para ações destrutivas (excluir,
// importar). O primeiro pedido devolve o token; a ação só executa quando o
// mesmo token volta, antes de expirar. Substitui o window.confirm da UI
// por um protocolo de duas etapas no contrato da API.
type Confirmacoes struct {
	mu        sync.Mutex
	ttl       time.Duration
	pendentes map[string]pendencia
	agora     func() time.Time
}

func NewConfirmacoes(ttl time.Duration) *Confirmacoes {
	return &Confirmacoes{
		ttl:       ttl,
		pendentes: make(map[string]pendencia),
		agora:     time.Now,
	}
}

// Emitir registra a ação pendente e devolve o token. payload é opcional e
// guarda o corpo da ação (ex.: o snapshot a importar).
func (c *Confirmacoes) Emitir(acao acaoConfirmavel, alvo string, payload []byte) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	token := uuid.New().String()
	c.pendentes[token] = pendencia{
		acao:    acao,
		alvo:    alvo,
		payload: payload,
		expira:  c.agora().Add(c.ttl),
	}
	return token
}

// Consumir valida e invalida o token. O token só serve para a ação e o
// alvo com que foi emitido.
func (c *Confirmacoes) Consumir(token string, acao acaoConfirmavel, alvo string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.pendentes[token]
	if !ok {
		return nil, domain.ErrConfirmacaoInvalida
	}
	delete(c.pendentes, token)

	if p.acao != acao || p.alvo != alvo || c.agora().After(p.expira) {
		return nil, domain.ErrConfirmacaoInvalida
	}
	return p.payload, nil
}

// PurgarExpiradas descarta pendências vencidas; chamada pelo scheduler.
func (c *Confirmacoes) PurgarExpiradas() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	agora := c.agora()
	removidas := 0
	for token, p := range c.pendentes {
		if agora.After(p.expira) {
			delete(c.pendentes, token)
			removidas++
		}
	}
	return removidas
}
