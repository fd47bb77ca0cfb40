package domain

import (
	"strings"
	"time"
)

type StatusCadastro string

const (
	StatusPendente            StatusCadastro = "pendente"
	StatusEmAnalise           StatusCadastro = "em_analise"
	StatusAprovado            StatusCadastro = "aprovado"
	StatusReprovado           StatusCadastro = "reprovado"
	StatusDocumentosPendentes StatusCadastro = "documentos_pendentes"
)

var TodosStatus = []StatusCadastro{
	StatusPendente,
	StatusEmAnalise,
	StatusAprovado,
	StatusReprovado,
	StatusDocumentosPendentes,
}

func (s StatusCadastro) Valido() bool {
	for _, v := range TodosStatus {
		if s == v {
			return true
		}
	}
	return false
}

type TipoDeficiencia string

const (
	DeficienciaFisica      TipoDeficiencia = "fisica"
	DeficienciaVisual      TipoDeficiencia = "visual"
	DeficienciaAuditiva    TipoDeficiencia = "auditiva"
	DeficienciaIntelectual TipoDeficiencia = "intelectual"
	DeficienciaMultipla    TipoDeficiencia = "multipla"
	DeficienciaOutra       TipoDeficiencia = "outra"
)

func (t TipoDeficiencia) Valido() bool {
	switch t {
	case DeficienciaFisica, DeficienciaVisual, DeficienciaAuditiva,
		DeficienciaIntelectual, DeficienciaMultipla, DeficienciaOutra:
		return true
	}
	return false
}

// Cadastro é a inscrição de um participante PCD em um ou mais eventos.
// Eventos é a forma canônica; o formulário wizard (evento único) produz
// uma lista de um elemento.
type Cadastro struct {
	ID                    string          `json:"id"`
	Eventos               []string        `json:"eventos"`
	NomeCompleto          string          `json:"nome_completo"`
	CPF                   string          `json:"cpf"`
	DataNascimento        string          `json:"data_nascimento,omitempty"`
	Telefone              string          `json:"telefone"`
	Email                 string          `json:"email,omitempty"`
	TipoDeficiencia       TipoDeficiencia `json:"tipo_deficiencia"`
	DescricaoDeficiencia  string          `json:"descricao_deficiencia,omitempty"`
	UsaCadeiraRodas       bool            `json:"usa_cadeira_rodas"`
	NecessitaAcompanhante bool            `json:"necessita_acompanhante"`
	NomeAcompanhante      string          `json:"nome_acompanhante,omitempty"`
	CPFAcompanhante       string          `json:"cpf_acompanhante,omitempty"`
	TelefoneAcompanhante  string          `json:"telefone_acompanhante,omitempty"`
	DocIdentidadeURL      string          `json:"doc_identidade_url,omitempty"`
	DocLaudoURL           string          `json:"doc_laudo_url,omitempty"`
	DocComprovanteURL     string          `json:"doc_comprovante_url,omitempty"`
	DocFotoURL            string          `json:"doc_foto_url,omitempty"`
	DocAcompanhanteURL    string          `json:"doc_acompanhante_url,omitempty"`
	Status                StatusCadastro  `json:"status"`
	DataAprovacao         *time.Time      `json:"data_aprovacao,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// AplicarStatus muda o status e mantém o invariante da data de aprovação:
// não-nula se e somente se o status é aprovado. Reaplicar o status atual
// preserva a data original.
func (c *Cadastro) AplicarStatus(novo StatusCadastro, agora time.Time) {
	if novo == StatusAprovado {
		if c.DataAprovacao == nil {
			t := agora
			c.DataAprovacao = &t
		}
	} else {
		c.DataAprovacao = nil
	}
	c.Status = novo
}

// LimparAcompanhante zera os campos do acompanhante quando a flag está
// desligada, para nunca reter dados obsoletos.
func (c *Cadastro) LimparAcompanhante() {
	if c.NecessitaAcompanhante {
		return
	}
	c.NomeAcompanhante = ""
	c.CPFAcompanhante = ""
	c.TelefoneAcompanhante = ""
	c.DocAcompanhanteURL = ""
}

// NormalizarCPF reduz um CPF mascarado aos dígitos, para comparação e busca.
func NormalizarCPF(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type CriarCadastroInput struct {
	EventoID              string
	Eventos               []string
	NomeCompleto          string
	CPF                   string
	DataNascimento        string
	Telefone              string
	Email                 string
	TipoDeficiencia       TipoDeficiencia
	DescricaoDeficiencia  string
	UsaCadeiraRodas       bool
	NecessitaAcompanhante bool
	NomeAcompanhante      string
	CPFAcompanhante       string
	TelefoneAcompanhante  string
	DocIdentidadeURL      string
	DocLaudoURL           string
	DocComprovanteURL     string
	DocFotoURL            string
	DocAcompanhanteURL    string
}

// AtualizarCadastroInput carries a partial update; nil fields keep the
// stored value. Status não é atualizável por aqui (ver AlterarStatus).
type AtualizarCadastroInput struct {
	Eventos               *[]string
	NomeCompleto          *string
	CPF                   *string
	DataNascimento        *string
	Telefone              *string
	Email                 *string
	TipoDeficiencia       *TipoDeficiencia
	DescricaoDeficiencia  *string
	UsaCadeiraRodas       *bool
	NecessitaAcompanhante *bool
	NomeAcompanhante      *string
	CPFAcompanhante       *string
	TelefoneAcompanhante  *string
	DocIdentidadeURL      *string
	DocLaudoURL           *string
	DocComprovanteURL     *string
	DocFotoURL            *string
	DocAcompanhanteURL    *string
}

// ResumoImportacao descreve uma importação de backup pendente de confirmação.
type ResumoImportacao struct {
	Token   string `json:"confirm_token"`
	Pessoas int    `json:"pessoas"`
	Eventos int    `json:"eventos"`
}
