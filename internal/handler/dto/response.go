package dto

import (
	"time"

	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/domain"
)

type EventoResponse struct {
	ID         string `json:"id"`
	Nome       string `json:"nome"`
	Descricao  string `json:"descricao,omitempty"`
	DataInicio string `json:"data_inicio,omitempty"`
	DataFim    string `json:"data_fim,omitempty"`
	Local      string `json:"local,omitempty"`
	LogoURL    string `json:"logo_url,omitempty"`
	Ativo      bool   `json:"ativo"`
	VagasPCD   *int   `json:"vagas_pcd,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type EventoDetalhesResponse struct {
	Evento    EventoResponse `json:"evento"`
	Inscritos int            `json:"inscritos"`
}

type CadastroResponse struct {
	ID                    string   `json:"id"`
	Eventos               []string `json:"eventos"`
	NomeCompleto          string   `json:"nome_completo"`
	CPF                   string   `json:"cpf"`
	DataNascimento        string   `json:"data_nascimento,omitempty"`
	Telefone              string   `json:"telefone"`
	Email                 string   `json:"email,omitempty"`
	TipoDeficiencia       string   `json:"tipo_deficiencia"`
	DescricaoDeficiencia  string   `json:"descricao_deficiencia,omitempty"`
	UsaCadeiraRodas       bool     `json:"usa_cadeira_rodas"`
	NecessitaAcompanhante bool     `json:"necessita_acompanhante"`
	NomeAcompanhante      string   `json:"nome_acompanhante,omitempty"`
	CPFAcompanhante       string   `json:"cpf_acompanhante,omitempty"`
	TelefoneAcompanhante  string   `json:"telefone_acompanhante,omitempty"`
	DocIdentidadeURL      string   `json:"doc_identidade_url,omitempty"`
	DocLaudoURL           string   `json:"doc_laudo_url,omitempty"`
	DocComprovanteURL     string   `json:"doc_comprovante_url,omitempty"`
	DocFotoURL            string   `json:"doc_foto_url,omitempty"`
	DocAcompanhanteURL    string   `json:"doc_acompanhante_url,omitempty"`
	Status                string   `json:"status"`
	DataAprovacao         string   `json:"data_aprovacao,omitempty"`
	CreatedAt             string   `json:"created_at"`
}

type ConfirmacaoResponse struct {
	ConfirmToken string `json:"confirm_token"`
}

type ImportacaoResponse struct {
	ConfirmToken string `json:"confirm_token"`
	Pessoas      int    `json:"pessoas"`
	Eventos      int    `json:"eventos"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func ToEventoResponse(e *domain.Evento) EventoResponse {
	return EventoResponse{
		ID:         e.ID,
		Nome:       e.Nome,
		Descricao:  e.Descricao,
		DataInicio: formatTime(e.DataInicio),
		DataFim:    formatTime(e.DataFim),
		Local:      e.Local,
		LogoURL:    e.LogoURL,
		Ativo:      e.Ativo,
		VagasPCD:   e.VagasPCD,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
}

func ToEventoDetalhesResponse(d *domain.EventoDetalhes) EventoDetalhesResponse {
	return EventoDetalhesResponse{
		Evento:    ToEventoResponse(&d.Evento),
		Inscritos: d.Inscritos,
	}
}

func ToCadastroResponse(c *domain.Cadastro) CadastroResponse {
	return CadastroResponse{
		ID:                    c.ID,
		Eventos:               c.Eventos,
		NomeCompleto:          c.NomeCompleto,
		CPF:                   c.CPF,
		DataNascimento:        c.DataNascimento,
		Telefone:              c.Telefone,
		Email:                 c.Email,
		TipoDeficiencia:       string(c.TipoDeficiencia),
		DescricaoDeficiencia:  c.DescricaoDeficiencia,
		UsaCadeiraRodas:       c.UsaCadeiraRodas,
		NecessitaAcompanhante: c.NecessitaAcompanhante,
		NomeAcompanhante:      c.NomeAcompanhante,
		CPFAcompanhante:       c.CPFAcompanhante,
		TelefoneAcompanhante:  c.TelefoneAcompanhante,
		DocIdentidadeURL:      c.DocIdentidadeURL,
		DocLaudoURL:           c.DocLaudoURL,
		DocComprovanteURL:     c.DocComprovanteURL,
		DocFotoURL:            c.DocFotoURL,
		DocAcompanhanteURL:    c.DocAcompanhanteURL,
		Status:                string(c.Status),
		DataAprovacao:         formatTime(c.DataAprovacao),
		CreatedAt:             c.CreatedAt.Format(time.RFC3339),
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
