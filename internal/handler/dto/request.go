package dto

import "github.com/epilifcire-debug/PcD-Eventos-2.0/internal/domain"

type CriarEventoRequest struct {
	Nome       string `json:"nome" binding:"required"`
	Descricao  string `json:"descricao"`
	DataInicio string `json:"data_inicio"`
	DataFim    string `json:"data_fim"`
	Local      string `json:"local"`
	LogoURL    string `json:"logo_url"`
	Ativo      *bool  `json:"ativo"`
	VagasPCD   *int   `json:"vagas_pcd"`
}

type AtualizarEventoRequest struct {
	Nome       *string `json:"nome"`
	Descricao  *string `json:"descricao"`
	DataInicio *string `json:"data_inicio"`
	DataFim    *string `json:"data_fim"`
	Local      *string `json:"local"`
	LogoURL    *string `json:"logo_url"`
	Ativo      *bool   `json:"ativo"`
	VagasPCD   *int    `json:"vagas_pcd"`
}

// CriarCadastroRequest aceita as duas formas de vínculo com evento: o
// evento_id único do wizard e a lista eventos do painel.
type CriarCadastroRequest struct {
	EventoID              string   `json:"evento_id"`
	Eventos               []string `json:"eventos"`
	NomeCompleto          string   `json:"nome_completo" binding:"required"`
	CPF                   string   `json:"cpf" binding:"required"`
	DataNascimento        string   `json:"data_nascimento"`
	Telefone              string   `json:"telefone" binding:"required"`
	Email                 string   `json:"email"`
	TipoDeficiencia       string   `json:"tipo_deficiencia" binding:"required"`
	DescricaoDeficiencia  string   `json:"descricao_deficiencia"`
	UsaCadeiraRodas       bool     `json:"usa_cadeira_rodas"`
	NecessitaAcompanhante bool     `json:"necessita_acompanhante"`
	NomeAcompanhante      string   `json:"nome_acompanhante"`
	CPFAcompanhante       string   `json:"cpf_acompanhante"`
	TelefoneAcompanhante  string   `json:"telefone_acompanhante"`
	DocIdentidadeURL      string   `json:"doc_identidade_url"`
	DocLaudoURL           string   `json:"doc_laudo_url"`
	DocComprovanteURL     string   `json:"doc_comprovante_url"`
	DocFotoURL            string   `json:"doc_foto_url"`
	DocAcompanhanteURL    string   `json:"doc_acompanhante_url"`
}

type AtualizarCadastroRequest struct {
	Eventos               *[]string `json:"eventos"`
	NomeCompleto          *string   `json:"nome_completo"`
	CPF                   *string   `json:"cpf"`
	DataNascimento        *string   `json:"data_nascimento"`
	Telefone              *string   `json:"telefone"`
	Email                 *string   `json:"email"`
	TipoDeficiencia       *string   `json:"tipo_deficiencia"`
	DescricaoDeficiencia  *string   `json:"descricao_deficiencia"`
	UsaCadeiraRodas       *bool     `json:"usa_cadeira_rodas"`
	NecessitaAcompanhante *bool     `json:"necessita_acompanhante"`
	NomeAcompanhante      *string   `json:"nome_acompanhante"`
	CPFAcompanhante       *string   `json:"cpf_acompanhante"`
	TelefoneAcompanhante  *string   `json:"telefone_acompanhante"`
	DocIdentidadeURL      *string   `json:"doc_identidade_url"`
	DocLaudoURL           *string   `json:"doc_laudo_url"`
	DocComprovanteURL     *string   `json:"doc_comprovante_url"`
	DocFotoURL            *string   `json:"doc_foto_url"`
	DocAcompanhanteURL    *string   `json:"doc_acompanhante_url"`
}

type AlterarStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r *CriarCadastroRequest) ToInput() domain.CriarCadastroInput {
	return domain.CriarCadastroInput{
		EventoID:              r.EventoID,
		Eventos:               r.Eventos,
		NomeCompleto:          r.NomeCompleto,
		CPF:                   r.CPF,
		DataNascimento:        r.DataNascimento,
		Telefone:              r.Telefone,
		Email:                 r.Email,
		TipoDeficiencia:       domain.TipoDeficiencia(r.TipoDeficiencia),
		DescricaoDeficiencia:  r.DescricaoDeficiencia,
		UsaCadeiraRodas:       r.UsaCadeiraRodas,
		NecessitaAcompanhante: r.NecessitaAcompanhante,
		NomeAcompanhante:      r.NomeAcompanhante,
		CPFAcompanhante:       r.CPFAcompanhante,
		TelefoneAcompanhante:  r.TelefoneAcompanhante,
		DocIdentidadeURL:      r.DocIdentidadeURL,
		DocLaudoURL:           r.DocLaudoURL,
		DocComprovanteURL:     r.DocComprovanteURL,
		DocFotoURL:            r.DocFotoURL,
		DocAcompanhanteURL:    r.DocAcompanhanteURL,
	}
}

func (r *AtualizarCadastroRequest) ToInput() domain.AtualizarCadastroInput {
	input := domain.AtualizarCadastroInput{
		Eventos:               r.Eventos,
		NomeCompleto:          r.NomeCompleto,
		CPF:                   r.CPF,
		DataNascimento:        r.DataNascimento,
		Telefone:              r.Telefone,
		Email:                 r.Email,
		DescricaoDeficiencia:  r.DescricaoDeficiencia,
		UsaCadeiraRodas:       r.UsaCadeiraRodas,
		NecessitaAcompanhante: r.NecessitaAcompanhante,
		NomeAcompanhante:      r.NomeAcompanhante,
		CPFAcompanhante:       r.CPFAcompanhante,
		TelefoneAcompanhante:  r.TelefoneAcompanhante,
		DocIdentidadeURL:      r.DocIdentidadeURL,
		DocLaudoURL:           r.DocLaudoURL,
		DocComprovanteURL:     r.DocComprovanteURL,
		DocFotoURL:            r.DocFotoURL,
		DocAcompanhanteURL:    r.DocAcompanhanteURL,
	}
	if r.TipoDeficiencia != nil {
		tipo := domain.TipoDeficiencia(*r.TipoDeficiencia)
		input.TipoDeficiencia = &tipo
	}
	return input
}
