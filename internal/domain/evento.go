package domain

import "time"

type Evento struct {
	ID         string     `json:"id"`
	Nome       string     `json:"nome"`
	Descricao  string     `json:"descricao,omitempty"`
	DataInicio *time.Time `json:"data_inicio,omitempty"`
	DataFim    *time.Time `json:"data_fim,omitempty"`
	Local      string     `json:"local,omitempty"`
	LogoURL    string     `json:"logo_url,omitempty"`
	Ativo      bool       `json:"ativo"`
	VagasPCD   *int       `json:"vagas_pcd,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type EventoDetalhes struct {
	Evento    Evento `json:"evento"`
	Inscritos int    `json:"inscritos"`
}

type CriarEventoInput struct {
	Nome       string
	Descricao  string
	DataInicio *time.Time
	DataFim    *time.Time
	Local      string
	LogoURL    string
	Ativo      *bool
	VagasPCD   *int
}

// AtualizarEventoInput carries a partial update; nil fields keep the stored value.
type AtualizarEventoInput struct {
	Nome       *string
	Descricao  *string
	DataInicio *time.Time
	DataFim    *time.Time
	Local      *string
	LogoURL    *string
	Ativo      *bool
	VagasPCD   *int
}
