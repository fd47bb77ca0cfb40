package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"

	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/domain"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/handler/dto"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/service/ports"
)

type EventoSvc interface {
	Criar(ctx context.Context, input domain.CriarEventoInput) (*domain.Evento, error)
	Atualizar(ctx context.Context, id string, patch domain.AtualizarEventoInput) (*domain.Evento, error)
	Detalhes(ctx context.Context, id string) (*domain.EventoDetalhes, error)
	Listar(ctx context.Context) ([]*domain.Evento, error)
	ListarAtivos(ctx context.Context) ([]*domain.Evento, error)
	SolicitarExclusao(ctx context.Context, id string) (string, error)
	Excluir(ctx context.Context, id, token string) error
}

type CadastroSvc interface {
	Criar(ctx context.Context, input domain.CriarCadastroInput) (*domain.Cadastro, error)
	Atualizar(ctx context.Context, id string, patch domain.AtualizarCadastroInput) (*domain.Cadastro, error)
	AlterarStatus(ctx context.Context, id string, novo domain.StatusCadastro) (*domain.Cadastro, error)
	GetByID(ctx context.Context, id string) (*domain.Cadastro, error)
	Buscar(ctx context.Context, termo string, status domain.StatusCadastro) ([]*domain.Cadastro, error)
	SolicitarExclusao(ctx context.Context, id string) (string, error)
	Excluir(ctx context.Context, id, token string) error
}

type BackupSvc interface {
	Exportar(ctx context.Context) ([]byte, error)
	PrepararImportacao(ctx context.Context, dados []byte) (*domain.ResumoImportacao, error)
	ConfirmarImportacao(ctx context.Context, token string) error
}

type Handler struct {
	eventoService   EventoSvc
	cadastroService CadastroSvc
	backupService   BackupSvc
	uploader        ports.ArquivoUploader
}

func NewHandler(eventoService EventoSvc, cadastroService CadastroSvc, backupService BackupSvc, uploader ports.ArquivoUploader) *Handler {
	return &Handler{
		eventoService:   eventoService,
		cadastroService: cadastroService,
		backupService:   backupService,
		uploader:        uploader,
	}
}

// Eventos

func (h *Handler) CriarEvento(c *ginext.Context) {
	var req dto.CriarEventoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	input := domain.CriarEventoInput{
		Nome:      req.Nome,
		Descricao: req.Descricao,
		Local:     req.Local,
		LogoURL:   req.LogoURL,
		Ativo:     req.Ativo,
		VagasPCD:  req.VagasPCD,
	}

	var ok bool
	if input.DataInicio, ok = parseDate(c, req.DataInicio); !ok {
		return
	}
	if input.DataFim, ok = parseDate(c, req.DataFim); !ok {
		return
	}

	evento, err := h.eventoService.Criar(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventoResponse(evento))
}

func (h *Handler) AtualizarEvento(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid evento id"})
		return
	}

	var req dto.AtualizarEventoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	patch := domain.AtualizarEventoInput{
		Nome:      req.Nome,
		Descricao: req.Descricao,
		Local:     req.Local,
		LogoURL:   req.LogoURL,
		Ativo:     req.Ativo,
		VagasPCD:  req.VagasPCD,
	}

	var ok bool
	if req.DataInicio != nil {
		if patch.DataInicio, ok = parseDate(c, *req.DataInicio); !ok {
			return
		}
	}
	if req.DataFim != nil {
		if patch.DataFim, ok = parseDate(c, *req.DataFim); !ok {
			return
		}
	}

	evento, err := h.eventoService.Atualizar(c.Request.Context(), id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventoResponse(evento))
}

func (h *Handler) GetEvento(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid evento id"})
		return
	}

	detalhes, err := h.eventoService.Detalhes(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventoDetalhesResponse(detalhes))
}

func (h *Handler) ListarEventos(c *ginext.Context) {
	var (
		eventos []*domain.Evento
		err     error
	)
	if c.Query("ativos") == "true" {
		eventos, err = h.eventoService.ListarAtivos(c.Request.Context())
	} else {
		eventos, err = h.eventoService.Listar(c.Request.Context())
	}
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.EventoResponse, 0, len(eventos))
	for _, e := range eventos {
		resp = append(resp, dto.ToEventoResponse(e))
	}

	c.JSON(http.StatusOK, resp)
}

// ExcluirEvento implementa a exclusão em duas etapas: sem token devolve
// 202 com o token de confirmação; com token executa.
func (h *Handler) ExcluirEvento(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid evento id"})
		return
	}

	token := c.Query("token")
	if token == "" {
		emitido, err := h.eventoService.SolicitarExclusao(c.Request.Context(), id)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, dto.ConfirmacaoResponse{ConfirmToken: emitido})
		return
	}

	if err := h.eventoService.Excluir(c.Request.Context(), id, token); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Cadastros

func (h *Handler) CriarCadastro(c *ginext.Context) {
	var req dto.CriarCadastroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	cadastro, err := h.cadastroService.Criar(c.Request.Context(), req.ToInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCadastroResponse(cadastro))
}

func (h *Handler) AtualizarCadastro(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid cadastro id"})
		return
	}

	var req dto.AtualizarCadastroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	cadastro, err := h.cadastroService.Atualizar(c.Request.Context(), id, req.ToInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCadastroResponse(cadastro))
}

func (h *Handler) GetCadastro(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid cadastro id"})
		return
	}

	cadastro, err := h.cadastroService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCadastroResponse(cadastro))
}

func (h *Handler) ListarCadastros(c *ginext.Context) {
	termo := c.Query("busca")
	status := domain.StatusCadastro(c.Query("status"))
	if status != "" && !status.Valido() {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid status filter"})
		return
	}

	cadastros, err := h.cadastroService.Buscar(c.Request.Context(), termo, status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.CadastroResponse, 0, len(cadastros))
	for _, cad := range cadastros {
		resp = append(resp, dto.ToCadastroResponse(cad))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) AlterarStatus(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid cadastro id"})
		return
	}

	var req dto.AlterarStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	cadastro, err := h.cadastroService.AlterarStatus(c.Request.Context(), id, domain.StatusCadastro(req.Status))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCadastroResponse(cadastro))
}

func (h *Handler) ExcluirCadastro(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid cadastro id"})
		return
	}

	token := c.Query("token")
	if token == "" {
		emitido, err := h.cadastroService.SolicitarExclusao(c.Request.Context(), id)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, dto.ConfirmacaoResponse{ConfirmToken: emitido})
		return
	}

	if err := h.cadastroService.Excluir(c.Request.Context(), id, token); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Documentos

func (h *Handler) UploadDocumento(c *ginext.Context) {
	fh, err := c.FormFile("arquivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "missing file field arquivo"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unreadable file"})
		return
	}
	defer f.Close()

	url, err := h.uploader.Upload(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.UploadResponse{URL: url})
}

// Backup

func (h *Handler) ExportarBackup(c *ginext.Context) {
	dados, err := h.backupService.Exportar(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="backup-pcd.json"`)
	c.Data(http.StatusOK, "application/json", dados)
}

// ImportarBackup segue as duas etapas do backup: o POST com o corpo do
// snapshot valida e devolve o token; o POST com ?token= aplica a troca.
func (h *Handler) ImportarBackup(c *ginext.Context) {
	token := c.Query("token")
	if token != "" {
		if err := h.backupService.ConfirmarImportacao(c.Request.Context(), token); err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, ginext.H{"status": "imported"})
		return
	}

	dados, err := c.GetRawData()
	if err != nil || len(dados) == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "empty request body"})
		return
	}

	resumo, err := h.backupService.PrepararImportacao(c.Request.Context(), dados)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.ImportacaoResponse{
		ConfirmToken: resumo.Token,
		Pessoas:      resumo.Pessoas,
		Eventos:      resumo.Eventos,
	})
}

func (h *Handler) handleError(c *ginext.Context, err error) {
	c.Set("error", err.Error())

	switch {
	case errors.Is(err, domain.ErrEventoNotFound),
		errors.Is(err, domain.ErrCadastroNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrEventoInexistente),
		errors.Is(err, domain.ErrConfirmacaoInvalida):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrStatusInvalido),
		errors.Is(err, domain.ErrBackupInvalido):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrUploadIndisponivel):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}

func parseDate(c *ginext.Context, valor string) (*time.Time, bool) {
	if valor == "" {
		return nil, true
	}
	// Aceita o formato do input de data do formulário e RFC3339 completo.
	if t, err := time.Parse("2006-01-02", valor); err == nil {
		return &t, true
	}
	t, err := time.Parse(time.RFC3339, valor)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "invalid date format, expected YYYY-MM-DD or RFC3339",
		})
		return nil, false
	}
	return &t, true
}
