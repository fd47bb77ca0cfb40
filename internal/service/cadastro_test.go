package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"

	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/domain"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/repository"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/storage"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotificarCadastroCriado(ctx context.Context, c *domain.Cadastro, e *domain.Evento) {
	m.Called(ctx, c, e)
}

func (m *mockNotifier) NotificarStatusAlterado(ctx context.Context, c *domain.Cadastro) {
	m.Called(ctx, c)
}

// ambiente monta os serviços sobre um storage em memória compartilhado,
// como o app faz em produção.
type ambiente struct {
	cadastros *CadastroService
	eventos   *EventoService
	notifier  *mockNotifier
}

func setupAmbiente(t *testing.T) *ambiente {
	t.Helper()

	st := storage.NewMemory()
	eventoRepo := repository.NewEventoRepo(st)
	cadastroRepo := repository.NewCadastroRepo(st)
	confirmacoes := NewConfirmacoes(5 * time.Minute)
	log := newTestLogger(t)

	notifier := &mockNotifier{}
	notifier.On("NotificarCadastroCriado", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	notifier.On("NotificarStatusAlterado", mock.Anything, mock.Anything).Return().Maybe()

	return &ambiente{
		cadastros: NewCadastroService(cadastroRepo, eventoRepo, notifier, confirmacoes, log),
		eventos:   NewEventoService(eventoRepo, cadastroRepo, confirmacoes, log),
		notifier:  notifier,
	}
}

func (a *ambiente) criarEvento(t *testing.T, nome string) *domain.Evento {
	t.Helper()
	e, err := a.eventos.Criar(context.Background(), domain.CriarEventoInput{Nome: nome})
	require.NoError(t, err)
	return e
}

func inputCadastroValido(eventoID string) domain.CriarCadastroInput {
	return domain.CriarCadastroInput{
		EventoID:        eventoID,
		NomeCompleto:    "Ana Souza",
		CPF:             "123.456.789-01",
		Telefone:        "(11) 98765-4321",
		TipoDeficiencia: domain.DeficienciaVisual,
	}
}

func TestCadastroService_Criar_Success(t *testing.T) {
	amb := setupAmbiente(t)
	evento := amb.criarEvento(t, "Corrida Inclusiva")

	cadastro, err := amb.cadastros.Criar(context.Background(), inputCadastroValido(evento.ID))

	require.NoError(t, err)
	assert.NotEmpty(t, cadastro.ID)
	assert.Equal(t, domain.StatusPendente, cadastro.Status)
	assert.Equal(t, []string{evento.ID}, cadastro.Eventos)
	assert.Nil(t, cadastro.DataAprovacao)

	time.Sleep(50 * time.Millisecond) // goroutine notify
	amb.notifier.AssertCalled(t, "NotificarCadastroCriado", mock.Anything, mock.Anything, mock.Anything)
}

func TestCadastroService_Criar_UneEventoIDComLista(t *testing.T) {
	amb := setupAmbiente(t)
	e1 := amb.criarEvento(t, "Evento A")
	e2 := amb.criarEvento(t, "Evento B")

	input := inputCadastroValido(e1.ID)
	input.Eventos = []string{e2.ID, e1.ID}

	cadastro, err := amb.cadastros.Criar(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, []string{e2.ID, e1.ID}, cadastro.Eventos)

	time.Sleep(50 * time.Millisecond)
}

func TestCadastroService_Criar_SemEventos(t *testing.T) {
	amb := setupAmbiente(t)

	cadastro, err := amb.cadastros.Criar(context.Background(), inputCadastroValido(""))

	require.NoError(t, err)
	assert.Empty(t, cadastro.Eventos)

	time.Sleep(50 * time.Millisecond)
}

func TestCadastroService_Criar_Validacao(t *testing.T) {
	amb := setupAmbiente(t)
	ctx := context.Background()

	semNome := inputCadastroValido("")
	semNome.NomeCompleto = ""
	_, err := amb.cadastros.Criar(ctx, semNome)
	assert.ErrorIs(t, err, domain.ErrValidation)

	cpfCurto := inputCadastroValido("")
	cpfCurto.CPF = "123.456"
	_, err = amb.cadastros.Criar(ctx, cpfCurto)
	assert.ErrorIs(t, err, domain.ErrValidation)

	semTelefone := inputCadastroValido("")
	semTelefone.Telefone = ""
	_, err = amb.cadastros.Criar(ctx, semTelefone)
	assert.ErrorIs(t, err, domain.ErrValidation)

	tipoInvalido := inputCadastroValido("")
	tipoInvalido.TipoDeficiencia = "motora"
	_, err = amb.cadastros.Criar(ctx, tipoInvalido)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCadastroService_Criar_EventoInexistente(t *testing.T) {
	amb := setupAmbiente(t)

	_, err := amb.cadastros.Criar(context.Background(), inputCadastroValido("nao-existe"))

	require.ErrorIs(t, err, domain.ErrEventoInexistente)

	cadastros, err := amb.cadastros.Listar(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cadastros)
	amb.notifier.AssertNumberOfCalls(t, "NotificarCadastroCriado", 0)
}

func TestCadastroService_Criar_LimpaAcompanhante(t *testing.T) {
	amb := setupAmbiente(t)

	input := inputCadastroValido("")
	input.NecessitaAcompanhante = false
	input.NomeAcompanhante = "Maria"
	input.CPFAcompanhante = "987.654.321-00"
	input.TelefoneAcompanhante = "(11) 91111-2222"
	input.DocAcompanhanteURL = "https://example.com/doc.pdf"

	cadastro, err := amb.cadastros.Criar(context.Background(), input)

	require.NoError(t, err)
	assert.Empty(t, cadastro.NomeAcompanhante)
	assert.Empty(t, cadastro.CPFAcompanhante)
	assert.Empty(t, cadastro.TelefoneAcompanhante)
	assert.Empty(t, cadastro.DocAcompanhanteURL)

	time.Sleep(50 * time.Millisecond)
}

func TestCadastroService_Criar_MantemAcompanhante(t *testing.T) {
	amb := setupAmbiente(t)

	input := inputCadastroValido("")
	input.NecessitaAcompanhante = true
	input.NomeAcompanhante = "Maria"

	cadastro, err := amb.cadastros.Criar(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "Maria", cadastro.NomeAcompanhante)

	time.Sleep(50 * time.Millisecond)
}

func TestCadastroService_Atualizar_PatchParcial(t *testing.T) {
	amb := setupAmbiente(t)
	ctx := context.Background()

	criado, err := amb.cadastros.Criar(ctx, inputCadastroValido(""))
	require.NoError(t, err)

	novoNome := "Ana Pereira"
	atualizado, err := amb.cadastros.Atualizar(ctx, criado.ID, domain.AtualizarCadastroInput{
		NomeCompleto: &novoNome,
	})

	require.NoError(t, err)
	assert.Equal(t, "Ana Pereira", atualizado.NomeCompleto)
	assert.Equal(t, criado.CPF, atualizado.CPF)
	assert.Equal(t, criado.Telefone, atualizado.Telefone)
	assert.Equal(t, criado.Status, atualizado.Status)

	time.Sleep(50 * time.Millisecond)
}

func TestCadastroService_Atualizar_DesligarAcompanhanteLimpaCampos(t *testing.T) {
	amb := setupAmbiente(t)
	ctx := context.Background()

	input := inputCadastroValido("")
	input.NecessitaAcompanhante = true
	input.NomeAcompanhante = "Maria"
	criado, err := amb.cadastros.Criar(ctx, input)
	require.NoError(t, err)

	desligar := false
	atualizado, err := amb.cadastros.Atualizar(ctx, criado.ID, domain.AtualizarCadastroInput{
		NecessitaAcompanhante: &desligar,
	})

	require.NoError(t, err)
	assert.False(t, atualizado.NecessitaAcompanhante)
	assert.Empty(t, atualizado.NomeAcompanhante)

	time.Sleep(50 * time.Millisecond)
}

func TestCadastroService_Atualizar_EventoInexistente(t *testing.T) {
	amb := setupAmbiente(t)
	ctx := context.Background()

	criado, err := amb.cadastros.Criar(ctx, inputCadastroValido(""))
	require.NoError(t, err)

	eventos := []string{"nao-existe"}
	_, err = amb.cadastros.Atualizar(ctx, criado.ID, domain.AtualizarCadastroInput{
		Eventos: &eventos,
	})

	require.ErrorIs(t, err, domain.ErrEventoInexistente)

	lido, err := amb.cadastros.GetByID(ctx, criado.ID)
	require.NoError(t, err)
	assert.Empty(t, lido.Eventos)

	time.Sleep(50 * time.Millisecond)
}

func TestCadastroService_Atualizar_NaoEncontrado(t *testing.T) {
	amb := setupAmbiente(t)

	nome := "X"
	_, err := amb.cadastros.Atualizar(context.Background(), "nao-existe", domain.AtualizarCadastroInput{
		NomeCompleto: &nome,
	})

	assert.ErrorIs(t, err, domain.ErrCadastroNotFound)
}

func TestCadastroService_AlterarStatus_Aprovar(t *testing.T) {
	amb := setupAmbiente(t)
	ctx := context.Background()

	criado, err := amb.cadastros.Criar(ctx, inputCadastroValido(""))
	require.NoError(t, err)

	aprovado, err := amb.cadastros.AlterarStatus(ctx, criado.ID, domain.StatusAprovado)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusAprovado, aprovado.Status)
	require.NotNil(t, aprovado.DataAprovacao)

	time.Sleep(50 * time.Millisecond)
	amb.notifier.AssertCalled(t, "NotificarStatusAlterado", mock.Anything, mock.Anything)
}

func TestCadastroService_AlterarStatus_SairDeAprovadoLimpaData(t *testing.T) {
	amb := setupAmbiente(t)
	ctx := context.Background()

	criado, err := amb.cadastros.Criar(ctx, inputCadastroValido(""))
	require.NoError(t, err)

	_, err = amb.cadastros.AlterarStatus(ctx, criado.ID, domain.StatusAprovado)
	require.NoError(t, err)

	reprovado, err := amb.cadastros.AlterarStatus(ctx, criado.ID, domain.StatusReprovado)
	require.NoError(t, err)
	assert.Nil(t, reprovado.DataAprovacao)

	time.Sleep(50 * time.Millisecond)
}

func TestCadastroService_AlterarStatus_ReaplicarNaoNotifica(t *testing.T) {
	amb := setupAmbiente(t)
	ctx := context.Background()

	criado, err := amb.cadastros.Criar(ctx, inputCadastroValido(""))
	require.NoError(t, err)

	primeiro, err := amb.cadastros.AlterarStatus(ctx, criado.ID, domain.StatusAprovado)
	require.NoError(t, err)
	dataOriginal := *primeiro.DataAprovacao

	time.Sleep(50 * time.Millisecond)

	segundo, err := amb.cadastros.AlterarStatus(ctx, criado.ID, domain.StatusAprovado)
	require.NoError(t, err)
	require.NotNil(t, segundo.DataAprovacao)
	assert.Equal(t, dataOriginal, *segundo.DataAprovacao)

	time.Sleep(50 * time.Millisecond)
	amb.notifier.AssertNumberOfCalls(t, "NotificarStatusAlterado", 1)
}

func TestCadastroService_AlterarStatus_Invalido(t *testing.T) {
	amb := setupAmbiente(t)
	ctx := context.Background()

	criado, err := amb.cadastros.Criar(ctx, inputCadastroValido(""))
	require.NoError(t, err)

	_, err = amb.cadastros.AlterarStatus(ctx, criado.ID, "cancelado")

	require.ErrorIs(t, err, domain.ErrStatusInvalido)

	lido, err := amb.cadastros.GetByID(ctx, criado.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendente, lido.Status)

	time.Sleep(50 * time.Millisecond)
}

func TestCadastroService_AlterarStatus_NaoEncontrado(t *testing.T) {
	amb := setupAmbiente(t)

	_, err := amb.cadastros.AlterarStatus(context.Background(), "nao-existe", domain.StatusAprovado)

	assert.ErrorIs(t, err, domain.ErrCadastroNotFound)
}

func TestCadastroService_Buscar(t *testing.T) {
	amb := setupAmbiente(t)
	ctx := context.Background()

	ana := inputCadastroValido("")
	ana.NomeCompleto = "Ana Clara Souza"
	ana.CPF = "111.222.333-44"
	_, err := amb.cadastros.Criar(ctx, ana)
	require.NoError(t, err)

	bruno := inputCadastroValido("")
	bruno.NomeCompleto = "Bruno Lima"
	bruno.CPF = "555.666.777-88"
	bruno.Telefone = "(21) 90000-1111"
	criado, err := amb.cadastros.Criar(ctx, bruno)
	require.NoError(t, err)

	_, err = amb.cadastros.AlterarStatus(ctx, criado.ID, domain.StatusAprovado)
	require.NoError(t, err)

	// nome, substring sem caixa
	res, err := amb.cadastros.Buscar(ctx, "ana clara", "")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Ana Clara Souza", res[0].NomeCompleto)

	// CPF com máscara diferente da armazenada
	res, err = amb.cadastros.Buscar(ctx, "11122233344", "")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Ana Clara Souza", res[0].NomeCompleto)

	// telefone por dígitos
	res, err = amb.cadastros.Buscar(ctx, "2190000", "")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Bruno Lima", res[0].NomeCompleto)

	// filtro de status
	res, err = amb.cadastros.Buscar(ctx, "", domain.StatusAprovado)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Bruno Lima", res[0].NomeCompleto)

	// termo e status combinados, sem correspondência
	res, err = amb.cadastros.Buscar(ctx, "ana", domain.StatusAprovado)
	require.NoError(t, err)
	assert.Empty(t, res)

	// sem filtros devolve tudo
	res, err = amb.cadastros.Buscar(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, res, 2)

	time.Sleep(50 * time.Millisecond)
}

func TestCadastroService_ExclusaoEmDuasEtapas(t *testing.T) {
	amb := setupAmbiente(t)
	ctx := context.Background()

	criado, err := amb.cadastros.Criar(ctx, inputCadastroValido(""))
	require.NoError(t, err)

	token, err := amb.cadastros.SolicitarExclusao(ctx, criado.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// sem confirmar, o cadastro continua lá
	_, err = amb.cadastros.GetByID(ctx, criado.ID)
	require.NoError(t, err)

	require.NoError(t, amb.cadastros.Excluir(ctx, criado.ID, token))

	_, err = amb.cadastros.GetByID(ctx, criado.ID)
	assert.ErrorIs(t, err, domain.ErrCadastroNotFound)

	time.Sleep(50 * time.Millisecond)
}

func TestCadastroService_Excluir_TokenInvalido(t *testing.T) {
	amb := setupAmbiente(t)
	ctx := context.Background()

	criado, err := amb.cadastros.Criar(ctx, inputCadastroValido(""))
	require.NoError(t, err)

	err = amb.cadastros.Excluir(ctx, criado.ID, "token-errado")
	require.ErrorIs(t, err, domain.ErrConfirmacaoInvalida)

	_, err = amb.cadastros.GetByID(ctx, criado.ID)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
}

func TestCadastroService_SolicitarExclusao_NaoEncontrado(t *testing.T) {
	amb := setupAmbiente(t)

	_, err := amb.cadastros.SolicitarExclusao(context.Background(), "nao-existe")

	assert.ErrorIs(t, err, domain.ErrCadastroNotFound)
}
