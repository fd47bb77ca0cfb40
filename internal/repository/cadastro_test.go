package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/domain"
	"github.com/epilifcire-debug/PcD-Eventos-2.0/internal/storage"
)

func novoCadastro(nome string, eventos ...string) *domain.Cadastro {
	agora := time.Now().UTC()
	return &domain.Cadastro{
		ID:              uuid.New().String(),
		Eventos:         eventos,
		NomeCompleto:    nome,
		CPF:             "123.456.789-01",
		Telefone:        "(11) 98765-4321",
		TipoDeficiencia: domain.DeficienciaFisica,
		Status:          domain.StatusPendente,
		CreatedAt:       agora,
		UpdatedAt:       agora,
	}
}

func TestCadastroRepo_CreateGet(t *testing.T) {
	repo := NewCadastroRepo(storage.NewMemory())
	ctx := context.Background()

	c := novoCadastro("Ana Souza", "e1")
	require.NoError(t, repo.Create(ctx, c))

	lido, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", lido.NomeCompleto)
	assert.Equal(t, []string{"e1"}, lido.Eventos)
	assert.Equal(t, domain.StatusPendente, lido.Status)
}

func TestCadastroRepo_GetNaoEncontrado(t *testing.T) {
	repo := NewCadastroRepo(storage.NewMemory())

	_, err := repo.GetByID(context.Background(), uuid.New().String())

	assert.ErrorIs(t, err, domain.ErrCadastroNotFound)
}

func TestCadastroRepo_ListOrdemInversaDeCriacao(t *testing.T) {
	repo := NewCadastroRepo(storage.NewMemory())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, novoCadastro("Primeira")))
	require.NoError(t, repo.Create(ctx, novoCadastro("Segunda")))

	cadastros, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cadastros, 2)
	assert.Equal(t, "Segunda", cadastros[0].NomeCompleto)
	assert.Equal(t, "Primeira", cadastros[1].NomeCompleto)
}

func TestCadastroRepo_UpdateDelete(t *testing.T) {
	repo := NewCadastroRepo(storage.NewMemory())
	ctx := context.Background()

	c := novoCadastro("Ana")
	require.NoError(t, repo.Create(ctx, c))

	c.Status = domain.StatusAprovado
	require.NoError(t, repo.Update(ctx, c))

	lido, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAprovado, lido.Status)

	require.NoError(t, repo.Delete(ctx, c.ID))
	_, err = repo.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrCadastroNotFound)
}

func TestCadastroRepo_UpdateNaoEncontrado(t *testing.T) {
	repo := NewCadastroRepo(storage.NewMemory())

	err := repo.Update(context.Background(), novoCadastro("Fantasma"))

	assert.ErrorIs(t, err, domain.ErrCadastroNotFound)
}

// O id de um cadastro excluído nunca volta: criações seguintes recebem
// uuids novos, então a busca pelo id antigo continua falhando.
func TestCadastroRepo_IDNaoReutilizado(t *testing.T) {
	repo := NewCadastroRepo(storage.NewMemory())
	ctx := context.Background()

	c := novoCadastro("Ana")
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, repo.Delete(ctx, c.ID))

	require.NoError(t, repo.Create(ctx, novoCadastro("Bia")))

	_, err := repo.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrCadastroNotFound)
}

func TestCadastroRepo_DetachEvento(t *testing.T) {
	repo := NewCadastroRepo(storage.NewMemory())
	ctx := context.Background()

	soAlvo := novoCadastro("Ana", "alvo")
	misto := novoCadastro("Bia", "outro", "alvo")
	semRelacao := novoCadastro("Caio", "outro")
	require.NoError(t, repo.Create(ctx, soAlvo))
	require.NoError(t, repo.Create(ctx, misto))
	require.NoError(t, repo.Create(ctx, semRelacao))

	alterados, err := repo.DetachEvento(ctx, "alvo")
	require.NoError(t, err)
	assert.Equal(t, 2, alterados)

	lido, err := repo.GetByID(ctx, soAlvo.ID)
	require.NoError(t, err)
	assert.Empty(t, lido.Eventos)

	lido, err = repo.GetByID(ctx, misto.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"outro"}, lido.Eventos)

	lido, err = repo.GetByID(ctx, semRelacao.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"outro"}, lido.Eventos)
}

func TestCadastroRepo_DetachEventoSemReferencias(t *testing.T) {
	repo := NewCadastroRepo(storage.NewMemory())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, novoCadastro("Ana", "outro")))

	alterados, err := repo.DetachEvento(ctx, "inexistente")
	require.NoError(t, err)
	assert.Zero(t, alterados)
}

func TestCadastroRepo_ReplaceAll(t *testing.T) {
	repo := NewCadastroRepo(storage.NewMemory())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, novoCadastro("Velha")))

	require.NoError(t, repo.ReplaceAll(ctx, []*domain.Cadastro{novoCadastro("Nova")}))

	cadastros, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cadastros, 1)
	assert.Equal(t, "Nova", cadastros[0].NomeCompleto)
}
