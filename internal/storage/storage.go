package storage

import "context"

// Chaves fixas das coleções persistidas. Fazem parte do contrato: o mesmo
// arquivo/tabela pode ser lido por qualquer engine.
const (
	ChavePessoas = "pcd_pessoas"
	ChaveEventos = "pcd_eventos"
)

// Storage é o adaptador de persistência: bytes duráveis por chave.
// Set retorna somente depois que a escrita está durável (write-through).
// SetMulti grava todas as chaves em uma única escrita durável.
type Storage interface {
	Get(ctx context.Context, chave string) ([]byte, bool, error)
	Set(ctx context.Context, chave string, valor []byte) error
	SetMulti(ctx context.Context, valores map[string][]byte) error
}
