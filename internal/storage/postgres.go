package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

// Postgres guarda as coleções na tabela armazenamento (uma linha por
// chave). A migration goose 00001 cria a tabela.
type Postgres struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewPostgres(db *dbpg.DB) *Postgres {
	return &Postgres{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

func (p *Postgres) Get(ctx context.Context, chave string) ([]byte, bool, error) {
	query := `SELECT valor FROM armazenamento WHERE chave = $1`

	row, err := p.db.QueryRowWithRetry(ctx, p.strategy, query, chave)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get key: %w", err)
	}

	var valor []byte
	if err = row.Scan(&valor); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("scan key: %w", err)
	}

	return valor, true, nil
}

func (p *Postgres) Set(ctx context.Context, chave string, valor []byte) error {
	query := `INSERT INTO armazenamento (chave, valor, atualizado_em)
			  VALUES ($1, $2, now())
			  ON CONFLICT (chave) DO UPDATE
			  SET valor = EXCLUDED.valor, atualizado_em = now()`

	if _, err := p.db.ExecWithRetry(ctx, p.strategy, query, chave, valor); err != nil {
		return fmt.Errorf("set key: %w", err)
	}
	return nil
}

func (p *Postgres) SetMulti(ctx context.Context, valores map[string][]byte) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO armazenamento (chave, valor, atualizado_em)
			  VALUES ($1, $2, now())
			  ON CONFLICT (chave) DO UPDATE
			  SET valor = EXCLUDED.valor, atualizado_em = now()`

	for chave, valor := range valores {
		if _, err = tx.ExecContext(ctx, query, chave, valor); err != nil {
			return fmt.Errorf("set key %s: %w", chave, err)
		}
	}

	return tx.Commit()
}
