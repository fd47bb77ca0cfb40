package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File persiste todas as chaves em um único arquivo JSON, gravado com
// write-temp-then-rename para a troca ser atômica. É o análogo local do
// localStorage da primeira versão do sistema.
type File struct {
	mu      sync.Mutex
	caminho string
}

func NewFile(caminho string) (*File, error) {
	if caminho == "" {
		return nil, fmt.Errorf("storage file path is empty")
	}
	if dir := filepath.Dir(caminho); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	return &File{caminho: caminho}, nil
}

func (f *File) Get(_ context.Context, chave string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	dados, err := f.carregar()
	if err != nil {
		return nil, false, err
	}
	valor, ok := dados[chave]
	if !ok {
		return nil, false, nil
	}
	return valor, true, nil
}

func (f *File) Set(ctx context.Context, chave string, valor []byte) error {
	return f.SetMulti(ctx, map[string][]byte{chave: valor})
}

func (f *File) SetMulti(_ context.Context, valores map[string][]byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	dados, err := f.carregar()
	if err != nil {
		return err
	}
	for chave, valor := range valores {
		dados[chave] = valor
	}
	return f.gravar(dados)
}

func (f *File) carregar() (map[string][]byte, error) {
	conteudo, err := os.ReadFile(f.caminho)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string][]byte), nil
		}
		return nil, fmt.Errorf("read storage file: %w", err)
	}

	dados := make(map[string][]byte)
	if len(conteudo) == 0 {
		return dados, nil
	}
	if err := json.Unmarshal(conteudo, &dados); err != nil {
		return nil, fmt.Errorf("parse storage file: %w", err)
	}
	return dados, nil
}

func (f *File) gravar(dados map[string][]byte) error {
	conteudo, err := json.Marshal(dados)
	if err != nil {
		return fmt.Errorf("encode storage file: %w", err)
	}

	tmp := f.caminho + ".tmp"
	if err := os.WriteFile(tmp, conteudo, 0o644); err != nil {
		return fmt.Errorf("write storage file: %w", err)
	}
	if err := os.Rename(tmp, f.caminho); err != nil {
		return fmt.Errorf("replace storage file: %w", err)
	}
	return nil
}
