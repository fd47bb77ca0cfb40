package storage

import (
	"context"
	"sync"
)

// Memory guarda tudo em um map. Usado em testes e execuções efêmeras.
type Memory struct {
	mu    sync.RWMutex
	dados map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{dados: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, chave string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	valor, ok := m.dados[chave]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(valor))
	copy(cp, valor)
	return cp, true, nil
}

func (m *Memory) Set(_ context.Context, chave string, valor []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(valor))
	copy(cp, valor)
	m.dados[chave] = cp
	return nil
}

func (m *Memory) SetMulti(_ context.Context, valores map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for chave, valor := range valores {
		cp := make([]byte, len(valor))
		copy(cp, valor)
		m.dados[chave] = cp
	}
	return nil
}
