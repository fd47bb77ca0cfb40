package ports

import (
	"context"
	"io"
)

// ArquivoUploader envia um documento ao provedor de arquivos e devolve a
// URL pública. Falha de upload degrada: o cadastro segue válido sem o
// documento anexado.
type ArquivoUploader interface {
	Upload(ctx context.Context, nome, contentType string, r io.Reader) (string, error)
}
