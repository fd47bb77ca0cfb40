package domain

import "errors"

var (
	ErrEventoNotFound   = errors.New("evento not found")
	ErrCadastroNotFound = errors.New("cadastro not found")
)

var (
	ErrEventoInexistente   = errors.New("referenced evento does not exist")
	ErrStatusInvalido      = errors.New("invalid status")
	ErrConfirmacaoInvalida = errors.New("invalid or expired confirmation token")
)

var (
	ErrBackupInvalido     = errors.New("invalid backup file")
	ErrUploadIndisponivel = errors.New("document upload is not configured")
)

var (
	ErrValidation = errors.New("validation error")
)
