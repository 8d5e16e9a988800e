package credentialing

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials agrupa os dois casos de credencial ausente.
	ErrMissingCredentials = errors.New("credenciais ausentes")

	ErrMissingAccessToken = fmt.Errorf("%w: access token não informado", ErrMissingCredentials)
	ErrMissingAdAccount   = fmt.Errorf("%w: conta de anúncios não informada", ErrMissingCredentials)

	ErrInvalidCredentials      = errors.New("credenciais inválidas")
	ErrInvalidSealedValue      = errors.New("valor selado inválido")
	ErrNoStoredCredential      = errors.New("nenhuma credencial armazenada para a conta")
	ErrReauthorizationRequired = errors.New("token expirado, é necessário reconectar a conta")
)

// CredentialError descreve qual campo falhou na validação estrita.
type CredentialError struct {
	Err   error
	Field string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Field)
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}
